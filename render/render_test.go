// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package render_test

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/penny-vault/pvforecast/data"
	"github.com/penny-vault/pvforecast/render"
)

var (
	base = &data.BaseYear{
		Year:         2023,
		Revenue:      1234567.891,
		NetIncome:    10,
		TaxRate:      0.21,
		Cash:         20,
		LongTermDebt: 30,
		CommonEquity: 50,
	}

	forecast = &data.Forecast{
		Income: []data.IncomeRow{
			{Year: 2023, Revenue: 1234567.891, NetIncome: 10},
			{Year: 2024, Revenue: 1358024.6801, EBIT: 27.5, Interest: 1.5, Taxes: 5.46, NetIncome: 20.54, Projected: true},
		},
		Balance: []data.BalanceRow{
			{Year: 2023, Cash: 20, Debt: 30, Equity: 50, Assets: 80},
			{Year: 2024, Cash: 15.24, Debt: 8, Equity: 70.54, Assets: 93.78},
		},
		CashFlow: []data.CashFlowRow{
			{Year: 2024, CFO: 20.54, CFI: -3.3, CFF: -22, NetChange: -4.76, Capex: 3.3},
		},
	}
)

var _ = Describe("Tables", func() {
	It("renders every statement", func() {
		out := render.Tables(forecast)
		Expect(out).To(ContainSubstring("Income Statement"))
		Expect(out).To(ContainSubstring("Balance Sheet"))
		Expect(out).To(ContainSubstring("Cash Flow"))
		Expect(out).To(ContainSubstring("Net Income"))
		Expect(out).To(ContainSubstring("ΔCash"))
	})

	It("formats amounts with thousands separators and cents", func() {
		out := render.Tables(forecast)
		Expect(out).To(ContainSubstring("1,234,567.89"))
		Expect(out).To(ContainSubstring("1,358,024.68"))
		Expect(out).To(ContainSubstring("-4.76"))
	})

	It("marks base year lines that are not modeled", func() {
		out := render.Tables(forecast)
		for _, line := range strings.Split(out, "\n") {
			if strings.Contains(line, "2023") && strings.Contains(line, "1,234,567.89") {
				Expect(line).To(ContainSubstring("n/a"))
			}
		}
	})
})

var _ = Describe("Summary", func() {
	It("describes the base year and assumptions", func() {
		doc, err := render.Summary("aapl", base, data.DefaultAssumptions(), forecast, time.Now().Add(-48*time.Hour))
		Expect(err).ToNot(HaveOccurred())
		Expect(doc).To(HavePrefix("# AAPL three-statement forecast"))
		Expect(doc).To(ContainSubstring("## Base Year 2023"))
		Expect(doc).To(ContainSubstring("Revenue: 1,234,567.89"))
		Expect(doc).To(ContainSubstring("Tax Rate: 21.0%"))
		Expect(doc).To(ContainSubstring("Revenue Growth: 6.00%"))
		Expect(doc).To(ContainSubstring("Forecast Years: 5"))
		Expect(doc).To(ContainSubstring("ago"))
	})

	It("reports unknown filing dates", func() {
		doc, err := render.Summary("MSFT", base, data.DefaultAssumptions(), forecast, time.Time{})
		Expect(err).ToNot(HaveOccurred())
		Expect(doc).To(ContainSubstring("Last Filing: Unknown"))
	})
})

var _ = Describe("Export", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("writes one csv file per statement", func() {
		files, err := render.Export(dir, render.CSV, "AAPL", forecast)
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(Equal([]string{
			filepath.Join(dir, "aapl-2023-income-statement.csv"),
			filepath.Join(dir, "aapl-2023-balance-sheet.csv"),
			filepath.Join(dir, "aapl-2023-cash-flow.csv"),
		}))

		contents, err := os.ReadFile(files[0])
		Expect(err).ToNot(HaveOccurred())
		lines := strings.Split(strings.TrimSpace(string(contents)), "\n")
		Expect(lines).To(HaveLen(3))
		Expect(lines[0]).To(Equal("year,revenue,ebit,interest,taxes,net_income,projected"))
		Expect(lines[1]).To(HavePrefix("2023,1234567.89,"))

		contents, err = os.ReadFile(files[2])
		Expect(err).ToNot(HaveOccurred())
		Expect(strings.Split(strings.TrimSpace(string(contents)), "\n")).To(HaveLen(2))
	})

	It("writes a workbook with a sheet per statement", func() {
		files, err := render.Export(dir, render.XLSX, "AAPL", forecast)
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(Equal([]string{filepath.Join(dir, "aapl-2023-forecast.xlsx")}))

		workbook, err := excelize.OpenFile(files[0])
		Expect(err).ToNot(HaveOccurred())
		defer workbook.Close()

		Expect(workbook.GetSheetList()).To(Equal([]string{"Income Statement", "Balance Sheet", "Cash Flow"}))

		rows, err := workbook.GetRows("Balance Sheet")
		Expect(err).ToNot(HaveOccurred())
		Expect(rows).To(HaveLen(3))
		Expect(rows[0]).To(Equal([]string{"Year", "Cash", "Debt", "Equity", "Assets"}))
		Expect(rows[2][0]).To(Equal("2024"))
	})

	It("writes one parquet file per statement", func() {
		files, err := render.Export(dir, render.Parquet, "AAPL", forecast)
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(HaveLen(3))

		for _, fn := range files {
			info, err := os.Stat(fn)
			Expect(err).ToNot(HaveOccurred())
			Expect(info.Size()).To(BeNumerically(">", 0))
			Expect(fn).To(HaveSuffix(".parquet"))
		}
	})

	It("parses format names", func() {
		format, err := render.ParseFormat("XLSX")
		Expect(err).ToNot(HaveOccurred())
		Expect(format).To(Equal(render.XLSX))

		_, err = render.ParseFormat("pdf")
		Expect(err).To(MatchError(render.ErrUnknownFormat))
	})
})

var _ = Describe("B2Config", func() {
	It("is only enabled when fully configured", func() {
		Expect(render.B2Config{}.Enabled()).To(BeFalse())
		Expect(render.B2Config{ApplicationID: "id", ApplicationKey: "key"}.Enabled()).To(BeFalse())
		Expect(render.B2Config{ApplicationID: "id", ApplicationKey: "key", Bucket: "exports"}.Enabled()).To(BeTrue())
	})
})
