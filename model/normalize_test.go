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
package model_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvforecast/data"
	"github.com/penny-vault/pvforecast/model"
)

func annual(val float64, fy int, end, filed string) data.Fact {
	endDate, _ := time.Parse("2006-01-02", end)
	filedDate, _ := time.Parse("2006-01-02", filed)
	return data.Fact{
		Value:        val,
		End:          endDate,
		Filed:        filedDate,
		FiscalYear:   fy,
		FiscalPeriod: data.AnnualPeriod,
		Form:         "10-K",
	}
}

var _ = Describe("NormalizeBaseYear", func() {
	It("fails when revenue has no annual value", func() {
		facts := data.Facts{
			"Revenues": {{Value: 25, FiscalYear: 2023, FiscalPeriod: "Q1"}},
			"Assets":   {annual(100, 2023, "2023-12-31", "2024-02-01")},
		}

		base, err := model.NormalizeBaseYear(facts)
		Expect(err).To(MatchError(data.ErrNotFound))
		Expect(base).To(BeNil())
	})

	It("defaults balance sheet items to zero when none are reported", func() {
		facts := data.Facts{
			"Revenues":      {annual(1000, 2023, "2023-12-31", "2024-02-01")},
			"NetIncomeLoss": {annual(80, 2023, "2023-12-31", "2024-02-01")},
		}

		base, err := model.NormalizeBaseYear(facts)
		Expect(err).ToNot(HaveOccurred())
		Expect(base.Year).To(Equal(2023))
		Expect(base.Revenue).To(Equal(1000.0))
		Expect(base.NetIncome).To(Equal(80.0))
		Expect(base.Cash).To(Equal(0.0))
		Expect(base.AR).To(Equal(0.0))
		Expect(base.Inventory).To(Equal(0.0))
		Expect(base.PPENet).To(Equal(0.0))
		Expect(base.OtherCurrentAssets).To(Equal(0.0))
		Expect(base.OtherNonCurrentAssets).To(Equal(0.0))
		Expect(base.OtherCurrentLiabilities).To(Equal(0.0))
		Expect(base.OtherNonCurrentLiabilities).To(Equal(0.0))
		Expect(base.CommonEquity).To(Equal(0.0))
		Expect(base.TaxRate).To(Equal(model.DefaultTaxRate))
	})

	It("picks the latest period end and then the latest filing", func() {
		facts := data.Facts{
			"Revenues": {
				annual(900, 2022, "2022-12-31", "2023-02-01"),
				annual(1000, 2023, "2023-12-31", "2024-02-01"),
				annual(1010, 2024, "2023-12-31", "2025-02-01"),
				{Value: 400, FiscalYear: 2024, FiscalPeriod: "Q2", End: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)},
			},
		}

		base, err := model.NormalizeBaseYear(facts)
		Expect(err).ToNot(HaveOccurred())
		Expect(base.Revenue).To(Equal(1010.0))
		Expect(base.Year).To(Equal(2024))
	})

	It("falls back to the period end year when the fiscal year is missing", func() {
		facts := data.Facts{
			"Revenues": {annual(1000, 0, "2021-09-25", "2021-10-29")},
		}

		base, err := model.NormalizeBaseYear(facts)
		Expect(err).ToNot(HaveOccurred())
		Expect(base.Year).To(Equal(2021))
	})

	It("computes equity from assets and liabilities when it is not reported", func() {
		facts := data.Facts{
			"Revenues":    {annual(1000, 2023, "2023-12-31", "2024-02-01")},
			"Assets":      {annual(500, 2023, "2023-12-31", "2024-02-01")},
			"Liabilities": {annual(300, 2023, "2023-12-31", "2024-02-01")},
		}

		base, err := model.NormalizeBaseYear(facts)
		Expect(err).ToNot(HaveOccurred())
		Expect(base.CommonEquity).To(Equal(200.0))
	})

	It("splits unattributed residuals evenly into current and non-current buckets", func() {
		facts := data.Facts{
			"Revenues":                              {annual(1000, 2023, "2023-12-31", "2024-02-01")},
			"Assets":                                {annual(500, 2023, "2023-12-31", "2024-02-01")},
			"Liabilities":                           {annual(300, 2023, "2023-12-31", "2024-02-01")},
			"CashAndCashEquivalentsAtCarryingValue": {annual(50, 2023, "2023-12-31", "2024-02-01")},
			"AccountsReceivableNetCurrent":          {annual(40, 2023, "2023-12-31", "2024-02-01")},
			"InventoryNet":                          {annual(30, 2023, "2023-12-31", "2024-02-01")},
			"PropertyPlantAndEquipmentNet":          {annual(180, 2023, "2023-12-31", "2024-02-01")},
			"AccountsPayableCurrent":                {annual(60, 2023, "2023-12-31", "2024-02-01")},
			"AccruedLiabilitiesCurrent":             {annual(20, 2023, "2023-12-31", "2024-02-01")},
			"LongTermDebtNoncurrent":                {annual(100, 2023, "2023-12-31", "2024-02-01")},
			"StockholdersEquity":                    {annual(210, 2023, "2023-12-31", "2024-02-01")},
		}

		base, err := model.NormalizeBaseYear(facts)
		Expect(err).ToNot(HaveOccurred())
		Expect(base.OtherCurrentAssets).To(Equal(100.0))
		Expect(base.OtherNonCurrentAssets).To(Equal(100.0))
		Expect(base.OtherCurrentLiabilities).To(Equal(60.0))
		Expect(base.OtherNonCurrentLiabilities).To(Equal(60.0))
		Expect(base.CommonEquity).To(Equal(210.0))
		Expect(base.Assets()).To(Equal(430.0))
	})

	It("floors residuals at zero when components exceed the reported total", func() {
		facts := data.Facts{
			"Revenues":                              {annual(1000, 2023, "2023-12-31", "2024-02-01")},
			"Assets":                                {annual(100, 2023, "2023-12-31", "2024-02-01")},
			"Liabilities":                           {annual(10, 2023, "2023-12-31", "2024-02-01")},
			"CashAndCashEquivalentsAtCarryingValue": {annual(150, 2023, "2023-12-31", "2024-02-01")},
			"LongTermDebtNoncurrent":                {annual(40, 2023, "2023-12-31", "2024-02-01")},
		}

		base, err := model.NormalizeBaseYear(facts)
		Expect(err).ToNot(HaveOccurred())
		Expect(base.OtherCurrentAssets).To(Equal(0.0))
		Expect(base.OtherNonCurrentAssets).To(Equal(0.0))
		Expect(base.OtherCurrentLiabilities).To(Equal(0.0))
		Expect(base.OtherNonCurrentLiabilities).To(Equal(0.0))
	})
})
