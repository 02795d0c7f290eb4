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
package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/penny-vault/pvforecast/data"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const notModeled = "n/a"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginTop(1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

// Tables renders the income statement, balance sheet and cash flow of the
// forecast as terminal tables. Values are rounded to cents before display.
func Tables(forecast *data.Forecast) string {
	rounded := forecast.Rounded()
	p := message.NewPrinter(language.English)

	builder := strings.Builder{}

	builder.WriteString(titleStyle.Render("Income Statement"))
	builder.WriteString("\n")
	builder.WriteString(newTable([]string{"Year", "Revenue", "EBIT", "Interest", "Taxes", "Net Income"}, incomeRows(p, rounded.Income)))
	builder.WriteString("\n")

	builder.WriteString(titleStyle.Render("Balance Sheet"))
	builder.WriteString("\n")
	builder.WriteString(newTable([]string{"Year", "Cash", "Debt", "Equity", "Assets"}, balanceRows(p, rounded.Balance)))
	builder.WriteString("\n")

	builder.WriteString(titleStyle.Render("Cash Flow"))
	builder.WriteString("\n")
	builder.WriteString(newTable([]string{"Year", "CFO", "CFI", "CFF", "ΔCash"}, cashFlowRows(p, rounded.CashFlow)))
	builder.WriteString("\n")

	return builder.String()
}

func newTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return cellStyle
			}
			return numberStyle
		}).
		Render()
}

func incomeRows(p *message.Printer, income []data.IncomeRow) [][]string {
	rows := make([][]string, 0, len(income))
	for _, row := range income {
		ebit, interest, taxes := notModeled, notModeled, notModeled
		if row.Projected {
			ebit = amount(p, row.EBIT)
			interest = amount(p, row.Interest)
			taxes = amount(p, row.Taxes)
		}

		rows = append(rows, []string{
			strconv.Itoa(row.Year),
			amount(p, row.Revenue),
			ebit,
			interest,
			taxes,
			amount(p, row.NetIncome),
		})
	}

	return rows
}

func balanceRows(p *message.Printer, balance []data.BalanceRow) [][]string {
	rows := make([][]string, 0, len(balance))
	for _, row := range balance {
		rows = append(rows, []string{
			strconv.Itoa(row.Year),
			amount(p, row.Cash),
			amount(p, row.Debt),
			amount(p, row.Equity),
			amount(p, row.Assets),
		})
	}

	return rows
}

func cashFlowRows(p *message.Printer, cashFlow []data.CashFlowRow) [][]string {
	rows := make([][]string, 0, len(cashFlow))
	for _, row := range cashFlow {
		rows = append(rows, []string{
			strconv.Itoa(row.Year),
			amount(p, row.CFO),
			amount(p, row.CFI),
			amount(p, row.CFF),
			amount(p, row.NetChange),
		})
	}

	return rows
}

func amount(p *message.Printer, val float64) string {
	return p.Sprintf("%.2f", val)
}
