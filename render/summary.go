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
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/penny-vault/pvforecast/data"
	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary describes the base year and assumptions of a forecast in markdown
func Summary(ticker string, base *data.BaseYear, assumptions data.Assumptions, forecast *data.Forecast, lastFiled time.Time) (string, error) {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	if _, err := builder.WriteString(fmt.Sprintf("# %s three-statement forecast\n\n", strings.ToUpper(ticker))); err != nil {
		return "", err
	}

	if lastFiled.Equal(time.Time{}) {
		if _, err := builder.WriteString("Last Filing: Unknown\n\n"); err != nil {
			return "", err
		}
	} else {
		if _, err := builder.WriteString(fmt.Sprintf("Last Filing: %s (%s)\n\n", timeago.English.Format(lastFiled), lastFiled.Format("01/02/2006"))); err != nil {
			return "", err
		}
	}

	// Base year
	if _, err := builder.WriteString(fmt.Sprintf("## Base Year %d\n\n", base.Year)); err != nil {
		return "", err
	}

	baseItems := []struct {
		label string
		value float64
	}{
		{"Revenue", base.Revenue},
		{"Cost of Goods Sold", base.COGS},
		{"SG&A", base.SGA},
		{"D&A", base.DA},
		{"Interest Expense", base.Interest},
		{"Net Income", base.NetIncome},
		{"Cash", base.Cash},
		{"Accounts Receivable", base.AR},
		{"Inventory", base.Inventory},
		{"Other Current Assets", base.OtherCurrentAssets},
		{"Net PP&E", base.PPENet},
		{"Other Non-Current Assets", base.OtherNonCurrentAssets},
		{"Accounts Payable", base.AP},
		{"Accrued Liabilities", base.AccruedLiabilities},
		{"Other Current Liabilities", base.OtherCurrentLiabilities},
		{"Long-Term Debt", base.LongTermDebt},
		{"Other Non-Current Liabilities", base.OtherNonCurrentLiabilities},
		{"Common Equity", base.CommonEquity},
	}

	for _, item := range baseItems {
		if _, err := builder.WriteString(p.Sprintf("  * %s: %.2f\n", item.label, data.Round(item.value))); err != nil {
			return "", err
		}
	}

	if _, err := builder.WriteString(p.Sprintf("  * Tax Rate: %.1f%%\n\n", base.TaxRate*100)); err != nil {
		return "", err
	}

	// Assumptions
	if _, err := builder.WriteString("## Assumptions\n\n"); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(p.Sprintf("  * Forecast Years: %d\n", assumptions.Years)); err != nil {
		return "", err
	}

	assumptionItems := []struct {
		label string
		value float64
	}{
		{"Revenue Growth", assumptions.RevenueGrowth},
		{"COGS % of Revenue", assumptions.COGSPctRev},
		{"SG&A % of Revenue", assumptions.SGAPctRev},
		{"D&A % of Revenue", assumptions.DAPctRev},
		{"Interest % of Prior Debt", assumptions.InterestPctDebt},
		{"Tax Rate", assumptions.TaxRate},
		{"Capex % of Revenue", assumptions.CapexPctRev},
		{"Target Debt % of Prior Assets", assumptions.TargetDebtPctAssets},
	}

	for _, item := range assumptionItems {
		if _, err := builder.WriteString(p.Sprintf("  * %s: %.2f%%\n", item.label, item.value*100)); err != nil {
			return "", err
		}
	}

	if len(forecast.Income) > 1 {
		first := forecast.Income[0]
		last := forecast.Income[len(forecast.Income)-1]
		if _, err := builder.WriteString(p.Sprintf("\n## Outlook\n\nRevenue grows from %.2f in %s to %.2f in %s.\n",
			data.Round(first.Revenue), strconv.Itoa(first.Year), data.Round(last.Revenue), strconv.Itoa(last.Year))); err != nil {
			return "", err
		}
	}

	return builder.String(), nil
}

// Markdown renders a markdown document for display on the terminal
func Markdown(doc string) (string, error) {
	r, err := glamour.NewTermRenderer(
		// detect background color and pick either the default dark or light theme
		glamour.WithAutoStyle(),
		// wrap output at specific width (default is 80)
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", err
	}

	return r.Render(doc)
}
