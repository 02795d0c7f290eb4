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
package data

import (
	"github.com/shopspring/decimal"
)

// IncomeRow is one fiscal year of the projected income statement. The base
// year row is not projected and only carries revenue and net income.
type IncomeRow struct {
	Year      int     `json:"year"`
	Revenue   float64 `json:"revenue"`
	EBIT      float64 `json:"ebit"`
	Interest  float64 `json:"interest"`
	Taxes     float64 `json:"taxes"`
	NetIncome float64 `json:"net_income"`
	Projected bool    `json:"projected"`
}

// BalanceRow is one fiscal year of the projected balance sheet
type BalanceRow struct {
	Year   int     `json:"year"`
	Cash   float64 `json:"cash"`
	Debt   float64 `json:"debt"`
	Equity float64 `json:"equity"`
	Assets float64 `json:"assets"`
}

// CashFlowRow is one projected fiscal year of the cash flow statement
type CashFlowRow struct {
	Year      int     `json:"year"`
	CFO       float64 `json:"cfo"`
	CFI       float64 `json:"cfi"`
	CFF       float64 `json:"cff"`
	NetChange float64 `json:"net_change"`
	Capex     float64 `json:"capex"`
}

// Forecast holds the three statements of a projection. Income and Balance
// start with the base year; CashFlow only has rows for projected years.
type Forecast struct {
	Income   []IncomeRow   `json:"income"`
	Balance  []BalanceRow  `json:"balance"`
	CashFlow []CashFlowRow `json:"cash_flow"`
}

// Years returns the fiscal years covered by the forecast
func (forecast *Forecast) Years() []int {
	years := make([]int, len(forecast.Income))
	for idx, row := range forecast.Income {
		years[idx] = row.Year
	}

	return years
}

// Rounded returns a copy of the forecast with every value rounded to cents
func (forecast *Forecast) Rounded() *Forecast {
	out := &Forecast{
		Income:   make([]IncomeRow, len(forecast.Income)),
		Balance:  make([]BalanceRow, len(forecast.Balance)),
		CashFlow: make([]CashFlowRow, len(forecast.CashFlow)),
	}

	for idx, row := range forecast.Income {
		out.Income[idx] = IncomeRow{
			Year:      row.Year,
			Revenue:   Round(row.Revenue),
			EBIT:      Round(row.EBIT),
			Interest:  Round(row.Interest),
			Taxes:     Round(row.Taxes),
			NetIncome: Round(row.NetIncome),
			Projected: row.Projected,
		}
	}

	for idx, row := range forecast.Balance {
		out.Balance[idx] = BalanceRow{
			Year:   row.Year,
			Cash:   Round(row.Cash),
			Debt:   Round(row.Debt),
			Equity: Round(row.Equity),
			Assets: Round(row.Assets),
		}
	}

	for idx, row := range forecast.CashFlow {
		out.CashFlow[idx] = CashFlowRow{
			Year:      row.Year,
			CFO:       Round(row.CFO),
			CFI:       Round(row.CFI),
			CFF:       Round(row.CFF),
			NetChange: Round(row.NetChange),
			Capex:     Round(row.Capex),
		}
	}

	return out
}

// Round rounds val half away from zero to two decimal places
func Round(val float64) float64 {
	return decimal.NewFromFloat(val).Round(2).InexactFloat64()
}
