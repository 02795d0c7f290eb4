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
package model

import (
	"math"

	"github.com/penny-vault/pvforecast/data"
)

// Project rolls the base year forward under the given assumptions and returns
// the income statement, balance sheet and cash flow for the base year plus
// each projected year. Values are full precision; use Forecast.Rounded for
// presentation.
//
// The base year balance sheet row sums cash, net PP&E and the other asset
// buckets, while every projected row defines assets as cash + debt + equity.
// The two definitions are intentionally kept distinct.
func Project(base *data.BaseYear, assumptions data.Assumptions) (*data.Forecast, error) {
	if err := assumptions.Validate(); err != nil {
		return nil, err
	}

	forecast := &data.Forecast{
		Income:   make([]data.IncomeRow, 0, assumptions.Years+1),
		Balance:  make([]data.BalanceRow, 0, assumptions.Years+1),
		CashFlow: make([]data.CashFlowRow, 0, assumptions.Years),
	}

	forecast.Income = append(forecast.Income, data.IncomeRow{
		Year:      base.Year,
		Revenue:   base.Revenue,
		NetIncome: base.NetIncome,
	})

	forecast.Balance = append(forecast.Balance, data.BalanceRow{
		Year:   base.Year,
		Cash:   base.Cash,
		Debt:   base.LongTermDebt,
		Equity: base.CommonEquity,
		Assets: base.Assets(),
	})

	for idx := 1; idx <= assumptions.Years; idx++ {
		income, balance, cashFlow := projectYear(forecast.Income[idx-1], forecast.Balance[idx-1], assumptions)
		forecast.Income = append(forecast.Income, income)
		forecast.Balance = append(forecast.Balance, balance)
		forecast.CashFlow = append(forecast.CashFlow, cashFlow)
	}

	return forecast, nil
}

// projectYear computes the year following prevIncome / prevBalance
func projectYear(prevIncome data.IncomeRow, prevBalance data.BalanceRow, assumptions data.Assumptions) (data.IncomeRow, data.BalanceRow, data.CashFlowRow) {
	year := prevIncome.Year + 1

	revenue := prevIncome.Revenue * (1 + assumptions.RevenueGrowth)
	ebit := revenue * (1 - assumptions.COGSPctRev - assumptions.SGAPctRev - assumptions.DAPctRev)

	// interest accrues on the prior year's closing debt
	interest := prevBalance.Debt * assumptions.InterestPctDebt
	taxes := math.Max(0, (ebit-interest)*assumptions.TaxRate)
	netIncome := ebit - interest - taxes

	equity := prevBalance.Equity + netIncome
	debt := assumptions.TargetDebtPctAssets * prevBalance.Assets

	capex := revenue * assumptions.CapexPctRev
	cfo := netIncome
	cfi := -capex
	cff := debt - prevBalance.Debt
	netChange := cfo + cfi + cff

	cash := prevBalance.Cash + netChange

	income := data.IncomeRow{
		Year:      year,
		Revenue:   revenue,
		EBIT:      ebit,
		Interest:  interest,
		Taxes:     taxes,
		NetIncome: netIncome,
		Projected: true,
	}

	balance := data.BalanceRow{
		Year:   year,
		Cash:   cash,
		Debt:   debt,
		Equity: equity,
		Assets: cash + debt + equity,
	}

	cashFlow := data.CashFlowRow{
		Year:      year,
		CFO:       cfo,
		CFI:       cfi,
		CFF:       cff,
		NetChange: netChange,
		Capex:     capex,
	}

	return income, balance, cashFlow
}
