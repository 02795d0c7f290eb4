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
	"fmt"
	"math"

	"github.com/penny-vault/pvforecast/data"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultTaxRate is the flat rate applied to every base year
	DefaultTaxRate = 0.21

	// currentShare of each unattributed residual is treated as current, the
	// remainder as non-current
	currentShare = 0.5
)

// NormalizeBaseYear builds a fully populated base year out of the most recent
// annual facts. Concepts that were never reported default to 0. An error
// wrapping data.ErrNotFound is returned if revenue has no annual value since
// the fiscal year of the base year cannot be determined without it.
func NormalizeBaseYear(facts data.Facts) (*data.BaseYear, error) {
	revenueFact, ok := facts.LatestAnnual(data.ConceptMap[data.RevenueKey].Tag)
	if !ok {
		return nil, fmt.Errorf("%w: no annual %s reported", data.ErrNotFound, data.ConceptMap[data.RevenueKey].Tag)
	}

	values := make(map[string]float64, len(data.Concepts))
	for _, concept := range data.Concepts {
		fact, ok := facts.LatestAnnual(concept.Tag)
		if !ok {
			log.Debug().Str("Concept", concept.Key).Str("Tag", concept.Tag).Msg("concept not reported, defaulting to 0")
			values[concept.Key] = 0.0
			continue
		}

		values[concept.Key] = fact.Value
	}

	assets := values[data.TotalAssetsKey]
	liabilities := values[data.TotalLiabilitiesKey]

	equity := values[data.EquityKey]
	if equity == 0 {
		equity = assets - liabilities
	}

	cash := values[data.CashKey]
	receivables := values[data.ReceivablesKey]
	inventory := values[data.InventoryKey]
	ppe := values[data.PPENetKey]
	payables := values[data.PayablesKey]
	accrued := values[data.AccruedLiabilitiesKey]
	debt := values[data.LongTermDebtKey]

	otherAssets := math.Max(0, assets-(cash+receivables+inventory+ppe))
	otherLiabilities := math.Max(0, liabilities-(payables+accrued+debt))

	base := &data.BaseYear{
		Year:      revenueFact.Year(),
		Revenue:   values[data.RevenueKey],
		COGS:      values[data.COGSKey],
		SGA:       values[data.SGAKey],
		DA:        values[data.DAKey],
		Interest:  values[data.InterestKey],
		TaxRate:   DefaultTaxRate,
		NetIncome: values[data.NetIncomeKey],

		Cash:                  cash,
		AR:                    receivables,
		Inventory:             inventory,
		OtherCurrentAssets:    otherAssets * currentShare,
		PPENet:                ppe,
		OtherNonCurrentAssets: otherAssets * (1 - currentShare),

		AP:                         payables,
		AccruedLiabilities:         accrued,
		OtherCurrentLiabilities:    otherLiabilities * currentShare,
		LongTermDebt:               debt,
		OtherNonCurrentLiabilities: otherLiabilities * (1 - currentShare),
		CommonEquity:               equity,
	}

	log.Debug().Int("Year", base.Year).Float64("Revenue", base.Revenue).Float64("OtherAssets", otherAssets).
		Float64("OtherLiabilities", otherLiabilities).Msg("normalized base year")

	return base, nil
}
