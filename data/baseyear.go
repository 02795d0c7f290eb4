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

// BaseYear is the normalized snapshot of a company's most recent fiscal year
// that projections start from. Values are in USD.
type BaseYear struct {
	Year int `json:"year"`

	// Income statement
	Revenue   float64 `json:"revenue"`
	COGS      float64 `json:"cogs"`
	SGA       float64 `json:"sga"`
	DA        float64 `json:"da"`
	Interest  float64 `json:"interest"`
	TaxRate   float64 `json:"tax_rate"`
	NetIncome float64 `json:"net_income"`

	// Assets
	Cash                  float64 `json:"cash"`
	AR                    float64 `json:"ar"`
	Inventory             float64 `json:"inventory"`
	OtherCurrentAssets    float64 `json:"other_current_assets"`
	PPENet                float64 `json:"ppe_net"`
	OtherNonCurrentAssets float64 `json:"other_noncurrent_assets"`

	// Liabilities and equity
	AP                         float64 `json:"ap"`
	AccruedLiabilities         float64 `json:"accrued_liabilities"`
	OtherCurrentLiabilities    float64 `json:"other_current_liabilities"`
	LongTermDebt               float64 `json:"long_term_debt"`
	OtherNonCurrentLiabilities float64 `json:"other_noncurrent_liabilities"`
	CommonEquity               float64 `json:"common_equity"`
}

// Assets is the base year total used to seed the balance sheet. It only sums
// cash, net PP&E and the two synthetic other buckets; receivables and
// inventory are not included.
func (base BaseYear) Assets() float64 {
	return base.Cash + base.PPENet + base.OtherCurrentAssets + base.OtherNonCurrentAssets
}

// Liabilities sums every liability line item of the base year
func (base BaseYear) Liabilities() float64 {
	return base.AP + base.AccruedLiabilities + base.OtherCurrentLiabilities +
		base.LongTermDebt + base.OtherNonCurrentLiabilities
}
