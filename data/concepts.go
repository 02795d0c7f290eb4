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

const (
	RevenueKey            = "revenue"
	COGSKey               = "cogs"
	SGAKey                = "sga"
	DAKey                 = "da"
	InterestKey           = "interest"
	NetIncomeKey          = "netIncome"
	TotalAssetsKey        = "totalAssets"
	TotalLiabilitiesKey   = "totalLiabilities"
	CashKey               = "cash"
	ReceivablesKey        = "receivables"
	InventoryKey          = "inventory"
	PPENetKey             = "ppeNet"
	PayablesKey           = "payables"
	AccruedLiabilitiesKey = "accruedLiabilities"
	LongTermDebtKey       = "longTermDebt"
	EquityKey             = "equity"
)

// Concept is a financial statement line item and the us-gaap tag it is
// reported under
type Concept struct {
	Key         string
	Tag         string
	Statement   string
	Description string
}

// Concepts lists every concept the base year is built from, in statement order
var Concepts = []*Concept{
	{Key: RevenueKey, Tag: "Revenues", Statement: "Income Statement", Description: "Total revenue"},
	{Key: COGSKey, Tag: "CostOfRevenue", Statement: "Income Statement", Description: "Cost of goods sold"},
	{Key: SGAKey, Tag: "SellingGeneralAndAdministrativeExpense", Statement: "Income Statement", Description: "Selling, general and administrative expense"},
	{Key: DAKey, Tag: "DepreciationDepletionAndAmortization", Statement: "Income Statement", Description: "Depreciation and amortization"},
	{Key: InterestKey, Tag: "InterestExpense", Statement: "Income Statement", Description: "Interest expense"},
	{Key: NetIncomeKey, Tag: "NetIncomeLoss", Statement: "Income Statement", Description: "Net income"},
	{Key: TotalAssetsKey, Tag: "Assets", Statement: "Balance Sheet", Description: "Total assets"},
	{Key: TotalLiabilitiesKey, Tag: "Liabilities", Statement: "Balance Sheet", Description: "Total liabilities"},
	{Key: CashKey, Tag: "CashAndCashEquivalentsAtCarryingValue", Statement: "Balance Sheet", Description: "Cash and cash equivalents"},
	{Key: ReceivablesKey, Tag: "AccountsReceivableNetCurrent", Statement: "Balance Sheet", Description: "Accounts receivable"},
	{Key: InventoryKey, Tag: "InventoryNet", Statement: "Balance Sheet", Description: "Inventory"},
	{Key: PPENetKey, Tag: "PropertyPlantAndEquipmentNet", Statement: "Balance Sheet", Description: "Net property, plant and equipment"},
	{Key: PayablesKey, Tag: "AccountsPayableCurrent", Statement: "Balance Sheet", Description: "Accounts payable"},
	{Key: AccruedLiabilitiesKey, Tag: "AccruedLiabilitiesCurrent", Statement: "Balance Sheet", Description: "Accrued liabilities"},
	{Key: LongTermDebtKey, Tag: "LongTermDebtNoncurrent", Statement: "Balance Sheet", Description: "Long-term debt"},
	{Key: EquityKey, Tag: "StockholdersEquity", Statement: "Balance Sheet", Description: "Stockholders' equity"},
}

// ConceptMap indexes Concepts by key
var ConceptMap map[string]*Concept

func init() {
	ConceptMap = make(map[string]*Concept, len(Concepts))
	for _, concept := range Concepts {
		ConceptMap[concept.Key] = concept
	}
}
