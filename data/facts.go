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
	"time"
)

// AnnualPeriod is the fiscal period code EDGAR uses for full fiscal year values
const AnnualPeriod = "FY"

// Fact is a single value reported for an XBRL concept
type Fact struct {
	Value        float64
	End          time.Time
	Filed        time.Time
	FiscalYear   int
	FiscalPeriod string
	Form         string
	Accession    string
}

// Year returns the fiscal year the fact was reported for. When EDGAR did not
// tag the fact with a fiscal year the year of the period end is used instead.
func (fact Fact) Year() int {
	if fact.FiscalYear != 0 {
		return fact.FiscalYear
	}

	return fact.End.Year()
}

// Facts maps a us-gaap concept tag to every USD value reported for it
type Facts map[string][]Fact

// LatestAnnual returns the most recent full fiscal year value reported for the
// concept. Ties on the period end date are broken by the latest filing date.
func (facts Facts) LatestAnnual(tag string) (Fact, bool) {
	var (
		latest Fact
		found  bool
	)

	for _, fact := range facts[tag] {
		if fact.FiscalPeriod != AnnualPeriod {
			continue
		}

		if !found || fact.End.After(latest.End) ||
			(fact.End.Equal(latest.End) && !fact.Filed.Before(latest.Filed)) {
			latest = fact
			found = true
		}
	}

	return latest, found
}

// LastFiled returns the most recent filing date across all facts
func (facts Facts) LastFiled() time.Time {
	var last time.Time
	for _, values := range facts {
		for _, fact := range values {
			if fact.Filed.After(last) {
				last = fact.Filed
			}
		}
	}

	return last
}
