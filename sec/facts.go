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
package sec

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/penny-vault/pvforecast/data"
	"github.com/rs/zerolog"
)

const (
	usGAAPTaxonomy = "us-gaap"
	usdUnit        = "USD"
)

type companyFactsResponse struct {
	CIK        int                                  `json:"cik"`
	EntityName string                               `json:"entityName"`
	Facts      map[string]map[string]*conceptFacts `json:"facts"`
}

type conceptFacts struct {
	Label       string                    `json:"label"`
	Description string                    `json:"description"`
	Units       map[string][]*reportedFact `json:"units"`
}

type reportedFact struct {
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Value     float64 `json:"val"`
	Accession string  `json:"accn"`
	FY        int     `json:"fy"`
	FP        string  `json:"fp"`
	Form      string  `json:"form"`
	Filed     string  `json:"filed"`
	Frame     string  `json:"frame"`
}

// CompanyFacts downloads every us-gaap fact reported in USD by the company
func (client *Client) CompanyFacts(ctx context.Context, cik string) (data.Facts, error) {
	logger := zerolog.Ctx(ctx)

	cik = PadCIK(cik)
	url := fmt.Sprintf(client.factsURL, cik)

	resp := companyFactsResponse{}
	if err := client.get(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("download company facts for CIK %s: %w", cik, err)
	}

	facts := make(data.Facts)
	for tag, concept := range resp.Facts[usGAAPTaxonomy] {
		if concept == nil {
			continue
		}

		reported, ok := concept.Units[usdUnit]
		if !ok {
			continue
		}

		values := make([]data.Fact, 0, len(reported))
		for _, fact := range reported {
			endDate, err := time.Parse("2006-01-02", fact.End)
			if err != nil {
				logger.Warn().Err(err).Str("Tag", tag).Str("EndStr", fact.End).Msg("could not parse period end date")
				continue
			}

			// a missing filing date only weakens the tie-break
			filedDate, _ := time.Parse("2006-01-02", fact.Filed)

			values = append(values, data.Fact{
				Value:        fact.Value,
				End:          endDate,
				Filed:        filedDate,
				FiscalYear:   fact.FY,
				FiscalPeriod: fact.FP,
				Form:         fact.Form,
				Accession:    fact.Accession,
			})
		}

		facts[tag] = values
	}

	logger.Info().Str("CIK", cik).Str("EntityName", resp.EntityName).Int("NumConcepts", len(facts)).Msg("downloaded company facts")

	return facts, nil
}

// PadCIK left pads a CIK with zeros to the 10 digits EDGAR expects
func PadCIK(cik string) string {
	cik = strings.TrimSpace(cik)
	if len(cik) >= 10 {
		return cik
	}

	return strings.Repeat("0", 10-len(cik)) + cik
}
