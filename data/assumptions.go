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
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Assumptions are the fixed parameters a forecast is projected under. Ratios
// are expressed as fractions (0.06 == 6%).
//
// ARPctRev, InvPctRev, APPctRev and AccruedPctRev are carried for working
// capital modeling but are not consumed by the projection.
type Assumptions struct {
	Years               int     `json:"years" toml:"years" mapstructure:"years" validate:"gte=0"`
	RevenueGrowth       float64 `json:"revenue_growth" toml:"revenue_growth" mapstructure:"revenue_growth" validate:"gt=-1"`
	COGSPctRev          float64 `json:"cogs_pct_rev" toml:"cogs_pct_rev" mapstructure:"cogs_pct_rev" validate:"gte=0,lte=1"`
	SGAPctRev           float64 `json:"sga_pct_rev" toml:"sga_pct_rev" mapstructure:"sga_pct_rev" validate:"gte=0,lte=1"`
	DAPctRev            float64 `json:"da_pct_rev" toml:"da_pct_rev" mapstructure:"da_pct_rev" validate:"gte=0,lte=1"`
	InterestPctDebt     float64 `json:"interest_pct_debt" toml:"interest_pct_debt" mapstructure:"interest_pct_debt" validate:"gte=0,lte=1"`
	TaxRate             float64 `json:"tax_rate" toml:"tax_rate" mapstructure:"tax_rate" validate:"gte=0,lte=1"`
	ARPctRev            float64 `json:"ar_pct_rev" toml:"ar_pct_rev" mapstructure:"ar_pct_rev" validate:"gte=0,lte=1"`
	InvPctRev           float64 `json:"inv_pct_rev" toml:"inv_pct_rev" mapstructure:"inv_pct_rev" validate:"gte=0,lte=1"`
	APPctRev            float64 `json:"ap_pct_rev" toml:"ap_pct_rev" mapstructure:"ap_pct_rev" validate:"gte=0,lte=1"`
	AccruedPctRev       float64 `json:"accrued_pct_rev" toml:"accrued_pct_rev" mapstructure:"accrued_pct_rev" validate:"gte=0,lte=1"`
	CapexPctRev         float64 `json:"capex_pct_rev" toml:"capex_pct_rev" mapstructure:"capex_pct_rev" validate:"gte=0,lte=1"`
	TargetDebtPctAssets float64 `json:"target_debt_pct_assets" toml:"target_debt_pct_assets" mapstructure:"target_debt_pct_assets" validate:"gte=0,lte=1"`
}

var validate = validator.New()

// DefaultAssumptions returns the assumption set used when nothing is overridden
func DefaultAssumptions() Assumptions {
	return Assumptions{
		Years:               5,
		RevenueGrowth:       0.06,
		COGSPctRev:          0.60,
		SGAPctRev:           0.20,
		DAPctRev:            0.04,
		InterestPctDebt:     0.06,
		TaxRate:             0.21,
		ARPctRev:            0.10,
		InvPctRev:           0.05,
		APPctRev:            0.08,
		AccruedPctRev:       0.04,
		CapexPctRev:         0.05,
		TargetDebtPctAssets: 0.10,
	}
}

// Validate checks that the horizon is not negative, growth is above -100%
// and every ratio is within [0, 1]
func (assumptions Assumptions) Validate() error {
	err := validate.Struct(assumptions)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("%w: %w", ErrInvalidAssumption, err)
	}

	fields := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		fields = append(fields, fmt.Sprintf("%s must be %s %s", fieldError.Field(), fieldError.Tag(), fieldError.Param()))
	}

	return fmt.Errorf("%w: %s", ErrInvalidAssumption, strings.Join(fields, "; "))
}

// ParsePct converts user input for a ratio into a fraction. Values greater
// than 1 are treated as percentages, so both 6 and 0.06 mean 6%.
func ParsePct(val float64) float64 {
	if val > 1.0 {
		return val / 100.0
	}

	return val
}
