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
	"context"

	"github.com/penny-vault/pvforecast/data"
	"github.com/rs/zerolog"
)

// TickerResolver maps a ticker symbol to the zero-padded identifier used by
// the facts provider. Unknown tickers return an error wrapping data.ErrNotFound.
type TickerResolver interface {
	ResolveCIK(ctx context.Context, ticker string) (string, error)
}

// FactsProvider returns every annual and quarterly fact reported by a company
type FactsProvider interface {
	CompanyFacts(ctx context.Context, cik string) (data.Facts, error)
}

// LoadBaseYear resolves the ticker, downloads its facts and normalizes them
// into a base year. The downloaded facts are returned alongside the base year
// so callers can report on them.
func LoadBaseYear(ctx context.Context, resolver TickerResolver, provider FactsProvider, ticker string) (*data.BaseYear, data.Facts, error) {
	logger := zerolog.Ctx(ctx)

	cik, err := resolver.ResolveCIK(ctx, ticker)
	if err != nil {
		return nil, nil, err
	}

	logger.Debug().Str("Ticker", ticker).Str("CIK", cik).Msg("resolved ticker")

	facts, err := provider.CompanyFacts(ctx, cik)
	if err != nil {
		return nil, nil, err
	}

	base, err := NormalizeBaseYear(facts)
	if err != nil {
		return nil, nil, err
	}

	return base, facts, nil
}
