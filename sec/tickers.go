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
	"sort"
	"strconv"
	"strings"

	"github.com/penny-vault/pvforecast/data"
	"github.com/rs/zerolog"
)

type tickerRecord struct {
	CIK    int    `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// ResolveCIK returns the 10 digit zero-padded CIK of the ticker. Matching is
// case-insensitive. The full ticker map is downloaded on first use and cached.
func (client *Client) ResolveCIK(ctx context.Context, ticker string) (string, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	if client.tickers.Len() == 0 {
		if err := client.loadTickers(ctx); err != nil {
			return "", err
		}
	}

	if cik, ok := client.tickers.Get(ticker); ok {
		return cik, nil
	}

	return "", fmt.Errorf("%w: ticker %s has no CIK", data.ErrNotFound, ticker)
}

func (client *Client) loadTickers(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	// EDGAR serves the map as an object keyed by row number
	records := make(map[string]*tickerRecord)
	if err := client.get(ctx, client.tickerURL, &records); err != nil {
		return fmt.Errorf("download ticker map: %w", err)
	}

	// the lowest numbered row wins for tickers listed more than once
	rows := make([]string, 0, len(records))
	for row := range records {
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		left, _ := strconv.Atoi(rows[i])
		right, _ := strconv.Atoi(rows[j])
		return left < right
	})

	for _, row := range rows {
		record := records[row]
		ticker := strings.ToUpper(record.Ticker)
		if _, exists := client.tickers.Get(ticker); !exists {
			client.tickers.Set(ticker, fmt.Sprintf("%010d", record.CIK))
		}
	}

	logger.Debug().Int("NumTickers", int(client.tickers.Len())).Msg("loaded EDGAR ticker map")

	return nil
}
