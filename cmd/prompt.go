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
package cmd

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/penny-vault/pvforecast/data"
)

var (
	ErrEmptyTicker = errors.New("ticker is required")
)

// forecastInputs are the values collected interactively before a forecast
type forecastInputs struct {
	Ticker string
	Years  string
	Growth string
}

// promptForecastInputs asks for the ticker, horizon and revenue growth,
// pre-filling each field with its current value
func promptForecastInputs(inputs *forecastInputs) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Ticker").
				Value(&inputs.Ticker).
				Validate(validateTicker),

			huh.NewInput().
				Title("Forecast years").
				Value(&inputs.Years).
				Validate(func(raw string) error {
					_, err := parseYears(raw, 0)
					return err
				}),

			huh.NewInput().
				Title("Revenue growth % (6 or 0.06)").
				Value(&inputs.Growth).
				Validate(func(raw string) error {
					_, err := parseGrowth(raw, 0)
					return err
				}),
		),
	)

	return form.Run()
}

func validateTicker(ticker string) error {
	if strings.TrimSpace(ticker) == "" {
		return ErrEmptyTicker
	}

	return nil
}

// parseYears converts the horizon input; blank input keeps the default
func parseYears(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}

	years, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}

	if years < 0 {
		return 0, data.ErrInvalidAssumption
	}

	return years, nil
}

// parseGrowth converts the growth input into a fraction; blank input keeps
// the default. Values above 1 are percentages.
func parseGrowth(raw string, def float64) (float64, error) {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "%")
	if raw == "" {
		return def, nil
	}

	growth, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}

	return data.ParsePct(growth), nil
}
