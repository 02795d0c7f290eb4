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
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hako/durafmt"
	"github.com/penny-vault/pvforecast/data"
	"github.com/penny-vault/pvforecast/model"
	"github.com/penny-vault/pvforecast/render"
	"github.com/penny-vault/pvforecast/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	noPrompt     bool
	exportDir    string
	exportFormat string
)

// forecastCmd represents the forecast command
var forecastCmd = &cobra.Command{
	Use:   "forecast [ticker]",
	Short: "Project a three-statement model for a company",
	Long: `The forecast sub-command downloads the latest annual figures a company
reported to the SEC, normalizes them into a base year and projects the income
statement, balance sheet and cash flow forward.

Unless --no-prompt is given you will be asked for the ticker, the number of years
to project and the revenue growth rate. Every other assumption can be set with a
flag or in the [assumptions] section of the config file.

Also see: concepts, history`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		assumptions := assumptionsFromConfig()

		inputs := forecastInputs{
			Ticker: viper.GetString("forecast.ticker"),
			Years:  strconv.Itoa(assumptions.Years),
			Growth: strconv.FormatFloat(assumptions.RevenueGrowth, 'f', -1, 64),
		}

		if len(args) > 0 {
			inputs.Ticker = args[0]
		}

		if !noPrompt {
			if err := promptForecastInputs(&inputs); err != nil {
				log.Fatal().Err(err).Msg("error gathering forecast settings")
			}
		}

		if err := validateTicker(inputs.Ticker); err != nil {
			log.Fatal().Err(err).Msg("no ticker provided")
		}

		var err error
		if assumptions.Years, err = parseYears(inputs.Years, assumptions.Years); err != nil {
			log.Fatal().Err(err).Str("Years", inputs.Years).Msg("invalid number of forecast years")
		}

		if assumptions.RevenueGrowth, err = parseGrowth(inputs.Growth, assumptions.RevenueGrowth); err != nil {
			log.Fatal().Err(err).Str("Growth", inputs.Growth).Msg("invalid revenue growth")
		}

		if err := assumptions.Validate(); err != nil {
			log.Fatal().Err(err).Msg("assumptions are out of range")
		}

		logger := log.With().Str("Ticker", inputs.Ticker).Logger()
		ctx := logger.WithContext(context.Background())

		startTime := time.Now()
		client := secClient()
		base, facts, err := model.LoadBaseYear(ctx, client, client, inputs.Ticker)
		if err != nil {
			logger.Fatal().Err(err).Msg("could not build base year")
		}

		logger.Info().Int("BaseYear", base.Year).Str("RunTime", durafmt.Parse(time.Since(startTime)).String()).Msg("loaded base year from EDGAR")

		forecast, err := model.Project(base, assumptions)
		if err != nil {
			logger.Fatal().Err(err).Msg("could not project forecast")
		}

		summary, err := render.Summary(inputs.Ticker, base, assumptions, forecast, facts.LastFiled())
		if err != nil {
			logger.Fatal().Err(err).Msg("could not create forecast summary document")
		}

		out, err := render.Markdown(summary)
		if err != nil {
			logger.Fatal().Err(err).Msg("could not render summary document")
		}

		fmt.Print(out)
		fmt.Println(render.Tables(forecast))

		if exportDir != "" {
			exportForecast(inputs.Ticker, base.Year, forecast)
		}

		if dbURL := viper.GetString("db.url"); dbURL != "" {
			saveForecast(ctx, dbURL, store.NewRun(inputs.Ticker, base, assumptions, forecast))
		}
	},
}

func exportForecast(ticker string, baseYear int, forecast *data.Forecast) {
	format, err := render.ParseFormat(exportFormat)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot export forecast")
	}

	files, err := render.Export(exportDir, format, ticker, forecast)
	if err != nil {
		log.Fatal().Err(err).Str("Dir", exportDir).Msg("export failed")
	}

	for _, fn := range files {
		log.Info().Str("FileName", fn).Msg("exported forecast")
	}

	// only parquet exports are archived
	if format != render.Parquet {
		return
	}

	b2 := render.B2Config{
		ApplicationID:  viper.GetString("backblaze.application_id"),
		ApplicationKey: viper.GetString("backblaze.application_key"),
		Bucket:         viper.GetString("backblaze.bucket"),
	}

	if !b2.Enabled() {
		log.Debug().Msg("skipping upload to backblaze because backblaze credentials are missing")
		return
	}

	if err := render.Upload(b2, fmt.Sprintf("%s/%d", ticker, baseYear), files...); err != nil {
		log.Error().Err(err).Msg("failed uploading parquet files to Backblaze")
	}
}

func saveForecast(ctx context.Context, dbURL string, run *store.Run) {
	history, err := store.Connect(ctx, dbURL)
	if err != nil {
		log.Error().Err(err).Msg("could not connect to history database, run not saved")
		return
	}
	defer history.Close()

	if err := history.SaveRun(ctx, run); err != nil {
		log.Error().Err(err).Msg("could not save run")
		return
	}

	log.Info().Str("RunID", run.ID.String()).Msg("saved forecast to history")
}

func init() {
	rootCmd.AddCommand(forecastCmd)

	forecastCmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "do not prompt, use the ticker argument and flags as given")
	forecastCmd.Flags().StringVar(&exportDir, "export", "", "directory to export the forecast tables to")
	forecastCmd.Flags().StringVar(&exportFormat, "format", string(render.CSV), "export format (csv, xlsx, parquet)")

	defaults := data.DefaultAssumptions()
	assumptionFlags := []struct {
		name  string
		key   string
		value float64
		usage string
	}{
		{"growth", "assumptions.revenue_growth", defaults.RevenueGrowth, "revenue growth (6 or 0.06)"},
		{"cogs", "assumptions.cogs_pct_rev", defaults.COGSPctRev, "cost of goods sold as a fraction of revenue"},
		{"sga", "assumptions.sga_pct_rev", defaults.SGAPctRev, "SG&A as a fraction of revenue"},
		{"da", "assumptions.da_pct_rev", defaults.DAPctRev, "depreciation and amortization as a fraction of revenue"},
		{"interest", "assumptions.interest_pct_debt", defaults.InterestPctDebt, "interest as a fraction of prior year debt"},
		{"tax", "assumptions.tax_rate", defaults.TaxRate, "tax rate"},
		{"ar", "assumptions.ar_pct_rev", defaults.ARPctRev, "accounts receivable as a fraction of revenue"},
		{"inventory", "assumptions.inv_pct_rev", defaults.InvPctRev, "inventory as a fraction of revenue"},
		{"ap", "assumptions.ap_pct_rev", defaults.APPctRev, "accounts payable as a fraction of revenue"},
		{"accrued", "assumptions.accrued_pct_rev", defaults.AccruedPctRev, "accrued liabilities as a fraction of revenue"},
		{"capex", "assumptions.capex_pct_rev", defaults.CapexPctRev, "capex as a fraction of revenue"},
		{"target-debt", "assumptions.target_debt_pct_assets", defaults.TargetDebtPctAssets, "target debt as a fraction of prior year assets"},
	}

	forecastCmd.Flags().Int("years", defaults.Years, "number of years to project")
	if err := viper.BindPFlag("assumptions.years", forecastCmd.Flags().Lookup("years")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for years failed")
	}

	for _, flag := range assumptionFlags {
		forecastCmd.Flags().Float64(flag.name, flag.value, flag.usage)
		if err := viper.BindPFlag(flag.key, forecastCmd.Flags().Lookup(flag.name)); err != nil {
			log.Panic().Err(err).Str("Flag", flag.name).Msg("BindPFlag failed")
		}
	}
}
