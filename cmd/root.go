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
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/penny-vault/pvforecast/data"
	"github.com/penny-vault/pvforecast/sec"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pvforecast",
	Short: "pvforecast projects a three-statement financial model from SEC filings",
	Long: `pvforecast is a command line utility that downloads the most recent
annual financial statements a company reported to the SEC and projects an
income statement, balance sheet and cash flow statement forward a number of
years.

Reported figures come from the SEC EDGAR XBRL company facts API. The latest
annual value of each required concept is normalized into a single base year
which is then rolled forward under a fixed set of assumptions:

	* revenue growth
	* costs, D&A and capex as a percent of revenue
	* interest as a percent of the prior year's debt
	* a flat tax rate
	* a target debt level as a percent of the prior year's assets

The projection is a simplified model. It does not reconcile to GAAP.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			log.Warn().Str("LogLevel", logLevel).Msg("unknown log level, using info")
			level = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(level)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pvforecast.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")

	rootCmd.PersistentFlags().String("user-agent", sec.DefaultUserAgent, "User-Agent sent to SEC EDGAR, should include a contact email")
	if err := viper.BindPFlag("sec.user_agent", rootCmd.PersistentFlags().Lookup("user-agent")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for user-agent failed")
	}

	rootCmd.PersistentFlags().String("db-url", "", "database connection string used to save forecast history")
	if err := viper.BindPFlag("db.url", rootCmd.PersistentFlags().Lookup("db-url")); err != nil {
		log.Panic().Err(err).Msg("BindPFlag for db-url failed")
	}

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("sec.timeout", sec.DefaultTimeout)
	viper.SetDefault("sec.rate_limit", sec.DefaultRateLimit)
	viper.SetDefault("forecast.ticker", "AAPL")

	defaults := data.DefaultAssumptions()
	viper.SetDefault("assumptions.years", defaults.Years)
	viper.SetDefault("assumptions.revenue_growth", defaults.RevenueGrowth)
	viper.SetDefault("assumptions.cogs_pct_rev", defaults.COGSPctRev)
	viper.SetDefault("assumptions.sga_pct_rev", defaults.SGAPctRev)
	viper.SetDefault("assumptions.da_pct_rev", defaults.DAPctRev)
	viper.SetDefault("assumptions.interest_pct_debt", defaults.InterestPctDebt)
	viper.SetDefault("assumptions.tax_rate", defaults.TaxRate)
	viper.SetDefault("assumptions.ar_pct_rev", defaults.ARPctRev)
	viper.SetDefault("assumptions.inv_pct_rev", defaults.InvPctRev)
	viper.SetDefault("assumptions.ap_pct_rev", defaults.APPctRev)
	viper.SetDefault("assumptions.accrued_pct_rev", defaults.AccruedPctRev)
	viper.SetDefault("assumptions.capex_pct_rev", defaults.CapexPctRev)
	viper.SetDefault("assumptions.target_debt_pct_assets", defaults.TargetDebtPctAssets)
}

// initConfig reads in .env, config file and ENV variables if set.
func initConfig() {
	// a missing .env file is not an error
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded environment from .env")
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".pvforecast" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("toml")
		viper.SetConfigName(".pvforecast")
	}

	viper.SetEnvPrefix("pvforecast")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Info().Str("ConfigFN", viper.ConfigFileUsed()).Msg("Using config file")
	}
}

// assumptionsFromConfig collects assumptions from flags, environment, config
// file and defaults, in that order of precedence
func assumptionsFromConfig() data.Assumptions {
	return data.Assumptions{
		Years:               viper.GetInt("assumptions.years"),
		RevenueGrowth:       data.ParsePct(viper.GetFloat64("assumptions.revenue_growth")),
		COGSPctRev:          viper.GetFloat64("assumptions.cogs_pct_rev"),
		SGAPctRev:           viper.GetFloat64("assumptions.sga_pct_rev"),
		DAPctRev:            viper.GetFloat64("assumptions.da_pct_rev"),
		InterestPctDebt:     viper.GetFloat64("assumptions.interest_pct_debt"),
		TaxRate:             viper.GetFloat64("assumptions.tax_rate"),
		ARPctRev:            viper.GetFloat64("assumptions.ar_pct_rev"),
		InvPctRev:           viper.GetFloat64("assumptions.inv_pct_rev"),
		APPctRev:            viper.GetFloat64("assumptions.ap_pct_rev"),
		AccruedPctRev:       viper.GetFloat64("assumptions.accrued_pct_rev"),
		CapexPctRev:         viper.GetFloat64("assumptions.capex_pct_rev"),
		TargetDebtPctAssets: viper.GetFloat64("assumptions.target_debt_pct_assets"),
	}
}

// secClient creates an EDGAR client from the configuration
func secClient() *sec.Client {
	return sec.New(
		sec.WithUserAgent(viper.GetString("sec.user_agent")),
		sec.WithTimeout(viper.GetDuration("sec.timeout")),
		sec.WithRateLimit(viper.GetFloat64("sec.rate_limit")),
	)
}
