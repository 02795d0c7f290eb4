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
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/jackc/pgx/v5"
	"github.com/pelletier/go-toml/v2"
	"github.com/penny-vault/pvforecast/data"
	"github.com/penny-vault/pvforecast/sec"
	"github.com/penny-vault/pvforecast/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type secSettings struct {
	UserAgent string `toml:"user_agent"`
}

type dbSettings struct {
	URL string `toml:"url,omitempty"`
}

// settings is the layout of ~/.pvforecast.toml
type settings struct {
	SEC         secSettings      `toml:"sec"`
	DB          dbSettings       `toml:"db"`
	Assumptions data.Assumptions `toml:"assumptions"`
}

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Gather SEC, database and default assumption settings",
	Run: func(cmd *cobra.Command, args []string) {
		config := settings{
			SEC:         secSettings{UserAgent: viper.GetString("sec.user_agent")},
			DB:          dbSettings{URL: viper.GetString("db.url")},
			Assumptions: assumptionsFromConfig(),
		}

		years := strconv.Itoa(config.Assumptions.Years)
		growth := strconv.FormatFloat(config.Assumptions.RevenueGrowth, 'f', -1, 64)

		form := huh.NewForm(
			// EDGAR requires a contact in the user agent
			huh.NewGroup(
				huh.NewInput().
					Title("What User-Agent should be sent to SEC EDGAR? (name and contact email)").
					Value(&config.SEC.UserAgent),
			),

			// Get details about the database
			huh.NewGroup(
				huh.NewInput().
					Title("Provide the DSN of a PostgreSQL database to save forecast history in (leave blank to disable)").
					Value(&config.DB.URL).
					Validate(func(dsn string) error {
						if dsn == "" {
							return nil
						}
						_, err := pgx.ParseConfig(dsn)
						return err
					}),
			),

			// Default assumptions
			huh.NewGroup(
				huh.NewInput().
					Title("Default number of forecast years").
					Value(&years).
					Validate(func(raw string) error {
						_, err := parseYears(raw, 0)
						return err
					}),
				huh.NewInput().
					Title("Default revenue growth % (6 or 0.06)").
					Value(&growth).
					Validate(func(raw string) error {
						_, err := parseGrowth(raw, 0)
						return err
					}),
			),
		)

		err := form.Run()
		if err != nil {
			log.Fatal().Err(err).Msg("error gathering settings")
		}

		if config.SEC.UserAgent == "" {
			config.SEC.UserAgent = sec.DefaultUserAgent
		}

		if config.Assumptions.Years, err = parseYears(years, config.Assumptions.Years); err != nil {
			log.Fatal().Err(err).Msg("invalid number of forecast years")
		}

		if config.Assumptions.RevenueGrowth, err = parseGrowth(growth, config.Assumptions.RevenueGrowth); err != nil {
			log.Fatal().Err(err).Msg("invalid revenue growth")
		}

		if err := config.Assumptions.Validate(); err != nil {
			log.Fatal().Err(err).Msg("default assumptions are out of range")
		}

		if config.DB.URL != "" {
			log.Info().Msg("creating database tables")
			if err := store.Migrate(config.DB.URL); err != nil {
				log.Fatal().Err(err).Msg("error running database migration")
			}
			log.Info().Msg("database tables created")
		}

		// save settings to config file
		configFN := cfgFile
		if configFN == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				log.Fatal().Err(err).Msg("could not determine user home directory")
			}
			configFN = filepath.Join(home, ".pvforecast.toml")
		}

		log.Info().Str("ConfigFile", configFN).Msg("Saving settings to config file")
		configData, err := toml.Marshal(config)
		if err != nil {
			log.Fatal().Err(err).Msg("could not marshal configuration data")
		}

		err = os.WriteFile(configFN, configData, 0600)
		if err != nil {
			log.Fatal().Err(err).Str("FileName", configFN).Msg("could not save configuration to file")
		}

		log.Info().Msg("pvforecast has been initialized")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
