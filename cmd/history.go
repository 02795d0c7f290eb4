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
	"strings"
	"time"

	"github.com/penny-vault/pvforecast/render"
	"github.com/penny-vault/pvforecast/store"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history [ticker]",
	Short: "List previously saved forecasts",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := log.Logger.WithContext(context.Background())

		dbURL := viper.GetString("db.url")
		if dbURL == "" {
			log.Fatal().Msg("db.url is not configured, run `pvforecast init` or pass --db-url")
		}

		history, err := store.Connect(ctx, dbURL)
		if err != nil {
			log.Fatal().Err(err).Msg("could not connect to history database")
		}
		defer history.Close()

		ticker := ""
		if len(args) > 0 {
			ticker = args[0]
		}

		runs, err := history.Runs(ctx, ticker, historyLimit)
		if err != nil {
			log.Fatal().Err(err).Msg("could not load history")
		}

		out, err := render.Markdown(historyDocument(runs, time.Now()))
		if err != nil {
			log.Fatal().Err(err).Msg("could not render history document")
		}

		fmt.Print(out)
	},
}

// historyDocument describes saved runs in markdown
func historyDocument(runs []*store.Run, now time.Time) string {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	builder.WriteString("# Forecast History\n\n")
	if len(runs) == 0 {
		builder.WriteString("No forecasts have been saved.\n")
		return builder.String()
	}

	for _, run := range runs {
		age := timeago.English.FormatReference(run.CreatedOn, now)
		builder.WriteString(p.Sprintf("  * %s %s + %d years, growth %.2f%% (%s) [%s]\n",
			run.Ticker, strconv.Itoa(run.BaseYear), run.Years, run.Assumptions.RevenueGrowth*100, age, run.ID.String()[:6]))

		if len(run.Forecast.Income) > 0 {
			last := run.Forecast.Income[len(run.Forecast.Income)-1]
			builder.WriteString(p.Sprintf("    * %s revenue %.2f, net income %.2f\n", strconv.Itoa(last.Year), last.Revenue, last.NetIncome))
		}
	}

	return builder.String()
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs to list")
}
