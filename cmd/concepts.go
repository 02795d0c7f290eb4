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
	"fmt"
	"strings"

	"github.com/penny-vault/pvforecast/data"
	"github.com/penny-vault/pvforecast/render"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// conceptsCmd represents the concepts command
var conceptsCmd = &cobra.Command{
	Use:   "concepts [key]",
	Short: "List the reported concepts the base year is built from",
	Run: func(cmd *cobra.Command, args []string) {
		builder := strings.Builder{}

		if len(args) > 0 {
			concept, ok := data.ConceptMap[args[0]]
			if !ok {
				log.Fatal().Str("Concept", args[0]).Msg("unknown concept, run `pvforecast concepts` for a complete list")
			}

			builder.WriteString(fmt.Sprintf("# %s\n\n", concept.Description))
			builder.WriteString(fmt.Sprintf("- Statement: %s\n", concept.Statement))
			builder.WriteString(fmt.Sprintf("- us-gaap tag: `%s`\n", concept.Tag))
			builder.WriteString("\nThe latest annual (FY) value is used. Missing concepts default to 0.\n")
		} else {
			builder.WriteString("# Required Concepts\n")
			statement := ""
			for _, concept := range data.Concepts {
				if concept.Statement != statement {
					statement = concept.Statement
					builder.WriteString(fmt.Sprintf("\n## %s\n\n", statement))
				}
				builder.WriteString(fmt.Sprintf("- **%s** `%s`: %s\n", concept.Key, concept.Tag, concept.Description))
			}
		}

		out, err := render.Markdown(builder.String())
		if err != nil {
			log.Fatal().Err(err).Msg("could not render concept document")
		}

		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(conceptsCmd)
}
