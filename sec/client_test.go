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
package sec_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvforecast/data"
	"github.com/penny-vault/pvforecast/sec"
)

const tickerMap = `{
	"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."},
	"1": {"cik_str": 789019, "ticker": "MSFT", "title": "MICROSOFT CORP"},
	"2": {"cik_str": 1, "ticker": "MSFT", "title": "Duplicate listing"}
}`

const companyFacts = `{
	"cik": 320193,
	"entityName": "Apple Inc.",
	"facts": {
		"dei": {
			"EntityCommonStockSharesOutstanding": {
				"label": "Entity Common Stock, Shares Outstanding",
				"units": {"shares": [{"end": "2023-10-20", "val": 15552752000, "fy": 2023, "fp": "FY", "form": "10-K", "filed": "2023-11-03"}]}
			}
		},
		"us-gaap": {
			"Revenues": {
				"label": "Revenues",
				"units": {
					"USD": [
						{"start": "2022-09-25", "end": "2023-09-30", "val": 383285000000, "accn": "0000320193-23-000106", "fy": 2023, "fp": "FY", "form": "10-K", "filed": "2023-11-03", "frame": "CY2023"},
						{"start": "2023-07-02", "end": "2023-09-30", "val": 89498000000, "accn": "0000320193-23-000106", "fy": 2023, "fp": "Q4", "form": "10-K", "filed": "2023-11-03"},
						{"start": "2007-09-30", "end": "2008-09-27", "val": 32479000000, "accn": "0001193125-09-214859", "fy": null, "fp": null, "form": "10-K", "filed": "2009-10-27"}
					]
				}
			},
			"EarningsPerShareBasic": {
				"label": "EPS",
				"units": {"USD/shares": [{"end": "2023-09-30", "val": 6.16, "fy": 2023, "fp": "FY", "form": "10-K", "filed": "2023-11-03"}]}
			}
		}
	}
}`

var _ = Describe("Client", func() {
	var (
		server      *httptest.Server
		client      *sec.Client
		tickerCalls atomic.Int32
		userAgents  []string
		paths       []string
	)

	BeforeEach(func() {
		tickerCalls.Store(0)
		userAgents = nil
		paths = nil

		mux := http.NewServeMux()
		mux.HandleFunc("/files/company_tickers.json", func(w http.ResponseWriter, r *http.Request) {
			tickerCalls.Add(1)
			userAgents = append(userAgents, r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(tickerMap))
		})
		mux.HandleFunc("/api/xbrl/companyfacts/", func(w http.ResponseWriter, r *http.Request) {
			paths = append(paths, r.URL.Path)
			if r.URL.Path != "/api/xbrl/companyfacts/CIK0000320193.json" {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(companyFacts))
		})

		server = httptest.NewServer(mux)
		client = sec.New(
			sec.WithUserAgent("pvforecast-test (test@example.com)"),
			sec.WithTimeout(5*time.Second),
			sec.WithRateLimit(1000),
			sec.WithTickerURL(server.URL+"/files/company_tickers.json"),
			sec.WithFactsURL(server.URL+"/api/xbrl/companyfacts/CIK%s.json"),
		)
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("ResolveCIK", func() {
		It("returns a zero-padded CIK regardless of ticker case", func() {
			cik, err := client.ResolveCIK(context.Background(), "aapl")
			Expect(err).ToNot(HaveOccurred())
			Expect(cik).To(Equal("0000320193"))
			Expect(userAgents).To(ConsistOf("pvforecast-test (test@example.com)"))
		})

		It("prefers the first listing of duplicated tickers", func() {
			cik, err := client.ResolveCIK(context.Background(), "MSFT")
			Expect(err).ToNot(HaveOccurred())
			Expect(cik).To(Equal("0000789019"))
		})

		It("caches the ticker map", func() {
			_, err := client.ResolveCIK(context.Background(), "AAPL")
			Expect(err).ToNot(HaveOccurred())
			_, err = client.ResolveCIK(context.Background(), "MSFT")
			Expect(err).ToNot(HaveOccurred())
			Expect(tickerCalls.Load()).To(Equal(int32(1)))
		})

		It("returns ErrNotFound for unknown tickers", func() {
			_, err := client.ResolveCIK(context.Background(), "NOPE")
			Expect(err).To(MatchError(data.ErrNotFound))
		})
	})

	Describe("CompanyFacts", func() {
		It("keeps only us-gaap USD facts", func() {
			facts, err := client.CompanyFacts(context.Background(), "320193")
			Expect(err).ToNot(HaveOccurred())
			Expect(paths).To(Equal([]string{"/api/xbrl/companyfacts/CIK0000320193.json"}))
			Expect(facts).To(HaveLen(1))
			Expect(facts).To(HaveKey("Revenues"))
			Expect(facts["Revenues"]).To(HaveLen(3))

			latest, ok := facts.LatestAnnual("Revenues")
			Expect(ok).To(BeTrue())
			Expect(latest.Value).To(Equal(383285000000.0))
			Expect(latest.Year()).To(Equal(2023))
			Expect(latest.Accession).To(Equal("0000320193-23-000106"))
			Expect(latest.Filed).To(Equal(time.Date(2023, 11, 3, 0, 0, 0, 0, time.UTC)))
		})

		It("tolerates facts without a fiscal year or period", func() {
			facts, err := client.CompanyFacts(context.Background(), "0000320193")
			Expect(err).ToNot(HaveOccurred())

			old := facts["Revenues"][2]
			Expect(old.FiscalPeriod).To(BeEmpty())
			Expect(old.Year()).To(Equal(2008))
		})

		It("surfaces non-success status codes", func() {
			_, err := client.CompanyFacts(context.Background(), "42")
			Expect(err).To(MatchError(sec.ErrStatus))
			Expect(paths).To(Equal([]string{"/api/xbrl/companyfacts/CIK0000000042.json"}))
		})
	})

	DescribeTable("PadCIK",
		func(in, expected string) {
			Expect(sec.PadCIK(in)).To(Equal(expected))
		},
		Entry("short", "320193", "0000320193"),
		Entry("already padded", "0000320193", "0000320193"),
		Entry("whitespace", " 42 ", "0000000042"),
	)
})
