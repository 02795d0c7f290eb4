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
package model_test

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pvforecast/data"
	"github.com/penny-vault/pvforecast/model"
)

type fakeResolver map[string]string

func (resolver fakeResolver) ResolveCIK(_ context.Context, ticker string) (string, error) {
	if cik, ok := resolver[ticker]; ok {
		return cik, nil
	}

	return "", fmt.Errorf("%w: ticker %s", data.ErrNotFound, ticker)
}

type fakeProvider struct {
	facts map[string]data.Facts
	calls []string
}

func (provider *fakeProvider) CompanyFacts(_ context.Context, cik string) (data.Facts, error) {
	provider.calls = append(provider.calls, cik)
	if facts, ok := provider.facts[cik]; ok {
		return facts, nil
	}

	return nil, errors.New("status code is invalid: 404")
}

var _ = Describe("LoadBaseYear", func() {
	var (
		resolver fakeResolver
		provider *fakeProvider
	)

	BeforeEach(func() {
		resolver = fakeResolver{"AAPL": "0000320193", "NOFY": "0000000042"}
		provider = &fakeProvider{
			facts: map[string]data.Facts{
				"0000320193": {
					"Revenues":      {annual(383285, 2023, "2023-09-30", "2023-11-03")},
					"NetIncomeLoss": {annual(96995, 2023, "2023-09-30", "2023-11-03")},
				},
				"0000000042": {},
			},
		}
	})

	It("normalizes the facts of the resolved company", func() {
		base, facts, err := model.LoadBaseYear(context.Background(), resolver, provider, "AAPL")
		Expect(err).ToNot(HaveOccurred())
		Expect(provider.calls).To(Equal([]string{"0000320193"}))
		Expect(facts).To(HaveKey("Revenues"))
		Expect(base.Year).To(Equal(2023))
		Expect(base.Revenue).To(Equal(383285.0))
		Expect(base.NetIncome).To(Equal(96995.0))
	})

	It("aborts when the ticker cannot be resolved", func() {
		base, _, err := model.LoadBaseYear(context.Background(), resolver, provider, "ZZZZ")
		Expect(err).To(MatchError(data.ErrNotFound))
		Expect(base).To(BeNil())
		Expect(provider.calls).To(BeEmpty())
	})

	It("propagates facts provider failures", func() {
		resolver["MISS"] = "0000000001"
		_, _, err := model.LoadBaseYear(context.Background(), resolver, provider, "MISS")
		Expect(err).To(HaveOccurred())
	})

	It("fails when the company never reported annual revenue", func() {
		_, _, err := model.LoadBaseYear(context.Background(), resolver, provider, "NOFY")
		Expect(err).To(MatchError(data.ErrNotFound))
	})
})
