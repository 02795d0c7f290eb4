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
	"errors"
	"fmt"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	TickerMapURL    = "https://www.sec.gov/files/company_tickers.json"
	CompanyFactsURL = "https://data.sec.gov/api/xbrl/companyfacts/CIK%s.json"

	// DefaultUserAgent is sent when no user agent is configured. EDGAR asks
	// that automated tools identify themselves with a contact address.
	DefaultUserAgent = "pvforecast/1.0 (admin@example.com)"
	DefaultTimeout   = 30 * time.Second

	// DefaultRateLimit is the maximum number of requests per second EDGAR
	// allows under its fair access policy
	DefaultRateLimit = 10
)

var (
	ErrStatus = errors.New("status code is invalid")
)

// Client retrieves ticker mappings and XBRL company facts from SEC EDGAR
type Client struct {
	client    *resty.Client
	limiter   *rate.Limiter
	tickerURL string
	factsURL  string

	// tickers caches ticker -> zero-padded CIK for the life of the client
	tickers *haxmap.Map[string, string]
}

type Option func(*Client)

// WithUserAgent sets the User-Agent header sent with every request
func WithUserAgent(userAgent string) Option {
	return func(client *Client) {
		if userAgent != "" {
			client.client.SetHeader("User-Agent", userAgent)
		}
	}
}

// WithTimeout sets the timeout of each request
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		if timeout > 0 {
			client.client.SetTimeout(timeout)
		}
	}
}

// WithRateLimit sets the maximum number of requests issued per second
func WithRateLimit(perSecond float64) Option {
	return func(client *Client) {
		if perSecond > 0 {
			client.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithTickerURL overrides the location of the ticker to CIK mapping
func WithTickerURL(url string) Option {
	return func(client *Client) {
		client.tickerURL = url
	}
}

// WithFactsURL overrides the company facts endpoint. The URL must contain a
// single %s verb that is replaced by the zero-padded CIK.
func WithFactsURL(url string) Option {
	return func(client *Client) {
		client.factsURL = url
	}
}

// New creates an EDGAR client
func New(opts ...Option) *Client {
	restyClient := resty.New().
		SetTimeout(DefaultTimeout).
		SetHeader("User-Agent", DefaultUserAgent).
		SetHeader("Accept", "application/json")

	restyClient.JSONMarshal = json.Marshal
	restyClient.JSONUnmarshal = json.Unmarshal

	client := &Client{
		client:    restyClient,
		limiter:   rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		tickerURL: TickerMapURL,
		factsURL:  CompanyFactsURL,
		tickers:   haxmap.New[string, string](),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// get issues a rate limited GET and decodes the JSON response into result
func (client *Client) get(ctx context.Context, url string, result interface{}) error {
	logger := zerolog.Ctx(ctx)

	if err := client.limiter.Wait(ctx); err != nil {
		return err
	}

	startTime := time.Now()
	resp, err := client.client.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult(result).
		Get(url)
	if err != nil {
		logger.Error().Err(err).Str("URL", url).Msg("EDGAR request failed")
		return err
	}

	if resp.StatusCode() >= 300 {
		logger.Error().Int("StatusCode", resp.StatusCode()).Str("URL", url).Msg("EDGAR returned an invalid HTTP response")
		return fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode())
	}

	logger.Debug().Str("URL", url).Dur("Elapsed", time.Since(startTime)).Int("Bytes", len(resp.Body())).Msg("EDGAR request finished")

	return nil
}
