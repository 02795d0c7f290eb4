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
package store

import (
	"context"
	"os/user"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/penny-vault/pvforecast/data"
	"github.com/rs/zerolog/log"
)

// Run is a saved forecast along with the inputs it was projected from
type Run struct {
	ID          uuid.UUID        `db:"id"`
	Ticker      string           `db:"ticker"`
	BaseYear    int              `db:"base_year"`
	Years       int              `db:"years"`
	Base        data.BaseYear    `db:"base"`
	Assumptions data.Assumptions `db:"assumptions"`
	Forecast    data.Forecast    `db:"forecast"`
	CreatedOn   time.Time        `db:"created_on"`
	CreatedBy   string           `db:"created_by"`
}

// NewRun creates a run for a freshly projected forecast
func NewRun(ticker string, base *data.BaseYear, assumptions data.Assumptions, forecast *data.Forecast) *Run {
	createdBy := ""
	if currentUser, err := user.Current(); err == nil {
		createdBy = currentUser.Username
	}

	return &Run{
		ID:          uuid.New(),
		Ticker:      strings.ToUpper(ticker),
		BaseYear:    base.Year,
		Years:       assumptions.Years,
		Base:        *base,
		Assumptions: assumptions,
		Forecast:    *forecast,
		CreatedOn:   time.Now(),
		CreatedBy:   createdBy,
	}
}

// Store saves forecast runs to PostgreSQL
type Store struct {
	Pool *pgxpool.Pool
}

// Connect opens a connection pool and migrates the schema
func Connect(ctx context.Context, dbURL string) (*Store, error) {
	if err := Migrate(dbURL); err != nil {
		log.Error().Err(err).Msg("error running database migration")
		return nil, err
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, err
	}

	return &Store{Pool: pool}, nil
}

// Close the database pool
func (store *Store) Close() {
	store.Pool.Close()
}

// SaveRun inserts the run into the history table
func (store *Store) SaveRun(ctx context.Context, run *Run) error {
	conn, err := store.Pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `INSERT INTO runs ("id", "ticker", "base_year", "years", "base", "assumptions", "forecast", "created_on", "created_by")
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, run.ID, run.Ticker, run.BaseYear, run.Years, run.Base, run.Assumptions, run.Forecast, run.CreatedOn, run.CreatedBy)
	if err != nil {
		log.Error().Err(err).Str("RunID", run.ID.String()).Msg("could not save run")
		return err
	}

	return nil
}

// Runs returns the most recent runs, newest first. If ticker is not empty
// only runs for that ticker are returned.
func (store *Store) Runs(ctx context.Context, ticker string, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}

	runs := make([]*Run, 0, limit)
	sql := `SELECT id, ticker, base_year, years, base, assumptions, forecast, created_on, created_by FROM runs
WHERE $1 = '' OR ticker = $1 ORDER BY created_on DESC LIMIT $2`

	if err := pgxscan.Select(ctx, store.Pool, &runs, sql, strings.ToUpper(ticker), limit); err != nil {
		log.Error().Err(err).Msg("could not load runs")
		return nil, err
	}

	return runs, nil
}
