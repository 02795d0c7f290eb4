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
package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/gosimple/slug"
	"github.com/penny-vault/pvforecast/data"
	"github.com/rs/zerolog/log"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	CSV     Format = "csv"
	XLSX    Format = "xlsx"
	Parquet Format = "parquet"
)

var (
	ErrUnknownFormat = errors.New("unknown export format")
)

// Formats lists every supported export format
var Formats = []Format{CSV, XLSX, Parquet}

// ParseFormat converts a format name into a Format
func ParseFormat(name string) (Format, error) {
	for _, format := range Formats {
		if strings.EqualFold(string(format), name) {
			return format, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
}

type incomeRecord struct {
	Year      int32   `csv:"year" parquet:"name=year, type=INT32"`
	Revenue   float64 `csv:"revenue" parquet:"name=revenue, type=DOUBLE"`
	EBIT      float64 `csv:"ebit" parquet:"name=ebit, type=DOUBLE"`
	Interest  float64 `csv:"interest" parquet:"name=interest, type=DOUBLE"`
	Taxes     float64 `csv:"taxes" parquet:"name=taxes, type=DOUBLE"`
	NetIncome float64 `csv:"net_income" parquet:"name=net_income, type=DOUBLE"`
	Projected bool    `csv:"projected" parquet:"name=projected, type=BOOLEAN"`
}

type balanceRecord struct {
	Year   int32   `csv:"year" parquet:"name=year, type=INT32"`
	Cash   float64 `csv:"cash" parquet:"name=cash, type=DOUBLE"`
	Debt   float64 `csv:"debt" parquet:"name=debt, type=DOUBLE"`
	Equity float64 `csv:"equity" parquet:"name=equity, type=DOUBLE"`
	Assets float64 `csv:"assets" parquet:"name=assets, type=DOUBLE"`
}

type cashFlowRecord struct {
	Year      int32   `csv:"year" parquet:"name=year, type=INT32"`
	CFO       float64 `csv:"cfo" parquet:"name=cfo, type=DOUBLE"`
	CFI       float64 `csv:"cfi" parquet:"name=cfi, type=DOUBLE"`
	CFF       float64 `csv:"cff" parquet:"name=cff, type=DOUBLE"`
	NetChange float64 `csv:"net_change" parquet:"name=net_change, type=DOUBLE"`
	Capex     float64 `csv:"capex" parquet:"name=capex, type=DOUBLE"`
}

// Export writes the rounded forecast to dir and returns the names of the files
// created. CSV and parquet produce one file per statement; xlsx produces a
// single workbook with one sheet per statement.
func Export(dir string, format Format, ticker string, forecast *data.Forecast) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	rounded := forecast.Rounded()
	baseYear := 0
	if len(rounded.Income) > 0 {
		baseYear = rounded.Income[0].Year
	}

	fileName := func(statement string) string {
		name := slug.Make(fmt.Sprintf("%s %d %s", ticker, baseYear, statement))
		return filepath.Join(dir, fmt.Sprintf("%s.%s", name, format))
	}

	income, balance, cashFlow := toRecords(rounded)

	switch format {
	case CSV:
		files := []string{fileName("income statement"), fileName("balance sheet"), fileName("cash flow")}
		if err := saveCSV(files[0], &income); err != nil {
			return nil, err
		}
		if err := saveCSV(files[1], &balance); err != nil {
			return nil, err
		}
		if err := saveCSV(files[2], &cashFlow); err != nil {
			return nil, err
		}
		return files, nil

	case Parquet:
		files := []string{fileName("income statement"), fileName("balance sheet"), fileName("cash flow")}
		if err := saveParquet(files[0], new(incomeRecord), toAny(income)); err != nil {
			return nil, err
		}
		if err := saveParquet(files[1], new(balanceRecord), toAny(balance)); err != nil {
			return nil, err
		}
		if err := saveParquet(files[2], new(cashFlowRecord), toAny(cashFlow)); err != nil {
			return nil, err
		}
		return files, nil

	case XLSX:
		fn := fileName("forecast")
		if err := saveXLSX(fn, rounded); err != nil {
			return nil, err
		}
		return []string{fn}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

func toRecords(forecast *data.Forecast) ([]*incomeRecord, []*balanceRecord, []*cashFlowRecord) {
	income := make([]*incomeRecord, 0, len(forecast.Income))
	for _, row := range forecast.Income {
		income = append(income, &incomeRecord{
			Year:      int32(row.Year),
			Revenue:   row.Revenue,
			EBIT:      row.EBIT,
			Interest:  row.Interest,
			Taxes:     row.Taxes,
			NetIncome: row.NetIncome,
			Projected: row.Projected,
		})
	}

	balance := make([]*balanceRecord, 0, len(forecast.Balance))
	for _, row := range forecast.Balance {
		balance = append(balance, &balanceRecord{
			Year:   int32(row.Year),
			Cash:   row.Cash,
			Debt:   row.Debt,
			Equity: row.Equity,
			Assets: row.Assets,
		})
	}

	cashFlow := make([]*cashFlowRecord, 0, len(forecast.CashFlow))
	for _, row := range forecast.CashFlow {
		cashFlow = append(cashFlow, &cashFlowRecord{
			Year:      int32(row.Year),
			CFO:       row.CFO,
			CFI:       row.CFI,
			CFF:       row.CFF,
			NetChange: row.NetChange,
			Capex:     row.Capex,
		})
	}

	return income, balance, cashFlow
}

func toAny[T any](records []*T) []interface{} {
	out := make([]interface{}, len(records))
	for idx, record := range records {
		out[idx] = record
	}

	return out
}

func saveCSV(fn string, records interface{}) error {
	fh, err := os.Create(fn)
	if err != nil {
		log.Error().Err(err).Str("FileName", fn).Msg("cannot create csv file")
		return err
	}
	defer fh.Close()

	if err := gocsv.MarshalFile(records, fh); err != nil {
		log.Error().Err(err).Str("FileName", fn).Msg("csv write failed")
		return err
	}

	return nil
}

func saveParquet(fn string, schema interface{}, records []interface{}) error {
	fh, err := local.NewLocalFileWriter(fn)
	if err != nil {
		log.Error().Err(err).Str("FileName", fn).Msg("cannot create local file")
		return err
	}
	defer fh.Close()

	pw, err := writer.NewParquetWriter(fh, schema, 1)
	if err != nil {
		log.Error().Str("OriginalError", err.Error()).Msg("parquet write failed")
		return err
	}

	pw.CompressionType = parquet.CompressionCodec_ZSTD

	for _, record := range records {
		if err := pw.Write(record); err != nil {
			log.Error().Str("OriginalError", err.Error()).Str("FileName", fn).Msg("parquet write failed for record")
			return err
		}
	}

	if err := pw.WriteStop(); err != nil {
		log.Error().Err(err).Msg("parquet write failed")
		return err
	}

	log.Debug().Int("NumRecords", len(records)).Str("FileName", fn).Msg("parquet write finished")
	return nil
}

func saveXLSX(fn string, forecast *data.Forecast) error {
	workbook := excelize.NewFile()
	defer workbook.Close()

	sheets := []struct {
		name    string
		headers []interface{}
		rows    [][]interface{}
	}{
		{
			name:    "Income Statement",
			headers: []interface{}{"Year", "Revenue", "EBIT", "Interest", "Taxes", "Net Income"},
		},
		{
			name:    "Balance Sheet",
			headers: []interface{}{"Year", "Cash", "Debt", "Equity", "Assets"},
		},
		{
			name:    "Cash Flow",
			headers: []interface{}{"Year", "CFO", "CFI", "CFF", "Net Change in Cash", "Capex"},
		},
	}

	for _, row := range forecast.Income {
		values := []interface{}{row.Year, row.Revenue, nil, nil, nil, row.NetIncome}
		if row.Projected {
			values[2], values[3], values[4] = row.EBIT, row.Interest, row.Taxes
		}
		sheets[0].rows = append(sheets[0].rows, values)
	}

	for _, row := range forecast.Balance {
		sheets[1].rows = append(sheets[1].rows, []interface{}{row.Year, row.Cash, row.Debt, row.Equity, row.Assets})
	}

	for _, row := range forecast.CashFlow {
		sheets[2].rows = append(sheets[2].rows, []interface{}{row.Year, row.CFO, row.CFI, row.CFF, row.NetChange, row.Capex})
	}

	for idx, sheet := range sheets {
		if idx == 0 {
			if err := workbook.SetSheetName(workbook.GetSheetName(0), sheet.name); err != nil {
				return err
			}
		} else if _, err := workbook.NewSheet(sheet.name); err != nil {
			return err
		}

		if err := workbook.SetSheetRow(sheet.name, "A1", &sheet.headers); err != nil {
			return err
		}

		for rowIdx, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
			if err != nil {
				return err
			}

			row := row
			if err := workbook.SetSheetRow(sheet.name, cell, &row); err != nil {
				return err
			}
		}
	}

	if err := workbook.SaveAs(fn); err != nil {
		log.Error().Err(err).Str("FileName", fn).Msg("xlsx write failed")
		return err
	}

	return nil
}
