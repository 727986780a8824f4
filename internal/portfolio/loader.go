package portfolio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/arvindkn/fundtracker/internal/models"
)

// ErrEmptyPortfolio is returned when the portfolio file contains no
// constituent rows. A run cannot proceed without holdings.
var ErrEmptyPortfolio = errors.New("portfolio contains no constituents")

// Load reads a portfolio CSV from disk and parses it.
func Load(path string) ([]models.Constituent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open portfolio file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse parses a portfolio CSV with required columns isin and weight
// (case-insensitive header match). Weight values may carry a trailing '%'.
// Any malformed row aborts the parse: a partial portfolio would silently
// under- or over-weight the fund.
//
// A duplicated ISIN has its weights summed into a single constituent,
// keeping first-seen order.
func Parse(r io.Reader) ([]models.Constituent, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIdx := make(map[string]int)
	for i, col := range header {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range []string{"isin", "weight"} {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	var constituents []models.Constituent
	pos := make(map[string]int) // ISIN -> index in constituents
	rowNum := 1                 // header is row 1, data starts at row 2
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: failed to read CSV record: %w", rowNum+1, err)
		}
		rowNum++

		isin := strings.TrimSpace(record[colIdx["isin"]])
		if isin == "" {
			return nil, fmt.Errorf("row %d: isin is empty", rowNum)
		}

		weightStr := strings.TrimSpace(record[colIdx["weight"]])
		weightStr = strings.TrimSuffix(weightStr, "%")
		weight, err := strconv.ParseFloat(weightStr, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid weight %q", rowNum, weightStr)
		}
		if weight < 0 {
			return nil, fmt.Errorf("row %d: negative weight %v for %s", rowNum, weight, isin)
		}

		if i, ok := pos[isin]; ok {
			constituents[i].Weight += weight
			continue
		}
		pos[isin] = len(constituents)
		constituents = append(constituents, models.Constituent{ISIN: isin, Weight: weight})
	}

	if len(constituents) == 0 {
		return nil, ErrEmptyPortfolio
	}

	return constituents, nil
}
