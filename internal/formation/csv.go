package formation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/wonny/matchday/internal/contracts"
)

// Required CSV header columns
const (
	ColTeam        = "Team"
	ColFormation   = "Formation"
	ColWinningRate = "Winning_Rate"
	ColDrawRate    = "Draw_Rate"
	ColLosingRate  = "Losing_Rate"
)

// LoadCSV reads a formation table from a CSV file
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open formation table: %w", err)
	}
	defer f.Close()

	rows, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return NewTable(rows), nil
}

// ParseCSV reads rows keyed by header name; extra columns are ignored
func ParseCSV(r io.Reader) ([]contracts.FormationRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range []string{ColTeam, ColFormation, ColWinningRate, ColDrawRate, ColLosingRate} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var rows []contracts.FormationRow
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row, err := parseRecord(record, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRecord(record []string, idx map[string]int) (contracts.FormationRow, error) {
	field := func(col string) string {
		i := idx[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rate := func(col string) (float64, error) {
		v, err := strconv.ParseFloat(field(col), 64)
		if err != nil {
			return 0, fmt.Errorf("column %s: %w", col, err)
		}
		return v, nil
	}

	row := contracts.FormationRow{
		Team:      field(ColTeam),
		Formation: field(ColFormation),
	}
	if row.Team == "" || row.Formation == "" {
		return row, fmt.Errorf("team and formation are required")
	}

	var err error
	if row.WinningRate, err = rate(ColWinningRate); err != nil {
		return row, err
	}
	if row.DrawRate, err = rate(ColDrawRate); err != nil {
		return row, err
	}
	if row.LosingRate, err = rate(ColLosingRate); err != nil {
		return row, err
	}
	return row, nil
}
