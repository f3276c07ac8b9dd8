// Package dataset ingests point data for the interpolation core. It
// delivers a normalized coordinate matrix plus value vector; coordinate
// system consistency (the core assumes a planar, locally-Euclidean
// space) and missing-value handling are the caller's responsibility
// before files reach these readers.
package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/gokrige/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ReadTXT reads whitespace-separated point data: one point per line as
// "x y value". Blank lines are skipped. Returns the n×2 coordinate
// matrix and the n value vector in file order.
func ReadTXT(filename string) (*mat.Dense, *mat.VecDense, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var rows [][3]float64
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		row, err := parsePointFields(fields)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "dataset.ReadTXT: line %d", lineNo)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	return rowsToMatrices(rows)
}

// ReadCSV reads comma-separated point data with columns x, y, value.
// When hasHeader is true the first record is skipped.
func ReadCSV(filename string, hasHeader bool) (*mat.Dense, *mat.VecDense, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if hasHeader && len(records) > 0 {
		records = records[1:]
	}

	rows := make([][3]float64, 0, len(records))
	for i, record := range records {
		row, err := parsePointFields(record)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "dataset.ReadCSV: record %d", i+1)
		}
		rows = append(rows, row)
	}

	return rowsToMatrices(rows)
}

func parsePointFields(fields []string) ([3]float64, error) {
	var row [3]float64
	if len(fields) != 3 {
		return row, errors.Newf("expected 3 fields (x y value), got %d", len(fields))
	}
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return row, errors.Newf("invalid number %q", field)
		}
		row[i] = v
	}
	return row, nil
}

func rowsToMatrices(rows [][3]float64) (*mat.Dense, *mat.VecDense, error) {
	if len(rows) == 0 {
		return nil, nil, errors.NewInsufficientDataError("dataset", 1, 0)
	}
	coords := mat.NewDense(len(rows), 2, nil)
	values := mat.NewVecDense(len(rows), nil)
	for i, row := range rows {
		coords.Set(i, 0, row[0])
		coords.Set(i, 1, row[1])
		values.SetVec(i, row[2])
	}
	return coords, values, nil
}
