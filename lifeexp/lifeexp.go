// Package lifeexp reads life expectancy tables.
//
// A table is a text file of whitespace separated rows, each holding an
// integer index followed by a life expectancy in years:
//
//	1 72.5
//	2 68.9
//
// Exactly Rows rows are consumed. Blank lines are skipped and anything after
// the last consumed row is ignored.
package lifeexp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/exp/slog"
)

// Rows is the number of rows a table must provide.
const Rows = 20

// DaysPerYear converts the years of a table into days.
const DaysPerYear = 365

// FileOpenError reports a table that could not be opened.
type FileOpenError struct {
	Path string
	Err  error
}

func (e *FileOpenError) Error() string {
	return fmt.Sprintf("could not open %s: %v", e.Path, e.Err)
}

func (e *FileOpenError) Unwrap() error { return e.Err }

// MalformedInputError reports a table that could not be parsed or that has
// fewer than Rows rows.
type MalformedInputError struct {
	Path   string
	Line   int // 0 when the problem is not tied to a line
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Load reads the table in the named file and returns its life expectancies
// in days.
func Load(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileOpenError{Path: path, Err: err}
	}
	defer f.Close()

	slog.Info("reading life expectancy table", "filename", path)
	return Parse(f, path)
}

// Parse reads a table from r and returns its life expectancies in days.
// name identifies the table in errors.
func Parse(r io.Reader, name string) ([]float64, error) {
	days := make([]float64, 0, Rows)

	scanner := bufio.NewScanner(r)
	line := 0
	for len(days) < Rows && scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, &MalformedInputError{Path: name, Line: line, Reason: fmt.Sprintf("expected index and years, found %d fields", len(fields))}
		}

		if _, err := strconv.Atoi(fields[0]); err != nil {
			return nil, &MalformedInputError{Path: name, Line: line, Reason: fmt.Sprintf("index %q is not an integer", fields[0])}
		}
		years, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			var nerr *strconv.NumError
			if errors.As(err, &nerr) {
				err = nerr.Err
			}
			return nil, &MalformedInputError{Path: name, Line: line, Reason: fmt.Sprintf("years %q: %v", fields[1], err)}
		}
		if math.IsNaN(years) || math.IsInf(years, 0) || years <= 0 {
			return nil, &MalformedInputError{Path: name, Line: line, Reason: fmt.Sprintf("years must be a positive number, got %s", fields[1])}
		}

		slog.Debug("life expectancy row", "line", line, "years", years)
		days = append(days, years*DaysPerYear)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	if len(days) < Rows {
		return nil, &MalformedInputError{Path: name, Reason: fmt.Sprintf("found %d rows, need %d", len(days), Rows)}
	}
	return days, nil
}
