package sde

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

const maxNameLength = 50

var nameRe = regexp.MustCompile(`^[A-Za-z0-9 '\-]+$`)

// errSkip rejects a row without aborting the read.
var errSkip = errors.New("skip row")

// csvRow is a record keyed by the file's header line.
type csvRow map[string]string

func (r csvRow) get(key string) string { return strings.TrimSpace(r[key]) }

func (r csvRow) int(key string) int64 {
	v, err := strconv.ParseInt(r.get(key), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func (r csvRow) float(key string) (float64, bool) {
	v, err := strconv.ParseFloat(r.get(key), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// intInRange returns the column as an int32 when it lies within [lo, hi].
func (r csvRow) intInRange(key string, lo, hi int64) (int32, bool) {
	v := r.int(key)
	if v < lo || v > hi {
		return 0, false
	}
	return int32(v), true
}

// security reads a security status; values outside [-1, 1] or unparsable read as 0.
func (r csvRow) security(key string) float64 {
	v, ok := r.float(key)
	if !ok || v < -1 || v > 1 {
		return 0
	}
	return v
}

// validName trims s and reports whether it looks like an EVE system or region name.
func validName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxNameLength || !nameRe.MatchString(s) {
		return "", false
	}
	return s, true
}

// readCSV calls fn for every data row of a headed CSV file. Rows fn rejects
// with an error are skipped, like malformed lines in the JSONL reader.
func readCSV(path string, fn func(csvRow) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("%s: read header: %w", path, err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
	}

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				continue
			}
			return err
		}
		row := make(csvRow, len(cols))
		for i, c := range cols {
			if i < len(rec) {
				row[c] = rec[i]
			}
		}
		if err := fn(row); err != nil {
			continue
		}
	}
}

// writeCSV writes header and rows to path, replacing any existing file.
func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
