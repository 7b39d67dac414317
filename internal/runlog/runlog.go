// Package runlog keeps a CSV history of classification runs.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/smsledger/smsledger/internal/classify"
)

// Entry is one row in the run log.
type Entry struct {
	Timestamp    time.Time
	Input        string
	Output       string
	Read         int
	Kept         int
	Unclassified int
	NoAmount     int
	BadTimestamp int
}

// Header is the CSV header for run-log.csv.
const Header = "timestamp,input,output,read,kept,unclassified,no_amount,bad_timestamp"

const (
	numFields       = 8
	logDir          = "logs"
	logFile         = "logs/run-log.csv"
	colTimestamp    = 0
	colInput        = 1
	colOutput       = 2
	colRead         = 3
	colKept         = 4
	colUnclassified = 5
	colNoAmount     = 6
	colBadTimestamp = 7
)

// NewEntry records one run's counts.
func NewEntry(at time.Time, input, output string, s classify.Stats) Entry {
	return Entry{
		Timestamp:    at,
		Input:        input,
		Output:       output,
		Read:         s.Read,
		Kept:         s.Kept,
		Unclassified: s.Unclassified,
		NoAmount:     s.NoAmount,
		BadTimestamp: s.BadTimestamp,
	}
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colInput] = e.Input
	row[colOutput] = e.Output
	row[colRead] = strconv.Itoa(e.Read)
	row[colKept] = strconv.Itoa(e.Kept)
	row[colUnclassified] = strconv.Itoa(e.Unclassified)
	row[colNoAmount] = strconv.Itoa(e.NoAmount)
	row[colBadTimestamp] = strconv.Itoa(e.BadTimestamp)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	var counts [5]int
	for i, col := range []int{colRead, colKept, colUnclassified, colNoAmount, colBadTimestamp} {
		n, err := strconv.Atoi(record[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing count column %d: %w", col, err)
		}
		counts[i] = n
	}

	return Entry{
		Timestamp:    ts,
		Input:        record[colInput],
		Output:       record[colOutput],
		Read:         counts[0],
		Kept:         counts[1],
		Unclassified: counts[2],
		NoAmount:     counts[3],
		BadTimestamp: counts[4],
	}, nil
}

// Append writes entries to <dir>/logs/run-log.csv, creating the file and header if needed.
func Append(dir string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Join(dir, logDir), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(dir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <dir>/logs/run-log.csv.
// Returns an empty slice if the file does not exist.
func Read(dir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
