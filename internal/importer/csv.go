package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/smsledger/smsledger/internal/model"
)

// Columns names the input fields. Header matching ignores case and
// surrounding space; the first Timestamp name present wins.
type Columns struct {
	Text      string
	Sender    string
	Timestamp []string
}

// DefaultColumns matches the SMS backup export layout.
func DefaultColumns() Columns {
	return Columns{
		Text:      "text",
		Sender:    "senderAddress",
		Timestamp: []string{"updateAt", "receivedAt"},
	}
}

// CSVParser parses SMS exports with a header row. Missing text or sender
// columns read as empty strings; a missing timestamp column is an error.
type CSVParser struct {
	Columns Columns
}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads an SMS CSV and returns its Messages in file order.
func (p *CSVParser) Parse(r io.Reader) ([]model.Message, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading SMS CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	idx, err := p.locate(records[0])
	if err != nil {
		return nil, err
	}

	msgs := make([]model.Message, 0, len(records)-1)
	for i, rec := range records[1:] {
		msgs = append(msgs, model.Message{
			Text:          field(rec, idx.text),
			SenderAddress: field(rec, idx.sender),
			ReceivedAt:    field(rec, idx.timestamp),
			Row:           i + 2,
		})
	}
	return msgs, nil
}

type columnIndex struct {
	text, sender, timestamp int
}

func (p *CSVParser) locate(header []string) (columnIndex, error) {
	find := func(name string) int {
		for i, h := range header {
			h = strings.TrimPrefix(h, "\ufeff")
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}

	idx := columnIndex{
		text:      find(p.Columns.Text),
		sender:    find(p.Columns.Sender),
		timestamp: -1,
	}
	for _, name := range p.Columns.Timestamp {
		if i := find(name); i >= 0 {
			idx.timestamp = i
			break
		}
	}
	if idx.timestamp < 0 {
		return columnIndex{}, fmt.Errorf("%w: timestamp (%s)", ErrMissingColumn, strings.Join(p.Columns.Timestamp, " or "))
	}
	return idx, nil
}

// field returns rec[i], or "" for an absent column or short row.
func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}
