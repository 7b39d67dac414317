package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/smsledger/smsledger/internal/model"
)

// JSONParser parses an array of message objects keyed like the CSV columns.
// null or missing fields read as empty strings.
type JSONParser struct {
	Columns Columns
}

// Format returns the parser name.
func (p *JSONParser) Format() string { return "json" }

// Parse decodes a JSON SMS export.
func (p *JSONParser) Parse(r io.Reader) ([]model.Message, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var objs []map[string]any
	if err := dec.Decode(&objs); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding SMS JSON: %w", err)
	}

	if len(objs) == 0 {
		return nil, nil
	}

	msgs := make([]model.Message, 0, len(objs))
	for i, obj := range objs {
		msg := model.Message{
			Text:          lookup(obj, p.Columns.Text),
			SenderAddress: lookup(obj, p.Columns.Sender),
			Row:           i + 1,
		}
		for _, name := range p.Columns.Timestamp {
			if v := lookup(obj, name); v != "" {
				msg.ReceivedAt = v
				break
			}
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// lookup finds key in obj ignoring case and renders scalars as text.
// Numbers keep their source digits.
func lookup(obj map[string]any, key string) string {
	v, ok := obj[key]
	if !ok {
		for k, val := range obj {
			if strings.EqualFold(k, key) {
				v, ok = val, true
				break
			}
		}
	}
	if !ok || v == nil {
		return ""
	}
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
