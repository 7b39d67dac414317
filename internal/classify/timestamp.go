package classify

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the SMS export's received-at format,
// e.g. "Mon, 04 Mar 2024 14:32:10 IST". The day may have one or two digits.
const TimestampLayout = "Mon, _2 Jan 2006 15:04:05 MST"

const timeOfDayFormat = "15:04:05"

// TimestampPolicy decides what happens to a record whose timestamp does not parse.
type TimestampPolicy string

const (
	// PolicyFail aborts the whole batch on the first bad timestamp.
	PolicyFail TimestampPolicy = "fail"
	// PolicySkip drops the record and counts it.
	PolicySkip TimestampPolicy = "skip"
)

// ParseTimestampPolicy validates a policy name. "" means PolicyFail.
func ParseTimestampPolicy(s string) (TimestampPolicy, error) {
	switch TimestampPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyFail, "":
		return PolicyFail, nil
	case PolicySkip:
		return PolicySkip, nil
	default:
		return "", fmt.Errorf("unknown timestamp policy %q (want fail or skip)", s)
	}
}

// Timestamp is a received-at value decomposed into ledger columns. The fields
// are the wall clock as written; the zone abbreviation is not applied.
type Timestamp struct {
	Day   int
	Month int
	Year  int
	Time  string
}

// ParseTimestamp decomposes s according to TimestampLayout.
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.Parse(TimestampLayout, strings.TrimSpace(s))
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp{
		Day:   t.Day(),
		Month: int(t.Month()),
		Year:  t.Year(),
		Time:  t.Format(timeOfDayFormat),
	}, nil
}

// TimestampError reports an unparsable received-at value.
type TimestampError struct {
	Row   int
	Value string
	Err   error
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("row %d: parsing timestamp %q: %v", e.Row, e.Value, e.Err)
}

func (e *TimestampError) Unwrap() error { return e.Err }
