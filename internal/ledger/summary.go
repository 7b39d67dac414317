package ledger

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/smsledger/smsledger/internal/model"
)

// Totals accumulates debits and credits for one group of records.
type Totals struct {
	Key         string
	Count       int
	Debited     decimal.Decimal
	Credited    decimal.Decimal
	SpamCredits decimal.Decimal // credits not counted as legitimate
}

// Net returns legitimate credits minus debits.
func (t Totals) Net() decimal.Decimal {
	return t.Credited.Sub(t.Debited)
}

func (t *Totals) add(txn model.Transaction) {
	t.Count++
	t.Debited = t.Debited.Add(txn.Debited)
	if txn.Type == model.Credited && !txn.LegitimateCredit {
		t.SpamCredits = t.SpamCredits.Add(txn.Credited)
		return
	}
	t.Credited = t.Credited.Add(txn.Credited)
}

// Summary groups a ledger by month and by platform.
type Summary struct {
	Overall    Totals
	ByMonth    []Totals // sorted by YYYY-MM
	ByPlatform []Totals // sorted by debited desc, then name
}

// Summarize computes a Summary. Records with no platform are grouped under "(none)".
func Summarize(txns []model.Transaction) Summary {
	s := Summary{Overall: Totals{Key: "all"}}
	months := make(map[string]*Totals)
	platforms := make(map[string]*Totals)

	for _, txn := range txns {
		s.Overall.add(txn)
		group(months, txn.YearMonth()).add(txn)

		p := txn.Platform
		if p == "" {
			p = "(none)"
		}
		group(platforms, p).add(txn)
	}

	s.ByMonth = flatten(months)
	sort.Slice(s.ByMonth, func(i, j int) bool { return s.ByMonth[i].Key < s.ByMonth[j].Key })

	s.ByPlatform = flatten(platforms)
	sort.Slice(s.ByPlatform, func(i, j int) bool {
		a, b := s.ByPlatform[i], s.ByPlatform[j]
		if c := a.Debited.Cmp(b.Debited); c != 0 {
			return c > 0
		}
		return a.Key < b.Key
	})
	return s
}

func group(m map[string]*Totals, key string) *Totals {
	t, ok := m[key]
	if !ok {
		t = &Totals{Key: key}
		m[key] = t
	}
	return t
}

func flatten(m map[string]*Totals) []Totals {
	out := make([]Totals, 0, len(m))
	for _, t := range m {
		out = append(out, *t)
	}
	return out
}

// WriteSummary renders s as aligned text tables.
func WriteSummary(w io.Writer, s Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	section := func(title string, rows []Totals) {
		fmt.Fprintf(tw, "%s\tcount\tdebited\tcredited\tspam credits\tnet\t\n", title)
		for _, t := range rows {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t\n",
				t.Key, t.Count, t.Debited.StringFixed(2), t.Credited.StringFixed(2),
				t.SpamCredits.StringFixed(2), t.Net().StringFixed(2))
		}
		fmt.Fprintln(tw, "\t\t\t\t\t\t")
	}

	section("month", s.ByMonth)
	section("platform", s.ByPlatform)
	section("total", []Totals{s.Overall})
	return tw.Flush()
}
