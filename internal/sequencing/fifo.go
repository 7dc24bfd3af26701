// Package sequencing implements the FIFO-by-origin-year consumption
// rule spec.md §9 specifies for carryover pools: ordered-by-origin_year
// consumption until either the pool or the absorbing capacity is
// exhausted. The iteration shape is left to the implementer; this package
// gives the FTC carryovers and MTC carryforwards one shared shape instead
// of each form re-deriving it. Suspended passive losses and IRA basis do
// not go through it.
package sequencing

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Record is the minimal shape every FIFO-consumed carryover shares:
// an origin year, a remaining balance, and (for pools with a
// carryforward window, like FTC) an expiration check. Pools with no
// expiry, like MTC, report false from Expired always.
type Record interface {
	OriginYear() int
	Remaining() decimal.Decimal
	Expired(asOfYear int) bool
}

// Consumption is one record's share of a FIFO consumption pass.
type Consumption struct {
	Index  int // position in the input slice, for the caller to map back
	Used   decimal.Decimal
	Expired decimal.Decimal
}

// Consume applies available against records ordered by origin year
// ascending, skipping (and reporting) any record that has expired as of
// asOfYear. It never mutates records; the caller applies Consumption
// back onto its own concrete type.
func Consume(records []Record, available decimal.Decimal, asOfYear int) []Consumption {
	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return records[order[i]].OriginYear() < records[order[j]].OriginYear()
	})

	out := make([]Consumption, 0, len(records))
	remaining := available

	for _, idx := range order {
		rec := records[idx]
		rem := rec.Remaining()
		if rem.IsZero() {
			continue
		}

		c := Consumption{Index: idx}
		if rec.Expired(asOfYear) {
			c.Expired = rem
			out = append(out, c)
			continue
		}

		if remaining.GreaterThan(decimal.Zero) {
			take := decimal.Min(rem, remaining)
			c.Used = take
			remaining = remaining.Sub(take)
		}
		if c.Used.GreaterThan(decimal.Zero) || c.Expired.GreaterThan(decimal.Zero) {
			out = append(out, c)
		}
	}

	return out
}
