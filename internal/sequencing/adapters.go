package sequencing

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxengine/internal/domain"
)

// ftcRecord adapts domain.FTCCarryover to Record; FTC carries a 10-year
// carryforward window per spec.md §4.4.
type ftcRecord struct {
	c domain.FTCCarryover
}

func (r ftcRecord) OriginYear() int              { return r.c.OriginYear }
func (r ftcRecord) Remaining() decimal.Decimal   { return r.c.Remaining() }
func (r ftcRecord) Expired(asOfYear int) bool    { return r.c.Expired(asOfYear, 10) }

// WrapFTCCarryovers adapts a slice of domain.FTCCarryover to []Record.
func WrapFTCCarryovers(cs []domain.FTCCarryover) []Record {
	out := make([]Record, len(cs))
	for i, c := range cs {
		out[i] = ftcRecord{c: c}
	}
	return out
}

// ApplyFTC folds a Consume() pass back onto a copy of the original slice.
func ApplyFTC(cs []domain.FTCCarryover, consumptions []Consumption) []domain.FTCCarryover {
	out := append([]domain.FTCCarryover(nil), cs...)
	for _, c := range consumptions {
		out[c.Index].UsedAmount = out[c.Index].UsedAmount.Add(c.Used)
	}
	return out
}

// mtcRecord adapts domain.MTCCarryforward to Record; MTC never expires.
type mtcRecord struct {
	c domain.MTCCarryforward
}

func (r mtcRecord) OriginYear() int            { return r.c.OriginYear }
func (r mtcRecord) Remaining() decimal.Decimal { return r.c.Remaining() }
func (r mtcRecord) Expired(int) bool           { return false }

// WrapMTCCarryforwards adapts a slice of domain.MTCCarryforward to []Record.
func WrapMTCCarryforwards(cs []domain.MTCCarryforward) []Record {
	out := make([]Record, len(cs))
	for i, c := range cs {
		out[i] = mtcRecord{c: c}
	}
	return out
}

// ApplyMTC folds a Consume() pass back onto a copy of the original slice.
func ApplyMTC(cs []domain.MTCCarryforward, consumptions []Consumption) []domain.MTCCarryforward {
	out := append([]domain.MTCCarryforward(nil), cs...)
	for _, c := range consumptions {
		out[c.Index].UsedAmount = out[c.Index].UsedAmount.Add(c.Used)
	}
	return out
}
