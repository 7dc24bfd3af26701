package domain

import "github.com/shopspring/decimal"

// CarryoverState is the prior-year state a calculation request carries
// alongside a TaxReturn (§4.14): suspended passive losses per activity,
// FTC carryovers per basket, MTC carryforwards, IRA basis, and the
// capital-loss/NOL carryovers Schedule 1/D read. The pipeline never
// mutates a caller's CarryoverState; Calculate returns an updated copy.
type CarryoverState struct {
	SuspendedPAL         map[string]decimal.Decimal // keyed by PassiveActivity.ID
	FTCCarryovers        []FTCCarryover
	MTCCarryforwards     []MTCCarryforward
	PriorYearAMT         *PriorYearAMTDetail
	IRABasis             decimal.Decimal
	CapitalLossCarryover decimal.Decimal
	NOLCarryover         decimal.Decimal
}

// DeepCopy returns a copy that shares no mutable state with the receiver.
func (c CarryoverState) DeepCopy() CarryoverState {
	cp := c
	if c.SuspendedPAL != nil {
		cp.SuspendedPAL = make(map[string]decimal.Decimal, len(c.SuspendedPAL))
		for k, v := range c.SuspendedPAL {
			cp.SuspendedPAL[k] = v
		}
	}
	cp.FTCCarryovers = append([]FTCCarryover(nil), c.FTCCarryovers...)
	cp.MTCCarryforwards = append([]MTCCarryforward(nil), c.MTCCarryforwards...)
	if c.PriorYearAMT != nil {
		detail := *c.PriorYearAMT
		cp.PriorYearAMT = &detail
	}
	return cp
}
