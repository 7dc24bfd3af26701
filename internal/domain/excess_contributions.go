package domain

import "github.com/shopspring/decimal"

// EarlyDistribution is one retirement-account distribution subject to
// Form 5329 Part I's 10% additional tax, net of whatever exception
// amount applies (early-distribution exception codes 01-12).
type EarlyDistribution struct {
	Source          string
	TaxableAmount   decimal.Decimal
	ExceptionAmount decimal.Decimal
}

// ExcessContributionAccount identifies which Form 5329 part an
// ExcessContribution belongs to (II Traditional IRA, III Roth IRA, IV
// Coverdell ESA, V Archer MSA, VI HSA, VII ABLE, IX §529/ABLE-adjacent).
type ExcessContributionAccount string

const (
	ExcessAccountTraditionalIRA ExcessContributionAccount = "traditional_ira"
	ExcessAccountRothIRA        ExcessContributionAccount = "roth_ira"
	ExcessAccountCoverdellESA   ExcessContributionAccount = "coverdell_esa"
	ExcessAccountArcherMSA      ExcessContributionAccount = "archer_msa"
	ExcessAccountHSA            ExcessContributionAccount = "hsa"
	ExcessAccountABLE           ExcessContributionAccount = "able"
	ExcessAccountSection529     ExcessContributionAccount = "section_529"
)

// ExcessContribution is one account's excess-contribution position for a
// Form 5329 excise-tax part: the prior-year excess still outstanding plus
// the current year's contributions, reduced by withdrawals,
// recharacterizations, and amounts applied against the contribution
// limit.
type ExcessContribution struct {
	Account                   ExcessContributionAccount
	PriorYearExcess           decimal.Decimal
	CurrentYearContributions  decimal.Decimal
	ContributionLimit         decimal.Decimal
	WithdrawnByDueDate        decimal.Decimal
	Recharacterized           decimal.Decimal
	AppliedToFollowingYear    decimal.Decimal
}

// RMDShortfall is one account's shortfall between the required minimum
// distribution and what was actually distributed, subject to Form 5329
// Part VIII's excise tax (25%, reduced to 10% if corrected within the
// statutory correction window).
type RMDShortfall struct {
	Account                string
	RequiredAmount         decimal.Decimal
	DistributedAmount      decimal.Decimal
	CorrectedWithinWindow  bool
	ReasonableCauseWaiver  bool
}

// ExcessContributionInput groups Form 5329's inputs by IRS part: early
// distributions, excess contributions, and RMD shortfalls.
type ExcessContributionInput struct {
	EarlyDistributions  []EarlyDistribution
	ExcessContributions []ExcessContribution
	RMDShortfalls       []RMDShortfall
}

// DeepCopy returns a copy sharing no backing arrays with the receiver.
func (in ExcessContributionInput) DeepCopy() ExcessContributionInput {
	cp := in
	cp.EarlyDistributions = append([]EarlyDistribution(nil), in.EarlyDistributions...)
	cp.ExcessContributions = append([]ExcessContribution(nil), in.ExcessContributions...)
	cp.RMDShortfalls = append([]RMDShortfall(nil), in.RMDShortfalls...)
	return cp
}
