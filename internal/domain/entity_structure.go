package domain

import "github.com/shopspring/decimal"

// EntityType is a candidate business structure the entity-structure
// optimizer compares.
type EntityType string

const (
	EntitySoleProprietorship EntityType = "sole_proprietorship"
	EntitySingleMemberLLC    EntityType = "single_member_llc"
	EntitySCorporation       EntityType = "s_corporation"
)

// RiskTier is the entity optimizer's qualitative assessment of how
// defensible a recommended S-corp salary is on audit. It is not a legal
// safe harbor — callers must surface it alongside the methodology
// string, per spec §9.
type RiskTier string

const (
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

// EntityStructureInput is the entity-structure optimizer's request: a
// business's net and gross figures plus the taxpayer context the
// comparison needs (filing status drives bracket and SE-tax math, other
// income affects the marginal rate each structure is compared at).
type EntityStructureInput struct {
	FilingStatus   FilingStatus
	State          string
	OtherIncome    decimal.Decimal
	NetIncome      decimal.Decimal
	GrossRevenue   decimal.Decimal
	BusinessExpenses decimal.Decimal
}
