package domain

import "github.com/shopspring/decimal"

// WOTCTargetGroup is one of the Work Opportunity Tax Credit's statutory
// target groups, each carrying its own wage limit (§4.12).
type WOTCTargetGroup string

const (
	WOTCStandard              WOTCTargetGroup = "standard"
	WOTCSummerYouth           WOTCTargetGroup = "summer_youth"
	WOTCDisabledVeteran       WOTCTargetGroup = "disabled_veteran"
	WOTCDisabledUnemployedVet WOTCTargetGroup = "disabled_unemployed_veteran"
	WOTCLongTermFamilyAssist  WOTCTargetGroup = "long_term_family_assistance"
)

// WOTCEmployee is one certified new hire's hours and wages for Form 5884.
// LTFAYear is only meaningful when TargetGroup is
// WOTCLongTermFamilyAssist (1 or 2, the two-year structure).
type WOTCEmployee struct {
	ID            string
	TargetGroup   WOTCTargetGroup
	Certified     bool // Form 8850 certification on file
	HoursWorked   decimal.Decimal
	QualifiedWages decimal.Decimal
	LTFAYear      int
}

// Credits is the return's credit collection. Nonrefundable/Refundable
// hold named amounts the engine assembles from each form's output
// (keyed by form/credit name); WOTCEmployees is the raw input Form 5884
// computes from.
type Credits struct {
	WOTCEmployees []WOTCEmployee
	Nonrefundable map[string]decimal.Decimal
	Refundable    map[string]decimal.Decimal
}
