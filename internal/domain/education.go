package domain

import "github.com/shopspring/decimal"

// EducationStudent is one Form 8863 student record: qualified expenses
// plus the eligibility facts that route the claim to the American
// Opportunity Credit, the Lifetime Learning Credit, or neither.
type EducationStudent struct {
	Name                  string
	QualifiedExpenses     decimal.Decimal
	HalfTimeOrMore        bool
	DegreeSeeking         bool
	WithinFirstFourYears  bool
	PriorAOTCClaimYears   int // years AOTC already claimed for this student
	FelonyDrugConviction  bool
	ClaimingAOTC          bool // false routes this student's expenses to the LLC pool instead
}

// AOTCEligible reports whether this student meets every American
// Opportunity Credit eligibility test other than the income phaseout.
func (s EducationStudent) AOTCEligible() bool {
	return s.ClaimingAOTC &&
		s.HalfTimeOrMore &&
		s.DegreeSeeking &&
		s.WithinFirstFourYears &&
		s.PriorAOTCClaimYears < 4 &&
		!s.FelonyDrugConviction
}

// EducationCreditsInput groups every student a return claims education
// credits for, plus the MAGI the phaseouts read.
type EducationCreditsInput struct {
	Students []EducationStudent
	MAGI     decimal.Decimal
}

// DeepCopy returns a copy sharing no backing array with the receiver.
func (in EducationCreditsInput) DeepCopy() EducationCreditsInput {
	cp := in
	cp.Students = append([]EducationStudent(nil), in.Students...)
	return cp
}
