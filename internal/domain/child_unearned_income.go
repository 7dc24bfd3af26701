package domain

import "github.com/shopspring/decimal"

// QualifyingChildIncome is one child's Form 8814 reporting package: the
// parent may elect to include the child's interest/dividend/capital-gain
// distribution income on the parent's own return instead of the child
// filing separately.
type QualifyingChildIncome struct {
	ChildName            string
	Age                  int
	FullTimeStudent      bool
	TaxableInterest      decimal.Decimal
	OrdinaryDividends    decimal.Decimal
	QualifiedDividends   decimal.Decimal
	CapitalGainDistributions decimal.Decimal
	AlaskaPFD            decimal.Decimal
	FederalTaxWithheld   decimal.Decimal
}

// GrossIncome sums the income types eligible for Form 8814 reporting.
func (c QualifyingChildIncome) GrossIncome() decimal.Decimal {
	return c.TaxableInterest.
		Add(c.OrdinaryDividends).
		Add(c.CapitalGainDistributions).
		Add(c.AlaskaPFD)
}

// ChildUnearnedIncomeInput is the set of children a parent elects to
// report under Form 8814.
type ChildUnearnedIncomeInput struct {
	Children []QualifyingChildIncome
}

// DeepCopy returns a copy sharing no backing array with the receiver.
func (in ChildUnearnedIncomeInput) DeepCopy() ChildUnearnedIncomeInput {
	cp := in
	cp.Children = append([]QualifyingChildIncome(nil), in.Children...)
	return cp
}
