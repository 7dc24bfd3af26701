// Package form5884 computes the Work Opportunity Tax Credit, grounded on
// spec.md §4.12 (no Python original exists).
package form5884

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxengine/internal/config"
	"github.com/rgehrsitz/taxengine/internal/domain"
)

var (
	hoursNoCredit  = decimal.NewFromInt(120)
	hoursMidTier   = decimal.NewFromInt(400)

	midTierRate = decimal.NewFromFloat(0.25)
	fullRate    = decimal.NewFromFloat(0.40)

	ltfaYear1Rate = decimal.NewFromFloat(0.40)
	ltfaYear2Rate = decimal.NewFromFloat(0.50)
)

// EmployeeResult is one employee's credit computation.
type EmployeeResult struct {
	ID          string
	TargetGroup domain.WOTCTargetGroup
	Rate        decimal.Decimal
	WageLimit   decimal.Decimal
	QualifiedWagesUsed decimal.Decimal
	Credit      decimal.Decimal
}

// Result is Form 5884's full output, aggregated and broken out by
// target group.
type Result struct {
	Employees []EmployeeResult

	TotalCredit        decimal.Decimal
	CreditByTargetGroup map[domain.WOTCTargetGroup]decimal.Decimal
}

// Calculate implements spec.md §4.12.
func Calculate(employees []domain.WOTCEmployee, cfg *config.YearConfig) Result {
	r := Result{CreditByTargetGroup: map[domain.WOTCTargetGroup]decimal.Decimal{}}

	for _, e := range employees {
		er := EmployeeResult{ID: e.ID, TargetGroup: e.TargetGroup}

		if !e.Certified {
			r.Employees = append(r.Employees, er)
			continue
		}

		er.Rate = hoursRate(e.HoursWorked)
		if e.TargetGroup == domain.WOTCLongTermFamilyAssist {
			er.Rate = ltfaRate(e.LTFAYear, er.Rate)
		}

		er.WageLimit = cfg.WOTCWageLimit[e.TargetGroup]
		er.QualifiedWagesUsed = decimal.Min(e.QualifiedWages, er.WageLimit)
		er.Credit = er.QualifiedWagesUsed.Mul(er.Rate)

		r.Employees = append(r.Employees, er)
		r.TotalCredit = r.TotalCredit.Add(er.Credit)
		r.CreditByTargetGroup[e.TargetGroup] = r.CreditByTargetGroup[e.TargetGroup].Add(er.Credit)
	}

	return r
}

// hoursRate implements spec.md §4.12's hours-tiered rate: <120 -> 0%,
// 120-399 -> 25%, >=400 -> 40%.
func hoursRate(hours decimal.Decimal) decimal.Decimal {
	if hours.LessThan(hoursNoCredit) {
		return decimal.Zero
	}
	if hours.LessThan(hoursMidTier) {
		return midTierRate
	}
	return fullRate
}

// ltfaRate overrides the generic hours-tiered rate with the long-term
// family assistance two-year structure, once the hours threshold is met
// at all (an LTFA employee below 120 hours still earns nothing).
func ltfaRate(year int, hoursQualifiedRate decimal.Decimal) decimal.Decimal {
	if hoursQualifiedRate.IsZero() {
		return decimal.Zero
	}
	if year == 2 {
		return ltfaYear2Rate
	}
	return ltfaYear1Rate
}
