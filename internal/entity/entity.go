// Package entity compares sole proprietorship, single-member LLC, and
// S-corporation treatment of the same business income, grounded on
// original_source/tests/test_entity_optimizer.py (no model file survives
// in original_source/, only its test suite) and spec.md §4.13. It reuses
// internal/calculation's SE-tax and bracket-walk engines rather than
// re-deriving them, and adapts the teacher's breakeven/solver.go bisection
// idiom (internal/breakeven/solver.go's binary-search-over-a-transform
// loop) to a one-dimensional search over gross revenue.
package entity

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxengine/internal/calculation"
	"github.com/rgehrsitz/taxengine/internal/config"
	"github.com/rgehrsitz/taxengine/internal/domain"
	"github.com/rgehrsitz/taxengine/internal/money"
)

var (
	lowSalaryRatio  = decimal.NewFromFloat(0.75)
	floorSalaryRatio = decimal.NewFromFloat(0.50)
	salaryRatioIncomeDivisor = decimal.NewFromInt(1000000) // $1M of net income moves the ratio by 1.00
	salaryCapOfNet  = decimal.NewFromFloat(0.85)

	llcFormationCost        = decimal.NewFromInt(500)
	llcAnnualCompliance     = decimal.NewFromInt(300)
	scorpFormationCost      = decimal.NewFromInt(800)
	scorpAnnualCompliance   = decimal.NewFromInt(1500)
	scorpPayrollServiceCost = decimal.NewFromInt(600)

	riskLowThreshold    = decimal.NewFromFloat(0.60)
	riskMediumThreshold = decimal.NewFromFloat(0.45)
)

// SalaryAnalysis is Form-reasonable-compensation's recommended S-corp
// salary, with the range and IRS-audit risk tier a preparer would want
// alongside the number.
type SalaryAnalysis struct {
	RecommendedSalary decimal.Decimal
	SalaryRangeLow    decimal.Decimal
	SalaryRangeHigh   decimal.Decimal
	IRSRiskLevel      domain.RiskTier
	Methodology       string
	FactorsConsidered []string
}

// ReasonableSalary computes a declining-percentage-of-net-income salary
// recommendation (65-75% at low income down toward a 50% floor at high
// income, per spec.md §4.13), unless the caller supplies a fixed salary.
func ReasonableSalary(netIncome, grossRevenue decimal.Decimal, fixedSalary *decimal.Decimal) SalaryAnalysis {
	factors := []string{
		"net business income level",
		"gross revenue as a capital-vs-labor-intensity proxy",
		"IRS reasonable-compensation factors: training/experience, duties and responsibilities, time and effort devoted, comparable-business compensation data",
	}

	if fixedSalary != nil {
		salary := *fixedSalary
		ratio := decimal.Zero
		if netIncome.GreaterThan(decimal.Zero) {
			ratio = salary.Div(netIncome)
		}
		return SalaryAnalysis{
			RecommendedSalary: salary,
			SalaryRangeLow:    salary,
			SalaryRangeHigh:   salary,
			IRSRiskLevel:      riskTier(ratio),
			Methodology:       "User-specified salary accepted as-is; IRS risk assessed against the implied salary-to-net-income ratio.",
			FactorsConsidered: factors,
		}
	}

	if netIncome.Sign() <= 0 {
		return SalaryAnalysis{
			Methodology:       "No net business income; no salary is supportable.",
			FactorsConsidered: factors,
		}
	}

	ratio := lowSalaryRatio.Sub(netIncome.Div(salaryRatioIncomeDivisor))
	if ratio.LessThan(floorSalaryRatio) {
		ratio = floorSalaryRatio
	}

	salary := netIncome.Mul(ratio)
	cap := netIncome.Mul(salaryCapOfNet)
	if salary.GreaterThan(cap) {
		salary = cap
	}

	return SalaryAnalysis{
		RecommendedSalary: money.Round2(salary),
		SalaryRangeLow:    money.Round2(salary.Mul(decimal.NewFromFloat(0.85))),
		SalaryRangeHigh:   money.Round2(salary.Mul(decimal.NewFromFloat(1.15))),
		IRSRiskLevel:      riskTier(ratio),
		Methodology:       "Declining percentage-of-net-income heuristic: 75% at low income, floored at 50% as income grows, capped at 85% of net income.",
		FactorsConsidered: factors,
	}
}

func riskTier(salaryToNetRatio decimal.Decimal) domain.RiskTier {
	switch {
	case salaryToNetRatio.GreaterThanOrEqual(riskLowThreshold):
		return domain.RiskLow
	case salaryToNetRatio.GreaterThanOrEqual(riskMediumThreshold):
		return domain.RiskMedium
	default:
		return domain.RiskHigh
	}
}

// Analysis is one entity type's full tax-and-compliance picture for the
// given revenue and expenses.
type Analysis struct {
	EntityType domain.EntityType

	GrossRevenue     decimal.Decimal
	BusinessExpenses decimal.Decimal
	NetBusinessIncome decimal.Decimal

	SelfEmploymentTax decimal.Decimal // sole prop / LLC only
	SETaxDeduction    decimal.Decimal

	OwnerSalary   decimal.Decimal // S-corp only
	PayrollTaxes  decimal.Decimal // S-corp only
	K1Distribution decimal.Decimal // S-corp only

	QBIDeduction decimal.Decimal

	TaxableIncome   decimal.Decimal
	IncomeTax       decimal.Decimal
	TotalBusinessTax decimal.Decimal
	EffectiveTaxRate decimal.Decimal // percent, e.g. 18.4

	FormationCost         decimal.Decimal
	AnnualComplianceCost  decimal.Decimal
	PayrollServiceCost    decimal.Decimal

	RecommendationNotes []string
}

// Input is the entity-structure optimizer's self-contained request.
type Input struct {
	FilingStatus     domain.FilingStatus
	State            string
	OtherIncome      decimal.Decimal
	GrossRevenue     decimal.Decimal
	BusinessExpenses decimal.Decimal

	// OwnerSalary overrides the reasonable-salary heuristic for the
	// S-corp analysis when set.
	OwnerSalary *decimal.Decimal

	CurrentEntity *domain.EntityType
}

// ComparisonResult is the full three-way comparison and recommendation.
type ComparisonResult struct {
	Analyses map[domain.EntityType]Analysis

	SalaryAnalysis *SalaryAnalysis

	RecommendedEntity   domain.EntityType
	RecommendationReason string
	ConfidenceScore      decimal.Decimal // 0-100

	CurrentEntity     *domain.EntityType
	SavingsVsCurrent  decimal.Decimal

	MaxAnnualSavings decimal.Decimal
	FiveYearSavings  decimal.Decimal
	BreakevenRevenue decimal.Decimal

	Warnings       []string
	Considerations []string
}

// Compare runs the sole-prop, LLC, and S-corp analyses, picks a
// recommendation, and locates the S-corp breakeven revenue, per
// spec.md §4.13.
func Compare(in Input, cfg *config.YearConfig) ComparisonResult {
	r := ComparisonResult{Analyses: map[domain.EntityType]Analysis{}}

	soleProp := analyzeSoleProp(in, cfg)
	llc := analyzeLLC(in, cfg)
	scorp, salary := analyzeSCorp(in, cfg)
	r.SalaryAnalysis = &salary

	r.Analyses[domain.EntitySoleProprietorship] = soleProp
	r.Analyses[domain.EntitySingleMemberLLC] = llc
	r.Analyses[domain.EntitySCorporation] = scorp

	netIncome := money.ClampNonNegative(in.GrossRevenue.Sub(in.BusinessExpenses))

	if netIncome.IsZero() {
		r.RecommendedEntity = domain.EntitySoleProprietorship
		r.RecommendationReason = "No net business income; entity choice has no profitability impact this year."
		r.ConfidenceScore = decimal.NewFromInt(100)
	} else {
		best := soleProp
		r.RecommendedEntity = domain.EntitySoleProprietorship
		for _, candidate := range []Analysis{llc, scorp} {
			if candidate.TotalBusinessTax.LessThan(best.TotalBusinessTax) {
				best = candidate
				r.RecommendedEntity = candidate.EntityType
			}
		}

		worst := soleProp.TotalBusinessTax
		for _, a := range []Analysis{llc, scorp} {
			if a.TotalBusinessTax.GreaterThan(worst) {
				worst = a.TotalBusinessTax
			}
		}
		r.MaxAnnualSavings = money.ClampNonNegative(worst.Sub(best.TotalBusinessTax))

		r.RecommendationReason = recommendationReason(r.RecommendedEntity, r.MaxAnnualSavings, netIncome)
		r.ConfidenceScore = confidenceScore(soleProp, llc, scorp, netIncome)
	}

	if r.RecommendedEntity == domain.EntitySCorporation {
		r.FiveYearSavings = r.MaxAnnualSavings.Mul(decimal.NewFromInt(5))
	}

	r.BreakevenRevenue = breakevenRevenue(in, cfg)

	if in.CurrentEntity != nil {
		r.CurrentEntity = in.CurrentEntity
		current := r.Analyses[*in.CurrentEntity]
		recommended := r.Analyses[r.RecommendedEntity]
		r.SavingsVsCurrent = money.ClampNonNegative(current.TotalBusinessTax.Sub(recommended.TotalBusinessTax))
	}

	r.Warnings = warnings(r.RecommendedEntity, netIncome)
	r.Considerations = considerations(in.State)

	return r
}

func analyzeSoleProp(in Input, cfg *config.YearConfig) Analysis {
	return analyzeSelfEmployed(domain.EntitySoleProprietorship, in, cfg, decimal.Zero, decimal.Zero)
}

func analyzeLLC(in Input, cfg *config.YearConfig) Analysis {
	return analyzeSelfEmployed(domain.EntitySingleMemberLLC, in, cfg, llcFormationCost, llcAnnualCompliance)
}

// analyzeSelfEmployed is shared by sole prop and single-member LLC: both
// are disregarded entities for federal tax purposes and differ only in
// state-law liability protection and compliance cost, per spec.md §4.13.
func analyzeSelfEmployed(entityType domain.EntityType, in Input, cfg *config.YearConfig, formationCost, annualCompliance decimal.Decimal) Analysis {
	a := Analysis{
		EntityType:       entityType,
		GrossRevenue:     in.GrossRevenue,
		BusinessExpenses: in.BusinessExpenses,
		FormationCost:    formationCost,
		AnnualComplianceCost: annualCompliance,
	}
	a.NetBusinessIncome = money.ClampNonNegative(in.GrossRevenue.Sub(in.BusinessExpenses))

	se := calculation.NewSECalculator(cfg).Calculate(a.NetBusinessIncome, in.FilingStatus, decimal.Zero)
	a.SelfEmploymentTax = se.TotalTax
	a.SETaxDeduction = se.Deduction
	a.QBIDeduction = calculation.QBIDeduction(a.NetBusinessIncome, a.SETaxDeduction)

	a.TaxableIncome = calculation.TaxableIncome(
		in.OtherIncome.Add(a.NetBusinessIncome).Sub(a.SETaxDeduction).Sub(a.QBIDeduction),
		cfg.StandardDeduction[in.FilingStatus],
	)
	a.IncomeTax = money.Round2(calculation.NewFederalTaxCalculator(cfg).Calculate(a.TaxableIncome, in.FilingStatus))
	a.TotalBusinessTax = a.IncomeTax.Add(a.SelfEmploymentTax).Add(a.AnnualComplianceCost)
	a.EffectiveTaxRate = effectiveRate(a.TotalBusinessTax, a.NetBusinessIncome)

	a.RecommendationNotes = []string{
		"Self-employment tax applies to the full net business income (no salary/distribution split).",
	}
	return a
}

func analyzeSCorp(in Input, cfg *config.YearConfig) (Analysis, SalaryAnalysis) {
	a := Analysis{
		EntityType:            domain.EntitySCorporation,
		GrossRevenue:          in.GrossRevenue,
		BusinessExpenses:      in.BusinessExpenses,
		FormationCost:         scorpFormationCost,
		AnnualComplianceCost:  scorpAnnualCompliance,
		PayrollServiceCost:    scorpPayrollServiceCost,
	}
	a.NetBusinessIncome = money.ClampNonNegative(in.GrossRevenue.Sub(in.BusinessExpenses))

	salary := ReasonableSalary(a.NetBusinessIncome, in.GrossRevenue, in.OwnerSalary)
	a.OwnerSalary = salary.RecommendedSalary
	if a.OwnerSalary.GreaterThan(a.NetBusinessIncome) {
		a.OwnerSalary = a.NetBusinessIncome
	}

	employerPayroll := payrollTax(a.OwnerSalary, cfg)
	employeePayroll := payrollTax(a.OwnerSalary, cfg)
	a.PayrollTaxes = employerPayroll.Add(employeePayroll)

	a.K1Distribution = money.ClampNonNegative(a.NetBusinessIncome.Sub(a.OwnerSalary).Sub(employerPayroll))
	a.QBIDeduction = a.K1Distribution.Mul(decimal.NewFromFloat(0.20))

	a.TaxableIncome = calculation.TaxableIncome(
		in.OtherIncome.Add(a.OwnerSalary).Add(a.K1Distribution).Sub(a.QBIDeduction),
		cfg.StandardDeduction[in.FilingStatus],
	)
	a.IncomeTax = money.Round2(calculation.NewFederalTaxCalculator(cfg).Calculate(a.TaxableIncome, in.FilingStatus))
	a.TotalBusinessTax = a.IncomeTax.Add(a.PayrollTaxes).Add(a.AnnualComplianceCost).Add(a.PayrollServiceCost)
	a.EffectiveTaxRate = effectiveRate(a.TotalBusinessTax, a.NetBusinessIncome)

	a.RecommendationNotes = []string{
		"Owner salary of " + a.OwnerSalary.StringFixed(0) + " is subject to payroll tax; the K-1 distribution is not.",
		"Compliance overhead (payroll service, additional return) offsets part of the self-employment tax savings.",
	}
	return a, salary
}

// payrollTax is one side's (employer's or employee's) FICA on wages:
// half of cfg.FICA's combined self-employment rate, since that combined
// rate is itself the sum of the employer and employee shares. Social
// Security is capped at the wage base, Medicare is uncapped. The
// employee-side additional-Medicare surtax is out of scope here (it nets
// out against the owner's personal return exactly as sole-prop SE tax's
// additional-Medicare component would).
func payrollTax(salary decimal.Decimal, cfg *config.YearConfig) decimal.Decimal {
	ssTaxable := decimal.Min(salary, cfg.FICA.SSWageBase)
	ssTax := ssTaxable.Mul(cfg.FICA.SSRate).Div(decimal.NewFromInt(2))
	medicareTax := salary.Mul(cfg.FICA.MedicareRate).Div(decimal.NewFromInt(2))
	return ssTax.Add(medicareTax)
}

func effectiveRate(totalTax, netIncome decimal.Decimal) decimal.Decimal {
	if netIncome.Sign() <= 0 {
		return decimal.Zero
	}
	return money.RoundPercent(totalTax.Div(netIncome).Mul(decimal.NewFromInt(100)))
}

func recommendationReason(entityType domain.EntityType, savings, netIncome decimal.Decimal) string {
	if netIncome.Sign() <= 0 {
		return "No net business income; profitability is the limiting factor, not entity structure."
	}
	switch entityType {
	case domain.EntitySCorporation:
		return "S-corporation salary/distribution split reduces total self-employment-equivalent tax by " + savings.StringFixed(0) + " relative to the next-best structure."
	default:
		return "Sole proprietorship/LLC tax treatment is lowest-cost at this income level; S-corp payroll and compliance overhead would exceed its self-employment-tax savings."
	}
}

// confidenceScore widens with both the relative savings spread and net
// income level (a clearer winner and a larger dollar base both raise
// confidence), per spec.md §4.13.
func confidenceScore(soleProp, llc, scorp Analysis, netIncome decimal.Decimal) decimal.Decimal {
	best := soleProp.TotalBusinessTax
	worst := soleProp.TotalBusinessTax
	for _, a := range []Analysis{llc, scorp} {
		if a.TotalBusinessTax.LessThan(best) {
			best = a.TotalBusinessTax
		}
		if a.TotalBusinessTax.GreaterThan(worst) {
			worst = a.TotalBusinessTax
		}
	}
	spread := money.ClampNonNegative(worst.Sub(best))

	spreadScore := decimal.Zero
	if netIncome.GreaterThan(decimal.Zero) {
		spreadScore = decimal.Min(spread.Div(netIncome).Mul(decimal.NewFromInt(300)), decimal.NewFromInt(70))
	}
	incomeScore := decimal.Min(netIncome.Div(decimal.NewFromInt(500000)).Mul(decimal.NewFromInt(30)), decimal.NewFromInt(30))

	score := decimal.NewFromInt(30).Add(spreadScore).Add(incomeScore)
	return decimal.Min(score, decimal.NewFromInt(100))
}

func warnings(recommended domain.EntityType, netIncome decimal.Decimal) []string {
	var w []string
	if recommended == domain.EntitySCorporation {
		w = append(w, "S-corporation status requires ongoing payroll compliance (Forms 941/940, W-2) and a timely Form 2553 election.")
		if netIncome.GreaterThan(decimal.NewFromInt(400000)) {
			w = append(w, "High income increases the value of S-corp QBI planning but also IRS reasonable-compensation scrutiny.")
		}
	}
	return w
}

func considerations(state string) []string {
	c := []string{
		"This comparison is for planning purposes; consult a tax professional before changing entity structure.",
	}
	if state != "" {
		c = append(c, "State-level entity-level taxes (e.g. franchise tax, S-corp built-in-gains tax) in "+state+" are not modeled here and may change the result.")
	}
	return c
}

// breakevenRevenue bisection-searches gross revenue for the point at
// which the S-corp structure's total tax equals the best non-S-corp
// structure's, adapting the teacher's binary-search-over-a-transform
// idiom (internal/breakeven/solver.go) to a pure function of revenue.
func breakevenRevenue(in Input, cfg *config.YearConfig) decimal.Decimal {
	expenseRatio := decimal.Zero
	if in.GrossRevenue.GreaterThan(decimal.Zero) {
		expenseRatio = in.BusinessExpenses.Div(in.GrossRevenue)
	}

	netAdvantage := func(grossRevenue decimal.Decimal) decimal.Decimal {
		probe := in
		probe.GrossRevenue = grossRevenue
		probe.BusinessExpenses = grossRevenue.Mul(expenseRatio)

		soleProp := analyzeSoleProp(probe, cfg)
		llc := analyzeLLC(probe, cfg)
		scorp, _ := analyzeSCorp(probe, cfg)

		best := decimal.Min(soleProp.TotalBusinessTax, llc.TotalBusinessTax)
		return best.Sub(scorp.TotalBusinessTax)
	}

	low := decimal.NewFromInt(1)
	high := decimal.NewFromInt(2000000)

	if netAdvantage(high).LessThanOrEqual(decimal.Zero) {
		return high
	}
	if netAdvantage(low).GreaterThan(decimal.Zero) {
		return low
	}

	for i := 0; i < 40; i++ {
		mid := low.Add(high).Div(decimal.NewFromInt(2))
		if netAdvantage(mid).GreaterThan(decimal.Zero) {
			high = mid
		} else {
			low = mid
		}
		if high.Sub(low).LessThan(decimal.NewFromInt(1)) {
			break
		}
	}

	return money.Round2(high)
}
