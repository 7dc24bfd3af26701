// Package form8582 computes the Passive Activity Loss limitation,
// grounded directly on spec.md §4.3 (no Python original exists).
package form8582

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxengine/internal/domain"
	"github.com/rgehrsitz/taxengine/internal/money"
)

// MaterialParticipationWitness names which of the material-participation
// tests an activity satisfied, or "" if none.
type MaterialParticipationWitness string

const (
	TestNone                 MaterialParticipationWitness = ""
	Test500HoursCombined     MaterialParticipationWitness = "500_hours_combined"
	TestSubstantiallyAll     MaterialParticipationWitness = "substantially_all"
	Test100HoursNotLess      MaterialParticipationWitness = "100_hours_not_less_than_anyone"
	TestRealEstateProfessional MaterialParticipationWitness = "real_estate_professional"
)

// MaterialParticipation runs spec.md §4.3's tests 1-3 plus the
// real-estate-professional override and returns a single boolean with a
// witness id, collapsing tests 4-7 into the same result shape per
// spec.md §3's invariant.
func MaterialParticipation(a domain.PassiveActivity) (bool, MaterialParticipationWitness) {
	if a.ActivityType == domain.ActivityWorkingInterestOG {
		return true, TestNone // working interests in oil/gas are never passive
	}

	combined := a.TaxpayerHours.Add(a.SpouseHours)
	if combined.GreaterThanOrEqual(decimal.NewFromInt(500)) {
		return true, Test500HoursCombined
	}
	if a.TotalActivityHours.GreaterThan(decimal.Zero) && a.TaxpayerHours.Equal(a.TotalActivityHours) {
		return true, TestSubstantiallyAll
	}
	if a.TaxpayerHours.GreaterThanOrEqual(decimal.NewFromInt(100)) && a.TaxpayerHours.GreaterThanOrEqual(a.OtherIndividualMaxHours) {
		return true, Test100HoursNotLess
	}

	if isRealEstateProfessional(a) {
		return true, TestRealEstateProfessional
	}

	return false, TestNone
}

func isRealEstateProfessional(a domain.PassiveActivity) bool {
	if a.RealPropertyHours.LessThan(decimal.NewFromInt(750)) {
		return false
	}
	if a.TotalWorkHours.IsZero() {
		return false
	}
	half := a.TotalWorkHours.Mul(decimal.NewFromFloat(0.5))
	return a.RealPropertyHours.GreaterThan(half)
}

// Input is Form 8582's self-contained input. Each activity's prior-year
// suspended loss travels on domain.PassiveActivity.PriorYearUnallowedLoss.
type Input struct {
	Activities []domain.PassiveActivity

	MAGI                         decimal.Decimal
	LivingApartFromSpouseAllYear bool // MFS special-allowance variant
	FilingStatus                 domain.FilingStatus
}

// ActivityResult is one activity's classification and net result for
// the current year.
type ActivityResult struct {
	ActivityID             string
	MaterialParticipation  bool
	Witness                MaterialParticipationWitness
	NetIncomeOrLoss        decimal.Decimal // current year only
	TotalLossAvailable     decimal.Decimal // current-year loss (if any) + suspended carryforward
	AllowedLoss            decimal.Decimal
	SuspendedLoss           decimal.Decimal // carried to next year
}

// Result is Form 8582's full output.
type Result struct {
	Activities []ActivityResult

	RentalRealEstateBasketNet decimal.Decimal
	OtherPassiveBasketNet     decimal.Decimal
	PTPBasketNet              decimal.Decimal

	SpecialAllowanceAvailable decimal.Decimal
	SpecialAllowanceUsed      decimal.Decimal

	TotalAllowedLoss    decimal.Decimal
	TotalSuspendedLoss  decimal.Decimal
}

// Calculate implements spec.md §4.3's Parts I-III.
func Calculate(in Input) Result {
	r := Result{}
	r.Activities = make([]ActivityResult, 0, len(in.Activities))

	// Non-passive activities (material participation, or working
	// interest, or RE-professional-exempted) are not part of this form
	// at all; their income/loss flows directly to Schedule C/E, not
	// through the PAL baskets.
	var passive []domain.PassiveActivity
	for _, a := range in.Activities {
		materiallyParticipates, witness := MaterialParticipation(a)
		if materiallyParticipates {
			r.Activities = append(r.Activities, ActivityResult{
				ActivityID:            a.ID,
				MaterialParticipation: true,
				Witness:               witness,
				NetIncomeOrLoss:       a.NetIncome(),
			})
			continue
		}
		passive = append(passive, a)
	}

	eligibleRentalLoss := decimal.Zero
	passiveIncome := decimal.Zero // non-PTP passive income available to absorb passive losses

	for _, a := range passive {
		carryforward := a.PriorYearUnallowedLoss
		net := a.NetIncome()

		currentLoss := decimal.Zero
		if net.IsNegative() {
			currentLoss = net.Neg()
		}
		totalLossAvailable := currentLoss.Add(carryforward)

		ar := ActivityResult{
			ActivityID:         a.ID,
			TotalLossAvailable: totalLossAvailable,
			NetIncomeOrLoss:    net,
		}

		switch a.ActivityType {
		case domain.ActivityPTP:
			// PTP losses only offset PTP income from the same PTP;
			// otherwise fully suspended here (cross-PTP netting is
			// beyond a single activity's scope, handled by the pipeline
			// aggregating PTP basket income separately).
			if net.GreaterThanOrEqual(decimal.Zero) {
				ar.AllowedLoss = decimal.Zero
				r.PTPBasketNet = r.PTPBasketNet.Add(net)
			} else {
				ar.SuspendedLoss = totalLossAvailable
			}
		default:
			if net.GreaterThanOrEqual(decimal.Zero) {
				r.addToBasket(a.ActivityType, net)
				passiveIncome = passiveIncome.Add(net)
			} else {
				r.addToBasket(a.ActivityType, net)
				if a.ActivityType == domain.ActivityRentalRealEstate && a.IsActiveParticipant {
					eligibleRentalLoss = eligibleRentalLoss.Add(totalLossAvailable)
				}
			}
		}

		if a.Disposed {
			// Complete taxable disposition releases the activity's
			// suspended losses in full this year.
			ar.AllowedLoss = totalLossAvailable
			ar.SuspendedLoss = decimal.Zero
		}

		r.Activities = append(r.Activities, ar)
	}

	// Part II: rental real estate special allowance.
	allowanceMax := decimal.NewFromInt(25000)
	phaseoutStart := decimal.NewFromInt(100000)
	rate := decimal.NewFromFloat(0.5)
	if in.FilingStatus == domain.MarriedFilingSeparately {
		if !in.LivingApartFromSpouseAllYear {
			allowanceMax = decimal.Zero
		} else {
			allowanceMax = decimal.NewFromInt(12500)
			phaseoutStart = decimal.NewFromInt(50000)
		}
	}

	excess := in.MAGI.Sub(phaseoutStart)
	available := allowanceMax
	if excess.GreaterThan(decimal.Zero) {
		reduction := excess.Mul(rate)
		available = money.ClampNonNegative(allowanceMax.Sub(reduction))
	}
	r.SpecialAllowanceAvailable = available

	used := available
	if used.GreaterThan(eligibleRentalLoss) {
		used = eligibleRentalLoss
	}
	r.SpecialAllowanceUsed = used

	// Part III: net passive income against passive losses; apply the
	// special allowance against whatever rental real estate loss the
	// basket netting left suspended.
	r.TotalAllowedLoss = decimal.Zero
	r.TotalSuspendedLoss = decimal.Zero
	for i := range r.Activities {
		ar := &r.Activities[i]
		if ar.MaterialParticipation {
			continue
		}
		if ar.SuspendedLoss.IsZero() && ar.TotalLossAvailable.GreaterThan(decimal.Zero) && ar.AllowedLoss.IsZero() {
			// this activity contributed a current-year loss not yet
			// resolved by disposition; apply the special allowance
			// proportionally is out of scope for a per-activity loop
			// with a single allowance pool, so apply up to what remains.
			// Passive income absorbs the loss first.
			fromIncome := decimal.Min(passiveIncome, ar.TotalLossAvailable)
			passiveIncome = passiveIncome.Sub(fromIncome)
			allow := used
			if allow.GreaterThan(ar.TotalLossAvailable.Sub(fromIncome)) {
				allow = ar.TotalLossAvailable.Sub(fromIncome)
			}
			ar.AllowedLoss = fromIncome.Add(allow)
			ar.SuspendedLoss = ar.TotalLossAvailable.Sub(ar.AllowedLoss)
			used = used.Sub(allow)
		}
		r.TotalAllowedLoss = r.TotalAllowedLoss.Add(ar.AllowedLoss)
		r.TotalSuspendedLoss = r.TotalSuspendedLoss.Add(ar.SuspendedLoss)
	}
	r.SpecialAllowanceUsed = r.SpecialAllowanceUsed.Sub(used)

	return r
}

func (r *Result) addToBasket(t domain.ActivityType, amount decimal.Decimal) {
	switch t {
	case domain.ActivityRentalRealEstate:
		r.RentalRealEstateBasketNet = r.RentalRealEstateBasketNet.Add(amount)
	default:
		r.OtherPassiveBasketNet = r.OtherPassiveBasketNet.Add(amount)
	}
}
