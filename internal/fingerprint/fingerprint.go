// Package fingerprint computes the deterministic cache key for a
// calculation request (spec §4.14 step 2): a SHA-256 hash over a normalized
// JSON projection of the TaxReturn plus the carryover state and the request
// options that change the computed result, so that two requests producing
// the same hash are guaranteed to compute identical results.
package fingerprint

import (
	"fmt"

	"github.com/rgehrsitz/taxengine/internal/domain"
	"github.com/rgehrsitz/taxengine/internal/money"
)

// projection is the hashed view of a request. Field order does not matter —
// money.ContentHash normalizes key order — but the set of fields does: any
// input that can change the computed Result must appear here, and nothing
// that doesn't (e.g. use_cache, a trace id) may.
type projection struct {
	TaxYear    int                   `json:"tax_year"`
	Taxpayer   domain.TaxpayerInfo   `json:"taxpayer"`
	Income     domain.Income         `json:"income"`
	Deductions domain.Deductions     `json:"deductions"`
	Credits    domain.Credits        `json:"credits"`
	Schedule1  domain.Schedule1      `json:"schedule1"`
	Carryovers domain.CarryoverState `json:"carryovers"`

	ForeignTaxCreditInput    *domain.ForeignTaxCreditInput        `json:"foreign_tax_credit_input,omitempty"`
	ExcessContributionInput  *domain.ExcessContributionInput      `json:"excess_contribution_input,omitempty"`
	ControlledForeignCorps   []domain.ControlledForeignCorpInput  `json:"controlled_foreign_corps,omitempty"`
	IRABasisInput            *domain.IRABasisInput                `json:"ira_basis_input,omitempty"`
	ChildUnearnedIncomeInput *domain.ChildUnearnedIncomeInput      `json:"child_unearned_income_input,omitempty"`
	EducationCreditsInput    *domain.EducationCreditsInput         `json:"education_credits_input,omitempty"`
	DebtDischargeInput       *domain.DebtDischargeInput            `json:"debt_discharge_input,omitempty"`
	EntityStructureInput     *domain.EntityStructureInput          `json:"entity_structure_input,omitempty"`

	// ValidationMode is included because strict vs. lenient mode can change
	// whether a computation runs at all (an aborted strict-mode request and
	// a completed lenient-mode request over the same TaxReturn must not
	// collide on the same cache key).
	ValidationMode string `json:"validation_mode"`
}

// Of computes the fingerprint for one calculation request. tr and carry are
// the caller's inputs; mode is the validation mode in effect ("strict" or
// "lenient"), since it gates whether compute runs at all.
func Of(tr domain.TaxReturn, carry domain.CarryoverState, mode string) (string, error) {
	p := projection{
		TaxYear:                  tr.TaxYear,
		Taxpayer:                 tr.Taxpayer,
		Income:                   tr.Income,
		Deductions:               tr.Deductions,
		Credits:                  tr.Credits,
		Schedule1:                tr.Schedule1,
		Carryovers:               carry,
		ForeignTaxCreditInput:    tr.ForeignTaxCreditInput,
		ExcessContributionInput:  tr.ExcessContributionInput,
		ControlledForeignCorps:   tr.ControlledForeignCorps,
		IRABasisInput:            tr.IRABasisInput,
		ChildUnearnedIncomeInput: tr.ChildUnearnedIncomeInput,
		EducationCreditsInput:    tr.EducationCreditsInput,
		DebtDischargeInput:       tr.DebtDischargeInput,
		EntityStructureInput:     tr.EntityStructureInput,
		ValidationMode:           mode,
	}

	hash, err := money.ContentHash(p)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return hash, nil
}
