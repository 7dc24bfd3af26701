package domain

import "github.com/shopspring/decimal"

// DebtDischargeExclusion is the statutory basis for excluding
// cancellation-of-debt income under IRC §108, reported on Form 982.
type DebtDischargeExclusion string

const (
	DebtDischargeNone             DebtDischargeExclusion = "none"
	DebtDischargeBankruptcy       DebtDischargeExclusion = "bankruptcy"
	DebtDischargeInsolvency       DebtDischargeExclusion = "insolvency"
	DebtDischargeQualifiedFarm    DebtDischargeExclusion = "qualified_farm"
	DebtDischargeQRPBI            DebtDischargeExclusion = "qualified_real_property_business"
	DebtDischargeQPRI             DebtDischargeExclusion = "qualified_principal_residence"
)

// InsolvencyAssetsAndLiabilities is the balance sheet Form 982 uses to
// determine the insolvency exclusion: excluded income is capped at the
// excess of liabilities over the FMV of assets immediately before the
// discharge.
type InsolvencyAssetsAndLiabilities struct {
	TotalAssetsFMV      decimal.Decimal
	TotalLiabilities    decimal.Decimal
}

// InsolvencyAmount is the excess of liabilities over assets, floored at
// zero (a solvent taxpayer has no insolvency exclusion).
func (b InsolvencyAssetsAndLiabilities) InsolvencyAmount() decimal.Decimal {
	d := b.TotalLiabilities.Sub(b.TotalAssetsFMV)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// TaxAttribute is one of the ordered pools Form 982 reduces after a
// §108 exclusion, in statutory order: NOL, general business credit,
// minimum tax credit, capital loss carryover, basis, passive activity
// loss/credit carryover, foreign tax credit carryover.
type TaxAttribute string

const (
	AttributeNOL                TaxAttribute = "nol"
	AttributeGeneralBusinessCredit TaxAttribute = "general_business_credit"
	AttributeMinimumTaxCredit   TaxAttribute = "minimum_tax_credit"
	AttributeCapitalLoss        TaxAttribute = "capital_loss_carryover"
	AttributeBasis              TaxAttribute = "basis"
	AttributePassiveActivity    TaxAttribute = "passive_activity_loss_credit"
	AttributeForeignTaxCredit   TaxAttribute = "foreign_tax_credit_carryover"
)

// DebtDischargeInput is Form 982's full input: the discharged amount,
// the exclusion basis, the balance sheet for insolvency, and the
// available tax-attribute pools to reduce.
type DebtDischargeInput struct {
	TotalCODIncome   decimal.Decimal
	Exclusion        DebtDischargeExclusion
	Insolvency       InsolvencyAssetsAndLiabilities
	QPRIResidenceBasis decimal.Decimal // caps the QPRI exclusion
	SecuredAcquisitionDebt decimal.Decimal // QPRI floor: debt must be acquisition debt on the principal residence

	AttributePools map[TaxAttribute]decimal.Decimal
}

// DeepCopy returns a copy sharing no backing map with the receiver.
func (in DebtDischargeInput) DeepCopy() DebtDischargeInput {
	cp := in
	if in.AttributePools != nil {
		cp.AttributePools = make(map[TaxAttribute]decimal.Decimal, len(in.AttributePools))
		for k, v := range in.AttributePools {
			cp.AttributePools[k] = v
		}
	}
	return cp
}
