package model

import "math"

// WiggleAmplitude is the peak shift applied in animated mode.
const WiggleAmplitude = 2.0

// PolicyParameters are per-unit amounts applied on the seller side.
type PolicyParameters struct {
	Tax     float64 `json:"tax"`
	Subsidy float64 `json:"subsidy"`
}

// Net is tax minus subsidy. It may be negative.
func (p PolicyParameters) Net() float64 {
	return p.Tax - p.Subsidy
}

// EffectiveSupplyIntercept shifts the supply line by the net policy amount.
// Tax and subsidy may both be non-zero.
func EffectiveSupplyIntercept(baseIntercept, tax, subsidy float64) float64 {
	return baseIntercept + tax - subsidy
}

// Wiggle is the cyclical shift for a given animation phase (radians).
func Wiggle(phase float64) float64 {
	return WiggleAmplitude * math.Sin(phase)
}

// Intercepts are the curve intercepts after shifts and policy for one frame.
type Intercepts struct {
	DemandShift float64 `json:"demand_shift"`
	SupplyShift float64 `json:"supply_shift"`

	// DemandBase and SupplyBase include the shifts but no policy.
	DemandBase float64 `json:"demand_base"`
	SupplyBase float64 `json:"supply_base"`

	// SupplyPolicy is SupplyBase adjusted for the active tax and subsidy.
	SupplyPolicy float64 `json:"supply_policy"`

	Policy PolicyParameters `json:"policy"`
}

// ApplyShifts derives the effective intercepts from a frame's inputs.
//
// The wiggle moves demand up and supply down by the same amount. Shifts are
// applied to the base intercepts first; tax and subsidy then act on the
// shifted supply intercept only.
func ApplyShifts(in MarketInputs) Intercepts {
	dShift := in.Demand.Shift
	sShift := in.Supply.Shift
	if in.Animate {
		w := Wiggle(in.Phase)
		dShift += w
		sShift -= w
	}

	policy := in.ActivePolicy()
	dBase := in.Demand.Intercept + dShift
	sBase := in.Supply.Intercept + sShift

	return Intercepts{
		DemandShift:  dShift,
		SupplyShift:  sShift,
		DemandBase:   dBase,
		SupplyBase:   sBase,
		SupplyPolicy: EffectiveSupplyIntercept(sBase, policy.Tax, policy.Subsidy),
		Policy:       policy,
	}
}
