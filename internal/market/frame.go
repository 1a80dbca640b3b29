package market

import (
	"fmt"
	"math"
	"strings"

	"supply-demand/internal/model"
)

// MarkerThreshold is the minimum move (in Q or P) before the policy
// equilibrium is drawn separately from the base one.
const MarkerThreshold = 0.05

// Reference selects the equilibrium that price controls are compared against.
type Reference string

const (
	ReferenceBase   Reference = "base"
	ReferencePolicy Reference = "policy"
)

// ParseReference accepts "base", "policy" or "" (base).
func ParseReference(s string) (Reference, error) {
	switch Reference(strings.ToLower(strings.TrimSpace(s))) {
	case "", ReferenceBase:
		return ReferenceBase, nil
	case ReferencePolicy:
		return ReferencePolicy, nil
	default:
		return "", fmt.Errorf("invalid reference %q, expected base or policy", s)
	}
}

// Frame is everything derived from one MarketInputs snapshot.
// It is rebuilt for every evaluation and never mutated afterwards.
type Frame struct {
	Inputs     model.MarketInputs `json:"inputs"`
	Intercepts model.Intercepts   `json:"intercepts"`
	Reference  Reference          `json:"reference"`

	Base   model.Optional[model.Equilibrium] `json:"base_equilibrium"`
	Policy model.Optional[model.Equilibrium] `json:"policy_equilibrium"`

	// Ceiling and Floor are None when switched off or when the reference
	// equilibrium is undefined.
	Ceiling model.Optional[model.PriceControlResult] `json:"ceiling"`
	Floor   model.Optional[model.PriceControlResult] `json:"floor"`

	Wedge model.Optional[model.WedgeResult] `json:"wedge"`
}

// DemandCurve is the shifted demand line.
func (f Frame) DemandCurve() model.LinearCurve {
	return model.LinearCurve{Intercept: f.Intercepts.DemandBase, Slope: f.Inputs.Demand.Slope}
}

// SupplyCurve is the shifted supply line before policy.
func (f Frame) SupplyCurve() model.LinearCurve {
	return model.LinearCurve{Intercept: f.Intercepts.SupplyBase, Slope: f.Inputs.Supply.Slope}
}

// PolicySupplyCurve is the supply line after tax and subsidy.
func (f Frame) PolicySupplyCurve() model.LinearCurve {
	return model.LinearCurve{Intercept: f.Intercepts.SupplyPolicy, Slope: f.Inputs.Supply.Slope}
}

// HasPolicy reports whether a tax or subsidy is active.
func (f Frame) HasPolicy() bool {
	return f.Intercepts.Policy.Tax > 0 || f.Intercepts.Policy.Subsidy > 0
}

// ShowPolicyEquilibrium reports whether the policy equilibrium has moved far
// enough from the base one to deserve its own marker.
func (f Frame) ShowPolicyEquilibrium() bool {
	base, ok := f.Base.Get()
	if !ok {
		return false
	}
	policy, ok := f.Policy.Get()
	if !ok {
		return false
	}
	return math.Abs(policy.Qe-base.Qe) > MarkerThreshold || math.Abs(policy.Pe-base.Pe) > MarkerThreshold
}

// Row is one animation step.
type Row struct {
	Index int     `json:"index"`
	Phase float64 `json:"phase"`
	Frame Frame   `json:"frame"`
}

type Result struct {
	Rows []Row `json:"rows"`

	// Cleared counts frames with a defined policy equilibrium.
	Cleared int `json:"cleared"`

	MinPe float64 `json:"min_pe"`
	MaxPe float64 `json:"max_pe"`
}
