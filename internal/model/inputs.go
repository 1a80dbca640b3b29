package model

// CurveInputs are the raw controls for one curve.
type CurveInputs struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
	Shift     float64 `json:"shift"`
}

// Amount is a per-unit policy amount that can be switched off.
type Amount struct {
	Enabled bool    `json:"enabled"`
	Value   float64 `json:"value"`
}

// Active is Value when enabled, 0 otherwise.
func (a Amount) Active() float64 {
	if !a.Enabled {
		return 0
	}
	return a.Value
}

// PriceLevel is a price control that can be switched off.
type PriceLevel struct {
	Enabled bool    `json:"enabled"`
	Level   float64 `json:"level"`
}

// MarketInputs is the full snapshot of controls for one evaluation.
// It is assembled by the caller (UI, CLI, API) and passed by value.
type MarketInputs struct {
	Demand CurveInputs `json:"demand"`
	Supply CurveInputs `json:"supply"`

	Tax     Amount `json:"tax"`
	Subsidy Amount `json:"subsidy"`

	Ceiling PriceLevel `json:"ceiling"`
	Floor   PriceLevel `json:"floor"`

	// Animate enables the cyclical wiggle at Phase (radians).
	Animate bool    `json:"animate"`
	Phase   float64 `json:"phase"`
}

// ActivePolicy returns the tax and subsidy currently switched on.
func (in MarketInputs) ActivePolicy() PolicyParameters {
	return PolicyParameters{
		Tax:     in.Tax.Active(),
		Subsidy: in.Subsidy.Active(),
	}
}
