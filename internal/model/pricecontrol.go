package model

import (
	"encoding/json"
	"math"
)

// BindingDirection says what a price control does to the market.
// Keep these values stable; they are part of the JSON and CSV output.
type BindingDirection string

const (
	BindingShortage BindingDirection = "shortage"
	BindingSurplus  BindingDirection = "surplus"
	BindingNone     BindingDirection = "none"
)

// BindingFromLevel classifies a control at level against the clearing price.
// Below the clearing price a ceiling binds, above it a floor binds.
func BindingFromLevel(level, clearingPrice float64) BindingDirection {
	switch {
	case level < clearingPrice:
		return BindingShortage
	case level > clearingPrice:
		return BindingSurplus
	default:
		return BindingNone
	}
}

// PriceControlResult describes the market at a fixed price level.
// QuantityDemanded and QuantitySupplied are not clipped to the plotted domain.
type PriceControlResult struct {
	PriceLevel       float64          `json:"price_level"`
	QuantityDemanded float64          `json:"quantity_demanded"`
	QuantitySupplied float64          `json:"quantity_supplied"`
	Gap              float64          `json:"gap"`
	BindingDirection BindingDirection `json:"binding_direction"`
}

// AnalyzePriceControl inverts both curves at level and reports the shortage
// or surplus relative to the reference equilibrium price.
func AnalyzePriceControl(level, demandIntercept, demandSlope, effectiveSupplyIntercept, supplySlope float64, reference Equilibrium) PriceControlResult {
	qd := (demandIntercept - level) / demandSlope
	qs := (level - effectiveSupplyIntercept) / supplySlope

	res := PriceControlResult{
		PriceLevel:       level,
		QuantityDemanded: qd,
		QuantitySupplied: qs,
		BindingDirection: BindingFromLevel(level, reference.Pe),
	}
	switch res.BindingDirection {
	case BindingShortage:
		res.Gap = qd - qs
	case BindingSurplus:
		res.Gap = qs - qd
	}
	return res
}

// Binds reports whether the control changes the market.
func (r PriceControlResult) Binds() bool {
	return r.BindingDirection != BindingNone
}

// DemandMarkerVisible reports whether the demanded quantity is plottable.
func (r PriceControlResult) DemandMarkerVisible() bool {
	return InQuantityDomain(r.QuantityDemanded)
}

// SupplyMarkerVisible reports whether the supplied quantity is plottable.
func (r PriceControlResult) SupplyMarkerVisible() bool {
	return InQuantityDomain(r.QuantitySupplied)
}

// GapSpan is the quantity band between Qd and Qs, clipped to [0, QMax].
func (r PriceControlResult) GapSpan() (lo, hi float64) {
	lo = math.Max(0, math.Min(r.QuantityDemanded, r.QuantitySupplied))
	hi = math.Min(QMax, math.Max(r.QuantityDemanded, r.QuantitySupplied))
	return lo, hi
}

// priceControlJSON is the wire form. A zero slope makes quantities infinite
// or NaN, which JSON cannot carry; those fields are null.
type priceControlJSON struct {
	PriceLevel       *float64         `json:"price_level"`
	QuantityDemanded *float64         `json:"quantity_demanded"`
	QuantitySupplied *float64         `json:"quantity_supplied"`
	Gap              *float64         `json:"gap"`
	BindingDirection BindingDirection `json:"binding_direction"`
}

func finite(x float64) *float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return nil
	}
	return &x
}

// orNaN decodes a null field as NaN.
func orNaN(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

func (r PriceControlResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(priceControlJSON{
		PriceLevel:       finite(r.PriceLevel),
		QuantityDemanded: finite(r.QuantityDemanded),
		QuantitySupplied: finite(r.QuantitySupplied),
		Gap:              finite(r.Gap),
		BindingDirection: r.BindingDirection,
	})
}

func (r *PriceControlResult) UnmarshalJSON(data []byte) error {
	var w priceControlJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = PriceControlResult{
		PriceLevel:       orNaN(w.PriceLevel),
		QuantityDemanded: orNaN(w.QuantityDemanded),
		QuantitySupplied: orNaN(w.QuantitySupplied),
		Gap:              orNaN(w.Gap),
		BindingDirection: w.BindingDirection,
	}
	return nil
}
