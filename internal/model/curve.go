package model

// Plotted domain. Both bounds are inclusive.
const (
	QMax = 20.0
	PMax = 20.0
)

// LinearCurve is a straight price-quantity line.
// Units: Intercept is the price at Q=0, Slope is price per unit of quantity.
//
// Demand reads as P = Intercept - Slope*Q, supply as P = Intercept + Slope*Q.
// Callers are expected to keep Slope > 0; nothing here enforces it.
type LinearCurve struct {
	Intercept float64 `json:"intercept" yaml:"intercept"`
	Slope     float64 `json:"slope" yaml:"slope"`
}

// DemandPrice is the price buyers will pay for quantity q.
func DemandPrice(q, intercept, slope float64) float64 {
	return intercept - slope*q
}

// SupplyPrice is the price sellers need to supply quantity q.
func SupplyPrice(q, intercept, slope float64) float64 {
	return intercept + slope*q
}

func (c LinearCurve) DemandPrice(q float64) float64 {
	return DemandPrice(q, c.Intercept, c.Slope)
}

func (c LinearCurve) SupplyPrice(q float64) float64 {
	return SupplyPrice(q, c.Intercept, c.Slope)
}

// QuantityDemanded inverts the demand line at price p.
// A zero slope yields ±Inf or NaN rather than panicking.
func (c LinearCurve) QuantityDemanded(p float64) float64 {
	return (c.Intercept - p) / c.Slope
}

// QuantitySupplied inverts the supply line at price p.
func (c LinearCurve) QuantitySupplied(p float64) float64 {
	return (p - c.Intercept) / c.Slope
}

// InQuantityDomain reports whether q lies in [0, QMax].
func InQuantityDomain(q float64) bool {
	return q >= 0 && q <= QMax
}

// InPriceDomain reports whether p lies in [0, PMax].
func InPriceDomain(p float64) bool {
	return p >= 0 && p <= PMax
}
