package model

// Equilibrium is the market-clearing point of a demand/supply pair.
type Equilibrium struct {
	Qe float64 `json:"qe"`
	Pe float64 `json:"pe"`
}

// ComputeEquilibrium intersects the demand and supply lines.
//
// The result is None when the slopes sum to zero (parallel or flat lines) or
// when the intersection falls outside [0, QMax] x [0, PMax].
func ComputeEquilibrium(demandIntercept, demandSlope, supplyIntercept, supplySlope float64) Optional[Equilibrium] {
	denom := demandSlope + supplySlope
	if denom == 0 {
		return None[Equilibrium]()
	}

	qe := (demandIntercept - supplyIntercept) / denom
	pe := DemandPrice(qe, demandIntercept, demandSlope)

	if !InQuantityDomain(qe) || !InPriceDomain(pe) {
		return None[Equilibrium]()
	}
	return Some(Equilibrium{Qe: qe, Pe: pe})
}

// Intersect is ComputeEquilibrium over curve values.
func Intersect(demand, supply LinearCurve) Optional[Equilibrium] {
	return ComputeEquilibrium(demand.Intercept, demand.Slope, supply.Intercept, supply.Slope)
}
