package model

// WedgeResult is the buyer/seller price split at the policy quantity.
type WedgeResult struct {
	Quantity    float64 `json:"quantity"`
	BuyerPrice  float64 `json:"buyer_price"`
	SellerPrice float64 `json:"seller_price"`
	PerUnitGap  float64 `json:"per_unit_gap"`
}

// AnalyzeWedge evaluates the policy equilibrium quantity on the base
// (pre-policy) demand and supply lines.
//
// The wedge is None when neither tax nor subsidy is positive, or when either
// the policy equilibrium or the base equilibrium is undefined. For linear
// curves PerUnitGap equals tax - subsidy.
func AnalyzeWedge(policyEq Optional[Equilibrium], baseDemandIntercept, baseDemandSlope, baseSupplyIntercept, baseSupplySlope, tax, subsidy float64) Optional[WedgeResult] {
	if tax <= 0 && subsidy <= 0 {
		return None[WedgeResult]()
	}
	eq, ok := policyEq.Get()
	if !ok {
		return None[WedgeResult]()
	}
	if ComputeEquilibrium(baseDemandIntercept, baseDemandSlope, baseSupplyIntercept, baseSupplySlope).IsNone() {
		return None[WedgeResult]()
	}

	buyer := DemandPrice(eq.Qe, baseDemandIntercept, baseDemandSlope)
	seller := SupplyPrice(eq.Qe, baseSupplyIntercept, baseSupplySlope)
	return Some(WedgeResult{
		Quantity:    eq.Qe,
		BuyerPrice:  buyer,
		SellerPrice: seller,
		PerUnitGap:  buyer - seller,
	})
}
