package analysis

import (
	"supply-demand/internal/market"
	"supply-demand/internal/model"
)

// TaxIncidence splits the per-unit gap between buyers and sellers.
// For a tax both burdens are positive; for a subsidy both are negative
// (buyers pay less, sellers receive more).
type TaxIncidence struct {
	BuyerBurden  float64 `json:"buyer_burden"`
	SellerBurden float64 `json:"seller_burden"`
	// BuyerShare is BuyerBurden / (BuyerBurden + SellerBurden).
	BuyerShare float64 `json:"buyer_share"`
}

// Incidence compares the wedge prices against the base clearing price.
// It is None whenever the wedge or the base equilibrium is undefined.
func Incidence(f market.Frame) model.Optional[TaxIncidence] {
	w, ok := f.Wedge.Get()
	if !ok {
		return model.None[TaxIncidence]()
	}
	base, ok := f.Base.Get()
	if !ok {
		return model.None[TaxIncidence]()
	}

	ti := TaxIncidence{
		BuyerBurden:  w.BuyerPrice - base.Pe,
		SellerBurden: base.Pe - w.SellerPrice,
	}
	if total := ti.BuyerBurden + ti.SellerBurden; total != 0 {
		ti.BuyerShare = ti.BuyerBurden / total
	}
	return model.Some(ti)
}
