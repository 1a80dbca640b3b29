package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func policyWedge(a, b, c, d, tax, subsidy float64) Optional[WedgeResult] {
	policyEq := ComputeEquilibrium(a, b, EffectiveSupplyIntercept(c, tax, subsidy), d)
	return AnalyzeWedge(policyEq, a, b, c, d, tax, subsidy)
}

func TestAnalyzeWedge(t *testing.T) {
	t.Run("tax gap equals tax", func(t *testing.T) {
		for _, tax := range []float64{0.5, 2, 4.5, 7} {
			w, ok := policyWedge(22, 1, 6, 1, tax, 0).Get()
			require.True(t, ok)
			require.InDelta(t, tax, w.PerUnitGap, tol)
		}
	})

	t.Run("tax on steeper curves", func(t *testing.T) {
		w, ok := policyWedge(25, 2.5, 3, 0.6, 3, 0).Get()
		require.True(t, ok)
		require.InDelta(t, 3, w.PerUnitGap, tol)
		require.Greater(t, w.BuyerPrice, w.SellerPrice)
	})

	t.Run("subsidy gap is negative", func(t *testing.T) {
		w, ok := policyWedge(22, 1, 6, 1, 0, 4).Get()
		require.True(t, ok)
		require.InDelta(t, -4, w.PerUnitGap, tol)
		require.Less(t, w.BuyerPrice, w.SellerPrice)
	})

	t.Run("net gap", func(t *testing.T) {
		w, ok := policyWedge(22, 1, 6, 1, 5, 2).Get()
		require.True(t, ok)
		require.InDelta(t, 3, w.PerUnitGap, tol)
	})

	t.Run("tax preset prices", func(t *testing.T) {
		w, ok := policyWedge(22, 1, 6, 1, 7, 0).Get()
		require.True(t, ok)
		require.InDelta(t, 4.5, w.Quantity, tol)
		require.InDelta(t, 17.5, w.BuyerPrice, tol)
		require.InDelta(t, 10.5, w.SellerPrice, tol)
	})

	t.Run("no policy", func(t *testing.T) {
		require.True(t, policyWedge(22, 1, 6, 1, 0, 0).IsNone())
	})

	t.Run("missing policy equilibrium", func(t *testing.T) {
		// Tax pushes supply above demand at Q=0.
		require.True(t, policyWedge(22, 1, 6, 1, 17, 0).IsNone())
	})

	t.Run("missing base equilibrium", func(t *testing.T) {
		// Base supply starts above demand; the subsidy alone brings them together.
		policyEq := ComputeEquilibrium(10, 1, 12-5, 1)
		require.True(t, policyEq.IsSome())
		require.True(t, AnalyzeWedge(policyEq, 10, 1, 12, 1, 0, 5).IsNone())
	})
}
