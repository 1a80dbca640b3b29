package scenario

import (
	"errors"
	"testing"

	"supply-demand/internal/market"
	"supply-demand/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{
		"custom", "baseline", "demand_boom", "supply_shock",
		"ceiling", "floor", "tax", "subsidy",
	}, Names())
	assert.Len(t, All(), 8)
}

func TestLookup(t *testing.T) {
	s, err := Lookup(" Demand_Boom ")
	require.NoError(t, err)
	assert.Equal(t, "demand_boom", s.Name())
	assert.Equal(t, "More buyers arrive", s.Label())

	_, err = Lookup("recession")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownScenario))
}

func TestApplyResetsFirst(t *testing.T) {
	s, err := Lookup("floor")
	require.NoError(t, err)

	in := Defaults()
	in.Tax.Enabled = true
	in.Demand.Slope = 2.5
	s.Apply(&in)

	assert.False(t, in.Tax.Enabled)
	assert.Equal(t, 1.0, in.Demand.Slope)
	assert.Equal(t, model.PriceLevel{Enabled: true, Level: 16}, in.Floor)
}

func TestPresetOutcomes(t *testing.T) {
	e := market.New()

	eval := func(name string) market.Frame {
		in, err := Inputs(name)
		require.NoError(t, err)
		return e.Evaluate(in)
	}

	t.Run("baseline", func(t *testing.T) {
		f := eval("baseline")
		eq, ok := f.Base.Get()
		require.True(t, ok)
		assert.Equal(t, model.Equilibrium{Qe: 8, Pe: 14}, eq)
		assert.Equal(t, f, eval("custom"))
	})

	t.Run("demand boom", func(t *testing.T) {
		eq, ok := eval("demand_boom").Base.Get()
		require.True(t, ok)
		assert.InDelta(t, 10, eq.Qe, 1e-9)
		assert.InDelta(t, 16, eq.Pe, 1e-9)
	})

	t.Run("supply shock", func(t *testing.T) {
		eq, ok := eval("supply_shock").Base.Get()
		require.True(t, ok)
		assert.InDelta(t, 6, eq.Qe, 1e-9)
		assert.InDelta(t, 16, eq.Pe, 1e-9)
	})

	t.Run("ceiling", func(t *testing.T) {
		pc, ok := eval("ceiling").Ceiling.Get()
		require.True(t, ok)
		assert.Equal(t, model.BindingShortage, pc.BindingDirection)
		assert.InDelta(t, 8, pc.Gap, 1e-9)
	})

	t.Run("floor", func(t *testing.T) {
		pc, ok := eval("floor").Floor.Get()
		require.True(t, ok)
		assert.Equal(t, model.BindingSurplus, pc.BindingDirection)
		assert.InDelta(t, 4, pc.Gap, 1e-9)
	})

	t.Run("tax", func(t *testing.T) {
		w, ok := eval("tax").Wedge.Get()
		require.True(t, ok)
		assert.InDelta(t, 7, w.PerUnitGap, 1e-9)
	})

	t.Run("subsidy", func(t *testing.T) {
		f := eval("subsidy")
		w, ok := f.Wedge.Get()
		require.True(t, ok)
		assert.InDelta(t, -7, w.PerUnitGap, 1e-9)

		eq, ok := f.Policy.Get()
		require.True(t, ok)
		assert.InDelta(t, 11.5, eq.Qe, 1e-9)
		assert.InDelta(t, 10.5, eq.Pe, 1e-9)
	})
}
