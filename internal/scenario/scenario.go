package scenario

import (
	"errors"
	"fmt"
	"strings"

	"supply-demand/internal/model"
)

var ErrUnknownScenario = errors.New("unknown scenario")

// Scenario is a named preset that rewrites the controls.
type Scenario interface {
	Name() string
	Label() string
	// Apply resets in to Defaults and then applies the preset.
	Apply(in *model.MarketInputs)
}

// Defaults is the reset state: the baseline market with every toggle off.
func Defaults() model.MarketInputs {
	return model.MarketInputs{
		Demand:  model.CurveInputs{Intercept: 22, Slope: 1, Shift: 0},
		Supply:  model.CurveInputs{Intercept: 6, Slope: 1, Shift: 0},
		Tax:     model.Amount{Enabled: false, Value: 7},
		Subsidy: model.Amount{Enabled: false, Value: 7},
		Ceiling: model.PriceLevel{Enabled: false, Level: 8},
		Floor:   model.PriceLevel{Enabled: false, Level: 16},
	}
}

// All returns every preset in display order.
func All() []Scenario {
	out := make([]Scenario, len(presets))
	for i := range presets {
		out[i] = presets[i]
	}
	return out
}

func Lookup(name string) (Scenario, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range presets {
		if p.name == key {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
}

// Inputs returns the controls for the named preset.
func Inputs(name string) (model.MarketInputs, error) {
	s, err := Lookup(name)
	if err != nil {
		return model.MarketInputs{}, err
	}
	in := Defaults()
	s.Apply(&in)
	return in, nil
}

// Names lists preset names in display order.
func Names() []string {
	out := make([]string, 0, len(presets))
	for _, p := range presets {
		out = append(out, p.name)
	}
	return out
}
