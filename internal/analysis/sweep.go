package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"supply-demand/internal/market"
	"supply-demand/internal/model"
)

// MaxSweepPoints bounds the size of a single sweep.
const MaxSweepPoints = 10000

var (
	ErrUnknownParameter = errors.New("unknown sweep parameter")
	ErrInvalidRange     = errors.New("invalid sweep range")
)

// setters rewrite one control. Sweeping a policy or a price control switches
// it on.
var setters = map[string]func(in *model.MarketInputs, v float64){
	"demand_intercept": func(in *model.MarketInputs, v float64) { in.Demand.Intercept = v },
	"demand_slope":     func(in *model.MarketInputs, v float64) { in.Demand.Slope = v },
	"demand_shift":     func(in *model.MarketInputs, v float64) { in.Demand.Shift = v },
	"supply_intercept": func(in *model.MarketInputs, v float64) { in.Supply.Intercept = v },
	"supply_slope":     func(in *model.MarketInputs, v float64) { in.Supply.Slope = v },
	"supply_shift":     func(in *model.MarketInputs, v float64) { in.Supply.Shift = v },
	"tax":              func(in *model.MarketInputs, v float64) { in.Tax = model.Amount{Enabled: true, Value: v} },
	"subsidy":          func(in *model.MarketInputs, v float64) { in.Subsidy = model.Amount{Enabled: true, Value: v} },
	"ceiling":          func(in *model.MarketInputs, v float64) { in.Ceiling = model.PriceLevel{Enabled: true, Level: v} },
	"floor":            func(in *model.MarketInputs, v float64) { in.Floor = model.PriceLevel{Enabled: true, Level: v} },
}

// Parameters lists the names accepted by Sweep, sorted.
func Parameters() []string {
	out := make([]string, 0, len(setters))
	for k := range setters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SweepPoint is the frame evaluated at one parameter value.
type SweepPoint struct {
	Value float64      `json:"value"`
	Frame market.Frame `json:"frame"`
}

// Sweep evaluates in at every value of param in [from, to] spaced by step.
func Sweep(e *market.Engine, in model.MarketInputs, param string, from, to, step float64) ([]SweepPoint, error) {
	set, ok := setters[param]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, param)
	}
	if step <= 0 || math.IsNaN(step) {
		return nil, fmt.Errorf("%w: step must be > 0", ErrInvalidRange)
	}
	if to < from {
		return nil, fmt.Errorf("%w: to (%g) < from (%g)", ErrInvalidRange, to, from)
	}
	n := int(math.Floor((to-from)/step+1e-9)) + 1
	if n > MaxSweepPoints {
		return nil, fmt.Errorf("%w: %d points exceeds %d", ErrInvalidRange, n, MaxSweepPoints)
	}
	if e == nil {
		e = market.New()
	}

	out := make([]SweepPoint, 0, n)
	for i := 0; i < n; i++ {
		v := from + float64(i)*step
		cur := in
		set(&cur, v)
		out = append(out, SweepPoint{Value: v, Frame: e.Evaluate(cur)})
	}
	return out, nil
}
