package market

import (
	"fmt"
	"math"

	"supply-demand/internal/model"
)

// DefaultStep is the phase advance per animation frame (radians).
const DefaultStep = 0.02

// Clock maps frame numbers to animation phases.
type Clock struct {
	Step float64
}

func NewClock(step float64) Clock {
	if step == 0 {
		step = DefaultStep
	}
	return Clock{Step: step}
}

func (c Clock) PhaseAt(frame int) float64 {
	return float64(frame) * c.Step
}

type Engine struct {
	Reference Reference
}

func New() *Engine { return &Engine{Reference: ReferenceBase} }

// WithReference returns an engine comparing price controls against ref.
func WithReference(ref Reference) *Engine { return &Engine{Reference: ref} }

// Evaluate derives a Frame from one snapshot. It has no side effects.
func (e *Engine) Evaluate(in model.MarketInputs) Frame {
	ic := model.ApplyShifts(in)
	dSlope := in.Demand.Slope
	sSlope := in.Supply.Slope

	f := Frame{
		Inputs:     in,
		Intercepts: ic,
		Reference:  e.reference(),
		Base:       model.ComputeEquilibrium(ic.DemandBase, dSlope, ic.SupplyBase, sSlope),
		Policy:     model.ComputeEquilibrium(ic.DemandBase, dSlope, ic.SupplyPolicy, sSlope),
	}

	ref := f.Base
	if f.Reference == ReferencePolicy {
		ref = f.Policy
	}
	if refEq, ok := ref.Get(); ok {
		if in.Ceiling.Enabled {
			f.Ceiling = model.Some(model.AnalyzePriceControl(in.Ceiling.Level, ic.DemandBase, dSlope, ic.SupplyPolicy, sSlope, refEq))
		}
		if in.Floor.Enabled {
			f.Floor = model.Some(model.AnalyzePriceControl(in.Floor.Level, ic.DemandBase, dSlope, ic.SupplyPolicy, sSlope, refEq))
		}
	}

	f.Wedge = model.AnalyzeWedge(f.Policy, ic.DemandBase, dSlope, ic.SupplyBase, sSlope, ic.Policy.Tax, ic.Policy.Subsidy)
	return f
}

// Run evaluates frames consecutive animation steps starting at frame 0.
// Animation is forced on; the phase of each row comes from clock.
func (e *Engine) Run(in model.MarketInputs, frames int, clock Clock) (*Result, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("frames must be > 0, got %d", frames)
	}
	if clock.Step == 0 {
		clock.Step = DefaultStep
	}

	rows := make([]Row, 0, frames)
	res := &Result{MinPe: math.Inf(1), MaxPe: math.Inf(-1)}

	for idx := 0; idx < frames; idx++ {
		step := in
		step.Animate = true
		step.Phase = clock.PhaseAt(idx)

		f := e.Evaluate(step)
		if eq, ok := f.Policy.Get(); ok {
			res.Cleared++
			res.MinPe = math.Min(res.MinPe, eq.Pe)
			res.MaxPe = math.Max(res.MaxPe, eq.Pe)
		}
		rows = append(rows, Row{Index: idx, Phase: step.Phase, Frame: f})
	}

	if res.Cleared == 0 {
		res.MinPe, res.MaxPe = 0, 0
	}
	res.Rows = rows
	return res, nil
}

func (e *Engine) reference() Reference {
	if e == nil || e.Reference == "" {
		return ReferenceBase
	}
	return e.Reference
}
