// Package report renders frames as the text shown next to the chart.
package report

import (
	"fmt"
	"math"
	"strings"

	"supply-demand/internal/market"
	"supply-demand/internal/model"

	"github.com/shopspring/decimal"
)

type Mode string

const (
	ModeSimple Mode = "simple"
	ModePro    Mode = "pro"
)

// ParseMode accepts "simple" (alias "kids"), "pro" or "" (simple).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "simple", "kids":
		return ModeSimple, nil
	case "pro":
		return ModePro, nil
	default:
		return "", fmt.Errorf("invalid mode %q, expected simple or pro", s)
	}
}

// Fixed formats x with exactly places decimals. Non-finite values, which a
// zero slope can produce, render as "∞", "-∞" or "n/a".
func Fixed(x float64, places int32) string {
	switch {
	case math.IsNaN(x):
		return "n/a"
	case math.IsInf(x, 1):
		return "∞"
	case math.IsInf(x, -1):
		return "-∞"
	}
	return decimal.NewFromFloat(x).StringFixed(places)
}

// Describe returns the info panel lines for f.
func Describe(f market.Frame, mode Mode) []string {
	in := f.Inputs
	ic := f.Intercepts
	var lines []string

	if mode == ModePro {
		lines = append(lines,
			fmt.Sprintf("Demand: price = (%s + shift) − %s × Q", Fixed(in.Demand.Intercept, 1), Fixed(in.Demand.Slope, 2)),
			fmt.Sprintf("Supply: price = (%s + shift + tax − subsidy) + %s × Q", Fixed(in.Supply.Intercept, 1), Fixed(in.Supply.Slope, 2)),
			"P = price, Q = quantity. The dot is where they agree.",
			fmt.Sprintf("Demand shift = %s, supply shift = %s", Fixed(ic.DemandShift, 1), Fixed(ic.SupplyShift, 1)),
		)
	} else {
		lines = append(lines,
			"Blue line: buyers (demand).",
			"Red line: sellers (supply).",
			"The dot shows a fair price and quantity.",
			fmt.Sprintf("Move buyers: demand shift = %s", Fixed(ic.DemandShift, 1)),
			fmt.Sprintf("Move sellers: supply shift = %s", Fixed(ic.SupplyShift, 1)),
		)
	}
	lines = append(lines, fmt.Sprintf("Tax = %s, subsidy = %s", Fixed(ic.Policy.Tax, 1), Fixed(ic.Policy.Subsidy, 1)))

	if eq, ok := f.Base.Get(); ok {
		lines = append(lines, fmt.Sprintf("Start: price ≈ %s, quantity ≈ %s", Fixed(eq.Pe, 2), Fixed(eq.Qe, 2)))
	}
	if eq, ok := f.Policy.Get(); ok {
		lines = append(lines, fmt.Sprintf("After policy: price ≈ %s, quantity ≈ %s", Fixed(eq.Pe, 2), Fixed(eq.Qe, 2)))
	}
	return lines
}

// Annotations returns the chart captions: equilibrium markers, price-control
// messages and the wedge label, in drawing order.
func Annotations(f market.Frame) []string {
	var out []string
	if eq, ok := f.Base.Get(); ok {
		out = append(out, EquilibriumLabel("Starting equilibrium", eq))
	}
	if f.ShowPolicyEquilibrium() {
		eq, _ := f.Policy.Get()
		out = append(out, EquilibriumLabel("New equilibrium", eq))
	}
	if pc, ok := f.Ceiling.Get(); ok {
		out = append(out, fmt.Sprintf("Max price = %s", Fixed(pc.PriceLevel, 2)), CeilingMessage(pc))
		out = append(out, markerTooltips(pc, "max")...)
	}
	if pc, ok := f.Floor.Get(); ok {
		out = append(out, fmt.Sprintf("Min price = %s", Fixed(pc.PriceLevel, 2)), FloorMessage(pc))
		out = append(out, markerTooltips(pc, "min")...)
	}
	if w, ok := f.Wedge.Get(); ok {
		p := f.Intercepts.Policy
		out = append(out, WedgeTooltip(w, p.Tax, p.Subsidy))
	}
	return out
}

func EquilibriumLabel(label string, eq model.Equilibrium) string {
	return fmt.Sprintf("%s (Q ≈ %s, P ≈ %s)", label, Fixed(eq.Qe, 2), Fixed(eq.Pe, 2))
}

func CeilingMessage(pc model.PriceControlResult) string {
	if pc.BindingDirection == model.BindingShortage {
		return fmt.Sprintf("Max price is below the balance price → shortage ≈ %s units", Fixed(pc.Gap, 2))
	}
	return "Max price is at or above the balance price → no shortage created"
}

func FloorMessage(pc model.PriceControlResult) string {
	if pc.BindingDirection == model.BindingSurplus {
		return fmt.Sprintf("Min price is above the balance price → surplus ≈ %s units", Fixed(pc.Gap, 2))
	}
	return "Min price is at or below the balance price → no surplus created"
}

// WedgeLabel picks the qualifier from the signs of tax and subsidy.
func WedgeLabel(tax, subsidy float64) string {
	switch {
	case tax > 0 && subsidy <= 0:
		return fmt.Sprintf("Tax gap ≈ %s per unit", Fixed(tax, 2))
	case subsidy > 0 && tax <= 0:
		return fmt.Sprintf("Subsidy gap ≈ %s per unit", Fixed(subsidy, 2))
	default:
		return fmt.Sprintf("Net gap ≈ %s per unit", Fixed(tax-subsidy, 2))
	}
}

func WedgeTooltip(w model.WedgeResult, tax, subsidy float64) string {
	return fmt.Sprintf("%s\nBuyer price ≈ %s, seller price ≈ %s", WedgeLabel(tax, subsidy), Fixed(w.BuyerPrice, 2), Fixed(w.SellerPrice, 2))
}

func markerTooltips(pc model.PriceControlResult, which string) []string {
	var out []string
	if pc.DemandMarkerVisible() {
		out = append(out, fmt.Sprintf("Demand at %s price: Q ≈ %s", which, Fixed(pc.QuantityDemanded, 2)))
	}
	if pc.SupplyMarkerVisible() {
		out = append(out, fmt.Sprintf("Supply at %s price: Q ≈ %s", which, Fixed(pc.QuantitySupplied, 2)))
	}
	return out
}
