package scenario

import "supply-demand/internal/model"

// preset is a Scenario backed by a function over freshly reset controls.
type preset struct {
	name  string
	label string
	set   func(in *model.MarketInputs)
}

func (p preset) Name() string  { return p.name }
func (p preset) Label() string { return p.label }

func (p preset) Apply(in *model.MarketInputs) {
	*in = Defaults()
	if p.set != nil {
		p.set(in)
	}
}

var presets = []preset{
	{name: "custom", label: "Free play (manual)"},
	{name: "baseline", label: "Normal market"},
	{
		name:  "demand_boom",
		label: "More buyers arrive",
		set:   func(in *model.MarketInputs) { in.Demand.Shift = 4 },
	},
	{
		name:  "supply_shock",
		label: "Bad harvest (less supply)",
		set:   func(in *model.MarketInputs) { in.Supply.Shift = 4 },
	},
	{
		name:  "ceiling",
		label: "Max price (ceiling)",
		set: func(in *model.MarketInputs) {
			in.Ceiling = model.PriceLevel{Enabled: true, Level: 10}
		},
	},
	{
		name:  "floor",
		label: "Min price (floor)",
		set: func(in *model.MarketInputs) {
			in.Floor = model.PriceLevel{Enabled: true, Level: 16}
		},
	},
	{
		name:  "tax",
		label: "Tax on sellers",
		set: func(in *model.MarketInputs) {
			in.Tax = model.Amount{Enabled: true, Value: 7}
		},
	},
	{
		name:  "subsidy",
		label: "Subsidy for sellers",
		set: func(in *model.MarketInputs) {
			in.Tax.Enabled = false
			in.Subsidy = model.Amount{Enabled: true, Value: 7}
		},
	},
}
