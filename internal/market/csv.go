package market

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"supply-demand/internal/model"
)

var csvHeader = []string{
	"index",
	"phase",
	"demand_shift",
	"supply_shift",
	"demand_intercept",
	"supply_intercept",
	"supply_policy_intercept",
	"tax",
	"subsidy",
	"base_qe",
	"base_pe",
	"policy_qe",
	"policy_pe",
	"ceiling_level",
	"ceiling_qd",
	"ceiling_qs",
	"ceiling_gap",
	"ceiling_binding",
	"floor_level",
	"floor_qd",
	"floor_qs",
	"floor_gap",
	"floor_binding",
	"buyer_price",
	"seller_price",
	"per_unit_gap",
}

func WriteFramesCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeFramesCSV(f, rows)
}

// EncodeFramesCSV writes one line per row. Undefined results are empty cells.
func EncodeFramesCSV(out io.Writer, rows []Row) error {
	w := csv.NewWriter(out)

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range rows {
		f := r.Frame
		rec := []string{
			strconv.Itoa(r.Index),
			fmtFloat(r.Phase),
			fmtFloat(f.Intercepts.DemandShift),
			fmtFloat(f.Intercepts.SupplyShift),
			fmtFloat(f.Intercepts.DemandBase),
			fmtFloat(f.Intercepts.SupplyBase),
			fmtFloat(f.Intercepts.SupplyPolicy),
			fmtFloat(f.Intercepts.Policy.Tax),
			fmtFloat(f.Intercepts.Policy.Subsidy),
		}
		rec = append(rec, equilibriumCells(f.Base)...)
		rec = append(rec, equilibriumCells(f.Policy)...)
		rec = append(rec, controlCells(f.Ceiling)...)
		rec = append(rec, controlCells(f.Floor)...)
		rec = append(rec, wedgeCells(f.Wedge)...)
		if err := w.Write(rec); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func equilibriumCells(o model.Optional[model.Equilibrium]) []string {
	eq, ok := o.Get()
	if !ok {
		return []string{"", ""}
	}
	return []string{fmtFloat(eq.Qe), fmtFloat(eq.Pe)}
}

func controlCells(o model.Optional[model.PriceControlResult]) []string {
	pc, ok := o.Get()
	if !ok {
		return []string{"", "", "", "", ""}
	}
	return []string{
		fmtFloat(pc.PriceLevel),
		fmtFloat(pc.QuantityDemanded),
		fmtFloat(pc.QuantitySupplied),
		fmtFloat(pc.Gap),
		string(pc.BindingDirection),
	}
}

func wedgeCells(o model.Optional[model.WedgeResult]) []string {
	wr, ok := o.Get()
	if !ok {
		return []string{"", "", ""}
	}
	return []string{fmtFloat(wr.BuyerPrice), fmtFloat(wr.SellerPrice), fmtFloat(wr.PerUnitGap)}
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
