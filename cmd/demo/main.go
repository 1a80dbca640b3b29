package main

import (
	"flag"
	"fmt"
	"os"

	"supply-demand/internal/config"
	"supply-demand/internal/market"
	"supply-demand/internal/report"
	"supply-demand/internal/scenario"
)

// Demo:
// - Evaluate every preset on the baseline market
// - Print the info panel and chart captions for each
// - Optionally animate one preset and write the frames as CSV
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional; reads controls.reference, report.mode, animation.step)")
	mode := flag.String("mode", "", "Report mode: simple or pro (default from config, else simple)")
	animate := flag.String("animate", "", "Optional preset to animate")
	n := flag.Int("n", 12, "Number of frames to animate")
	outCSV := flag.String("out", "", "Optional path to write frames CSV (e.g. results/frames.csv)")
	flag.Parse()

	engine, m, clock, err := settings(*cfgPath, *mode)
	if err != nil {
		panic(err)
	}

	for _, s := range scenario.All() {
		in := scenario.Defaults()
		s.Apply(&in)
		f := engine.Evaluate(in)

		fmt.Printf("== %s (%s) ==\n", s.Label(), s.Name())
		for _, line := range report.Describe(f, m) {
			fmt.Println("  " + line)
		}
		for _, line := range report.Annotations(f) {
			fmt.Println("  * " + line)
		}
		fmt.Println()
	}

	if *animate == "" {
		return
	}
	in, err := scenario.Inputs(*animate)
	if err != nil {
		panic(err)
	}
	res, err := engine.Run(in, *n, clock)
	if err != nil {
		panic(err)
	}
	for _, row := range res.Rows {
		if eq, ok := row.Frame.Policy.Get(); ok {
			fmt.Printf("frame=%3d phase=%.2f Qe=%.3f Pe=%.3f\n", row.Index, row.Phase, eq.Qe, eq.Pe)
		} else {
			fmt.Printf("frame=%3d phase=%.2f no equilibrium\n", row.Index, row.Phase)
		}
	}
	if *outCSV != "" {
		if err := market.WriteFramesCSV(*outCSV, res.Rows); err != nil {
			panic(err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", *outCSV)
	}
}

// settings resolves the engine, report mode and animation clock from an
// optional config file. A non-empty mode overrides report.mode.
func settings(cfgPath, mode string) (*market.Engine, report.Mode, market.Clock, error) {
	cfg := config.Default()
	if cfgPath != "" {
		c, err := config.Load(cfgPath)
		if err != nil {
			return nil, "", market.Clock{}, err
		}
		cfg = c
	}
	if mode == "" {
		mode = cfg.Report.Mode
	}
	m, err := report.ParseMode(mode)
	if err != nil {
		return nil, "", market.Clock{}, err
	}
	engine, err := cfg.Engine()
	if err != nil {
		return nil, "", market.Clock{}, err
	}
	return engine, m, market.NewClock(cfg.Animation.Step), nil
}
