package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"supply-demand/internal/analysis"
	"supply-demand/internal/config"
	"supply-demand/internal/logger"
	"supply-demand/internal/market"
	"supply-demand/internal/model"
	"supply-demand/internal/report"
	"supply-demand/internal/scenario"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "evaluate":
		cmdEvaluate(os.Args[2:])
	case "scenarios":
		cmdScenarios(os.Args[2:])
	case "animate":
		cmdAnimate(os.Args[2:])
	case "sweep":
		cmdSweep(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli evaluate --config examples/config.yaml [--scenario tax] [--mode pro] [--json]")
	fmt.Println("  cli scenarios")
	fmt.Println("  cli animate --config examples/config.yaml --frames 315 --out results/frames.csv")
	fmt.Println("  cli sweep --scenario baseline --param tax --from 0 --to 10 --step 0.5")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - without --config the baseline market is used")
	fmt.Println("  - --scenario overrides the scenario named in the config")
	fmt.Println("  - sweep parameters:", analysis.Parameters())
}

// loadConfig reads path (or the defaults), applies a scenario override and
// configures the global logger.
func loadConfig(path, scenarioName string) *config.Config {
	var cfg *config.Config
	if path == "" {
		cfg = config.Default()
	} else {
		c, err := config.Load(path)
		if err != nil {
			panic(err)
		}
		cfg = c
	}
	if scenarioName != "" {
		in, err := scenario.Inputs(scenarioName)
		if err != nil {
			panic(err)
		}
		cfg.Scenario = scenarioName
		cfg.SetInputs(in)
	}

	log := logger.GetLogger()
	if err := log.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.MaxAge); err != nil {
		panic(err)
	}
	return cfg
}

func cmdEvaluate(args []string) {
	fs := flag.NewFlagSet("evaluate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	name := fs.String("scenario", "", "Preset to evaluate (overrides config)")
	mode := fs.String("mode", "", "Report mode: simple or pro (default from config)")
	asJSON := fs.Bool("json", false, "Print the frame as JSON")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath, *name)
	if *mode != "" {
		cfg.Report.Mode = *mode
	}
	m, err := report.ParseMode(cfg.Report.Mode)
	if err != nil {
		panic(err)
	}
	engine, err := cfg.Engine()
	if err != nil {
		panic(err)
	}

	frame := engine.Evaluate(cfg.ToModelInputs())

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(frame); err != nil {
			panic(err)
		}
		return
	}

	for _, line := range report.Describe(frame, m) {
		fmt.Println(line)
	}
	for _, line := range report.Annotations(frame) {
		fmt.Println("*", line)
	}
	if inc, ok := analysis.Incidence(frame).Get(); ok {
		fmt.Printf("Incidence: buyers %s, sellers %s (buyer share %s)\n",
			report.Fixed(inc.BuyerBurden, 2), report.Fixed(inc.SellerBurden, 2), report.Fixed(inc.BuyerShare, 2))
	}
}

func cmdScenarios(args []string) {
	fs := flag.NewFlagSet("scenarios", flag.ExitOnError)
	_ = fs.Parse(args)

	engine := market.New()
	fmt.Printf("%-14s %-28s %-8s %-8s %-8s %-8s\n", "name", "label", "Qe", "Pe", "Qe'", "Pe'")
	for _, s := range scenario.All() {
		in := scenario.Defaults()
		s.Apply(&in)
		f := engine.Evaluate(in)
		fmt.Printf("%-14s %-28s %-8s %-8s %-8s %-8s\n",
			s.Name(), s.Label(), eqCell(f.Base, true), eqCell(f.Base, false), eqCell(f.Policy, true), eqCell(f.Policy, false))
	}
}

func cmdAnimate(args []string) {
	fs := flag.NewFlagSet("animate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	name := fs.String("scenario", "", "Preset to animate (overrides config)")
	frames := fs.Int("frames", 0, "Number of frames (default from config)")
	outPath := fs.String("out", "results/frames.csv", "Output CSV path")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath, *name)
	if *frames > 0 {
		cfg.Animation.Frames = *frames
	}
	engine, err := cfg.Engine()
	if err != nil {
		panic(err)
	}

	log := logger.GetLogger().WithComponent("cli")
	start := time.Now()
	res, err := engine.Run(cfg.ToModelInputs(), cfg.Animation.Frames, market.NewClock(cfg.Animation.Step))
	if err != nil {
		panic(err)
	}
	logger.LogPerformanceEntry(log, "cli", "animate", time.Since(start), logger.Fields{"frames": len(res.Rows)})

	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := market.WriteFramesCSV(*outPath, res.Rows); err != nil {
		panic(err)
	}

	fmt.Printf("Wrote %d rows to %s\n", len(res.Rows), *outPath)
	fmt.Printf("Cleared %d/%d frames, Pe range %.2f..%.2f\n", res.Cleared, len(res.Rows), res.MinPe, res.MaxPe)
}

func cmdSweep(args []string) {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	name := fs.String("scenario", "", "Preset to sweep from (overrides config)")
	param := fs.String("param", "", "Parameter to vary")
	from := fs.Float64("from", 0, "First value")
	to := fs.Float64("to", 10, "Last value (inclusive)")
	step := fs.Float64("step", 1, "Increment")
	_ = fs.Parse(args)

	if *param == "" {
		fmt.Println("--param is required")
		os.Exit(2)
	}

	cfg := loadConfig(*cfgPath, *name)
	engine, err := cfg.Engine()
	if err != nil {
		panic(err)
	}
	points, err := analysis.Sweep(engine, cfg.ToModelInputs(), *param, *from, *to, *step)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%-10s %-8s %-8s %-10s %-10s\n", *param, "Qe'", "Pe'", "shortage", "surplus")
	for _, p := range points {
		fmt.Printf("%-10.2f %-8s %-8s %-10s %-10s\n",
			p.Value, eqCell(p.Frame.Policy, true), eqCell(p.Frame.Policy, false),
			gapCell(p.Frame.Ceiling), gapCell(p.Frame.Floor))
	}
}

func eqCell(o model.Optional[model.Equilibrium], quantity bool) string {
	eq, ok := o.Get()
	if !ok {
		return "-"
	}
	if quantity {
		return report.Fixed(eq.Qe, 2)
	}
	return report.Fixed(eq.Pe, 2)
}

func gapCell(o model.Optional[model.PriceControlResult]) string {
	pc, ok := o.Get()
	if !ok || !pc.Binds() {
		return "-"
	}
	return report.Fixed(pc.Gap, 2)
}
