package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"supply-demand/internal/market"
	"supply-demand/internal/model"
	"supply-demand/internal/report"
	"supply-demand/internal/scenario"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
//
// Market settings are resolved in three layers: Scenario (a named preset, or
// the defaults), then ScenarioFile, then the explicit Market/Policy/Controls
// values in this file. Later layers override non-zero fields of earlier ones.
type Config struct {
	Scenario     string `yaml:"scenario"`
	ScenarioFile string `yaml:"scenario_file"`

	Market    MarketConfig    `yaml:"market"`
	Policy    PolicyConfig    `yaml:"policy"`
	Controls  ControlsConfig  `yaml:"controls"`
	Animation AnimationConfig `yaml:"animation"`
	Report    ReportConfig    `yaml:"report"`
	Logging   LoggingConfig   `yaml:"logging"`
	Server    ServerConfig    `yaml:"server"`
}

type CurveConfig struct {
	Intercept float64 `yaml:"intercept"`
	Slope     float64 `yaml:"slope"`
	Shift     float64 `yaml:"shift"`
}

type MarketConfig struct {
	Demand CurveConfig `yaml:"demand"`
	Supply CurveConfig `yaml:"supply"`
}

type AmountConfig struct {
	Enabled bool    `yaml:"enabled"`
	Amount  float64 `yaml:"amount"`
}

type PolicyConfig struct {
	Tax     AmountConfig `yaml:"tax"`
	Subsidy AmountConfig `yaml:"subsidy"`
}

type LevelConfig struct {
	Enabled bool    `yaml:"enabled"`
	Level   float64 `yaml:"level"`
}

type ControlsConfig struct {
	Ceiling LevelConfig `yaml:"ceiling"`
	Floor   LevelConfig `yaml:"floor"`
	// Reference is "base" or "policy".
	Reference string `yaml:"reference"`
}

type AnimationConfig struct {
	Enabled bool    `yaml:"enabled"`
	Step    float64 `yaml:"step"`
	Phase   float64 `yaml:"phase"`
	Frames  int     `yaml:"frames"`
}

type ReportConfig struct {
	Mode string `yaml:"mode"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
	MaxAge int    `yaml:"max_age"`
}

type ServerConfig struct {
	Address string `yaml:"address"`
	// RateLimit is requests per second per client; 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
	Burst     int     `yaml:"burst"`
}

// Default mirrors scenario.Defaults plus ambient settings.
func Default() *Config {
	c := &Config{Scenario: "baseline"}
	c.SetInputs(scenario.Defaults())
	c.applyDefaults()
	return c
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	base := scenario.Defaults()
	if c.Scenario != "" {
		base, err = scenario.Inputs(c.Scenario)
		if err != nil {
			return nil, err
		}
	}
	layered := FromInputs(base)

	// If scenario_file is set, overlay it on the preset.
	if c.ScenarioFile != "" {
		scenarioPath := c.ScenarioFile
		if !filepath.IsAbs(scenarioPath) {
			// Relative paths are tried against the config file directory first.
			cand := filepath.Join(filepath.Dir(path), scenarioPath)
			if _, err := os.Stat(cand); err == nil {
				scenarioPath = cand
			}
		}
		loaded, err := loadScenarioFile(scenarioPath)
		if err != nil {
			return nil, err
		}
		layered = Merge(layered, loaded)
	}

	merged := Merge(layered, c)
	c.Market, c.Policy, c.Controls.Ceiling, c.Controls.Floor = merged.Market, merged.Policy, merged.Controls.Ceiling, merged.Controls.Floor
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Animation.Step == 0 {
		c.Animation.Step = market.DefaultStep
	}
	if c.Animation.Frames == 0 {
		c.Animation.Frames = 315
	}
	if c.Controls.Reference == "" {
		c.Controls.Reference = string(market.ReferenceBase)
	}
	if c.Report.Mode == "" {
		c.Report.Mode = string(report.ModeSimple)
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
}

// Validate checks every control against the ranges the sliders allow.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	var errs []error
	check := func(name string, v, lo, hi float64) {
		if v < lo || v > hi {
			errs = append(errs, fmt.Errorf("%s must be in [%g, %g], got %g", name, lo, hi, v))
		}
	}

	check("market.demand.intercept", c.Market.Demand.Intercept, 10, 30)
	check("market.demand.slope", c.Market.Demand.Slope, 0.5, 3)
	check("market.demand.shift", c.Market.Demand.Shift, -5, 5)
	check("market.supply.intercept", c.Market.Supply.Intercept, 0, 15)
	check("market.supply.slope", c.Market.Supply.Slope, 0.5, 3)
	check("market.supply.shift", c.Market.Supply.Shift, -5, 5)
	check("policy.tax.amount", c.Policy.Tax.Amount, 0, 10)
	check("policy.subsidy.amount", c.Policy.Subsidy.Amount, 0, 10)
	check("controls.ceiling.level", c.Controls.Ceiling.Level, 0, model.PMax)
	check("controls.floor.level", c.Controls.Floor.Level, 0, model.PMax)

	if _, err := market.ParseReference(c.Controls.Reference); err != nil {
		errs = append(errs, fmt.Errorf("controls.reference: %w", err))
	}
	if _, err := report.ParseMode(c.Report.Mode); err != nil {
		errs = append(errs, fmt.Errorf("report.mode: %w", err))
	}
	if c.Animation.Step <= 0 {
		errs = append(errs, errors.New("animation.step must be > 0"))
	}
	if c.Animation.Frames < 0 {
		errs = append(errs, errors.New("animation.frames must be >= 0"))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, errors.New("server.rate_limit must be >= 0"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config invalid: %w", errors.Join(errs...))
	}
	return nil
}

// ToModelInputs converts the market section into one evaluation snapshot.
func (c *Config) ToModelInputs() model.MarketInputs {
	return model.MarketInputs{
		Demand: model.CurveInputs{
			Intercept: c.Market.Demand.Intercept,
			Slope:     c.Market.Demand.Slope,
			Shift:     c.Market.Demand.Shift,
		},
		Supply: model.CurveInputs{
			Intercept: c.Market.Supply.Intercept,
			Slope:     c.Market.Supply.Slope,
			Shift:     c.Market.Supply.Shift,
		},
		Tax:     model.Amount{Enabled: c.Policy.Tax.Enabled, Value: c.Policy.Tax.Amount},
		Subsidy: model.Amount{Enabled: c.Policy.Subsidy.Enabled, Value: c.Policy.Subsidy.Amount},
		Ceiling: model.PriceLevel{Enabled: c.Controls.Ceiling.Enabled, Level: c.Controls.Ceiling.Level},
		Floor:   model.PriceLevel{Enabled: c.Controls.Floor.Enabled, Level: c.Controls.Floor.Level},
		Animate: c.Animation.Enabled,
		Phase:   c.Animation.Phase,
	}
}

// SetInputs overwrites the market, policy and control levels from in.
func (c *Config) SetInputs(in model.MarketInputs) {
	src := FromInputs(in)
	c.Market = src.Market
	c.Policy = src.Policy
	c.Controls.Ceiling = src.Controls.Ceiling
	c.Controls.Floor = src.Controls.Floor
	c.Animation.Enabled = in.Animate
	c.Animation.Phase = in.Phase
}

// Engine builds a market engine with the configured reference equilibrium.
func (c *Config) Engine() (*market.Engine, error) {
	ref, err := market.ParseReference(c.Controls.Reference)
	if err != nil {
		return nil, err
	}
	return market.WithReference(ref), nil
}

// FromInputs wraps a snapshot as a Config holding only market settings.
func FromInputs(in model.MarketInputs) Config {
	return Config{
		Market: MarketConfig{
			Demand: CurveConfig(in.Demand),
			Supply: CurveConfig(in.Supply),
		},
		Policy: PolicyConfig{
			Tax:     AmountConfig{Enabled: in.Tax.Enabled, Amount: in.Tax.Value},
			Subsidy: AmountConfig{Enabled: in.Subsidy.Enabled, Amount: in.Subsidy.Value},
		},
		Controls: ControlsConfig{
			Ceiling: LevelConfig(in.Ceiling),
			Floor:   LevelConfig(in.Floor),
		},
	}
}

type scenarioFileWrapper struct {
	Market   MarketConfig   `yaml:"market"`
	Policy   PolicyConfig   `yaml:"policy"`
	Controls ControlsConfig `yaml:"controls"`
}

func loadScenarioFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var w scenarioFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return Config{Market: w.Market, Policy: w.Policy, Controls: w.Controls}, nil
}

// Merge overlays non-zero market fields from override onto base.
// Toggles can only be switched on by an override, never off.
func Merge(base, override Config) Config {
	out := base
	out.Market.Demand = mergeCurve(base.Market.Demand, override.Market.Demand)
	out.Market.Supply = mergeCurve(base.Market.Supply, override.Market.Supply)
	out.Policy.Tax = mergeAmount(base.Policy.Tax, override.Policy.Tax)
	out.Policy.Subsidy = mergeAmount(base.Policy.Subsidy, override.Policy.Subsidy)
	out.Controls.Ceiling = mergeLevel(base.Controls.Ceiling, override.Controls.Ceiling)
	out.Controls.Floor = mergeLevel(base.Controls.Floor, override.Controls.Floor)
	if override.Controls.Reference != "" {
		out.Controls.Reference = override.Controls.Reference
	}
	return out
}

func mergeCurve(base, override CurveConfig) CurveConfig {
	out := base
	if override.Intercept != 0 {
		out.Intercept = override.Intercept
	}
	if override.Slope != 0 {
		out.Slope = override.Slope
	}
	// Note: a zero shift cannot override a preset shift.
	if override.Shift != 0 {
		out.Shift = override.Shift
	}
	return out
}

func mergeAmount(base, override AmountConfig) AmountConfig {
	out := base
	if override.Enabled {
		out.Enabled = true
	}
	if override.Amount != 0 {
		out.Amount = override.Amount
	}
	return out
}

func mergeLevel(base, override LevelConfig) LevelConfig {
	out := base
	if override.Enabled {
		out.Enabled = true
	}
	if override.Level != 0 {
		out.Level = override.Level
	}
	return out
}
