package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SceneConfigPath is the embedded location of the default scene configuration.
const SceneConfigPath = "data/scene.yaml"

// SceneConfig configures the loading scene.
//
// Configuration file location: data/scene.yaml
type SceneConfig struct {
	Assets     AssetsConfig   `yaml:"assets"`
	Background ArtboardConfig `yaml:"background"`
	Walk       WalkConfig     `yaml:"walk"`
	Actors     ActorsConfig   `yaml:"actors"`
	Spawn      SpawnConfig    `yaml:"spawn"`
	Progress   ProgressConfig `yaml:"progress"`
	Window     WindowConfig   `yaml:"window"`
}

// AssetsConfig locates the animation documents.
type AssetsConfig struct {
	WalkDocument       string `yaml:"walkDocument"`
	BackgroundDocument string `yaml:"backgroundDocument"`
}

// ArtboardConfig names an artboard and the state machine driving it.
type ArtboardConfig struct {
	Artboard     string `yaml:"artboard"`
	StateMachine string `yaml:"stateMachine"`
}

// WalkConfig names the walking character artboard and its variant input.
type WalkConfig struct {
	ArtboardConfig `yaml:",inline"`

	// VariantInput is the number input selecting the walk cycle
	VariantInput string `yaml:"variantInput"`

	// VariantCount is the number of walk cycles; variants are 0..VariantCount-1
	VariantCount int `yaml:"variantCount"`
}

// ActorsConfig controls actor movement and eviction.
type ActorsConfig struct {
	// StartX is the initial horizontal offset of a spawned actor
	StartX float64 `yaml:"startX"`

	// Step is added to every actor's offset once per animated frame
	Step float64 `yaml:"step"`

	// EvictionFactor evicts actors past EvictionFactor * canvas width
	EvictionFactor float64 `yaml:"evictionFactor"`

	// BandHeight is the height of the foreground band actors walk in
	BandHeight float64 `yaml:"bandHeight"`
}

// SpawnConfig is the random spawn interval, inclusive on both ends.
type SpawnConfig struct {
	MinIntervalMs int `yaml:"minIntervalMs"`
	MaxIntervalMs int `yaml:"maxIntervalMs"`
}

// MinInterval returns the shortest spawn delay.
func (s SpawnConfig) MinInterval() time.Duration {
	return time.Duration(s.MinIntervalMs) * time.Millisecond
}

// MaxInterval returns the longest spawn delay.
func (s SpawnConfig) MaxInterval() time.Duration {
	return time.Duration(s.MaxIntervalMs) * time.Millisecond
}

// ProgressConfig drives the simulated loading percentage.
type ProgressConfig struct {
	IntervalMs int `yaml:"intervalMs"`

	// Step is added to the progress driver on every tick until the
	// displayed percentage reaches SlowThreshold, then SlowStep is used
	Step          float64 `yaml:"step"`
	SlowStep      float64 `yaml:"slowStep"`
	SlowThreshold float64 `yaml:"slowThreshold"`

	// TweenMs eases the displayed bar between ticks; 0 disables easing
	TweenMs int `yaml:"tweenMs"`
}

// Interval returns the progress tick period.
func (p ProgressConfig) Interval() time.Duration {
	return time.Duration(p.IntervalMs) * time.Millisecond
}

// WindowConfig is the initial desktop window.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// DefaultSceneConfig returns the built-in configuration.
func DefaultSceneConfig() *SceneConfig {
	return &SceneConfig{
		Assets: AssetsConfig{
			WalkDocument:       "assets/scene/walk_cycles.anim",
			BackgroundDocument: "assets/scene/forest.anim",
		},
		Background: ArtboardConfig{
			Artboard:     "New Artboard",
			StateMachine: "State Machine 1",
		},
		Walk: WalkConfig{
			ArtboardConfig: ArtboardConfig{
				Artboard:     "Different Walks Main",
				StateMachine: "State Machine 1",
			},
			VariantInput: "walkType",
			VariantCount: 6,
		},
		Actors: ActorsConfig{
			StartX:         -550,
			Step:           5,
			EvictionFactor: 2,
			BandHeight:     300,
		},
		Spawn: SpawnConfig{
			MinIntervalMs: 1000,
			MaxIntervalMs: 3500,
		},
		Progress: ProgressConfig{
			IntervalMs:    100,
			Step:          0.2,
			SlowStep:      0.1,
			SlowThreshold: 70,
			TweenMs:       150,
		},
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Bear with us",
		},
	}
}

// ParseSceneConfig decodes YAML over the defaults and validates the result.
// Keys missing from data keep their default values.
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	cfg := DefaultSceneConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}
	return cfg, nil
}

// LoadSceneConfig loads a scene configuration file from disk.
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}
	return ParseSceneConfig(data)
}

// Validate checks that every value is usable.
func (c *SceneConfig) Validate() error {
	var errs []error

	if c.Assets.WalkDocument == "" || c.Assets.BackgroundDocument == "" {
		errs = append(errs, errors.New("both animation documents must be set"))
	}
	for _, ab := range []struct {
		what string
		cfg  ArtboardConfig
	}{{"background", c.Background}, {"walk", c.Walk.ArtboardConfig}} {
		if ab.cfg.Artboard == "" || ab.cfg.StateMachine == "" {
			errs = append(errs, fmt.Errorf("%s artboard and state machine names must be set", ab.what))
		}
	}
	if c.Walk.VariantInput == "" {
		errs = append(errs, errors.New("walk variant input name must be set"))
	}
	if c.Walk.VariantCount <= 0 {
		errs = append(errs, fmt.Errorf("walk variantCount must be positive, got %d", c.Walk.VariantCount))
	}
	if c.Actors.Step < 0 {
		errs = append(errs, fmt.Errorf("actors step must not be negative, got %.1f", c.Actors.Step))
	}
	if c.Actors.EvictionFactor <= 0 {
		errs = append(errs, fmt.Errorf("actors evictionFactor must be positive, got %.1f", c.Actors.EvictionFactor))
	}
	if c.Actors.BandHeight <= 0 {
		errs = append(errs, fmt.Errorf("actors bandHeight must be positive, got %.1f", c.Actors.BandHeight))
	}
	if c.Spawn.MinIntervalMs < 0 || c.Spawn.MinIntervalMs > c.Spawn.MaxIntervalMs {
		errs = append(errs, fmt.Errorf("spawn interval invalid: min(%d) > max(%d)",
			c.Spawn.MinIntervalMs, c.Spawn.MaxIntervalMs))
	}
	if c.Spawn.MaxIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("spawn maxIntervalMs must be positive, got %d", c.Spawn.MaxIntervalMs))
	}
	if c.Progress.IntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("progress intervalMs must be positive, got %d", c.Progress.IntervalMs))
	}
	if c.Progress.Step <= 0 || c.Progress.SlowStep <= 0 {
		errs = append(errs, errors.New("progress steps must be positive"))
	}
	if c.Progress.TweenMs < 0 {
		errs = append(errs, fmt.Errorf("progress tweenMs must not be negative, got %d", c.Progress.TweenMs))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}

	return errors.Join(errs...)
}
