package scenes

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/decker502/bearscene/pkg/config"
)

// Percentage maps the unbounded progress driver onto [0, 100) with an
// arctangent curve, rounded to three decimals.
func Percentage(driver float64) float64 {
	return math.Round(math.Atan(driver)/(math.Pi/2)*100*1000) / 1000
}

// Progress simulates the loading percentage. Each Tick advances the driver by
// the current step; the step slows down once the percentage reaches the slow
// threshold, and ticking stops at 100.
type Progress struct {
	cfg     config.ProgressConfig
	driver  float64
	step    float64
	percent float64
	done    bool

	// eased display value for the progress bar
	tween *gween.Tween
	shown float64
}

// NewProgress returns progress at 0%.
func NewProgress(cfg config.ProgressConfig) *Progress {
	return &Progress{cfg: cfg, step: cfg.Step}
}

// Tick advances the simulation by one interval.
func (p *Progress) Tick() {
	if p.done {
		return
	}
	p.driver += p.step
	p.percent = Percentage(p.driver)
	if p.percent >= 100 {
		p.done = true
	} else if p.percent >= p.cfg.SlowThreshold {
		p.step = p.cfg.SlowStep
	}

	if p.cfg.TweenMs > 0 {
		p.tween = gween.New(float32(p.shown), float32(p.percent), float32(p.cfg.TweenMs)/1000, ease.OutCubic)
	} else {
		p.shown = p.percent
	}
}

// Update eases the displayed value toward the current percentage.
func (p *Progress) Update(dt float64) {
	if p.tween == nil {
		return
	}
	v, finished := p.tween.Update(float32(dt))
	p.shown = float64(v)
	if finished {
		p.shown = p.percent
		p.tween = nil
	}
}

// Percent returns the current percentage.
func (p *Progress) Percent() float64 { return p.percent }

// Shown returns the eased percentage for display.
func (p *Progress) Shown() float64 { return p.shown }

// Step returns the current driver increment.
func (p *Progress) Step() float64 { return p.step }

// Done reports whether the percentage reached 100.
func (p *Progress) Done() bool { return p.done }
