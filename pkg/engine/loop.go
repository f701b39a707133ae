package engine

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/decker502/bearscene/internal/anim"
	"github.com/decker502/bearscene/pkg/components"
	"github.com/decker502/bearscene/pkg/ecs"
)

// Run starts the frame loop. The first frame is requested from the scheduler;
// every frame requests the next one until Shutdown or a failed frame.
func (e *Engine) Run() error {
	switch e.state {
	case StateReady:
	case StateRunning:
		return fmt.Errorf("engine already running")
	default:
		return ErrNotReady
	}
	e.state = StateRunning
	e.scheduler.RequestAnimationFrame(e.frame)
	return nil
}

// frame renders one frame at timestamp t. A panic stops the loop for good:
// it is logged, kept in Err and no further frame is requested.
func (e *Engine) frame(t time.Duration) {
	if e.state != StateRunning {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			e.frameErr = fmt.Errorf("frame %d panicked: %v", e.frames, r)
			e.state = StateStopped
			e.log.Error("render loop stopped",
				zap.Error(e.frameErr),
				zap.Stack("stack"))
		}
	}()

	e.render(t)
	e.scheduler.RequestAnimationFrame(e.frame)
}

// render draws one frame at timestamp t without requesting the next one:
// advance and draw the background, then every actor in spawn order, then
// evict offscreen actors. The first call latches the clock so it has zero
// elapsed time.
func (e *Engine) render(t time.Duration) {
	if !e.latched {
		e.lastTime = t
		e.latched = true
	}
	elapsed := (t - e.lastTime).Seconds()
	e.lastTime = t
	if elapsed < 0 {
		elapsed = 0
	}

	r := e.renderer
	r.Clear()

	e.backgroundSM.Advance(elapsed)
	e.background.Advance(elapsed)
	e.drawAligned(e.background, e.coverLayout(), nil)

	band := e.bandLayout()
	for _, id := range ecs.GetEntitiesWith1[*components.ActorComponent](e.entities) {
		actor, _ := ecs.GetComponent[*components.ActorComponent](e.entities, id)
		actor.StateMachine.Advance(elapsed)
		actor.Artboard.Advance(elapsed)
		e.drawAligned(actor.Artboard, band, actor)
	}

	e.ClearOffscreenBears()
	e.frames++
}

// drawAligned composites ab into the layout frame. For actors the position is
// stepped first and applied in artboard space after the alignment.
func (e *Engine) drawAligned(ab *anim.Artboard, l anim.Layout, actor *components.ActorComponent) {
	r := e.renderer
	r.Save()
	anim.Align(r, l.Fit, l.Alignment, l.Frame(), ab.Bounds())
	if actor != nil {
		actor.XPosition += e.cfg.Actors.Step
		r.Translate(actor.XPosition, 0)
	}
	ab.Draw(r)
	r.Restore()
}
