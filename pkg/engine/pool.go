package engine

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/decker502/bearscene/pkg/components"
	"github.com/decker502/bearscene/pkg/ecs"
)

// AddBear spawns a walking actor with a random walk cycle at the start
// position and returns its entity ID. The pool has no upper bound.
func (e *Engine) AddBear() (ecs.EntityID, error) {
	if e.state != StateReady && e.state != StateRunning {
		return 0, ErrNotReady
	}
	return e.addActor(e.randomVariant())
}

func (e *Engine) randomVariant() int {
	if e.rng != nil {
		return e.rng.IntN(e.cfg.Walk.VariantCount)
	}
	return rand.IntN(e.cfg.Walk.VariantCount)
}

// addActor instantiates a walk artboard with its state machine and inserts it
// into the pool. Nothing is leaked on failure.
func (e *Engine) addActor(variant int) (ecs.EntityID, error) {
	walk := e.cfg.Walk

	ab, err := e.store.Artboard(e.walkDoc, walk.Artboard)
	if err != nil {
		return 0, err
	}
	sm, err := e.store.StateMachine(e.walkDoc, ab, walk.StateMachine)
	if err != nil {
		ab.Release()
		return 0, err
	}
	input, err := e.store.NumberInput(e.walkDoc, sm, walk.VariantInput)
	if err != nil {
		sm.Release()
		ab.Release()
		return 0, err
	}
	input.SetValue(float64(variant))

	id := e.entities.CreateEntity()
	e.entities.AddComponent(id, &components.ActorComponent{
		Artboard:     ab,
		StateMachine: sm,
		Variant:      input,
		XPosition:    e.cfg.Actors.StartX,
	})
	e.spawned++

	e.log.Debug("actor spawned",
		zap.Uint64("id", uint64(id)),
		zap.Int("variant", variant),
		zap.Int("live", e.entities.EntityCount()))
	return id, nil
}

// ClearOffscreenBears evicts every actor past EvictionFactor times the canvas
// width and returns how many were evicted. The first pass releases and marks,
// the second removes, so the pool is never mutated while it is scanned.
func (e *Engine) ClearOffscreenBears() int {
	threshold := e.cfg.Actors.EvictionFactor * float64(e.canvas.Width)

	for _, id := range ecs.GetEntitiesWith1[*components.ActorComponent](e.entities) {
		actor, _ := ecs.GetComponent[*components.ActorComponent](e.entities, id)
		if actor.XPosition > threshold {
			actor.Release()
			e.entities.DestroyEntity(id)
		}
	}

	removed := e.entities.RemoveMarkedEntities()
	if len(removed) > 0 {
		e.evicted += len(removed)
		e.log.Debug("actors evicted",
			zap.Int("count", len(removed)),
			zap.Int("live", e.entities.EntityCount()))
	}
	return len(removed)
}

// ActorCount returns the number of live actors.
func (e *Engine) ActorCount() int {
	return e.entities.EntityCount()
}

// Actor returns the live actor with the given ID.
func (e *Engine) Actor(id ecs.EntityID) (*components.ActorComponent, bool) {
	return ecs.GetComponent[*components.ActorComponent](e.entities, id)
}

// Actors returns the live actors in spawn order.
func (e *Engine) Actors() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.ActorComponent](e.entities)
}
