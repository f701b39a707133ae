package anim

import "fmt"

// Handle identifies a live runtime object (document, artboard or state machine).
type Handle uint32

// Runtime loads documents and tracks every handle it has handed out. Objects
// created by the runtime are not garbage collected in the runtime's bookkeeping:
// the owner calls Release, and LiveHandles reports what is still held.
//
// Runtime is not safe for concurrent use, with one exception: Decode only
// parses and validates bytes and may run on any goroutine.
type Runtime struct {
	nextHandle Handle
	live       map[Handle]string // handle -> kind, for diagnostics
}

// NewRuntime returns a ready runtime.
func NewRuntime() *Runtime {
	return &Runtime{
		nextHandle: 1, // 0 is reserved as the invalid handle
		live:       make(map[Handle]string),
	}
}

// DecodedDocument is a validated document that has not been registered with a
// runtime yet.
type DecodedDocument struct {
	artboards []*ArtboardDef
}

// Decode parses and validates document bytes. It touches no runtime state.
func Decode(data []byte) (*DecodedDocument, error) {
	x, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	defs, err := buildDocument(x)
	if err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	return &DecodedDocument{artboards: defs}, nil
}

// Adopt registers a decoded document and returns the owned Document handle.
func (rt *Runtime) Adopt(d *DecodedDocument) *Document {
	return &Document{
		runtime:   rt,
		handle:    rt.acquire("document"),
		artboards: d.artboards,
	}
}

// Load decodes document bytes and registers the result.
func (rt *Runtime) Load(data []byte) (*Document, error) {
	d, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return rt.Adopt(d), nil
}

// NewStateMachineInstance binds a state machine definition to an artboard
// instance. The definition must belong to the artboard's definition.
func (rt *Runtime) NewStateMachineInstance(def *StateMachineDef, ab *Artboard) (*StateMachineInstance, error) {
	if def == nil || ab == nil {
		return nil, fmt.Errorf("state machine instance needs a definition and an artboard")
	}
	if ab.released {
		return nil, fmt.Errorf("artboard %q: %w", ab.def.Name, ErrReleased)
	}
	owned := false
	for _, sm := range ab.def.StateMachines {
		if sm == def {
			owned = true
			break
		}
	}
	if !owned {
		return nil, fmt.Errorf("state machine %q does not belong to artboard %q", def.Name, ab.def.Name)
	}
	return newStateMachineInstance(rt, def, ab), nil
}

// LiveHandles returns the number of objects that have not been released.
func (rt *Runtime) LiveHandles() int {
	return len(rt.live)
}

// LiveHandlesOf returns the number of unreleased objects of one kind
// ("document", "artboard" or "state machine").
func (rt *Runtime) LiveHandlesOf(kind string) int {
	n := 0
	for _, k := range rt.live {
		if k == kind {
			n++
		}
	}
	return n
}

func (rt *Runtime) acquire(kind string) Handle {
	h := rt.nextHandle
	rt.nextHandle++
	rt.live[h] = kind
	return h
}

func (rt *Runtime) release(h Handle) {
	delete(rt.live, h)
}
