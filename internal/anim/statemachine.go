package anim

// StateMachineInstance drives one artboard. It is owned 1:1 with that artboard
// and follows the same release discipline.
type StateMachineInstance struct {
	runtime  *Runtime
	handle   Handle
	def      *StateMachineDef
	artboard *Artboard
	inputs   []*Input
	state    int // index into def.States, -1 before the first Advance
	time     float64
	released bool
}

func newStateMachineInstance(rt *Runtime, def *StateMachineDef, ab *Artboard) *StateMachineInstance {
	sm := &StateMachineInstance{
		runtime:  rt,
		handle:   rt.acquire("state machine"),
		def:      def,
		artboard: ab,
		inputs:   make([]*Input, len(def.Inputs)),
		state:    -1,
	}
	for i, in := range def.Inputs {
		sm.inputs[i] = &Input{name: in.Name, kind: in.Kind, value: in.Value}
	}
	return sm
}

// Name returns the state machine name.
func (sm *StateMachineInstance) Name() string { return sm.def.Name }

// Handle returns the runtime handle of this instance.
func (sm *StateMachineInstance) Handle() Handle { return sm.handle }

// InputCount returns the number of declared inputs.
func (sm *StateMachineInstance) InputCount() int { return len(sm.inputs) }

// Input returns the i-th input in declaration order.
func (sm *StateMachineInstance) Input(i int) *Input { return sm.inputs[i] }

// Time returns the time spent in the current state, in seconds.
func (sm *StateMachineInstance) Time() float64 { return sm.time }

// CurrentState returns the name of the active state, or "" before the first
// Advance or when no state matches.
func (sm *StateMachineInstance) CurrentState() string {
	if sm.state < 0 {
		return ""
	}
	return sm.def.States[sm.state].Name
}

// Advance resolves the active state from the current input values, moves its
// timeline by elapsed seconds and applies the resulting poses to the artboard.
// Entering a different state restarts its timeline.
func (sm *StateMachineInstance) Advance(elapsed float64) {
	if sm.released || sm.artboard.released {
		return
	}

	next := sm.resolveState()
	if next != sm.state {
		sm.state = next
		sm.time = 0
	}
	if sm.state < 0 {
		return
	}
	sm.time += elapsed

	a := sm.def.States[sm.state].Animation
	shapes := sm.artboard.def.Shapes
	for i := range shapes {
		if p, ok := a.sample(i, sm.time); ok {
			sm.artboard.applyPose(i, p)
		} else {
			sm.artboard.applyPose(i, restPose(&shapes[i]))
		}
	}
}

// resolveState returns the first state whose condition holds, falling back to
// the first unconditioned state.
func (sm *StateMachineInstance) resolveState() int {
	fallback := -1
	for i, st := range sm.def.States {
		if st.Input < 0 {
			if fallback < 0 {
				fallback = i
			}
			continue
		}
		if sm.inputs[st.Input].value == st.Equals {
			return i
		}
	}
	return fallback
}

// Release frees the state machine. Further calls are no-ops.
func (sm *StateMachineInstance) Release() {
	if sm.released {
		return
	}
	sm.released = true
	sm.runtime.release(sm.handle)
}

// Released reports whether Release has been called.
func (sm *StateMachineInstance) Released() bool { return sm.released }
