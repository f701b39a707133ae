package utils

import (
	"math/rand/v2"
	"testing"
	"time"
)

func TestRandomInterval_DelayWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	lo, hi := 1000*time.Millisecond, 3500*time.Millisecond

	for i := 0; i < 500; i++ {
		ri := NewRandomInterval(func() {}, lo, hi, rng)
		d := ri.Remaining()
		if d < lo || d > hi {
			t.Fatalf("Delay %v outside [%v, %v]", d, lo, hi)
		}
		if d%time.Millisecond != 0 {
			t.Fatalf("Delay %v is not whole milliseconds", d)
		}
	}
}

func TestRandomInterval_BoundsInclusive(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	seen := map[time.Duration]bool{}
	for i := 0; i < 200; i++ {
		seen[NewRandomInterval(func() {}, time.Millisecond, 2*time.Millisecond, rng).Remaining()] = true
	}
	if !seen[time.Millisecond] || !seen[2*time.Millisecond] {
		t.Errorf("Both ends should be drawn, saw %v", seen)
	}
}

func TestRandomInterval_FiresAndRearms(t *testing.T) {
	calls := 0
	ri := NewInterval(func() { calls++ }, 100*time.Millisecond)

	ri.Advance(99 * time.Millisecond)
	if calls != 0 {
		t.Fatalf("Fired early: %d calls", calls)
	}
	ri.Advance(time.Millisecond)
	if calls != 1 {
		t.Fatalf("Expected 1 call, got %d", calls)
	}
	if ri.Remaining() != 100*time.Millisecond {
		t.Errorf("Expected re-armed 100ms, got %v", ri.Remaining())
	}

	// a long tick catches up on every missed delay
	ri.Advance(350 * time.Millisecond)
	if calls != 4 {
		t.Errorf("Expected 4 calls, got %d", calls)
	}
	if ri.Remaining() != 50*time.Millisecond {
		t.Errorf("Expected 50ms left, got %v", ri.Remaining())
	}
}

func TestRandomInterval_Clear(t *testing.T) {
	calls := 0
	var ri *RandomInterval
	ri = NewInterval(func() {
		calls++
		ri.Clear()
	}, 10*time.Millisecond)

	ri.Advance(time.Second)
	if calls != 1 {
		t.Errorf("Clear inside the callback should stop further calls, got %d", calls)
	}
	ri.Advance(time.Second)
	if calls != 1 || !ri.Cleared() {
		t.Errorf("Cleared interval fired again: %d calls", calls)
	}
}

func TestRandomInterval_ZeroDelay(t *testing.T) {
	calls := 0
	ri := NewInterval(func() { calls++ }, 0)
	ri.Advance(time.Second)
	ri.Advance(0)
	if calls != 2 {
		t.Errorf("Zero delay should fire once per Advance, got %d", calls)
	}
}

func TestRandomInterval_SwappedBounds(t *testing.T) {
	ri := NewRandomInterval(func() {}, 20*time.Millisecond, 10*time.Millisecond, nil)
	if d := ri.Remaining(); d < 10*time.Millisecond || d > 20*time.Millisecond {
		t.Errorf("Delay %v outside swapped bounds", d)
	}
}
