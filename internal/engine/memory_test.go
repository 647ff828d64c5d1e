package engine

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ashfall-games/intothedark/internal/model"
)

func TestAccumulatorIncrement(t *testing.T) {
	a := NewAccumulator()

	if err := a.Increment(model.AxisKindness, 5); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if err := a.Increment(model.AxisKindness, 10); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if err := a.Increment(model.AxisTruth, 5); err != nil {
		t.Fatalf("increment: %v", err)
	}

	want := model.Snapshot{
		model.AxisKindness:  15,
		model.AxisObsession: 0,
		model.AxisTruth:     5,
		model.AxisTrust:     0,
	}
	if diff := cmp.Diff(want, a.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestAccumulatorSumMatchesIncrements(t *testing.T) {
	a := NewAccumulator()

	increments := []struct {
		axis   model.Axis
		amount int
	}{
		{model.AxisKindness, 5},
		{model.AxisObsession, 5},
		{model.AxisKindness, 0},
		{model.AxisTrust, 10},
		{model.AxisTruth, 5},
		{model.AxisTrust, 5},
	}

	var want int
	for _, inc := range increments {
		if err := a.Increment(inc.axis, inc.amount); err != nil {
			t.Fatalf("increment %s %d: %v", inc.axis, inc.amount, err)
		}
		want += inc.amount
	}

	if got := a.Snapshot().Total(); got != want {
		t.Errorf("expected total %d, got %d", want, got)
	}
}

func TestAccumulatorInvalidAxis(t *testing.T) {
	a := NewAccumulator()

	err := a.Increment("rage", 5)
	if !errors.Is(err, ErrInvalidAxis) {
		t.Fatalf("expected ErrInvalidAxis, got %v", err)
	}
	if total := a.Snapshot().Total(); total != 0 {
		t.Errorf("failed increment mutated state: total %d", total)
	}
}

func TestAccumulatorInvalidAmount(t *testing.T) {
	a := NewAccumulator()

	err := a.Increment(model.AxisTrust, -1)
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if total := a.Snapshot().Total(); total != 0 {
		t.Errorf("failed increment mutated state: total %d", total)
	}
}

func TestAccumulatorSnapshotAlwaysFull(t *testing.T) {
	a := NewAccumulator()
	snap := a.Snapshot()

	if len(snap) != len(model.Axes) {
		t.Fatalf("expected %d axes, got %d", len(model.Axes), len(snap))
	}
	for _, axis := range model.Axes {
		if v, ok := snap[axis]; !ok || v != 0 {
			t.Errorf("axis %s: expected present and zero, got %d (present=%v)", axis, v, ok)
		}
	}
}

func TestAccumulatorSnapshotIsCopy(t *testing.T) {
	a := NewAccumulator()
	snap := a.Snapshot()
	snap[model.AxisKindness] = 99

	if got := a.Snapshot()[model.AxisKindness]; got != 0 {
		t.Errorf("mutating a snapshot leaked into the accumulator: %d", got)
	}
}

func TestAccumulatorResetIdempotent(t *testing.T) {
	a := NewAccumulator()
	a.Increment(model.AxisObsession, 25)

	a.Reset()
	a.Reset()

	if diff := cmp.Diff(model.NewSnapshot(), a.Snapshot()); diff != "" {
		t.Errorf("reset snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestAccumulatorRestore(t *testing.T) {
	a := NewAccumulator()
	a.Increment(model.AxisKindness, 5)

	saved := model.Snapshot{model.AxisTruth: 20, model.AxisTrust: 10}
	if err := a.Restore(saved); err != nil {
		t.Fatalf("restore: %v", err)
	}

	want := model.Snapshot{
		model.AxisKindness:  0,
		model.AxisObsession: 0,
		model.AxisTruth:     20,
		model.AxisTrust:     10,
	}
	if diff := cmp.Diff(want, a.Snapshot()); diff != "" {
		t.Errorf("restored snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestAccumulatorRestoreRejectsBadData(t *testing.T) {
	a := NewAccumulator()
	a.Increment(model.AxisKindness, 5)

	if err := a.Restore(model.Snapshot{"rage": 5}); !errors.Is(err, ErrInvalidAxis) {
		t.Fatalf("expected ErrInvalidAxis, got %v", err)
	}
	if err := a.Restore(model.Snapshot{model.AxisTruth: -1}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	// Failed restores must not clobber the live counters.
	if got := a.Snapshot()[model.AxisKindness]; got != 5 {
		t.Errorf("failed restore mutated state: kindness %d", got)
	}
}
