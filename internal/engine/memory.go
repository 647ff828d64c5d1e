// Package engine implements the narrative progression core: the memory
// accumulator, the alignment classifier, and the session state machine.
package engine

import (
	"errors"
	"fmt"

	"github.com/ashfall-games/intothedark/internal/model"
)

var (
	// ErrInvalidAxis is returned for an axis outside the four defined names.
	ErrInvalidAxis = errors.New("invalid memory axis")
	// ErrInvalidAmount is returned for a negative increment.
	ErrInvalidAmount = errors.New("invalid memory amount")
)

// Accumulator holds the four per-playthrough memory counters. Values
// only grow between resets.
type Accumulator struct {
	values map[model.Axis]int
}

// NewAccumulator returns an accumulator with all axes at zero.
func NewAccumulator() *Accumulator {
	a := &Accumulator{values: make(map[model.Axis]int, len(model.Axes))}
	a.Reset()
	return a
}

// Increment adds amount to the named axis. The accumulator is left
// untouched on error.
func (a *Accumulator) Increment(axis model.Axis, amount int) error {
	if !axis.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAxis, axis)
	}
	if amount < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	a.values[axis] += amount
	return nil
}

// Snapshot returns a full four-key copy of the counters. Axes never
// incremented read zero, never missing.
func (a *Accumulator) Snapshot() model.Snapshot {
	snap := make(model.Snapshot, len(model.Axes))
	for _, axis := range model.Axes {
		snap[axis] = a.values[axis]
	}
	return snap
}

// Reset zeroes every axis. Idempotent.
func (a *Accumulator) Reset() {
	for _, axis := range model.Axes {
		a.values[axis] = 0
	}
}

// Restore replaces the counters from a saved snapshot. Axes missing
// from the snapshot reset to zero; unknown axes or negative values are
// rejected without mutating anything.
func (a *Accumulator) Restore(snap model.Snapshot) error {
	for axis, v := range snap {
		if !axis.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidAxis, axis)
		}
		if v < 0 {
			return fmt.Errorf("%w: %d for %s", ErrInvalidAmount, v, axis)
		}
	}
	a.Reset()
	for axis, v := range snap {
		a.values[axis] = v
	}
	return nil
}
