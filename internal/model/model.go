// Package model defines the core narrative data types.
package model

// Axis is one of the four memory counters a choice can increment.
type Axis string

const (
	AxisKindness  Axis = "kindness"
	AxisObsession Axis = "obsession"
	AxisTruth     Axis = "truth"
	AxisTrust     Axis = "trust"
)

// Axes lists the axes in declaration order. Alignment tie-breaks walk
// this order, so it must not be reordered.
var Axes = [4]Axis{AxisKindness, AxisObsession, AxisTruth, AxisTrust}

// Valid reports whether a is one of the four defined axes.
func (a Axis) Valid() bool {
	switch a {
	case AxisKindness, AxisObsession, AxisTruth, AxisTrust:
		return true
	}
	return false
}

// Alignment summarizes which axis dominates a playthrough.
type Alignment string

const (
	AlignmentNeutral     Alignment = "Neutral"
	AlignmentKind        Alignment = "Kind"
	AlignmentObsessed    Alignment = "Obsessed"
	AlignmentTruthSeeker Alignment = "Truth-Seeker"
	AlignmentTrusting    Alignment = "Trusting"
	AlignmentBalanced    Alignment = "Balanced"
)

// Snapshot is a full four-key view of the memory counters. Every axis
// is always present, zero included.
type Snapshot map[Axis]int

// Total sums the counters across all axes.
func (s Snapshot) Total() int {
	var total int
	for _, axis := range Axes {
		total += s[axis]
	}
	return total
}

// NewSnapshot returns an all-zero snapshot.
func NewSnapshot() Snapshot {
	s := make(Snapshot, len(Axes))
	for _, axis := range Axes {
		s[axis] = 0
	}
	return s
}

// Synthetic scene ids for endings sit far above authored content so a
// frozen terminal cursor can never collide with a real scene.
const endingIDBase = 900

// EndingSceneID returns the synthetic terminal scene id for an alignment.
func EndingSceneID(a Alignment) int {
	switch a {
	case AlignmentKind:
		return endingIDBase + 1
	case AlignmentObsessed:
		return endingIDBase + 2
	case AlignmentTruthSeeker:
		return endingIDBase + 3
	case AlignmentTrusting:
		return endingIDBase + 4
	}
	return endingIDBase
}

// IsEndingSceneID reports whether id refers to a synthetic ending.
func IsEndingSceneID(id int) bool {
	return id >= endingIDBase
}
