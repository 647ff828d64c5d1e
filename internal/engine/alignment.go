package engine

import "github.com/ashfall-games/intothedark/internal/model"

// AlignmentThreshold is the minimum dominant-axis value before a
// playthrough leaves Neutral. Default per-choice increments are 5, so a
// single axis stays Neutral through its first three choices.
const AlignmentThreshold = 20

// Classify maps a memory snapshot to its alignment label. Pure and
// deterministic; callers re-run it on every read rather than caching.
// Ties break toward the earliest axis in model.Axes order.
func Classify(snap model.Snapshot) model.Alignment {
	dominant := model.Axes[0]
	best := snap[dominant]
	for _, axis := range model.Axes[1:] {
		if snap[axis] > best {
			dominant, best = axis, snap[axis]
		}
	}

	if best < AlignmentThreshold {
		return model.AlignmentNeutral
	}

	switch dominant {
	case model.AxisKindness:
		return model.AlignmentKind
	case model.AxisObsession:
		return model.AlignmentObsessed
	case model.AxisTruth:
		return model.AlignmentTruthSeeker
	case model.AxisTrust:
		return model.AlignmentTrusting
	}
	return model.AlignmentBalanced
}
