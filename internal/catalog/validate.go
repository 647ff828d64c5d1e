package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ashfall-games/intothedark/internal/model"
)

// endingAlignments are the labels that must each have an authored ending.
var endingAlignments = [5]model.Alignment{
	model.AlignmentNeutral,
	model.AlignmentKind,
	model.AlignmentObsessed,
	model.AlignmentTruthSeeker,
	model.AlignmentTrusting,
}

// validate checks the whole content set and reports every violation,
// not just the first. Content bugs must surface at startup, never
// mid-session.
func validate(scenes []model.Scene, endings []model.Ending) error {
	var errs []error

	if len(scenes) == 0 {
		errs = append(errs, errors.New("at least one scene is required"))
	}

	seen := make(map[int]struct{}, len(scenes))
	for _, s := range scenes {
		errs = append(errs, validateScene(s, seen)...)
	}

	// next_scene_id overrides must land on real scenes
	for _, s := range scenes {
		for j, ch := range s.Choices {
			if ch.NextSceneID == 0 {
				continue
			}
			if _, ok := seen[ch.NextSceneID]; !ok {
				errs = append(errs, fmt.Errorf("scene %d choice %d: next_scene_id %d does not exist", s.ID, j, ch.NextSceneID))
			}
		}
	}

	errs = append(errs, validateEndings(endings)...)

	return errors.Join(errs...)
}

func validateScene(s model.Scene, seen map[int]struct{}) []error {
	var errs []error

	if s.ID <= 0 {
		errs = append(errs, fmt.Errorf("scene id must be positive, got %d", s.ID))
	}
	if model.IsEndingSceneID(s.ID) {
		errs = append(errs, fmt.Errorf("scene %d: id collides with the synthetic ending range", s.ID))
	}
	if _, dup := seen[s.ID]; dup {
		errs = append(errs, fmt.Errorf("duplicate scene id %d", s.ID))
	}
	seen[s.ID] = struct{}{}

	if strings.TrimSpace(s.Title) == "" {
		errs = append(errs, fmt.Errorf("scene %d: title is required", s.ID))
	}
	if len(s.Dialogue) == 0 {
		errs = append(errs, fmt.Errorf("scene %d: at least one dialogue line is required", s.ID))
	}
	for i, d := range s.Dialogue {
		if strings.TrimSpace(d.Speaker) == "" || strings.TrimSpace(d.Text) == "" {
			errs = append(errs, fmt.Errorf("scene %d dialogue %d: speaker and text are required", s.ID, i))
		}
	}

	if len(s.Choices) != model.ChoicesPerScene {
		errs = append(errs, fmt.Errorf("scene %d: expected %d choices, got %d", s.ID, model.ChoicesPerScene, len(s.Choices)))
	}
	for i, ch := range s.Choices {
		errs = append(errs, validateChoice(s.ID, i, ch)...)
	}

	return errs
}

func validateChoice(sceneID, index int, ch model.Choice) []error {
	var errs []error

	if strings.TrimSpace(ch.Text) == "" {
		errs = append(errs, fmt.Errorf("scene %d choice %d: text is required", sceneID, index))
	}
	if !ch.MemoryType.Valid() {
		errs = append(errs, fmt.Errorf("scene %d choice %d: unknown memory axis %q", sceneID, index, ch.MemoryType))
	}
	if ch.MemoryValue < 0 {
		errs = append(errs, fmt.Errorf("scene %d choice %d: memory_value must be non-negative, got %d", sceneID, index, ch.MemoryValue))
	}

	// The response table must be exhaustive so play-time lookup is total.
	missing := missingResponses(ch.Responses)
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("scene %d choice %d: missing responses: %s", sceneID, index, strings.Join(missing, ", ")))
	}

	return errs
}

func missingResponses(r model.ResponseSet) []string {
	var missing []string
	for _, entry := range []struct {
		name string
		text string
	}{
		{"kind", r.Kind},
		{"obsessed", r.Obsessed},
		{"truth_seeker", r.TruthSeeker},
		{"trusting", r.Trusting},
		{"neutral", r.Neutral},
		{"mixed", r.Mixed},
	} {
		if strings.TrimSpace(entry.text) == "" {
			missing = append(missing, entry.name)
		}
	}
	return missing
}

func validateEndings(endings []model.Ending) []error {
	var errs []error

	byAlignment := make(map[model.Alignment]struct{}, len(endings))
	for _, e := range endings {
		if _, dup := byAlignment[e.Alignment]; dup {
			errs = append(errs, fmt.Errorf("duplicate ending for alignment %q", e.Alignment))
		}
		byAlignment[e.Alignment] = struct{}{}

		if strings.TrimSpace(e.Title) == "" || strings.TrimSpace(e.Dialogue) == "" {
			errs = append(errs, fmt.Errorf("ending %q: title and dialogue are required", e.Alignment))
		}
	}

	for _, a := range endingAlignments {
		if _, ok := byAlignment[a]; !ok {
			errs = append(errs, fmt.Errorf("missing ending for alignment %q", a))
		}
	}
	for a := range byAlignment {
		known := false
		for _, want := range endingAlignments {
			if a == want {
				known = true
				break
			}
		}
		if !known {
			errs = append(errs, fmt.Errorf("ending for unknown alignment %q", a))
		}
	}

	return errs
}
