package engine

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/ashfall-games/intothedark/internal/catalog"
	"github.com/ashfall-games/intothedark/internal/model"
)

// ErrInvalidChoice is returned for an out-of-range choice index or a
// choice applied after the story has ended.
var ErrInvalidChoice = errors.New("invalid choice")

// Session owns one playthrough: the scene cursor, the memory
// accumulator, and the choice history. All mutation goes through
// ApplyChoice, Reset and Restore; everything else returns copies.
//
// ApplyChoice is guarded by the session lock so the increment, log
// append and scene transition land as one unit. The session is still a
// single-playthrough object: run one front end against it at a time.
type Session struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	memory  *Accumulator
	sink    CueSink

	id           string
	currentScene int
	watched      map[int]struct{}
	choiceLog    []model.ChoiceRecord
	ended        bool

	startedAt time.Time
	banked    time.Duration // play time carried over from a restored save
}

// NewSession starts a fresh playthrough at the catalog's first scene.
func NewSession(cat *catalog.Catalog) *Session {
	return &Session{
		catalog:      cat,
		memory:       NewAccumulator(),
		id:           ulid.Make().String(),
		currentScene: cat.FirstID(),
		watched:      make(map[int]struct{}),
		startedAt:    time.Now(),
	}
}

// SetCueSink attaches a presentation trigger sink. Pass nil to detach.
func (s *Session) SetCueSink(sink CueSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink = sink
}

// ChoiceOutcome reports what an applied choice produced.
type ChoiceOutcome struct {
	Response    string          `json:"response"`
	Consequence string          `json:"consequence,omitempty"`
	Alignment   model.Alignment `json:"alignment"`
	SceneID     int             `json:"scene_id"`
	Ended       bool            `json:"ended"`
	Events      []Event         `json:"events"`
}

// ApplyChoice applies the choice at index in the current scene: it
// increments the chosen axis, logs the choice, marks the scene watched,
// and advances the cursor (or ends the story when no successor exists).
// The whole operation either fully applies or fully rejects.
func (s *Session) ApplyChoice(index int) (*ChoiceOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended {
		return nil, fmt.Errorf("%w: the story has ended", ErrInvalidChoice)
	}
	scene, err := s.catalog.Get(s.currentScene)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(scene.Choices) {
		return nil, fmt.Errorf("%w: index %d out of range", ErrInvalidChoice, index)
	}
	choice := scene.Choices[index]

	// Catalog validation guarantees the axis and amount, so the
	// increment cannot fail past this point and the mutation is atomic.
	if err := s.memory.Increment(choice.MemoryType, choice.MemoryValue); err != nil {
		return nil, err
	}
	alignment := Classify(s.memory.Snapshot())

	s.choiceLog = append(s.choiceLog, model.ChoiceRecord{SceneID: s.currentScene, ChoiceIndex: index})
	s.watched[s.currentScene] = struct{}{}
	if s.sink != nil {
		s.sink.Cue(CueChoiceMade, s.currentScene, scene.AudioTrack)
	}

	next, ok := choice.NextSceneID, choice.NextSceneID != 0
	if !ok {
		next, ok = s.catalog.DefaultSuccessor(s.currentScene)
	}

	outcome := &ChoiceOutcome{
		Response:    choice.Responses.ForAlignment(alignment),
		Consequence: choice.ConsequenceText,
		Alignment:   alignment,
		Events:      []Event{EventMemoryChanged},
	}
	if !ok {
		s.ended = true
		s.currentScene = model.EndingSceneID(alignment)
		outcome.Events = append(outcome.Events, EventGameEnded)
	} else {
		s.currentScene = next
		outcome.Events = append(outcome.Events, EventSceneChanged)
		if s.sink != nil {
			if nextScene, err := s.catalog.Get(next); err == nil {
				s.sink.Cue(CueSceneStart, next, nextScene.AudioTrack)
			}
		}
	}
	outcome.SceneID = s.currentScene
	outcome.Ended = s.ended
	return outcome, nil
}

// Reset returns the session to a fresh playthrough: first scene, all
// counters zero, empty history, new play-time origin. Always succeeds.
func (s *Session) Reset() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.memory.Reset()
	s.id = ulid.Make().String()
	s.currentScene = s.catalog.FirstID()
	s.watched = make(map[int]struct{})
	s.choiceLog = nil
	s.ended = false
	s.startedAt = time.Now()
	s.banked = 0

	if s.sink != nil {
		if scene, err := s.catalog.Get(s.currentScene); err == nil {
			s.sink.Cue(CueSceneStart, s.currentScene, scene.AudioTrack)
		}
	}
	return []Event{EventSceneChanged, EventMemoryChanged}
}

// Projection is the read-only view a front end renders from.
type Projection struct {
	SceneID       int              `json:"scene_id"`
	Title         string           `json:"title"`
	Background    string           `json:"background"`
	AudioTrack    string           `json:"audio_track,omitempty"`
	Dialogue      []model.Dialogue `json:"dialogue"`
	Choices       []model.Choice   `json:"choices"`
	Memory        model.Snapshot   `json:"memory"`
	Alignment     model.Alignment  `json:"alignment"`
	Ended         bool             `json:"ended"`
	TotalScenes   int              `json:"total_scenes"`
	WatchedScenes int              `json:"watched_scenes"`
	TotalChoices  int              `json:"total_choices"`
	PlayTime      float64          `json:"play_time_seconds"`
}

// Projection returns the current scene content plus the memory snapshot
// and computed alignment. Side-effect free. For an ended session the
// ending matching the final alignment is projected with no choices.
func (s *Session) Projection() Projection {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.memory.Snapshot()
	p := Projection{
		SceneID:       s.currentScene,
		Memory:        snap,
		Alignment:     Classify(snap),
		Ended:         s.ended,
		TotalScenes:   s.catalog.Len(),
		WatchedScenes: len(s.watched),
		TotalChoices:  len(s.choiceLog),
		PlayTime:      s.playTimeLocked().Seconds(),
	}

	if s.ended {
		end := s.catalog.Ending(p.Alignment)
		p.Title = end.Title
		p.Background = end.Background
		p.Dialogue = []model.Dialogue{{Speaker: "Narrator", Text: end.Dialogue}}
		return p
	}

	if scene, err := s.catalog.Get(s.currentScene); err == nil {
		p.Title = scene.Title
		p.Background = scene.Background
		p.AudioTrack = scene.AudioTrack
		p.Dialogue = append([]model.Dialogue(nil), scene.Dialogue...)
		p.Choices = append([]model.Choice(nil), scene.Choices...)
	}
	return p
}

// Progress returns a serializable copy of the session for saving.
func (s *Session) Progress() model.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	watched := make([]int, 0, len(s.watched))
	for id := range s.watched {
		watched = append(watched, id)
	}
	sort.Ints(watched)

	return model.Progress{
		SessionID:       s.id,
		CurrentSceneID:  s.currentScene,
		WatchedSceneIDs: watched,
		Memory:          s.memory.Snapshot(),
		ChoiceLog:       append([]model.ChoiceRecord(nil), s.choiceLog...),
		PlayTimeSeconds: s.playTimeLocked().Seconds(),
	}
}

// Restore replaces the session state from a saved progress record. The
// record must reference a scene the catalog knows (or a synthetic
// ending id); the session is untouched on error.
func (s *Session) Restore(p model.Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !model.IsEndingSceneID(p.CurrentSceneID) {
		if _, err := s.catalog.Get(p.CurrentSceneID); err != nil {
			return fmt.Errorf("restore: %w", err)
		}
	}
	if err := s.memory.Restore(p.Memory); err != nil {
		return fmt.Errorf("restore: %w", err)
	}

	if p.SessionID != "" {
		s.id = p.SessionID
	}
	s.currentScene = p.CurrentSceneID
	s.ended = model.IsEndingSceneID(p.CurrentSceneID)
	s.watched = make(map[int]struct{}, len(p.WatchedSceneIDs))
	for _, id := range p.WatchedSceneIDs {
		s.watched[id] = struct{}{}
	}
	s.choiceLog = append([]model.ChoiceRecord(nil), p.ChoiceLog...)
	s.startedAt = time.Now()
	s.banked = time.Duration(p.PlayTimeSeconds * float64(time.Second))
	return nil
}

// PlayTime reports elapsed wall-clock time for this playthrough,
// including time banked from restored saves.
func (s *Session) PlayTime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playTimeLocked()
}

func (s *Session) playTimeLocked() time.Duration {
	return s.banked + time.Since(s.startedAt)
}
