package engine

// Event identifies a state change produced by a session operation.
// Operations return events as values; front ends act on them instead
// of registering callbacks into the engine.
type Event string

const (
	EventSceneChanged  Event = "scene_changed"
	EventMemoryChanged Event = "memory_changed"
	EventGameEnded     Event = "game_ended"
)

// Cue names passed to a CueSink.
const (
	CueSceneStart = "scene_start"
	CueChoiceMade = "choice_made"
)

// CueSink receives presentation trigger cues (audio and the like).
// Playback behavior is irrelevant to the engine; implementations must
// not call back into the session.
type CueSink interface {
	Cue(name string, sceneID int, trackRef string)
}
