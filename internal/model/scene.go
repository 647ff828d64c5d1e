package model

// ChoicesPerScene is fixed: front ends always render four options.
const ChoicesPerScene = 4

// ResponseSet holds one response line per alignment plus the mixed
// default. Catalog validation requires every entry, so lookups are
// total and a missing line is a content-authoring error, never a
// silent runtime fallback.
type ResponseSet struct {
	Kind        string `yaml:"kind" json:"kind"`
	Obsessed    string `yaml:"obsessed" json:"obsessed"`
	TruthSeeker string `yaml:"truth_seeker" json:"truth_seeker"`
	Trusting    string `yaml:"trusting" json:"trusting"`
	Neutral     string `yaml:"neutral" json:"neutral"`
	Mixed       string `yaml:"mixed" json:"mixed"`
}

// ForAlignment returns the response variant for the given alignment.
// Balanced has no dedicated entry and maps to the mixed default.
func (r ResponseSet) ForAlignment(a Alignment) string {
	switch a {
	case AlignmentKind:
		return r.Kind
	case AlignmentObsessed:
		return r.Obsessed
	case AlignmentTruthSeeker:
		return r.TruthSeeker
	case AlignmentTrusting:
		return r.Trusting
	case AlignmentNeutral:
		return r.Neutral
	}
	return r.Mixed
}

// Choice is one selectable narrative option.
type Choice struct {
	Text            string      `yaml:"text" json:"text"`
	MemoryType      Axis        `yaml:"memory_type" json:"memory_type"`
	MemoryValue     int         `yaml:"memory_value" json:"memory_value"`
	ConsequenceText string      `yaml:"consequence_text,omitempty" json:"consequence_text,omitempty"`
	NextSceneID     int         `yaml:"next_scene_id,omitempty" json:"next_scene_id,omitempty"` // 0 means default advance
	Responses       ResponseSet `yaml:"responses" json:"responses"`
}

// Dialogue is one spoken line within a scene.
type Dialogue struct {
	Speaker string `yaml:"speaker" json:"speaker"`
	Text    string `yaml:"text" json:"text"`
}

// Scene is one narrative beat: dialogue plus exactly four choices.
// Scenes are fixed at catalog construction and never mutated.
type Scene struct {
	ID         int        `yaml:"id" json:"id"`
	Title      string     `yaml:"title" json:"title"`
	Background string     `yaml:"background" json:"background"`
	AudioTrack string     `yaml:"audio_track,omitempty" json:"audio_track,omitempty"`
	Dialogue   []Dialogue `yaml:"dialogue" json:"dialogue"`
	Choices    []Choice   `yaml:"choices" json:"choices"`
}

// Ending is the terminal scene shown for one alignment.
type Ending struct {
	Alignment  Alignment `yaml:"alignment" json:"alignment"`
	Title      string    `yaml:"title" json:"title"`
	Background string    `yaml:"background" json:"background"`
	Dialogue   string    `yaml:"dialogue" json:"dialogue"`
}
