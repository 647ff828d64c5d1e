package model

import (
	"encoding/json"
	"fmt"
)

// ChoiceRecord is one applied choice, serialized in save files as a
// [scene_id, choice_index] pair.
type ChoiceRecord struct {
	SceneID     int
	ChoiceIndex int
}

func (c ChoiceRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.SceneID, c.ChoiceIndex})
}

func (c *ChoiceRecord) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("choice record: %w", err)
	}
	c.SceneID, c.ChoiceIndex = pair[0], pair[1]
	return nil
}

// Progress is the serializable state of a playthrough. The session
// owns the live state; everything here is a copy.
type Progress struct {
	SessionID       string         `json:"session_id"`
	CurrentSceneID  int            `json:"current_scene_id"`
	WatchedSceneIDs []int          `json:"watched_scene_ids"`
	Memory          Snapshot       `json:"memory"`
	ChoiceLog       []ChoiceRecord `json:"choice_log"`
	PlayTimeSeconds float64        `json:"play_time_seconds"`
}
