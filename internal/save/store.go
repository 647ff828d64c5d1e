// Package save persists playthrough progress to numbered slots.
package save

import (
	"context"
	"errors"
	"time"

	"github.com/ashfall-games/intothedark/internal/model"
)

const (
	// MaxSlots is the number of addressable save slots (0..MaxSlots-1).
	MaxSlots = 10
	// AutosaveSlot receives a save after every applied choice.
	AutosaveSlot = 0
	// RecordVersion tags the save schema.
	RecordVersion = "1.0.0"
	// EmptyAlignment marks an unused slot in listings.
	EmptyAlignment = "Empty"
)

var (
	// ErrInvalidSlot is returned for a slot outside 0..MaxSlots-1.
	ErrInvalidSlot = errors.New("invalid save slot")
	// ErrSlotNotFound is returned when a slot has never been written.
	ErrSlotNotFound = errors.New("save slot not found")
	// ErrCorruptSave is returned when slot content cannot be decoded.
	// Callers that tolerate it treat the slot as empty.
	ErrCorruptSave = errors.New("corrupt save data")
)

// Record is the full save document for one slot.
type Record struct {
	Version   string         `json:"version"`
	Timestamp time.Time      `json:"timestamp"`
	Progress  model.Progress `json:"progress"`
	Metadata  Metadata       `json:"metadata"`
}

// Metadata is denormalized from Progress so slot listings never
// deserialize the full record.
type Metadata struct {
	PlayTimeSeconds float64         `json:"play_time_seconds"`
	CurrentSceneID  int             `json:"current_scene_id"`
	Alignment       model.Alignment `json:"alignment"`
}

// NewRecord stamps a progress snapshot into a versioned save record.
func NewRecord(p model.Progress, alignment model.Alignment) Record {
	return Record{
		Version:   RecordVersion,
		Timestamp: time.Now().UTC(),
		Progress:  p,
		Metadata: Metadata{
			PlayTimeSeconds: p.PlayTimeSeconds,
			CurrentSceneID:  p.CurrentSceneID,
			Alignment:       alignment,
		},
	}
}

// SlotSummary describes one slot for menu display.
type SlotSummary struct {
	Slot            int        `json:"slot"`
	Empty           bool       `json:"empty"`
	Timestamp       *time.Time `json:"timestamp,omitempty"`
	CurrentSceneID  int        `json:"current_scene_id"`
	PlayTimeSeconds float64    `json:"play_time_seconds"`
	Alignment       string     `json:"alignment"`
}

// Store is the persistence gateway for save slots. Save overwrites per
// slot and is idempotent; storage failures are surfaced, never
// swallowed.
type Store interface {
	// Save writes a record to a slot, replacing any previous content.
	Save(ctx context.Context, slot int, rec Record) error

	// Load reads the record in a slot. Returns ErrSlotNotFound for a
	// never-written slot and ErrCorruptSave for undecodable content.
	Load(ctx context.Context, slot int) (*Record, error)

	// Slots lists a summary for every slot, unused ones included.
	// Never fails on an empty store.
	Slots(ctx context.Context) ([]SlotSummary, error)

	// Close releases the underlying storage.
	Close() error
}
