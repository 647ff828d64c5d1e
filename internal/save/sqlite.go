package save

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ashfall-games/intothedark/internal/model"
)

// SQLiteStore implements Store using SQLite. Progress is stored as a
// JSON document per slot; timestamp, scene, play time and alignment are
// denormalized into columns so Slots reads metadata only.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a save database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS slots (
		slot          INTEGER PRIMARY KEY,
		version       TEXT NOT NULL,
		session_id    TEXT NOT NULL,
		saved_at      TEXT NOT NULL,
		progress      TEXT NOT NULL,
		play_time     REAL NOT NULL,
		current_scene INTEGER NOT NULL,
		alignment     TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Save(ctx context.Context, slot int, rec Record) error {
	if slot < 0 || slot >= MaxSlots {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}

	progress, err := json.Marshal(rec.Progress)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO slots (slot, version, session_id, saved_at, progress, play_time, current_scene, alignment)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
			version = excluded.version,
			session_id = excluded.session_id,
			saved_at = excluded.saved_at,
			progress = excluded.progress,
			play_time = excluded.play_time,
			current_scene = excluded.current_scene,
			alignment = excluded.alignment`,
		slot, rec.Version, rec.Progress.SessionID, rec.Timestamp.UTC().Format(time.RFC3339),
		string(progress), rec.Metadata.PlayTimeSeconds, rec.Metadata.CurrentSceneID, string(rec.Metadata.Alignment))
	if err != nil {
		return fmt.Errorf("write slot %d: %w", slot, err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, slot int) (*Record, error) {
	if slot < 0 || slot >= MaxSlots {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}

	var (
		rec      Record
		savedAt  string
		progress string
		align    string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT version, saved_at, progress, play_time, current_scene, alignment
		 FROM slots WHERE slot = ?`, slot).
		Scan(&rec.Version, &savedAt, &progress, &rec.Metadata.PlayTimeSeconds, &rec.Metadata.CurrentSceneID, &align)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: slot %d", ErrSlotNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %d: %w", slot, err)
	}

	rec.Timestamp, err = time.Parse(time.RFC3339, savedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: slot %d: bad timestamp %q", ErrCorruptSave, slot, savedAt)
	}
	if err := json.Unmarshal([]byte(progress), &rec.Progress); err != nil {
		return nil, fmt.Errorf("%w: slot %d: %v", ErrCorruptSave, slot, err)
	}
	rec.Metadata.Alignment = model.Alignment(align)
	return &rec, nil
}

func (s *SQLiteStore) Slots(ctx context.Context) ([]SlotSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT slot, saved_at, play_time, current_scene, alignment FROM slots ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	filled := make(map[int]SlotSummary, MaxSlots)
	for rows.Next() {
		var (
			sum     SlotSummary
			savedAt string
		)
		if err := rows.Scan(&sum.Slot, &savedAt, &sum.PlayTimeSeconds, &sum.CurrentSceneID, &sum.Alignment); err != nil {
			return nil, fmt.Errorf("list slots: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, savedAt); err == nil {
			sum.Timestamp = &ts
		}
		filled[sum.Slot] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	summaries := make([]SlotSummary, 0, MaxSlots)
	for slot := 0; slot < MaxSlots; slot++ {
		if sum, ok := filled[slot]; ok {
			summaries = append(summaries, sum)
			continue
		}
		summaries = append(summaries, SlotSummary{Slot: slot, Empty: true, Alignment: EmptyAlignment})
	}
	return summaries, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
