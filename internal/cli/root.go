// Package cli implements the intothedark commands.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ashfall-games/intothedark/internal/catalog"
	"github.com/ashfall-games/intothedark/internal/config"
	"github.com/ashfall-games/intothedark/internal/engine"
	"github.com/ashfall-games/intothedark/internal/save"
)

var (
	dbPath     string
	storyPath  string
	configPath string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "intothedark",
	Short: "A choice-driven narrative engine",
	Long:  "Into the Dark: a linear visual-novel engine. Scenes in, choices applied, four memory axes scored, an ending per alignment. SQLite-backed saves, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Save database path (default: $INTOTHEDARK_DB or ~/.intothedark/saves.db)")
	RootCmd.PersistentFlags().StringVar(&storyPath, "story", "", "Story file in YAML (default: $INTOTHEDARK_STORY or the embedded story)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Preferences file (default: ~/.intothedark/config.yaml)")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("INTOTHEDARK_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".intothedark", "saves.db")
}

func getConfigPath() string {
	if configPath != "" {
		return configPath
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".intothedark", "config.yaml")
}

func openStore() (*save.SQLiteStore, error) {
	return save.NewSQLiteStore(getDBPath())
}

// loadCatalog builds the scene catalog: an explicit story file wins,
// then $INTOTHEDARK_STORY, then the embedded story. Invalid content is
// fatal here, before any session starts.
func loadCatalog() (*catalog.Catalog, error) {
	path := storyPath
	if path == "" {
		path = os.Getenv("INTOTHEDARK_STORY")
	}
	if path != "" {
		return catalog.LoadFile(path)
	}
	return catalog.Default()
}

func loadConfig() (config.Config, error) {
	return config.Load(getConfigPath())
}

// resumeSession restores the autosave slot into a fresh session. An
// empty, corrupt, or content-mismatched slot yields a new game; only
// storage failures propagate.
func resumeSession(ctx context.Context, cat *catalog.Catalog, st save.Store) (*engine.Session, error) {
	sess := engine.NewSession(cat)

	rec, err := st.Load(ctx, save.AutosaveSlot)
	switch {
	case err == nil:
		if rerr := sess.Restore(rec.Progress); rerr != nil {
			return engine.NewSession(cat), nil
		}
	case errors.Is(err, save.ErrSlotNotFound), errors.Is(err, save.ErrCorruptSave):
	default:
		return nil, err
	}
	return sess, nil
}

// autosave writes the session back to the autosave slot.
func autosave(ctx context.Context, st save.Store, sess *engine.Session) error {
	p := sess.Progress()
	return st.Save(ctx, save.AutosaveSlot, save.NewRecord(p, engine.Classify(p.Memory)))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

// failJSON emits the {"error": ...} shape the command surface promises
// and exits non-zero.
func failJSON(err error) {
	b, _ := json.Marshal(map[string]string{"error": err.Error()})
	fmt.Println(string(b))
	os.Exit(1)
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}
