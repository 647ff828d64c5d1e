package cli

import (
	"github.com/spf13/cobra"

	"github.com/ashfall-games/intothedark/internal/engine"
)

func init() {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Start a new game",
		Long:  "Discard progress, zero all memory counters, return to the first scene and autosave.",
		Run:   runReset,
	}

	RootCmd.AddCommand(cmd)
}

func runReset(cmd *cobra.Command, args []string) {
	cat, err := loadCatalog()
	if err != nil {
		failJSON(err)
	}

	st, err := openStore()
	if err != nil {
		failJSON(err)
	}
	defer st.Close()

	sess := engine.NewSession(cat)
	events := sess.Reset()
	if err := autosave(cmd.Context(), st, sess); err != nil {
		failJSON(err)
	}

	printJSON(map[string]any{
		"ok":       true,
		"scene_id": cat.FirstID(),
		"events":   events,
	})
}
