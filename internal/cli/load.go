package cli

import (
	"github.com/spf13/cobra"

	"github.com/ashfall-games/intothedark/internal/engine"
	"github.com/ashfall-games/intothedark/internal/save"
)

func init() {
	cmd := &cobra.Command{
		Use:   "load <slot>",
		Short: "Load progress from a slot",
		Long:  "Restore progress from a slot and make it the active game (the autosave slot is overwritten).",
		Args:  cobra.ExactArgs(1),
		Run:   runLoad,
	}

	RootCmd.AddCommand(cmd)
}

func runLoad(cmd *cobra.Command, args []string) {
	slot, err := parseSlot(args[0])
	if err != nil {
		failJSON(err)
	}

	cat, err := loadCatalog()
	if err != nil {
		failJSON(err)
	}

	st, err := openStore()
	if err != nil {
		failJSON(err)
	}
	defer st.Close()

	rec, err := st.Load(cmd.Context(), slot)
	if err != nil {
		failJSON(err)
	}

	// Restore through a session so the record is validated against the
	// loaded catalog before it becomes the active game.
	sess := engine.NewSession(cat)
	if err := sess.Restore(rec.Progress); err != nil {
		failJSON(err)
	}

	if slot != save.AutosaveSlot {
		if err := autosave(cmd.Context(), st, sess); err != nil {
			failJSON(err)
		}
	}

	p := sess.Projection()
	printJSON(map[string]any{
		"ok":        true,
		"slot":      slot,
		"scene_id":  p.SceneID,
		"title":     p.Title,
		"alignment": p.Alignment,
		"ended":     p.Ended,
	})
}
