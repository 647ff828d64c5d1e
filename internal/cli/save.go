package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ashfall-games/intothedark/internal/engine"
	"github.com/ashfall-games/intothedark/internal/save"
)

func init() {
	cmd := &cobra.Command{
		Use:   "save <slot>",
		Short: "Save progress to a slot",
		Long:  fmt.Sprintf("Copy the current progress into a slot (0-%d). Overwrites any previous save in that slot.", save.MaxSlots-1),
		Args:  cobra.ExactArgs(1),
		Run:   runSave,
	}

	RootCmd.AddCommand(cmd)
}

func parseSlot(arg string) (int, error) {
	slot, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("slot must be an integer: %q", arg)
	}
	return slot, nil
}

func runSave(cmd *cobra.Command, args []string) {
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

	sess, err := resumeSession(cmd.Context(), cat, st)
	if err != nil {
		failJSON(err)
	}

	p := sess.Progress()
	rec := save.NewRecord(p, engine.Classify(p.Memory))
	if err := st.Save(cmd.Context(), slot, rec); err != nil {
		failJSON(err)
	}

	printJSON(map[string]any{
		"ok":        true,
		"slot":      slot,
		"scene_id":  rec.Metadata.CurrentSceneID,
		"alignment": rec.Metadata.Alignment,
	})
}
