package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ashfall-games/intothedark/internal/engine"
	"github.com/ashfall-games/intothedark/internal/save"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a save record from JSON",
		Long:  "Read a save record from stdin (the format produced by export), validate it against the story, and write it to a slot.",
		Run:   runImport,
	}

	cmd.Flags().IntP("slot", "s", save.AutosaveSlot, "Slot to import into")

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	slot, _ := cmd.Flags().GetInt("slot")

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		exitErr("read stdin", err)
	}

	var rec save.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		failJSON(err)
	}

	cat, err := loadCatalog()
	if err != nil {
		failJSON(err)
	}

	// Reject records that reference scenes this story does not have.
	sess := engine.NewSession(cat)
	if err := sess.Restore(rec.Progress); err != nil {
		failJSON(err)
	}

	st, err := openStore()
	if err != nil {
		failJSON(err)
	}
	defer st.Close()

	if err := st.Save(cmd.Context(), slot, rec); err != nil {
		failJSON(err)
	}

	printJSON(map[string]any{"ok": true, "slot": slot})
}
