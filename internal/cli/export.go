package cli

import (
	"github.com/spf13/cobra"

	"github.com/ashfall-games/intothedark/internal/save"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a save slot as JSON",
		Long:  "Print the full save record for a slot as JSON. Pipe to a file to back up or move progress between machines.",
		Run:   runExport,
	}

	cmd.Flags().IntP("slot", "s", save.AutosaveSlot, "Slot to export")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	slot, _ := cmd.Flags().GetInt("slot")

	st, err := openStore()
	if err != nil {
		failJSON(err)
	}
	defer st.Close()

	rec, err := st.Load(cmd.Context(), slot)
	if err != nil {
		failJSON(err)
	}

	printJSON(rec)
}
