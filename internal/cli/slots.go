package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List all save slots",
		Long:  "List a summary for every save slot, empty ones included.",
		Run:   runSlots,
	}

	RootCmd.AddCommand(cmd)
}

func runSlots(cmd *cobra.Command, args []string) {
	st, err := openStore()
	if err != nil {
		failJSON(err)
	}
	defer st.Close()

	slots, err := st.Slots(cmd.Context())
	if err != nil {
		failJSON(err)
	}

	printJSON(map[string]any{"save_slots": slots})
}
