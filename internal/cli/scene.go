package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Show the current scene",
		Long:  "Show the current scene as JSON: title, dialogue, the four choices, memory snapshot and alignment.",
		Run:   runScene,
	}

	RootCmd.AddCommand(cmd)
}

func runScene(cmd *cobra.Command, args []string) {
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

	printJSON(sess.Projection())
}
