package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "choose <index>",
		Short: "Apply a choice in the current scene",
		Long:  "Apply the choice at the given index (0-3), advance the story and autosave. Prints the alignment-flavored response.",
		Args:  cobra.ExactArgs(1),
		Run:   runChoose,
	}

	RootCmd.AddCommand(cmd)
}

func runChoose(cmd *cobra.Command, args []string) {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		failJSON(fmt.Errorf("choice index must be an integer: %q", args[0]))
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

	outcome, err := sess.ApplyChoice(index)
	if err != nil {
		failJSON(err)
	}

	// A failed autosave must not report a successful turn silently.
	if err := autosave(cmd.Context(), st, sess); err != nil {
		failJSON(err)
	}

	printJSON(outcome)
}
