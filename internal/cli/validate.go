package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ashfall-games/intothedark/internal/catalog"
)

func init() {
	cmd := &cobra.Command{
		Use:   "validate <story.yaml>",
		Short: "Validate a story file",
		Long:  "Parse and validate story content without playing it. Reports every violation, not just the first.",
		Args:  cobra.ExactArgs(1),
		Run:   runValidate,
	}

	RootCmd.AddCommand(cmd)
}

func runValidate(cmd *cobra.Command, args []string) {
	cat, err := catalog.LoadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid story: %v\n", err)
		os.Exit(1)
	}

	printJSON(map[string]any{
		"ok":     true,
		"scenes": cat.Len(),
		"first":  cat.FirstID(),
	})
}
