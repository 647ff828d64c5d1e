package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show playthrough statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
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

	p := sess.Projection()
	completion := 0.0
	if p.TotalScenes > 0 {
		completion = float64(p.WatchedScenes) / float64(p.TotalScenes) * 100
	}

	printJSON(map[string]any{
		"total_scenes":          p.TotalScenes,
		"watched_scenes":        p.WatchedScenes,
		"completion_percentage": completion,
		"total_choices":         p.TotalChoices,
		"alignment":             p.Alignment,
		"play_time_seconds":     p.PlayTime,
		"ended":                 p.Ended,
	})
}
