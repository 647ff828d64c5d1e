package cli

import (
	"github.com/spf13/cobra"

	"github.com/ashfall-games/intothedark/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Show the memory counters and alignment",
		Run:   runMemory,
	}

	RootCmd.AddCommand(cmd)
}

type memoryOutput struct {
	Kindness     int             `json:"kindness"`
	Obsession    int             `json:"obsession"`
	Truth        int             `json:"truth"`
	Trust        int             `json:"trust"`
	Alignment    model.Alignment `json:"alignment"`
	TotalChoices int             `json:"total_choices"`
	PlayTime     float64         `json:"play_time_seconds"`
}

func runMemory(cmd *cobra.Command, args []string) {
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
	printJSON(memoryOutput{
		Kindness:     p.Memory[model.AxisKindness],
		Obsession:    p.Memory[model.AxisObsession],
		Truth:        p.Memory[model.AxisTruth],
		Trust:        p.Memory[model.AxisTrust],
		Alignment:    p.Alignment,
		TotalChoices: p.TotalChoices,
		PlayTime:     p.PlayTime,
	})
}
