package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ashfall-games/intothedark/internal/audio"
	"github.com/ashfall-games/intothedark/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play interactively in the terminal",
		Long:  "Run the story as an interactive terminal session: scenes, four choices, memory readout. Progress autosaves after every choice.",
		Run:   runPlay,
	}

	RootCmd.AddCommand(cmd)
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}

	cat, err := loadCatalog()
	if err != nil {
		exitErr("load story", err)
	}

	st, err := openStore()
	if err != nil {
		exitErr("open saves", err)
	}
	defer st.Close()

	sess, err := resumeSession(cmd.Context(), cat, st)
	if err != nil {
		exitErr("resume game", err)
	}
	if cfg.ShowCues && !cfg.Muted {
		sess.SetCueSink(audio.NewWriterSink(os.Stdout))
	}

	delay := time.Duration(cfg.TextSpeedMS) * time.Millisecond
	in := bufio.NewScanner(os.Stdin)
	out := os.Stdout

	fmt.Fprintln(out, "Into the Dark")
	fmt.Fprintln(out, strings.Repeat("=", 40))

	for {
		p := sess.Projection()

		fmt.Fprintf(out, "\nScene %d: %s\n\n", p.SceneID, p.Title)
		for _, d := range p.Dialogue {
			fmt.Fprintf(out, "%s: ", d.Speaker)
			typeOut(out, d.Text, delay)
			fmt.Fprintln(out)
		}

		if p.Ended {
			fmt.Fprintf(out, "\nFinal alignment: %s\n", p.Alignment)
			fmt.Fprint(out, "\nPlay again? (y/n): ")
			if !in.Scan() || strings.ToLower(strings.TrimSpace(in.Text())) != "y" {
				break
			}
			sess.Reset()
			if err := autosave(cmd.Context(), st, sess); err != nil {
				exitErr("autosave", err)
			}
			continue
		}

		fmt.Fprintln(out, "\nChoices:")
		for i, c := range p.Choices {
			fmt.Fprintf(out, "%d. %s (+%d %s)\n", i+1, c.Text, c.MemoryValue, c.MemoryType)
		}
		fmt.Fprintf(out, "\nAlignment: %s  [kindness %d | obsession %d | truth %d | trust %d]\n",
			p.Alignment,
			p.Memory[model.AxisKindness], p.Memory[model.AxisObsession],
			p.Memory[model.AxisTruth], p.Memory[model.AxisTrust])

		fmt.Fprint(out, "\nEnter choice (1-4) or 'q' to quit: ")
		if !in.Scan() {
			break
		}
		input := strings.TrimSpace(in.Text())
		if strings.EqualFold(input, "q") {
			break
		}

		n, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprintln(out, "Enter a number between 1 and 4.")
			continue
		}

		outcome, err := sess.ApplyChoice(n - 1)
		if err != nil {
			fmt.Fprintf(out, "✗ %v\n", err)
			continue
		}
		if err := autosave(cmd.Context(), st, sess); err != nil {
			exitErr("autosave", err)
		}

		fmt.Fprint(out, "\n")
		typeOut(out, outcome.Response, delay)
		fmt.Fprintln(out)
		if !cfg.AutoAdvance {
			fmt.Fprint(out, "(press enter)")
			in.Scan()
		}
	}

	fmt.Fprintln(out, "\nGame saved. Goodbye!")
}

// typeOut writes text rune by rune with the configured delay. Zero
// delay writes the whole line at once.
func typeOut(w io.Writer, text string, delay time.Duration) {
	if delay <= 0 {
		fmt.Fprint(w, text)
		return
	}
	for _, r := range text {
		fmt.Fprint(w, string(r))
		time.Sleep(delay)
	}
}
