package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/ashfall-games/intothedark/internal/engine"
	"github.com/ashfall-games/intothedark/internal/model"
	"github.com/ashfall-games/intothedark/internal/save"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over MCP stdio",
		Long:  "Expose the command surface (get_scene, make_choice, saves) as MCP tools over stdio. The server owns one live session for its lifetime.",
		Run:   runServe,
	}

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cat, err := loadCatalog()
	if err != nil {
		log.Fatalf("load story: %v", err)
	}

	st, err := openStore()
	if err != nil {
		log.Fatalf("open saves: %v", err)
	}
	defer st.Close()

	sess, err := resumeSession(cmd.Context(), cat, st)
	if err != nil {
		log.Fatalf("resume game: %v", err)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "intothedark",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_scene",
		Description: "Get the current scene: title, dialogue, the four choices, memory snapshot and alignment.",
	}, getSceneHandler(sess))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_memory",
		Description: "Get the four memory counters and the current alignment.",
	}, getMemoryHandler(sess))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "make_choice",
		Description: "Apply a choice (index 0-3) in the current scene, advance the story and autosave.",
	}, makeChoiceHandler(sess, st))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "reset_game",
		Description: "Start a new game: zero memory, return to the first scene.",
	}, resetGameHandler(sess, st))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_save_slots",
		Description: "List a summary of every save slot, empty ones included.",
	}, getSaveSlotsHandler(st))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "save_game",
		Description: "Save current progress to a slot (overwrites).",
	}, saveGameHandler(sess, st))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "load_game",
		Description: "Load progress from a slot and make it the active game.",
	}, loadGameHandler(sess, st))

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatalf("intothedark serve: %v", err)
	}
}

// --- Input types ---

type emptyInput struct{}

type makeChoiceInput struct {
	Index int `json:"index" jsonschema:"Choice index in the current scene (0-3)"`
}

type slotInput struct {
	Slot int `json:"slot" jsonschema:"Save slot number (0-9); slot 0 is the autosave"`
}

// --- Handlers ---

func getSceneHandler(sess *engine.Session) func(context.Context, *mcp.CallToolRequest, emptyInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, in emptyInput) (*mcp.CallToolResult, any, error) {
		return textResult(jsonString(sess.Projection())), nil, nil
	}
}

func getMemoryHandler(sess *engine.Session) func(context.Context, *mcp.CallToolRequest, emptyInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, in emptyInput) (*mcp.CallToolResult, any, error) {
		p := sess.Projection()
		return textResult(jsonString(memoryOutput{
			Kindness:     p.Memory[model.AxisKindness],
			Obsession:    p.Memory[model.AxisObsession],
			Truth:        p.Memory[model.AxisTruth],
			Trust:        p.Memory[model.AxisTrust],
			Alignment:    p.Alignment,
			TotalChoices: p.TotalChoices,
			PlayTime:     p.PlayTime,
		})), nil, nil
	}
}

func makeChoiceHandler(sess *engine.Session, st save.Store) func(context.Context, *mcp.CallToolRequest, makeChoiceInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, in makeChoiceInput) (*mcp.CallToolResult, any, error) {
		outcome, err := sess.ApplyChoice(in.Index)
		if err != nil {
			return errResult(err), nil, nil
		}
		if err := autosave(ctx, st, sess); err != nil {
			return errResult(err), nil, nil
		}
		return textResult(jsonString(outcome)), nil, nil
	}
}

func resetGameHandler(sess *engine.Session, st save.Store) func(context.Context, *mcp.CallToolRequest, emptyInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, in emptyInput) (*mcp.CallToolResult, any, error) {
		events := sess.Reset()
		if err := autosave(ctx, st, sess); err != nil {
			return errResult(err), nil, nil
		}
		return textResult(jsonString(map[string]any{"ok": true, "events": events})), nil, nil
	}
}

func getSaveSlotsHandler(st save.Store) func(context.Context, *mcp.CallToolRequest, emptyInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, in emptyInput) (*mcp.CallToolResult, any, error) {
		slots, err := st.Slots(ctx)
		if err != nil {
			return errResult(err), nil, nil
		}
		return textResult(jsonString(map[string]any{"save_slots": slots})), nil, nil
	}
}

func saveGameHandler(sess *engine.Session, st save.Store) func(context.Context, *mcp.CallToolRequest, slotInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, in slotInput) (*mcp.CallToolResult, any, error) {
		p := sess.Progress()
		if err := st.Save(ctx, in.Slot, save.NewRecord(p, engine.Classify(p.Memory))); err != nil {
			return errResult(err), nil, nil
		}
		return textResult(jsonString(map[string]any{"ok": true, "slot": in.Slot})), nil, nil
	}
}

func loadGameHandler(sess *engine.Session, st save.Store) func(context.Context, *mcp.CallToolRequest, slotInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, in slotInput) (*mcp.CallToolResult, any, error) {
		rec, err := st.Load(ctx, in.Slot)
		if err != nil {
			return errResult(err), nil, nil
		}
		if err := sess.Restore(rec.Progress); err != nil {
			return errResult(err), nil, nil
		}
		if in.Slot != save.AutosaveSlot {
			if err := autosave(ctx, st, sess); err != nil {
				return errResult(err), nil, nil
			}
		}
		return textResult(jsonString(map[string]any{"ok": true, "slot": in.Slot})), nil, nil
	}
}

// --- Helpers ---

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errResult(err error) *mcp.CallToolResult {
	return textResult(jsonString(map[string]string{"error": err.Error()}))
}

func jsonString(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal: %v"}`, err)
	}
	return string(data)
}
