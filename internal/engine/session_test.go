package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ashfall-games/intothedark/internal/catalog"
	"github.com/ashfall-games/intothedark/internal/model"
)

func testResponses(tag string) model.ResponseSet {
	return model.ResponseSet{
		Kind:        "kind " + tag,
		Obsessed:    "obsessed " + tag,
		TruthSeeker: "truth " + tag,
		Trusting:    "trusting " + tag,
		Neutral:     "neutral " + tag,
		Mixed:       "mixed " + tag,
	}
}

func testScene(id int) model.Scene {
	tag := fmt.Sprintf("s%d", id)
	choices := make([]model.Choice, 0, model.ChoicesPerScene)
	for i, axis := range model.Axes {
		choices = append(choices, model.Choice{
			Text:            fmt.Sprintf("option %d of %s", i, tag),
			MemoryType:      axis,
			MemoryValue:     5,
			ConsequenceText: fmt.Sprintf("consequence %d of %s", i, tag),
			Responses:       testResponses(tag),
		})
	}
	return model.Scene{
		ID:         id,
		Title:      "Scene " + tag,
		Background: "bg_" + tag + ".jpg",
		Dialogue:   []model.Dialogue{{Speaker: "Narrator", Text: "dialogue " + tag}},
		Choices:    choices,
	}
}

func testEndings() []model.Ending {
	endings := make([]model.Ending, 0, 5)
	for _, a := range []model.Alignment{
		model.AlignmentKind,
		model.AlignmentObsessed,
		model.AlignmentTruthSeeker,
		model.AlignmentTrusting,
		model.AlignmentNeutral,
	} {
		endings = append(endings, model.Ending{
			Alignment:  a,
			Title:      "Ending: " + string(a),
			Background: "ending.jpg",
			Dialogue:   "ending dialogue for " + string(a),
		})
	}
	return endings
}

// testCatalog builds a linear story with n scenes, ids 1..n, every
// choice worth 5 on one of the four axes in declaration order.
func testCatalog(t *testing.T, n int) *catalog.Catalog {
	t.Helper()
	scenes := make([]model.Scene, 0, n)
	for id := 1; id <= n; id++ {
		scenes = append(scenes, testScene(id))
	}
	cat, err := catalog.New(scenes, testEndings())
	if err != nil {
		t.Fatalf("building test catalog: %v", err)
	}
	return cat
}

type recordedCue struct {
	Name    string
	SceneID int
	Track   string
}

type recordingSink struct {
	cues []recordedCue
}

func (r *recordingSink) Cue(name string, sceneID int, track string) {
	r.cues = append(r.cues, recordedCue{name, sceneID, track})
}

func TestSessionStartsAtFirstScene(t *testing.T) {
	sess := NewSession(testCatalog(t, 3))

	p := sess.Projection()
	if p.SceneID != 1 {
		t.Errorf("expected scene 1, got %d", p.SceneID)
	}
	if p.Ended {
		t.Error("fresh session reported ended")
	}
	if p.Alignment != model.AlignmentNeutral {
		t.Errorf("fresh session alignment %q, want neutral", p.Alignment)
	}
	if len(p.Choices) != model.ChoicesPerScene {
		t.Errorf("expected %d choices, got %d", model.ChoicesPerScene, len(p.Choices))
	}
}

func TestApplyChoiceAdvances(t *testing.T) {
	sess := NewSession(testCatalog(t, 3))

	out, err := sess.ApplyChoice(0)
	if err != nil {
		t.Fatalf("apply choice: %v", err)
	}

	if out.SceneID != 2 {
		t.Errorf("expected advance to scene 2, got %d", out.SceneID)
	}
	if out.Ended {
		t.Error("mid-story choice reported ended")
	}
	if out.Consequence != "consequence 0 of s1" {
		t.Errorf("unexpected consequence %q", out.Consequence)
	}
	if out.Response != "neutral s1" {
		t.Errorf("expected the neutral response below threshold, got %q", out.Response)
	}
	wantEvents := []Event{EventMemoryChanged, EventSceneChanged}
	if diff := cmp.Diff(wantEvents, out.Events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	p := sess.Progress()
	if p.Memory[model.AxisKindness] != 5 {
		t.Errorf("kindness = %d, want 5", p.Memory[model.AxisKindness])
	}
	wantLog := []model.ChoiceRecord{{SceneID: 1, ChoiceIndex: 0}}
	if diff := cmp.Diff(wantLog, p.ChoiceLog); diff != "" {
		t.Errorf("choice log mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1}, p.WatchedSceneIDs); diff != "" {
		t.Errorf("watched scenes mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyChoiceInvalidIndexLeavesStateUnchanged(t *testing.T) {
	sess := NewSession(testCatalog(t, 3))
	if _, err := sess.ApplyChoice(1); err != nil {
		t.Fatalf("apply choice: %v", err)
	}
	before := sess.Progress()

	for _, index := range []int{-1, 4, 99} {
		_, err := sess.ApplyChoice(index)
		if !errors.Is(err, ErrInvalidChoice) {
			t.Fatalf("index %d: expected ErrInvalidChoice, got %v", index, err)
		}
	}

	after := sess.Progress()
	ignore := cmpopts.IgnoreFields(model.Progress{}, "PlayTimeSeconds")
	if diff := cmp.Diff(before, after, ignore); diff != "" {
		t.Errorf("rejected choices mutated state (-before +after):\n%s", diff)
	}
}

func TestApplyChoiceAfterEnded(t *testing.T) {
	sess := NewSession(testCatalog(t, 1))
	if _, err := sess.ApplyChoice(0); err != nil {
		t.Fatalf("apply choice: %v", err)
	}

	if _, err := sess.ApplyChoice(0); !errors.Is(err, ErrInvalidChoice) {
		t.Fatalf("expected ErrInvalidChoice after ending, got %v", err)
	}
}

func TestLastSceneEndsStory(t *testing.T) {
	sess := NewSession(testCatalog(t, 2))

	if _, err := sess.ApplyChoice(0); err != nil {
		t.Fatalf("scene 1: %v", err)
	}
	out, err := sess.ApplyChoice(0)
	if err != nil {
		t.Fatalf("scene 2: %v", err)
	}

	if !out.Ended {
		t.Fatal("last scene choice did not end the story")
	}
	if out.SceneID != model.EndingSceneID(out.Alignment) {
		t.Errorf("ending scene id %d does not match alignment %q", out.SceneID, out.Alignment)
	}
	wantEvents := []Event{EventMemoryChanged, EventGameEnded}
	if diff := cmp.Diff(wantEvents, out.Events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	p := sess.Projection()
	if !p.Ended {
		t.Error("projection does not report ended")
	}
	if len(p.Choices) != 0 {
		t.Errorf("ended projection offers %d choices", len(p.Choices))
	}
	if p.Title != "Ending: "+string(out.Alignment) {
		t.Errorf("ended projection title %q for alignment %q", p.Title, out.Alignment)
	}
}

func TestNextSceneIDOverridesAscendingOrder(t *testing.T) {
	scenes := []model.Scene{testScene(1), testScene(2), testScene(5)}
	scenes[0].Choices[3].NextSceneID = 5

	cat, err := catalog.New(scenes, testEndings())
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	sess := NewSession(cat)

	out, err := sess.ApplyChoice(3)
	if err != nil {
		t.Fatalf("apply choice: %v", err)
	}
	if out.SceneID != 5 {
		t.Errorf("expected jump to scene 5, got %d", out.SceneID)
	}
}

func TestFullWalkthrough(t *testing.T) {
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("loading built-in story: %v", err)
	}
	sess := NewSession(cat)

	var last *ChoiceOutcome
	for i := 0; i < cat.Len(); i++ {
		out, err := sess.ApplyChoice(0)
		if err != nil {
			t.Fatalf("choice %d: %v", i+1, err)
		}
		last = out
	}

	if !last.Ended {
		t.Fatalf("story did not end after %d choices", cat.Len())
	}
	p := sess.Progress()
	if got := Classify(p.Memory); got != last.Alignment {
		t.Errorf("final alignment %q does not classify from memory (%q)", last.Alignment, got)
	}
	if len(p.ChoiceLog) != cat.Len() {
		t.Errorf("choice log length %d, want %d", len(p.ChoiceLog), cat.Len())
	}
	if len(p.WatchedSceneIDs) != cat.Len() {
		t.Errorf("watched %d scenes, want %d", len(p.WatchedSceneIDs), cat.Len())
	}
}

func TestAlignedResponseSelected(t *testing.T) {
	// Four kindness choices put the axis at threshold: the fifth
	// outcome must carry the kind response.
	sess := NewSession(testCatalog(t, 6))
	for i := 0; i < 4; i++ {
		if _, err := sess.ApplyChoice(0); err != nil {
			t.Fatalf("choice %d: %v", i+1, err)
		}
	}

	out, err := sess.ApplyChoice(0)
	if err != nil {
		t.Fatalf("apply choice: %v", err)
	}
	if out.Alignment != model.AlignmentKind {
		t.Fatalf("alignment %q, want kind", out.Alignment)
	}
	if out.Response != "kind s5" {
		t.Errorf("response %q, want the kind variant", out.Response)
	}
}

func TestReset(t *testing.T) {
	sess := NewSession(testCatalog(t, 3))
	sess.ApplyChoice(0)
	sess.ApplyChoice(1)
	before := sess.Progress()

	events := sess.Reset()

	wantEvents := []Event{EventSceneChanged, EventMemoryChanged}
	if diff := cmp.Diff(wantEvents, events); diff != "" {
		t.Errorf("reset events mismatch (-want +got):\n%s", diff)
	}

	p := sess.Progress()
	if p.CurrentSceneID != 1 {
		t.Errorf("reset scene %d, want 1", p.CurrentSceneID)
	}
	if total := p.Memory.Total(); total != 0 {
		t.Errorf("reset memory total %d, want 0", total)
	}
	if len(p.ChoiceLog) != 0 || len(p.WatchedSceneIDs) != 0 {
		t.Errorf("reset kept history: %d choices, %d watched", len(p.ChoiceLog), len(p.WatchedSceneIDs))
	}
	if p.SessionID == before.SessionID {
		t.Error("reset kept the previous session id")
	}
}

func TestProgressRestoreRoundTrip(t *testing.T) {
	cat := testCatalog(t, 5)
	sess := NewSession(cat)
	sess.ApplyChoice(2)
	sess.ApplyChoice(2)
	sess.ApplyChoice(0)
	saved := sess.Progress()

	restored := NewSession(cat)
	if err := restored.Restore(saved); err != nil {
		t.Fatalf("restore: %v", err)
	}

	got := restored.Progress()
	ignore := cmpopts.IgnoreFields(model.Progress{}, "PlayTimeSeconds")
	if diff := cmp.Diff(saved, got, ignore); diff != "" {
		t.Errorf("restored progress mismatch (-saved +restored):\n%s", diff)
	}
	if got.PlayTimeSeconds < saved.PlayTimeSeconds {
		t.Errorf("restored play time %f went backwards from %f", got.PlayTimeSeconds, saved.PlayTimeSeconds)
	}
}

func TestRestoreEndedSave(t *testing.T) {
	sess := NewSession(testCatalog(t, 3))
	err := sess.Restore(model.Progress{
		CurrentSceneID: model.EndingSceneID(model.AlignmentKind),
		Memory:         model.Snapshot{model.AxisKindness: 30},
	})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}

	p := sess.Projection()
	if !p.Ended {
		t.Error("restored ending save not reported as ended")
	}
	if _, err := sess.ApplyChoice(0); !errors.Is(err, ErrInvalidChoice) {
		t.Errorf("expected ErrInvalidChoice on ended session, got %v", err)
	}
}

func TestRestoreRejectsBadRecord(t *testing.T) {
	sess := NewSession(testCatalog(t, 3))
	sess.ApplyChoice(0)
	before := sess.Progress()

	bad := []model.Progress{
		{CurrentSceneID: 42, Memory: model.NewSnapshot()},
		{CurrentSceneID: 1, Memory: model.Snapshot{"rage": 5}},
		{CurrentSceneID: 1, Memory: model.Snapshot{model.AxisTruth: -1}},
	}
	for _, p := range bad {
		if err := sess.Restore(p); err == nil {
			t.Errorf("restore of %+v succeeded, want error", p)
		}
	}

	after := sess.Progress()
	ignore := cmpopts.IgnoreFields(model.Progress{}, "PlayTimeSeconds")
	if diff := cmp.Diff(before, after, ignore); diff != "" {
		t.Errorf("failed restores mutated state (-before +after):\n%s", diff)
	}
}

func TestCueSink(t *testing.T) {
	sink := &recordingSink{}
	sess := NewSession(testCatalog(t, 3))
	sess.SetCueSink(sink)

	if _, err := sess.ApplyChoice(0); err != nil {
		t.Fatalf("apply choice: %v", err)
	}

	want := []recordedCue{
		{CueChoiceMade, 1, ""},
		{CueSceneStart, 2, ""},
	}
	if diff := cmp.Diff(want, sink.cues); diff != "" {
		t.Errorf("cues mismatch (-want +got):\n%s", diff)
	}
}
