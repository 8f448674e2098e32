package retention

import (
	"context"
	"os"
	"testing"

	"cosmos-newsdesk/internal/media"
	"cosmos-newsdesk/internal/model"
	"cosmos-newsdesk/internal/moderation"
	"cosmos-newsdesk/internal/storage"
)

func newTestPolicy(t *testing.T, w moderation.Weights, threshold float64) (*Policy, *storage.MemStore, *media.Store) {
	t.Helper()
	ex, err := moderation.NewExtractor(moderation.DefaultLexicon())
	if err != nil {
		t.Fatalf("NewExtractor: %v", err)
	}
	m, err := media.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("media.NewStore: %v", err)
	}
	store := storage.NewMemStore()
	p := &Policy{
		Classifier: moderation.NewClassifier(ex, w),
		Store:      store,
		Media:      m,
		Threshold:  threshold,
	}
	return p, store, m
}

func stageFile(t *testing.T, m *media.Store, name string) {
	t.Helper()
	if err := os.WriteFile(m.Path(name), []byte("payload"), 0o644); err != nil {
		t.Fatalf("stage %s: %v", name, err)
	}
}

func TestEvaluateAcceptsAtThreshold(t *testing.T) {
	// Only the missing-link weight fires: any text without a URL scores 12.
	w, err := moderation.Weights{}.WithOverrides(map[string]float64{"no_url": 12})
	if err != nil {
		t.Fatalf("WithOverrides: %v", err)
	}
	sub := model.Submission{Title: "заголовок", Content: "текст без ссылок"}

	p, _, _ := newTestPolicy(t, w, 12)
	if d := p.EvaluateSubmission(sub); !d.Accepted || d.Score != 12 {
		t.Errorf("score equal to threshold must be accepted, got %+v", d)
	}

	p, _, _ = newTestPolicy(t, w, 11.9)
	if d := p.EvaluateSubmission(sub); d.Accepted {
		t.Errorf("score above threshold must be rejected, got %+v", d)
	}
}

func TestRejectRemovesStagedMedia(t *testing.T) {
	p, _, m := newTestPolicy(t, moderation.StrictWeights(), 70)
	stageFile(t, m, "staged.png")
	stageFile(t, m, "staged.mp3")

	d := p.EvaluateSubmission(model.Submission{
		Title:   "СРОЧНО!!! ШОК: обнаружен рептилоид на Марсе!!!",
		Content: "Учёные скрывают правду от нас",
		Image:   "staged.png",
		Audio:   "staged.mp3",
	})
	if d.Accepted {
		t.Fatalf("expected rejection, got %+v", d)
	}
	if d.Score <= 70 {
		t.Errorf("rejection must surface the score, got %v", d.Score)
	}
	if m.Exists("staged.png") || m.Exists("staged.mp3") {
		t.Errorf("staged media should be removed on rejection")
	}
}

func TestSubmitFreezesScore(t *testing.T) {
	p, store, _ := newTestPolicy(t, moderation.StrictWeights(), 70)
	d, item, err := p.Submit(context.Background(), model.Submission{
		Title:   "James Webb telescope finds new exoplanet",
		Author:  "observer",
		Content: "A careful report with a source: https://www.nasa.gov/webb and enough detail to be plausible.",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !d.Accepted {
		t.Fatalf("expected acceptance, got %+v", d)
	}
	got, err := store.GetNews(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("GetNews: %v", err)
	}
	if got.FakeScore != d.Score {
		t.Errorf("stored score %v != decision score %v", got.FakeScore, d.Score)
	}
	if got.CreatedAt == "" {
		t.Errorf("expected a creation timestamp")
	}
}

func TestSweepPurgesAndIsIdempotent(t *testing.T) {
	p, store, m := newTestPolicy(t, moderation.StrictWeights(), 70)
	ctx := context.Background()

	stageFile(t, m, "fake.png")
	overID, err := store.CreateNews(ctx, model.NewsItem{
		Title: "фейк", Content: "x", Image: "fake.png", FakeScore: 95,
		CreatedAt: model.NowUTC(),
	})
	if err != nil {
		t.Fatalf("CreateNews: %v", err)
	}
	underID, err := store.CreateNews(ctx, model.NewsItem{
		Title: "норма", Content: "y", FakeScore: 10,
		CreatedAt: model.NowUTC(),
	})
	if err != nil {
		t.Fatalf("CreateNews: %v", err)
	}

	rep, err := p.SweepAndPurge(ctx)
	if err != nil {
		t.Fatalf("SweepAndPurge: %v", err)
	}
	if rep.Purged() != 1 || rep.PurgedIDs[0] != overID {
		t.Fatalf("first sweep: purged %v, want [%d]", rep.PurgedIDs, overID)
	}
	if len(rep.Failures) != 0 || len(rep.CleanupErrors) != 0 {
		t.Errorf("unexpected failures: %+v", rep)
	}
	if m.Exists("fake.png") {
		t.Errorf("media of purged item should be deleted")
	}
	if _, err := store.GetNews(ctx, overID); err != storage.ErrNotFound {
		t.Errorf("purged record should be gone, got err=%v", err)
	}
	if _, err := store.GetNews(ctx, underID); err != nil {
		t.Errorf("under-threshold record must survive: %v", err)
	}

	// Second sweep finds nothing.
	rep, err = p.SweepAndPurge(ctx)
	if err != nil {
		t.Fatalf("second SweepAndPurge: %v", err)
	}
	if rep.Purged() != 0 {
		t.Errorf("second sweep purged %v, want 0", rep.PurgedIDs)
	}
}

func TestSweepOrphanSafety(t *testing.T) {
	p, store, _ := newTestPolicy(t, moderation.StrictWeights(), 70)
	ctx := context.Background()

	// The referenced file was never written: already absent.
	id, err := store.CreateNews(ctx, model.NewsItem{
		Title: "фейк", Content: "x", Image: "vanished.png", Audio: "vanished.mp3",
		FakeScore: 99, CreatedAt: model.NowUTC(),
	})
	if err != nil {
		t.Fatalf("CreateNews: %v", err)
	}

	rep, err := p.SweepAndPurge(ctx)
	if err != nil {
		t.Fatalf("SweepAndPurge: %v", err)
	}
	if rep.Purged() != 1 {
		t.Fatalf("purged %d, want 1", rep.Purged())
	}
	if len(rep.CleanupErrors) != 0 {
		t.Errorf("missing files must not count as cleanup errors: %v", rep.CleanupErrors)
	}
	if _, err := store.GetNews(ctx, id); err != storage.ErrNotFound {
		t.Errorf("record should be gone despite missing media, err=%v", err)
	}
}

func TestDeleteRemovesMediaFirst(t *testing.T) {
	p, store, m := newTestPolicy(t, moderation.StrictWeights(), 70)
	ctx := context.Background()

	stageFile(t, m, "pic.png")
	id, err := store.CreateNews(ctx, model.NewsItem{
		Title: "обычная", Content: "x", Image: "pic.png", FakeScore: 5,
		CreatedAt: model.NowUTC(),
	})
	if err != nil {
		t.Fatalf("CreateNews: %v", err)
	}
	if err := p.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if m.Exists("pic.png") {
		t.Errorf("media should be removed with the record")
	}
	if err := p.Delete(ctx, id); err != storage.ErrNotFound {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}
