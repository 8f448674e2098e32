package retention

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cosmos-newsdesk/internal/media"
	"cosmos-newsdesk/internal/model"
	"cosmos-newsdesk/internal/moderation"
	"cosmos-newsdesk/internal/storage"
)

// Policy applies the fake-score threshold at submission time and during
// purge sweeps. The decision itself is pure given (score, threshold); only
// the store and file mutations are side effects.
type Policy struct {
	Classifier *moderation.Classifier
	Store      storage.Store
	Media      *media.Store
	Threshold  float64
}

// Decision is the outcome of evaluating one submission. The score is
// surfaced even on rejection so operators can recalibrate.
type Decision struct {
	Accepted bool    `json:"accepted"`
	Score    float64 `json:"score"`
}

// EvaluateSubmission scores a candidate. A score strictly above the
// threshold rejects it and removes any staged media; equality is accepted.
func (p *Policy) EvaluateSubmission(sub model.Submission) Decision {
	score := p.Classifier.Score(sub.Title, sub.Content)
	if score <= p.Threshold {
		return Decision{Accepted: true, Score: score}
	}
	p.removeMedia(0, sub.Image, sub.Audio)
	return Decision{Accepted: false, Score: score}
}

// Submit evaluates a candidate and, when accepted, persists it with the
// frozen score. Rejected submissions never reach the store.
func (p *Policy) Submit(ctx context.Context, sub model.Submission) (Decision, model.NewsItem, error) {
	d := p.EvaluateSubmission(sub)
	if !d.Accepted {
		return d, model.NewsItem{}, nil
	}
	item := model.NewsItem{
		Title:     sub.Title,
		Author:    sub.Author,
		Content:   sub.Content,
		Image:     sub.Image,
		Audio:     sub.Audio,
		CreatedAt: model.NowUTC(),
		FakeScore: d.Score,
	}
	id, err := p.Store.CreateNews(ctx, item)
	if err != nil {
		return d, model.NewsItem{}, fmt.Errorf("create news: %w", err)
	}
	item.ID = id
	return d, item, nil
}

// Delete removes one item and its media files, files first, so a crash in
// between leaves an orphaned file rather than a dangling reference.
func (p *Policy) Delete(ctx context.Context, id int64) error {
	it, err := p.Store.GetNews(ctx, id)
	if err != nil {
		return err
	}
	p.removeMedia(id, it.Image, it.Audio)
	return p.Store.DeleteNews(ctx, id)
}

// SweepFailure records an item the sweep could not purge.
type SweepFailure struct {
	ID  int64
	Err error
}

// Report summarizes one purge sweep.
type Report struct {
	PurgedIDs     []int64
	Failures      []SweepFailure
	CleanupErrors []error
}

// Purged returns the number of purged records.
func (r Report) Purged() int { return len(r.PurgedIDs) }

// SweepAndPurge deletes every stored item whose frozen score exceeds the
// threshold. Media goes before the record; an already-absent file counts as
// cleaned, and a failed removal is reported but never blocks the record
// deletion. A failed record deletion leaves the item for the next sweep, so
// the pass is idempotent and resumable.
func (p *Policy) SweepAndPurge(ctx context.Context) (Report, error) {
	items, err := p.Store.ListNews(ctx, 0)
	if err != nil {
		return Report{}, fmt.Errorf("list news: %w", err)
	}
	var rep Report
	for _, it := range items {
		if it.FakeScore <= p.Threshold {
			continue
		}
		rep.CleanupErrors = append(rep.CleanupErrors, p.removeMedia(it.ID, it.Image, it.Audio)...)
		if err := p.Store.DeleteNews(ctx, it.ID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// already purged by a concurrent sweep
				continue
			}
			rep.Failures = append(rep.Failures, SweepFailure{ID: it.ID, Err: err})
			continue
		}
		rep.PurgedIDs = append(rep.PurgedIDs, it.ID)
		slog.Info("retention: purged item over threshold",
			"id", it.ID, "score", it.FakeScore, "threshold", p.Threshold)
	}
	return rep, nil
}

// removeMedia deletes the named files best-effort and returns the failures
// that were not simple absence.
func (p *Policy) removeMedia(id int64, names ...string) []error {
	var errs []error
	for _, name := range names {
		if name == "" {
			continue
		}
		if res, err := p.Media.Remove(name); res == media.Failed {
			slog.Warn("retention: media cleanup failed", "id", id, "file", name, "error", err)
			errs = append(errs, err)
		}
	}
	return errs
}
