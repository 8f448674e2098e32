package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"cosmos-newsdesk/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "news.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteCreateGetDelete(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	item := model.NewsItem{
		Title:     "Запуск зонда",
		Author:    "редакция",
		Content:   "Подробности миссии: https://example.com/probe",
		Image:     "probe.png",
		CreatedAt: model.NowUTC(),
		FakeScore: 12.5,
	}
	id, err := s.CreateNews(ctx, item)
	if err != nil {
		t.Fatalf("CreateNews: %v", err)
	}
	if id <= 0 {
		t.Fatalf("id = %d, want positive", id)
	}

	got, err := s.GetNews(ctx, id)
	if err != nil {
		t.Fatalf("GetNews: %v", err)
	}
	item.ID = id
	if got != item {
		t.Errorf("GetNews = %+v, want %+v", got, item)
	}

	if err := s.DeleteNews(ctx, id); err != nil {
		t.Fatalf("DeleteNews: %v", err)
	}
	if _, err := s.GetNews(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetNews after delete: err = %v, want ErrNotFound", err)
	}
	if err := s.DeleteNews(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteNews: err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteListNewestFirst(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	var ids []int64
	for _, title := range []string{"первая", "вторая", "третья"} {
		id, err := s.CreateNews(ctx, model.NewsItem{
			Title: title, Content: "x", CreatedAt: model.NowUTC(),
		})
		if err != nil {
			t.Fatalf("CreateNews: %v", err)
		}
		ids = append(ids, id)
	}

	all, err := s.ListNews(ctx, 0)
	if err != nil {
		t.Fatalf("ListNews: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	for i, want := range []int64{ids[2], ids[1], ids[0]} {
		if all[i].ID != want {
			t.Errorf("all[%d].ID = %d, want %d", i, all[i].ID, want)
		}
	}

	top, err := s.ListNews(ctx, 2)
	if err != nil {
		t.Fatalf("ListNews(2): %v", err)
	}
	if len(top) != 2 || top[0].ID != ids[2] {
		t.Errorf("ListNews(2) = %v", top)
	}
}

func TestSQLiteTrustedHeadlinesTTL(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	want := []string{"Артемида летит к Луне", "Телескоп увидел древнюю галактику"}
	if err := s.SetTrustedHeadlines(ctx, want, time.Hour); err != nil {
		t.Fatalf("SetTrustedHeadlines: %v", err)
	}
	got, err := s.TrustedHeadlines(ctx)
	if err != nil {
		t.Fatalf("TrustedHeadlines: %v", err)
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("TrustedHeadlines = %v, want %v", got, want)
	}

	// A fresh set replaces the old one.
	if err := s.SetTrustedHeadlines(ctx, []string{"Новый заголовок"}, time.Hour); err != nil {
		t.Fatalf("SetTrustedHeadlines: %v", err)
	}
	got, err = s.TrustedHeadlines(ctx)
	if err != nil {
		t.Fatalf("TrustedHeadlines: %v", err)
	}
	if len(got) != 1 || got[0] != "Новый заголовок" {
		t.Errorf("after replace: %v", got)
	}

	// Expired entries are invisible.
	if err := s.SetTrustedHeadlines(ctx, []string{"устаревший"}, -time.Second); err != nil {
		t.Fatalf("SetTrustedHeadlines: %v", err)
	}
	got, err = s.TrustedHeadlines(ctx)
	if err != nil {
		t.Fatalf("TrustedHeadlines: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expired headlines leaked: %v", got)
	}
}
