package storage

import (
	"context"
	"errors"
	"time"

	"cosmos-newsdesk/internal/model"
)

// ErrNotFound is returned when a news item does not exist.
var ErrNotFound = errors.New("news item not found")

// Store is the flat record store behind the site. Implementations must
// assign monotonically increasing IDs and tolerate concurrent deletes.
type Store interface {
	CreateNews(ctx context.Context, item model.NewsItem) (int64, error)
	GetNews(ctx context.Context, id int64) (model.NewsItem, error)
	// ListNews returns items newest first. limit <= 0 means all.
	ListNews(ctx context.Context, limit int) ([]model.NewsItem, error)
	DeleteNews(ctx context.Context, id int64) error

	// Trusted headline cache consumed by the embedding cross-check.
	SetTrustedHeadlines(ctx context.Context, headlines []string, ttl time.Duration) error
	TrustedHeadlines(ctx context.Context) ([]string, error)

	Close() error
}
