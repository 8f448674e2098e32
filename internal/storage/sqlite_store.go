package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cosmos-newsdesk/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a local SQLite file for single-node
// deployments.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS news (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		author TEXT,
		content TEXT NOT NULL,
		image TEXT,
		audio TEXT,
		created_at TEXT NOT NULL,
		fake_score REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS trusted_headlines (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		headline TEXT NOT NULL,
		expires_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_news_fake_score ON news(fake_score);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) CreateNews(ctx context.Context, item model.NewsItem) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO news (title, author, content, image, audio, created_at, fake_score)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.Title, item.Author, item.Content, item.Image, item.Audio,
		item.CreatedAt, item.FakeScore)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) GetNews(ctx context.Context, id int64) (model.NewsItem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, author, content, image, audio, created_at, fake_score
		FROM news WHERE id = ?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NewsItem{}, ErrNotFound
	}
	return it, err
}

func (s *SQLiteStore) ListNews(ctx context.Context, limit int) ([]model.NewsItem, error) {
	if limit <= 0 {
		limit = -1 // sqlite treats a negative LIMIT as "no limit"
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, author, content, image, audio, created_at, fake_score
		FROM news ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.NewsItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteNews(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM news WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) SetTrustedHeadlines(ctx context.Context, headlines []string, ttl time.Duration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM trusted_headlines`); err != nil {
		return err
	}
	expires := time.Now().Add(ttl).Unix()
	for _, h := range headlines {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO trusted_headlines (headline, expires_at) VALUES (?, ?)`,
			h, expires); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) TrustedHeadlines(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT headline FROM trusted_headlines
		WHERE expires_at > ? ORDER BY id`, time.Now().Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(sc scanner) (model.NewsItem, error) {
	var it model.NewsItem
	var author, image, audio sql.NullString
	if err := sc.Scan(&it.ID, &it.Title, &author, &it.Content, &image, &audio,
		&it.CreatedAt, &it.FakeScore); err != nil {
		return model.NewsItem{}, err
	}
	it.Author = author.String
	it.Image = image.String
	it.Audio = audio.String
	return it, nil
}
