package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cosmos-newsdesk/internal/model"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on Redis. Items live as JSON blobs keyed by
// ID with a ZSET index ordered by ID; the ID counter is a plain INCR key.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

const (
	nextIDKey    = "news:next_id"
	indexKey     = "news:ids"
	headlinesKey = "news:trusted_headlines"
)

func itemKey(id int64) string {
	return fmt.Sprintf("news:item:%d", id)
}

func (s *RedisStore) CreateNews(ctx context.Context, item model.NewsItem) (int64, error) {
	id, err := s.rdb.Incr(ctx, nextIDKey).Result()
	if err != nil {
		return 0, err
	}
	item.ID = id
	b, err := json.Marshal(item)
	if err != nil {
		return 0, err
	}
	if err := s.rdb.Set(ctx, itemKey(id), b, 0).Err(); err != nil {
		return 0, err
	}
	z := redis.Z{Score: float64(id), Member: id}
	if err := s.rdb.ZAdd(ctx, indexKey, z).Err(); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *RedisStore) GetNews(ctx context.Context, id int64) (model.NewsItem, error) {
	b, err := s.rdb.Get(ctx, itemKey(id)).Bytes()
	if err == redis.Nil {
		return model.NewsItem{}, ErrNotFound
	}
	if err != nil {
		return model.NewsItem{}, err
	}
	var it model.NewsItem
	if err := json.Unmarshal(b, &it); err != nil {
		return model.NewsItem{}, fmt.Errorf("decode item %d: %w", id, err)
	}
	return it, nil
}

func (s *RedisStore) ListNews(ctx context.Context, limit int) ([]model.NewsItem, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	ids, err := s.rdb.ZRevRange(ctx, indexKey, 0, stop).Result()
	if err != nil {
		return nil, err
	}
	out := make([]model.NewsItem, 0, len(ids))
	for _, id := range ids {
		b, err := s.rdb.Get(ctx, "news:item:"+id).Bytes()
		if err == redis.Nil {
			// removed by a concurrent delete; index entry is stale
			continue
		}
		if err != nil {
			return nil, err
		}
		var it model.NewsItem
		if err := json.Unmarshal(b, &it); err != nil {
			return nil, fmt.Errorf("decode item %s: %w", id, err)
		}
		out = append(out, it)
	}
	return out, nil
}

func (s *RedisStore) DeleteNews(ctx context.Context, id int64) error {
	n, err := s.rdb.Del(ctx, itemKey(id)).Result()
	if err != nil {
		return err
	}
	if err := s.rdb.ZRem(ctx, indexKey, id).Err(); err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) SetTrustedHeadlines(ctx context.Context, headlines []string, ttl time.Duration) error {
	b, err := json.Marshal(headlines)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, headlinesKey, b, ttl).Err()
}

func (s *RedisStore) TrustedHeadlines(ctx context.Context) ([]string, error) {
	b, err := s.rdb.Get(ctx, headlinesKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode trusted headlines: %w", err)
	}
	return out, nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
