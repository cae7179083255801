package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storynest/internal/http-api/dto"
)

// BookCache keeps rendered catalog responses in redis so list/detail reads
// skip postgres while the catalog is unchanged. A nil cache (redis down or
// not configured) degrades to a no-op and every read falls through to the DB.
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBookCache(redisAddr, password string, ttl time.Duration) (*BookCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         redisAddr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &BookCache{client: rdb, ttl: ttl}, nil
}

func listKey(page, pageSize int) string {
	return fmt.Sprintf("books:list:page:%d:size:%d", page, pageSize)
}

func detailKey(id int64) string {
	return fmt.Sprintf("books:detail:%d", id)
}

func (c *BookCache) GetList(ctx context.Context, page, pageSize int) (*dto.PaginatedBooksResponse, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, listKey(page, pageSize)).Bytes()
	if err != nil {
		return nil, false // miss or redis error, fall through to DB
	}
	var resp dto.PaginatedBooksResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func (c *BookCache) SetList(ctx context.Context, page, pageSize int, resp *dto.PaginatedBooksResponse) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	c.client.Set(ctx, listKey(page, pageSize), raw, c.ttl)
}

func (c *BookCache) GetDetail(ctx context.Context, id int64) (*dto.BookResponse, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, detailKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var resp dto.BookResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

func (c *BookCache) SetDetail(ctx context.Context, id int64, resp *dto.BookResponse) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	c.client.Set(ctx, detailKey(id), raw, c.ttl)
}

// Invalidate drops every cached catalog entry after a mutation. List pages
// are swept by pattern since page/size combinations are unbounded.
func (c *BookCache) Invalidate(ctx context.Context, id int64) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, detailKey(id))

	iter := c.client.Scan(ctx, 0, "books:list:*", 100).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}
