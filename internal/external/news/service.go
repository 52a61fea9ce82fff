package news

import (
	"context"
	"time"

	"github.com/wonny/matchday/internal/cache"
)

// Fetcher produces a fresh feed
type Fetcher interface {
	Fetch(ctx context.Context) (Feed, error)
}

// Service serves the latest feed from cache
type Service struct {
	fetcher Fetcher
	cache   *cache.Cache[Feed]
}

// NewService caches fetcher's feed for ttl
func NewService(fetcher Fetcher, ttl time.Duration, opts ...cache.Option) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   cache.New[Feed]("news", ttl, opts...),
	}
}

// Latest returns the cached feed, scraping on a miss
func (s *Service) Latest(ctx context.Context) (Feed, error) {
	return s.cache.GetOrLoad(ctx, "", s.fetcher.Fetch)
}

// Refresh scrapes now and replaces the cached feed
func (s *Service) Refresh(ctx context.Context) (int, error) {
	feed, err := s.cache.Refresh(ctx, "", s.fetcher.Fetch)
	return len(feed.Items), err
}
