package service

import (
	"context"
	"fmt"
	"time"

	"guestdex-backend/internal/domains/collectible/model"
	"guestdex-backend/internal/domains/collectible/repository"
	"guestdex-backend/pkg/cache"
	"guestdex-backend/pkg/logger"
)

const listingCacheTTL = 5 * time.Minute

// Service is the read side of the collectible directory. Listings are
// cached under "collectibles:*" keys, purged by the moderation
// reconciler on approval.
type Service interface {
	ListUnsorted(ctx context.Context) ([]model.Collectible, error)
	ListByYear(ctx context.Context, year int) ([]model.Collectible, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListByCategory(ctx context.Context, category string) ([]model.Collectible, error)
	Get(ctx context.Context, collectibleID string) (*model.Collectible, error)
}

type collectibleService struct {
	repo  repository.Repository
	cache cache.Cache
}

func NewCollectibleService(repo repository.Repository, c cache.Cache) Service {
	return &collectibleService{repo: repo, cache: c}
}

func (s *collectibleService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		logger.Warn("cache read failed for "+key, err)
		return false
	}
	return found
}

func (s *collectibleService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, listingCacheTTL); err != nil {
		logger.Warn("cache write failed for "+key, err)
	}
}

func (s *collectibleService) ListUnsorted(ctx context.Context) ([]model.Collectible, error) {
	const key = "collectibles:unsorted"

	var cached []model.Collectible
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	items, err := s.repo.ListUnsorted(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, items)
	return items, nil
}

func (s *collectibleService) ListByYear(ctx context.Context, year int) ([]model.Collectible, error) {
	key := fmt.Sprintf("collectibles:year:%d", year)

	var cached []model.Collectible
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	items, err := s.repo.ListByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, items)
	return items, nil
}

func (s *collectibleService) ListCategories(ctx context.Context) ([]string, error) {
	const key = "collectibles:categories"

	var cached []string
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, categories)
	return categories, nil
}

func (s *collectibleService) ListByCategory(ctx context.Context, category string) ([]model.Collectible, error) {
	return s.repo.ListByCategory(ctx, category)
}

func (s *collectibleService) Get(ctx context.Context, collectibleID string) (*model.Collectible, error) {
	return s.repo.Get(ctx, collectibleID)
}
