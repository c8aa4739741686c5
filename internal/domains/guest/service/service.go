package service

import (
	"context"
	"fmt"
	"time"

	"guestdex-backend/internal/domains/guest/model"
	"guestdex-backend/internal/domains/guest/repository"
	"guestdex-backend/internal/shared/utils"
	"guestdex-backend/pkg/cache"
	"guestdex-backend/pkg/logger"
)

const listingCacheTTL = 5 * time.Minute

// Service is the public read side of the guest directory. Listings are
// cached in Redis under "guests:*" keys; the moderation reconciler
// purges that pattern on every approval.
type Service interface {
	ListGuests(ctx context.Context, year int) ([]model.YearlyGuest, error)
	GetGuest(ctx context.Context, guestID int64, year int) (*model.YearlyGuest, error)
	GetYearBlurbs(ctx context.Context, guestID int64) ([]model.YearBlurb, error)
	GetProfile(ctx context.Context, guestID int64) (*model.GuestProfile, error)
	Search(ctx context.Context, query string, page, perPage int) (*model.SearchResult, error)
	ListAccolades(ctx context.Context) ([]model.AccoladeEntry, error)
	ListVendors(ctx context.Context, year int) ([]model.YearlyGuest, error)
	GetVendor(ctx context.Context, guestID int64, year int) (*model.YearlyGuest, error)
	ListYears(ctx context.Context) ([]int, error)
	ListVendorYears(ctx context.Context) ([]int, error)
}

type guestService struct {
	repo  repository.Repository
	cache cache.Cache
}

func NewGuestService(repo repository.Repository, c cache.Cache) Service {
	return &guestService{repo: repo, cache: c}
}

// cacheGet is a best-effort read; cache failures degrade to the
// database.
func (s *guestService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
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

func (s *guestService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, listingCacheTTL); err != nil {
		logger.Warn("cache write failed for "+key, err)
	}
}

func decodeYearly(recs []model.YearlyGuest) []model.YearlyGuest {
	for i := range recs {
		recs[i].Blurb = utils.DecodeText(recs[i].Blurb)
		recs[i].Biography = utils.DecodeText(recs[i].Biography)
	}
	return recs
}

func (s *guestService) ListGuests(ctx context.Context, year int) ([]model.YearlyGuest, error) {
	key := fmt.Sprintf("guests:list:%d", year)

	var cached []model.YearlyGuest
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	recs, err := s.repo.ListYearly(ctx, year)
	if err != nil {
		return nil, err
	}
	recs = decodeYearly(recs)
	s.cacheSet(ctx, key, recs)
	return recs, nil
}

func (s *guestService) GetGuest(ctx context.Context, guestID int64, year int) (*model.YearlyGuest, error) {
	rec, err := s.repo.GetYearly(ctx, guestID, year)
	if err != nil {
		return nil, err
	}
	rec.Blurb = utils.DecodeText(rec.Blurb)
	rec.Biography = utils.DecodeText(rec.Biography)
	return rec, nil
}

func (s *guestService) GetYearBlurbs(ctx context.Context, guestID int64) ([]model.YearBlurb, error) {
	blurbs, err := s.repo.ListYearBlurbs(ctx, guestID)
	if err != nil {
		return nil, err
	}
	if len(blurbs) == 0 {
		return nil, model.ErrGuestNotFound
	}
	for i := range blurbs {
		blurbs[i].Blurb = utils.DecodeText(blurbs[i].Blurb)
		blurbs[i].Biography = utils.DecodeText(blurbs[i].Biography)
	}
	return blurbs, nil
}

func (s *guestService) GetProfile(ctx context.Context, guestID int64) (*model.GuestProfile, error) {
	yearly, err := s.repo.ListYearlyByGuest(ctx, guestID)
	if err != nil {
		return nil, err
	}
	collectibles, err := s.repo.ListCollectiblesByGuest(ctx, guestID)
	if err != nil {
		return nil, err
	}
	if len(yearly) == 0 && len(collectibles) == 0 {
		return nil, model.ErrGuestNotFound
	}

	return &model.GuestProfile{
		YearlyGuests: decodeYearly(yearly),
		Collectibles: collectibles,
	}, nil
}

func (s *guestService) Search(ctx context.Context, query string, page, perPage int) (*model.SearchResult, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	guests, total, err := s.repo.SearchGuests(ctx, query, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}

	pages := 0
	if total > 0 {
		pages = (total + perPage - 1) / perPage
	}
	return &model.SearchResult{
		Guests:  guests,
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   pages,
	}, nil
}

func (s *guestService) ListAccolades(ctx context.Context) ([]model.AccoladeEntry, error) {
	const key = "guests:accolades"

	var cached []model.AccoladeEntry
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	entries, err := s.repo.ListAccolades(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, entries)
	return entries, nil
}

func (s *guestService) ListVendors(ctx context.Context, year int) ([]model.YearlyGuest, error) {
	key := fmt.Sprintf("guests:vendors:%d", year)

	var cached []model.YearlyGuest
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	recs, err := s.repo.ListVendors(ctx, year)
	if err != nil {
		return nil, err
	}
	recs = decodeYearly(recs)
	s.cacheSet(ctx, key, recs)
	return recs, nil
}

func (s *guestService) GetVendor(ctx context.Context, guestID int64, year int) (*model.YearlyGuest, error) {
	rec, err := s.repo.GetVendor(ctx, guestID, year)
	if err != nil {
		return nil, err
	}
	rec.Blurb = utils.DecodeText(rec.Blurb)
	rec.Biography = utils.DecodeText(rec.Biography)
	return rec, nil
}

func (s *guestService) ListYears(ctx context.Context) ([]int, error) {
	const key = "guests:years"

	var cached []int
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	years, err := s.repo.ListYears(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, years)
	return years, nil
}

func (s *guestService) ListVendorYears(ctx context.Context) ([]int, error) {
	const key = "guests:vendor_years"

	var cached []int
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	years, err := s.repo.ListVendorYears(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, years)
	return years, nil
}
