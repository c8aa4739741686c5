package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestdex-backend/internal/domains/guest/model"
	"guestdex-backend/internal/shared/utils"
)

// fakeRepo serves canned projections and counts calls so cache hits
// are observable.
type fakeRepo struct {
	yearly       []model.YearlyGuest
	blurbs       []model.YearBlurb
	collectibles []model.ProfileCollectible
	guests       []model.Guest
	years        []int
	listCalls    int
}

func (f *fakeRepo) ListYearly(_ context.Context, year int) ([]model.YearlyGuest, error) {
	f.listCalls++
	if year == 0 {
		return append([]model.YearlyGuest(nil), f.yearly...), nil
	}
	var out []model.YearlyGuest
	for _, g := range f.yearly {
		if g.Year == year {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetYearly(_ context.Context, guestID int64, year int) (*model.YearlyGuest, error) {
	for _, g := range f.yearly {
		if g.GuestID == guestID && g.Year == year {
			rec := g
			return &rec, nil
		}
	}
	return nil, model.ErrGuestNotFound
}

func (f *fakeRepo) ListYearBlurbs(context.Context, int64) ([]model.YearBlurb, error) {
	return append([]model.YearBlurb(nil), f.blurbs...), nil
}

func (f *fakeRepo) ListYearlyByGuest(_ context.Context, guestID int64) ([]model.YearlyGuest, error) {
	var out []model.YearlyGuest
	for _, g := range f.yearly {
		if g.GuestID == guestID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListCollectiblesByGuest(context.Context, int64) ([]model.ProfileCollectible, error) {
	return append([]model.ProfileCollectible(nil), f.collectibles...), nil
}

func (f *fakeRepo) SearchGuests(_ context.Context, _ string, limit, offset int) ([]model.Guest, int, error) {
	total := len(f.guests)
	if offset >= total {
		return nil, total, nil
	}
	out := f.guests[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (f *fakeRepo) ListAccolades(context.Context) ([]model.AccoladeEntry, error) {
	return nil, nil
}

func (f *fakeRepo) ListVendors(context.Context, int) ([]model.YearlyGuest, error) {
	return nil, nil
}

func (f *fakeRepo) GetVendor(context.Context, int64, int) (*model.YearlyGuest, error) {
	return nil, model.ErrGuestNotFound
}

func (f *fakeRepo) ListYears(context.Context) ([]int, error) {
	return append([]int(nil), f.years...), nil
}

func (f *fakeRepo) ListVendorYears(context.Context) ([]int, error) {
	return nil, nil
}

// fakeCache is a map-backed Cache with JSON round-tripping, matching
// the Redis implementation's marshalling behavior.
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeCache) DeletePattern(context.Context, string) error { return nil }
func (f *fakeCache) Ping(context.Context) error                  { return nil }

func TestListGuests_DecodesAndCaches(t *testing.T) {
	repo := &fakeRepo{yearly: []model.YearlyGuest{
		{GuestID: 1, Year: 2026, GuestName: "Jane Doe", Blurb: utils.EncodeText("hello")},
	}}
	c := newFakeCache()
	svc := NewGuestService(repo, c)
	ctx := context.Background()

	guests, err := svc.ListGuests(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, "hello", guests[0].Blurb)
	assert.Equal(t, 1, repo.listCalls)

	// Second read is served from the cache.
	guests, err = svc.ListGuests(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, "hello", guests[0].Blurb)
	assert.Equal(t, 1, repo.listCalls)
}

func TestListGuests_NilCache(t *testing.T) {
	repo := &fakeRepo{yearly: []model.YearlyGuest{{GuestID: 1, Year: 2026, GuestName: "Jane Doe"}}}
	svc := NewGuestService(repo, nil)

	guests, err := svc.ListGuests(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, guests, 1)
}

func TestGetGuest_NotFound(t *testing.T) {
	svc := NewGuestService(&fakeRepo{}, nil)

	_, err := svc.GetGuest(context.Background(), 42, 2026)
	assert.ErrorIs(t, err, model.ErrGuestNotFound)
}

func TestGetYearBlurbs(t *testing.T) {
	repo := &fakeRepo{blurbs: []model.YearBlurb{
		{Year: 2026, Blurb: utils.EncodeText("latest")},
		{Year: 2025, Blurb: utils.EncodeText("older")},
	}}
	svc := NewGuestService(repo, nil)

	blurbs, err := svc.GetYearBlurbs(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, blurbs, 2)
	assert.Equal(t, "latest", blurbs[0].Blurb)
	assert.Equal(t, "older", blurbs[1].Blurb)
}

func TestGetYearBlurbs_NoRecords(t *testing.T) {
	svc := NewGuestService(&fakeRepo{}, nil)

	_, err := svc.GetYearBlurbs(context.Background(), 1)
	assert.ErrorIs(t, err, model.ErrGuestNotFound)
}

func TestGetProfile(t *testing.T) {
	repo := &fakeRepo{
		yearly: []model.YearlyGuest{
			{GuestID: 1, Year: 2026, GuestName: "Jane Doe", Blurb: utils.EncodeText("bio")},
		},
		collectibles: []model.ProfileCollectible{
			{CollectibleID: "c-1", GuestID: 1, Name: "print"},
		},
	}
	svc := NewGuestService(repo, nil)

	profile, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, profile.YearlyGuests, 1)
	assert.Equal(t, "bio", profile.YearlyGuests[0].Blurb)
	assert.Len(t, profile.Collectibles, 1)
}

func TestSearch_Pagination(t *testing.T) {
	repo := &fakeRepo{guests: []model.Guest{
		{GuestID: 1, GuestName: "Jane Doe"},
		{GuestID: 2, GuestName: "Janet Smith"},
		{GuestID: 3, GuestName: "Jan Brown"},
	}}
	svc := NewGuestService(repo, nil)

	result, err := svc.Search(context.Background(), "jan", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Pages)
	assert.Len(t, result.Guests, 2)

	result, err = svc.Search(context.Background(), "jan", 2, 2)
	require.NoError(t, err)
	assert.Len(t, result.Guests, 1)
}

func TestSearch_NormalizesPaging(t *testing.T) {
	svc := NewGuestService(&fakeRepo{}, nil)

	result, err := svc.Search(context.Background(), "x", -1, 10000)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.PerPage)
}
