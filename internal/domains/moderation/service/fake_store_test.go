package service

import (
	"context"
	"sort"
	"sync"
	"time"

	collectiblemodel "guestdex-backend/internal/domains/collectible/model"
	guestmodel "guestdex-backend/internal/domains/guest/model"
	"guestdex-backend/internal/domains/moderation/model"
	"guestdex-backend/internal/domains/moderation/repository"
)

type yearlyKey struct {
	guestID int64
	year    int
}

// fakeStore is an in-memory Store and TxStore. InTx snapshots all state
// up front and restores it when fn fails, so rollback semantics hold.
type fakeStore struct {
	mu sync.Mutex

	guestEntries       map[int64]model.GuestEntry
	collectibleEntries map[int64]model.CollectibleEntry
	nextEntryID        int64

	guests      map[int64]string
	nextGuestID int64

	yearly       map[yearlyKey]guestmodel.YearlyGuest
	collectibles map[string]collectiblemodel.Collectible

	deletedGuests       []int64
	deletedYearly       []yearlyKey
	deletedCollectibles []string

	userNames map[int64]string

	// loseApproveRace makes the conditional approve flip report zero
	// rows, as if another decision committed first.
	loseApproveRace bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		guestEntries:       map[int64]model.GuestEntry{},
		collectibleEntries: map[int64]model.CollectibleEntry{},
		guests:             map[int64]string{},
		yearly:             map[yearlyKey]guestmodel.YearlyGuest{},
		collectibles:       map[string]collectiblemodel.Collectible{},
		userNames:          map[int64]string{},
	}
}

func (f *fakeStore) addGuest(name string) int64 {
	f.nextGuestID++
	f.guests[f.nextGuestID] = name
	return f.nextGuestID
}

// ---- Store: submission path ----

func (f *fakeStore) MaxPendingGuestVersion(_ context.Context, guestName string, year int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	max := 0
	for _, e := range f.guestEntries {
		if e.GuestName == guestName && e.Year == year && e.State == model.StatePending && e.Version > max {
			max = e.Version
		}
	}
	return max, nil
}

func (f *fakeStore) InsertGuestEntry(_ context.Context, e *model.GuestEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.guestEntries {
		if existing.GuestName == e.GuestName && existing.Year == e.Year &&
			existing.Version == e.Version && existing.State == model.StatePending {
			return model.ErrVersionConflict
		}
	}
	f.nextEntryID++
	e.ID = f.nextEntryID
	e.State = model.StatePending
	e.Timestamp = time.Now()
	f.guestEntries[e.ID] = *e
	return nil
}

func (f *fakeStore) MaxPendingCollectibleVersion(_ context.Context, collectibleID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	max := 0
	for _, e := range f.collectibleEntries {
		if e.CollectibleID == collectibleID && e.State == model.StatePending && e.Version > max {
			max = e.Version
		}
	}
	return max, nil
}

func (f *fakeStore) InsertCollectibleEntry(_ context.Context, e *model.CollectibleEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.collectibleEntries {
		if existing.CollectibleID == e.CollectibleID &&
			existing.Version == e.Version && existing.State == model.StatePending {
			return model.ErrVersionConflict
		}
	}
	f.nextEntryID++
	e.ID = f.nextEntryID
	e.State = model.StatePending
	e.Timestamp = time.Now()
	f.collectibleEntries[e.ID] = *e
	return nil
}

func (f *fakeStore) GetYearlyGuest(_ context.Context, guestID int64, year int) (*guestmodel.YearlyGuest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.yearly[yearlyKey{guestID, year}]
	if !ok {
		return nil, guestmodel.ErrGuestNotFound
	}
	return &rec, nil
}

func (f *fakeStore) GetCollectible(_ context.Context, collectibleID string) (*collectiblemodel.Collectible, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.collectibles[collectibleID]
	if !ok {
		return nil, collectiblemodel.ErrCollectibleNotFound
	}
	return &rec, nil
}

// ---- Store: queue path ----

func (f *fakeStore) ListPendingGuestEntries(_ context.Context) ([]model.PendingGuestEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.PendingGuestEntry
	for _, e := range f.guestEntries {
		if e.State != model.StatePending {
			continue
		}
		out = append(out, model.PendingGuestEntry{
			ID:         e.ID,
			Year:       e.Year,
			GuestName:  e.GuestName,
			URL:        e.URL,
			Blurb:      e.Blurb,
			Biography:  e.Biography,
			GuestType:  e.GuestType,
			Accolades1: e.Accolades1,
			Accolades2: e.Accolades2,
			Version:    e.Version,
			UserID:     e.UserID,
			UserName:   f.userNames[e.UserID],
			Timestamp:  e.Timestamp,
			Deleted:    e.Deleted,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GuestName != out[j].GuestName {
			return out[i].GuestName < out[j].GuestName
		}
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Version > out[j].Version
	})
	return out, nil
}

func (f *fakeStore) ListPendingCollectibleEntries(_ context.Context) ([]model.PendingCollectibleEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.PendingCollectibleEntry
	for _, e := range f.collectibleEntries {
		if e.State != model.StatePending {
			continue
		}
		out = append(out, model.PendingCollectibleEntry{
			ID:            e.ID,
			CollectibleID: e.CollectibleID,
			Year:          e.Year,
			GuestID:       e.GuestID,
			GuestName:     e.GuestName,
			Name:          e.Name,
			Category:      e.Category,
			Notes1:        e.Notes1,
			Notes2:        e.Notes2,
			Filename:      e.Filename,
			Version:       e.Version,
			UserID:        e.UserID,
			UserName:      f.userNames[e.UserID],
			Timestamp:     e.Timestamp,
			Deleted:       e.Deleted,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) GuestIDsByName(_ context.Context, names []string) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]int64{}
	for _, name := range names {
		for id, n := range f.guests {
			if n == name {
				out[name] = id
			}
		}
	}
	return out, nil
}

// ---- Store: submission history ----

func (f *fakeStore) ListUserGuestSubmissions(_ context.Context, userID int64, limit, offset int) ([]model.GuestSubmissionHistoryItem, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []model.GuestSubmissionHistoryItem
	for _, e := range f.guestEntries {
		if e.UserID != userID {
			continue
		}
		all = append(all, model.GuestSubmissionHistoryItem{
			ID:        e.ID,
			Year:      e.Year,
			GuestName: e.GuestName,
			State:     e.State,
			Version:   e.Version,
			Timestamp: e.Timestamp,
			Blurb:     e.Blurb,
			Biography: e.Biography,
			GuestType: e.GuestType,
		})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

func (f *fakeStore) ListUserCollectibleSubmissions(_ context.Context, userID int64, limit, offset int) ([]model.CollectibleSubmissionHistoryItem, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []model.CollectibleSubmissionHistoryItem
	for _, e := range f.collectibleEntries {
		if e.UserID != userID {
			continue
		}
		all = append(all, model.CollectibleSubmissionHistoryItem{
			ID:            e.ID,
			CollectibleID: e.CollectibleID,
			Year:          e.Year,
			GuestName:     e.GuestName,
			Name:          e.Name,
			State:         e.State,
			Timestamp:     e.Timestamp,
		})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

// ---- Store: decision path ----

type fakeSnapshot struct {
	guestEntries        map[int64]model.GuestEntry
	collectibleEntries  map[int64]model.CollectibleEntry
	guests              map[int64]string
	yearly              map[yearlyKey]guestmodel.YearlyGuest
	collectibles        map[string]collectiblemodel.Collectible
	deletedGuests       []int64
	deletedYearly       []yearlyKey
	deletedCollectibles []string
	nextEntryID         int64
	nextGuestID         int64
}

func (f *fakeStore) snapshot() fakeSnapshot {
	snap := fakeSnapshot{
		guestEntries:        make(map[int64]model.GuestEntry, len(f.guestEntries)),
		collectibleEntries:  make(map[int64]model.CollectibleEntry, len(f.collectibleEntries)),
		guests:              make(map[int64]string, len(f.guests)),
		yearly:              make(map[yearlyKey]guestmodel.YearlyGuest, len(f.yearly)),
		collectibles:        make(map[string]collectiblemodel.Collectible, len(f.collectibles)),
		deletedGuests:       append([]int64(nil), f.deletedGuests...),
		deletedYearly:       append([]yearlyKey(nil), f.deletedYearly...),
		deletedCollectibles: append([]string(nil), f.deletedCollectibles...),
		nextEntryID:         f.nextEntryID,
		nextGuestID:         f.nextGuestID,
	}
	for k, v := range f.guestEntries {
		snap.guestEntries[k] = v
	}
	for k, v := range f.collectibleEntries {
		snap.collectibleEntries[k] = v
	}
	for k, v := range f.guests {
		snap.guests[k] = v
	}
	for k, v := range f.yearly {
		snap.yearly[k] = v
	}
	for k, v := range f.collectibles {
		snap.collectibles[k] = v
	}
	return snap
}

func (f *fakeStore) restore(snap fakeSnapshot) {
	f.guestEntries = snap.guestEntries
	f.collectibleEntries = snap.collectibleEntries
	f.guests = snap.guests
	f.yearly = snap.yearly
	f.collectibles = snap.collectibles
	f.deletedGuests = snap.deletedGuests
	f.deletedYearly = snap.deletedYearly
	f.deletedCollectibles = snap.deletedCollectibles
	f.nextEntryID = snap.nextEntryID
	f.nextGuestID = snap.nextGuestID
}

func (f *fakeStore) InTx(_ context.Context, fn func(repository.TxStore) error) error {
	snap := f.snapshot()
	if err := fn(f); err != nil {
		f.restore(snap)
		return err
	}
	return nil
}

// ---- TxStore ----

func (f *fakeStore) GetPendingGuestEntry(_ context.Context, id int64) (*model.GuestEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.guestEntries[id]
	if !ok || e.State != model.StatePending {
		return nil, model.ErrEntryNotFound
	}
	return &e, nil
}

func (f *fakeStore) GetGuestEntry(_ context.Context, id int64) (*model.GuestEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.guestEntries[id]
	if !ok {
		return nil, model.ErrEntryNotFound
	}
	return &e, nil
}

func (f *fakeStore) GetPendingCollectibleEntry(_ context.Context, id int64) (*model.CollectibleEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.collectibleEntries[id]
	if !ok || e.State != model.StatePending {
		return nil, model.ErrEntryNotFound
	}
	return &e, nil
}

func (f *fakeStore) GetCollectibleEntry(_ context.Context, id int64) (*model.CollectibleEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.collectibleEntries[id]
	if !ok {
		return nil, model.ErrEntryNotFound
	}
	return &e, nil
}

func (f *fakeStore) FindGuestByName(_ context.Context, name string) (int64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, n := range f.guests {
		if n == name {
			return id, true, nil
		}
	}
	return 0, false, nil
}

func (f *fakeStore) CreateGuest(_ context.Context, name string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addGuest(name), nil
}

func (f *fakeStore) SetGuestEntryIdentity(_ context.Context, entryID, guestID int64, guestName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.guestEntries[entryID]
	if !ok {
		return model.ErrEntryNotFound
	}
	e.GuestID = guestID
	e.GuestName = guestName
	f.guestEntries[entryID] = e
	return nil
}

func (f *fakeStore) SetCollectibleEntryIdentity(_ context.Context, entryID, guestID int64, guestName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.collectibleEntries[entryID]
	if !ok {
		return model.ErrEntryNotFound
	}
	e.GuestID = guestID
	e.GuestName = guestName
	f.collectibleEntries[entryID] = e
	return nil
}

func (f *fakeStore) MarkGuestEntryApproved(_ context.Context, entryID, moderatorID int64, guestName string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loseApproveRace {
		return false, nil
	}
	e, ok := f.guestEntries[entryID]
	if !ok || e.State != model.StatePending {
		return false, nil
	}
	e.State = model.StateApproved
	e.Approved = 1
	e.ModeratorID = moderatorID
	e.GuestName = guestName
	f.guestEntries[entryID] = e
	return true, nil
}

func (f *fakeStore) MarkGuestEntryRejected(_ context.Context, entryID, moderatorID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.guestEntries[entryID]
	if !ok || e.State != model.StatePending {
		return false, nil
	}
	e.State = model.StateRejected
	e.Rejected = 1
	e.ModeratorID = moderatorID
	f.guestEntries[entryID] = e
	return true, nil
}

func (f *fakeStore) MarkCollectibleEntryApproved(_ context.Context, entryID, moderatorID int64, guestName string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loseApproveRace {
		return false, nil
	}
	e, ok := f.collectibleEntries[entryID]
	if !ok || e.State != model.StatePending {
		return false, nil
	}
	e.State = model.StateApproved
	e.Approved = 1
	e.ModeratorID = moderatorID
	e.GuestName = guestName
	f.collectibleEntries[entryID] = e
	return true, nil
}

func (f *fakeStore) MarkCollectibleEntryRejected(_ context.Context, entryID, moderatorID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.collectibleEntries[entryID]
	if !ok || e.State != model.StatePending {
		return false, nil
	}
	e.State = model.StateRejected
	e.Rejected = 1
	e.ModeratorID = moderatorID
	f.collectibleEntries[entryID] = e
	return true, nil
}

func (f *fakeStore) UpsertYearlyGuest(_ context.Context, rec guestmodel.YearlyGuest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := yearlyKey{rec.GuestID, rec.Year}
	if _, exists := f.yearly[key]; exists {
		rec.Modified = 1
	} else {
		rec.Modified = 0
	}
	f.yearly[key] = rec
	return nil
}

func (f *fakeStore) BackupYearlyGuest(_ context.Context, guestID int64, year int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := yearlyKey{guestID, year}
	if _, ok := f.yearly[key]; !ok {
		return guestmodel.ErrGuestNotFound
	}
	f.deletedYearly = append(f.deletedYearly, key)
	return nil
}

func (f *fakeStore) DeleteYearlyGuest(_ context.Context, guestID int64, year int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := yearlyKey{guestID, year}
	if _, ok := f.yearly[key]; !ok {
		return guestmodel.ErrGuestNotFound
	}
	delete(f.yearly, key)
	return nil
}

func (f *fakeStore) UpsertCollectible(_ context.Context, rec collectiblemodel.Collectible) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.collectibles[rec.CollectibleID]; exists {
		rec.Modified = 1
	} else {
		rec.Modified = 0
	}
	f.collectibles[rec.CollectibleID] = rec
	return nil
}

func (f *fakeStore) BackupCollectible(_ context.Context, collectibleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.collectibles[collectibleID]; !ok {
		return collectiblemodel.ErrCollectibleNotFound
	}
	f.deletedCollectibles = append(f.deletedCollectibles, collectibleID)
	return nil
}

func (f *fakeStore) DeleteCollectible(_ context.Context, collectibleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.collectibles[collectibleID]; !ok {
		return collectiblemodel.ErrCollectibleNotFound
	}
	delete(f.collectibles, collectibleID)
	return nil
}

func (f *fakeStore) CountGuestReferences(_ context.Context, guestID int64) (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	yearly, collectibles := 0, 0
	for key := range f.yearly {
		if key.guestID == guestID {
			yearly++
		}
	}
	for _, c := range f.collectibles {
		if c.GuestID == guestID {
			collectibles++
		}
	}
	return yearly, collectibles, nil
}

func (f *fakeStore) BackupGuest(_ context.Context, guestID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.guests[guestID]; !ok {
		return guestmodel.ErrGuestNotFound
	}
	f.deletedGuests = append(f.deletedGuests, guestID)
	return nil
}

func (f *fakeStore) DeleteGuest(_ context.Context, guestID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.guests[guestID]; !ok {
		return guestmodel.ErrGuestNotFound
	}
	delete(f.guests, guestID)
	return nil
}

// fakeImages records uploads without touching object storage.
type fakeImages struct {
	keys []string
}

func (f *fakeImages) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	f.keys = append(f.keys, key)
	return key, nil
}
