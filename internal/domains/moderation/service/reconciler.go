package service

import (
	"context"
	"errors"

	collectiblemodel "guestdex-backend/internal/domains/collectible/model"
	guestmodel "guestdex-backend/internal/domains/guest/model"
	"guestdex-backend/internal/domains/moderation/model"
	"guestdex-backend/internal/domains/moderation/repository"
	"guestdex-backend/internal/shared/auth"
	"guestdex-backend/internal/shared/utils"
	"guestdex-backend/pkg/logger"
)

// ApproveGuestEntry applies a pending guest entry to canonical storage
// and flips it to APPROVED, all in one transaction:
//
//	Step 1: load the entry, pending state required
//	Step 2: normalize the display name and resolve the guest identity
//	Step 3: write the resolved identity back onto the entry
//	Step 4: dispatch the reconciliation (upsert or delete)
//	Step 5: flip the entry, guarded against a concurrent decision
//
// Any failure rolls back every step. A lost flip race surfaces as
// ErrAlreadyDecided with canonical storage untouched.
func (s *moderationService) ApproveGuestEntry(ctx context.Context, ident auth.Identity, req model.DecisionRequest) (*model.GuestDecisionResult, error) {
	if !ident.CanModerate() {
		return nil, model.ErrUnauthorized
	}

	var result *model.GuestDecisionResult
	err := s.store.InTx(ctx, func(tx repository.TxStore) error {
		entry, err := s.loadPendingGuestEntry(ctx, tx, req.ID)
		if err != nil {
			return err
		}

		name := utils.NormalizeGuestName(entry.GuestName)

		// The delete flag on the request forces delete dispatch even
		// when the entry itself was filed as an update.
		deleted := entry.Deleted == 1 || req.Deleted == 1

		var guestID int64
		var op model.GuestApply
		if deleted {
			guestID = entry.GuestID
			if guestID == 0 {
				id, found, err := tx.FindGuestByName(ctx, name)
				if err != nil {
					return err
				}
				if !found {
					return model.ErrSubjectNotFound
				}
				guestID = id
			}
			op = model.GuestDelete{GuestID: guestID, Year: entry.Year}
		} else {
			// An entry filed against an existing row already carries the
			// guest identity; only name-keyed additions resolve by name.
			guestID = entry.GuestID
			if guestID == 0 {
				guestID, err = resolveOrCreateGuest(ctx, tx, name)
				if err != nil {
					return err
				}
			}
			op = model.GuestUpsert{Record: guestmodel.YearlyGuest{
				GuestID:       guestID,
				Year:          entry.Year,
				URL:           entry.URL,
				GuestName:     name,
				Blurb:         entry.Blurb,
				Biography:     entry.Biography,
				GuestType:     entry.GuestType,
				GuestCategory: entry.GuestCategory,
				Accolades1:    entry.Accolades1,
				Accolades2:    entry.Accolades2,
			}}
		}

		if err := tx.SetGuestEntryIdentity(ctx, entry.ID, guestID, name); err != nil {
			return err
		}
		if err := s.applyGuestOp(ctx, tx, op); err != nil {
			return err
		}

		ok, err := tx.MarkGuestEntryApproved(ctx, entry.ID, ident.UserID, name)
		if err != nil {
			return err
		}
		if !ok {
			return model.ErrAlreadyDecided
		}

		result = &model.GuestDecisionResult{
			EntryID:     entry.ID,
			GuestID:     guestID,
			GuestName:   name,
			Year:        entry.Year,
			Version:     entry.Version,
			ModeratorID: ident.UserID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx, "guests:*")
	logger.Info("guest entry approved", map[string]interface{}{
		"entry_id":     result.EntryID,
		"guest_id":     result.GuestID,
		"year":         result.Year,
		"moderator_id": ident.UserID,
	})
	return result, nil
}

// applyGuestOp dispatches on the reconciliation variant.
func (s *moderationService) applyGuestOp(ctx context.Context, tx repository.TxStore, op model.GuestApply) error {
	switch v := op.(type) {
	case model.GuestUpsert:
		return tx.UpsertYearlyGuest(ctx, v.Record)
	case model.GuestDelete:
		if err := tx.BackupYearlyGuest(ctx, v.GuestID, v.Year); err != nil {
			return err
		}
		if err := tx.DeleteYearlyGuest(ctx, v.GuestID, v.Year); err != nil {
			return err
		}
		return s.cleanupGuestIfOrphaned(ctx, tx, v.GuestID)
	default:
		return errors.New("unknown guest reconciliation operation")
	}
}

// cleanupGuestIfOrphaned removes the guest identity once nothing
// references it, backing it up first.
func (s *moderationService) cleanupGuestIfOrphaned(ctx context.Context, tx repository.TxStore, guestID int64) error {
	yearly, collectibles, err := tx.CountGuestReferences(ctx, guestID)
	if err != nil {
		return err
	}
	if yearly > 0 || collectibles > 0 {
		return nil
	}
	if err := tx.BackupGuest(ctx, guestID); err != nil {
		return err
	}
	return tx.DeleteGuest(ctx, guestID)
}

// RejectGuestEntry flips a pending entry to REJECTED. Canonical storage
// is never touched.
func (s *moderationService) RejectGuestEntry(ctx context.Context, ident auth.Identity, req model.DecisionRequest) (*model.GuestDecisionResult, error) {
	if !ident.CanModerate() {
		return nil, model.ErrUnauthorized
	}

	var result *model.GuestDecisionResult
	err := s.store.InTx(ctx, func(tx repository.TxStore) error {
		entry, err := s.loadPendingGuestEntry(ctx, tx, req.ID)
		if err != nil {
			return err
		}

		ok, err := tx.MarkGuestEntryRejected(ctx, entry.ID, ident.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return model.ErrAlreadyDecided
		}

		result = &model.GuestDecisionResult{
			EntryID:     entry.ID,
			GuestID:     entry.GuestID,
			GuestName:   entry.GuestName,
			Year:        entry.Year,
			Version:     entry.Version,
			ModeratorID: ident.UserID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("guest entry rejected", map[string]interface{}{
		"entry_id":     result.EntryID,
		"moderator_id": ident.UserID,
	})
	return result, nil
}

// loadPendingGuestEntry fetches the entry and distinguishes "never
// existed" from "already decided".
func (s *moderationService) loadPendingGuestEntry(ctx context.Context, tx repository.TxStore, id int64) (*model.GuestEntry, error) {
	entry, err := tx.GetPendingGuestEntry(ctx, id)
	if err == nil {
		return entry, nil
	}
	if errors.Is(err, model.ErrEntryNotFound) {
		if _, decidedErr := tx.GetGuestEntry(ctx, id); decidedErr == nil {
			return nil, model.ErrAlreadyDecided
		}
	}
	return nil, err
}

// =====================================================
// COLLECTIBLE DECISIONS
// =====================================================

func (s *moderationService) ApproveCollectibleEntry(ctx context.Context, ident auth.Identity, req model.DecisionRequest) (*model.CollectibleDecisionResult, error) {
	if !ident.CanModerate() {
		return nil, model.ErrUnauthorized
	}

	var result *model.CollectibleDecisionResult
	err := s.store.InTx(ctx, func(tx repository.TxStore) error {
		entry, err := s.loadPendingCollectibleEntry(ctx, tx, req.ID)
		if err != nil {
			return err
		}

		name := utils.NormalizeGuestName(entry.GuestName)
		deleted := entry.Deleted == 1 || req.Deleted == 1

		var guestID int64
		var op model.CollectibleApply
		if deleted {
			guestID = entry.GuestID
			if guestID == 0 {
				return model.ErrSubjectNotFound
			}
			op = model.CollectibleDelete{CollectibleID: entry.CollectibleID, GuestID: guestID}
		} else {
			guestID = entry.GuestID
			if guestID == 0 {
				guestID, err = resolveOrCreateGuest(ctx, tx, name)
				if err != nil {
					return err
				}
			}
			op = model.CollectibleUpsert{Record: collectiblemodel.Collectible{
				CollectibleID: entry.CollectibleID,
				Year:          entry.Year,
				GuestID:       guestID,
				GuestName:     name,
				Name:          entry.Name,
				Category:      entry.Category,
				Notes1:        entry.Notes1,
				Notes2:        entry.Notes2,
				Filename:      entry.Filename,
			}}
		}

		if err := tx.SetCollectibleEntryIdentity(ctx, entry.ID, guestID, name); err != nil {
			return err
		}
		if err := s.applyCollectibleOp(ctx, tx, op); err != nil {
			return err
		}

		ok, err := tx.MarkCollectibleEntryApproved(ctx, entry.ID, ident.UserID, name)
		if err != nil {
			return err
		}
		if !ok {
			return model.ErrAlreadyDecided
		}

		result = &model.CollectibleDecisionResult{
			EntryID:       entry.ID,
			CollectibleID: entry.CollectibleID,
			GuestID:       guestID,
			GuestName:     name,
			Year:          entry.Year,
			Version:       entry.Version,
			ModeratorID:   ident.UserID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx, "collectibles:*", "guests:*")
	logger.Info("collectible entry approved", map[string]interface{}{
		"entry_id":       result.EntryID,
		"collectible_id": result.CollectibleID,
		"moderator_id":   ident.UserID,
	})
	return result, nil
}

func (s *moderationService) applyCollectibleOp(ctx context.Context, tx repository.TxStore, op model.CollectibleApply) error {
	switch v := op.(type) {
	case model.CollectibleUpsert:
		return tx.UpsertCollectible(ctx, v.Record)
	case model.CollectibleDelete:
		if err := tx.BackupCollectible(ctx, v.CollectibleID); err != nil {
			return err
		}
		if err := tx.DeleteCollectible(ctx, v.CollectibleID); err != nil {
			return err
		}
		return s.cleanupGuestIfOrphaned(ctx, tx, v.GuestID)
	default:
		return errors.New("unknown collectible reconciliation operation")
	}
}

func (s *moderationService) RejectCollectibleEntry(ctx context.Context, ident auth.Identity, req model.DecisionRequest) (*model.CollectibleDecisionResult, error) {
	if !ident.CanModerate() {
		return nil, model.ErrUnauthorized
	}

	var result *model.CollectibleDecisionResult
	err := s.store.InTx(ctx, func(tx repository.TxStore) error {
		entry, err := s.loadPendingCollectibleEntry(ctx, tx, req.ID)
		if err != nil {
			return err
		}

		ok, err := tx.MarkCollectibleEntryRejected(ctx, entry.ID, ident.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return model.ErrAlreadyDecided
		}

		result = &model.CollectibleDecisionResult{
			EntryID:       entry.ID,
			CollectibleID: entry.CollectibleID,
			GuestID:       entry.GuestID,
			GuestName:     entry.GuestName,
			Year:          entry.Year,
			Version:       entry.Version,
			ModeratorID:   ident.UserID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("collectible entry rejected", map[string]interface{}{
		"entry_id":     result.EntryID,
		"moderator_id": ident.UserID,
	})
	return result, nil
}

func (s *moderationService) loadPendingCollectibleEntry(ctx context.Context, tx repository.TxStore, id int64) (*model.CollectibleEntry, error) {
	entry, err := tx.GetPendingCollectibleEntry(ctx, id)
	if err == nil {
		return entry, nil
	}
	if errors.Is(err, model.ErrEntryNotFound) {
		if _, decidedErr := tx.GetCollectibleEntry(ctx, id); decidedErr == nil {
			return nil, model.ErrAlreadyDecided
		}
	}
	return nil, err
}

// invalidateCaches drops directory read caches after a committed
// approval. Failures are logged and swallowed; the cache repopulates on
// the next read.
func (s *moderationService) invalidateCaches(ctx context.Context, patterns ...string) {
	if s.cache == nil {
		return
	}
	for _, p := range patterns {
		if err := s.cache.DeletePattern(ctx, p); err != nil {
			logger.Warn("failed to invalidate cache pattern "+p, err)
		}
	}
}
