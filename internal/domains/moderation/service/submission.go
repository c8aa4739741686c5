package service

import (
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"

	"guestdex-backend/internal/domains/moderation/model"
	"guestdex-backend/internal/shared/auth"
	"guestdex-backend/internal/shared/utils"
	"guestdex-backend/pkg/logger"
)

// =====================================================
// GUEST SUBMISSIONS
// =====================================================

// SubmitGuestUpdate files a proposed revision against an existing
// yearly guest record. The canonical row pins the subject key; the
// request only carries field values.
func (s *moderationService) SubmitGuestUpdate(ctx context.Context, ident auth.Identity, guestID int64, year int, req model.GuestSubmissionRequest) (*model.SubmissionResult, error) {
	if !ident.CanSubmit() {
		return nil, model.ErrUnauthorized
	}

	current, err := s.store.GetYearlyGuest(ctx, guestID, year)
	if err != nil {
		return nil, err
	}

	entry := &model.GuestEntry{
		Year:          year,
		GuestID:       guestID,
		URL:           req.URL,
		GuestName:     current.GuestName,
		Blurb:         utils.EncodeText(req.Blurb),
		Biography:     utils.EncodeText(req.Biography),
		GuestType:     req.GuestType,
		GuestCategory: req.GuestCategory,
		Accolades1:    req.Accolades1,
		Accolades2:    req.Accolades2,
		UserID:        ident.UserID,
	}
	if err := s.appendGuestEntry(ctx, entry); err != nil {
		return nil, err
	}

	logger.Info("guest update submitted", map[string]interface{}{
		"guest_id": guestID,
		"year":     year,
		"version":  entry.Version,
		"user_id":  ident.UserID,
	})
	return &model.SubmissionResult{Version: entry.Version}, nil
}

// SubmitGuestAddition files a proposed brand-new appearance. No
// canonical row is required; the guest identity is resolved at approval
// time.
func (s *moderationService) SubmitGuestAddition(ctx context.Context, ident auth.Identity, req model.GuestAdditionRequest) (*model.SubmissionResult, error) {
	if !ident.CanSubmit() {
		return nil, model.ErrUnauthorized
	}

	entry := &model.GuestEntry{
		Year:          req.Year,
		GuestName:     req.GuestName,
		URL:           req.URL,
		Blurb:         utils.EncodeText(req.Blurb),
		Biography:     utils.EncodeText(req.Biography),
		GuestType:     req.GuestType,
		GuestCategory: req.GuestCategory,
		Accolades1:    req.Accolades1,
		Accolades2:    req.Accolades2,
		UserID:        ident.UserID,
	}
	if err := s.appendGuestEntry(ctx, entry); err != nil {
		return nil, err
	}

	logger.Info("guest addition submitted", map[string]interface{}{
		"guest_name": req.GuestName,
		"year":       req.Year,
		"version":    entry.Version,
		"user_id":    ident.UserID,
	})
	return &model.SubmissionResult{Version: entry.Version}, nil
}

// SubmitGuestDeletion files a deletion proposal. The entry snapshots
// the canonical row as stored so reviewers see exactly what would be
// removed.
func (s *moderationService) SubmitGuestDeletion(ctx context.Context, ident auth.Identity, guestID int64, year int) (*model.SubmissionResult, error) {
	if !ident.CanSubmit() {
		return nil, model.ErrUnauthorized
	}

	current, err := s.store.GetYearlyGuest(ctx, guestID, year)
	if err != nil {
		return nil, err
	}

	entry := &model.GuestEntry{
		Year:          year,
		GuestID:       guestID,
		URL:           current.URL,
		GuestName:     current.GuestName,
		Blurb:         current.Blurb,
		Biography:     current.Biography,
		GuestType:     current.GuestType,
		GuestCategory: current.GuestCategory,
		Accolades1:    current.Accolades1,
		Accolades2:    current.Accolades2,
		UserID:        ident.UserID,
		Deleted:       1,
	}
	if err := s.appendGuestEntry(ctx, entry); err != nil {
		return nil, err
	}

	logger.Info("guest deletion submitted", map[string]interface{}{
		"guest_id": guestID,
		"year":     year,
		"version":  entry.Version,
		"user_id":  ident.UserID,
	})
	return &model.SubmissionResult{Version: entry.Version}, nil
}

// appendGuestEntry assigns the next version for the subject key and
// inserts. The partial unique index on (guest_name, year, version)
// turns a concurrent duplicate into ErrVersionConflict.
func (s *moderationService) appendGuestEntry(ctx context.Context, entry *model.GuestEntry) error {
	maxVersion, err := s.store.MaxPendingGuestVersion(ctx, entry.GuestName, entry.Year)
	if err != nil {
		return err
	}
	entry.Version = maxVersion + 1
	return s.store.InsertGuestEntry(ctx, entry)
}

// =====================================================
// COLLECTIBLE SUBMISSIONS
// =====================================================

func (s *moderationService) SubmitCollectibleUpdate(ctx context.Context, ident auth.Identity, collectibleID string, req model.CollectibleSubmissionRequest) (*model.SubmissionResult, error) {
	if !ident.CanSubmit() {
		return nil, model.ErrUnauthorized
	}

	current, err := s.store.GetCollectible(ctx, collectibleID)
	if err != nil {
		return nil, err
	}

	// A request that only touches item fields keeps the canonical name.
	guestName := req.GuestName
	if guestName == "" {
		guestName = current.GuestName
	}

	entry := &model.CollectibleEntry{
		CollectibleID: collectibleID,
		Year:          current.Year,
		GuestID:       current.GuestID,
		GuestName:     guestName,
		Name:          req.Name,
		Category:      req.Category,
		Notes1:        req.Notes1,
		Notes2:        req.Notes2,
		Filename:      current.Filename,
		UserID:        ident.UserID,
	}
	if err := s.appendCollectibleEntry(ctx, entry); err != nil {
		return nil, err
	}

	logger.Info("collectible update submitted", map[string]interface{}{
		"collectible_id": collectibleID,
		"version":        entry.Version,
		"user_id":        ident.UserID,
	})
	return &model.SubmissionResult{Version: entry.Version, CollectibleID: collectibleID}, nil
}

// SubmitCollectibleAddition mints a fresh collectible id, stores the
// uploaded image, and files the entry. The stored object key becomes
// the filename.
func (s *moderationService) SubmitCollectibleAddition(ctx context.Context, ident auth.Identity, req model.CollectibleAdditionRequest, image *model.ImageUpload) (*model.SubmissionResult, error) {
	if !ident.CanSubmit() {
		return nil, model.ErrUnauthorized
	}

	collectibleID := uuid.NewString()

	var filename string
	if image != nil {
		key := fmt.Sprintf("collectibles/%s%s", collectibleID, path.Ext(image.Filename))
		stored, err := s.images.Upload(ctx, key, image.Data, image.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to store collectible image: %w", err)
		}
		filename = stored
	}

	entry := &model.CollectibleEntry{
		CollectibleID: collectibleID,
		Year:          req.Year,
		GuestName:     req.GuestName,
		Name:          req.Name,
		Category:      req.Category,
		Notes1:        req.Notes1,
		Notes2:        req.Notes2,
		Filename:      filename,
		UserID:        ident.UserID,
	}
	if err := s.appendCollectibleEntry(ctx, entry); err != nil {
		return nil, err
	}

	logger.Info("collectible addition submitted", map[string]interface{}{
		"collectible_id": collectibleID,
		"guest_name":     req.GuestName,
		"version":        entry.Version,
		"user_id":        ident.UserID,
	})
	return &model.SubmissionResult{Version: entry.Version, CollectibleID: collectibleID}, nil
}

func (s *moderationService) SubmitCollectibleDeletion(ctx context.Context, ident auth.Identity, collectibleID string) (*model.SubmissionResult, error) {
	if !ident.CanSubmit() {
		return nil, model.ErrUnauthorized
	}

	current, err := s.store.GetCollectible(ctx, collectibleID)
	if err != nil {
		return nil, err
	}

	entry := &model.CollectibleEntry{
		CollectibleID: collectibleID,
		Year:          current.Year,
		GuestID:       current.GuestID,
		GuestName:     current.GuestName,
		Name:          current.Name,
		Category:      current.Category,
		Notes1:        current.Notes1,
		Notes2:        current.Notes2,
		Filename:      current.Filename,
		UserID:        ident.UserID,
		Deleted:       1,
	}
	if err := s.appendCollectibleEntry(ctx, entry); err != nil {
		return nil, err
	}

	logger.Info("collectible deletion submitted", map[string]interface{}{
		"collectible_id": collectibleID,
		"version":        entry.Version,
		"user_id":        ident.UserID,
	})
	return &model.SubmissionResult{Version: entry.Version, CollectibleID: collectibleID}, nil
}

func (s *moderationService) appendCollectibleEntry(ctx context.Context, entry *model.CollectibleEntry) error {
	maxVersion, err := s.store.MaxPendingCollectibleVersion(ctx, entry.CollectibleID)
	if err != nil {
		return err
	}
	entry.Version = maxVersion + 1
	return s.store.InsertCollectibleEntry(ctx, entry)
}
