package service

import (
	"context"

	"guestdex-backend/internal/domains/moderation/model"
	"guestdex-backend/internal/shared/auth"
	"guestdex-backend/internal/shared/utils"
)

const noteGuestWillBeCreated = "Guest does not exist and will be created upon approval"

// PendingGuestEntries returns the review queue: every active entry with
// free text decoded, the submitter's display name attached, and the
// canonical guest id resolved where the guest already exists.
func (s *moderationService) PendingGuestEntries(ctx context.Context, ident auth.Identity) ([]model.PendingGuestEntry, error) {
	if !ident.CanModerate() {
		return nil, model.ErrUnauthorized
	}

	entries, err := s.store.ListPendingGuestEntries(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		name := utils.NormalizeGuestName(e.GuestName)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	ids, err := s.store.GuestIDsByName(ctx, names)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		e := &entries[i]
		e.Blurb = utils.DecodeText(e.Blurb)
		e.Biography = utils.DecodeText(e.Biography)

		if id, ok := ids[utils.NormalizeGuestName(e.GuestName)]; ok {
			guestID := id
			e.GuestID = &guestID
		} else {
			e.Note = noteGuestWillBeCreated
		}
	}
	return entries, nil
}

// PendingCollectibleEntries returns the collectible review queue.
// Collectible entries carry their guest id from the canonical row (or
// zero for additions), so no resolution pass is needed.
func (s *moderationService) PendingCollectibleEntries(ctx context.Context, ident auth.Identity) ([]model.PendingCollectibleEntry, error) {
	if !ident.CanModerate() {
		return nil, model.ErrUnauthorized
	}

	return s.store.ListPendingCollectibleEntries(ctx)
}
