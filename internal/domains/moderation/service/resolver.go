package service

import (
	"context"

	"guestdex-backend/internal/domains/moderation/repository"
)

// resolveOrCreateGuest maps a normalized display name to a canonical
// guest id, creating the identity row when the name is new. It runs
// inside the decision transaction, so a rollback also unwinds the
// creation.
//
// Resolution is by exact match on the normalized form. Two moderators
// approving entries for the same new name concurrently can both miss
// the lookup and create duplicate identities; accepted, since the
// duplicate stays visible and correctable in the directory.
func resolveOrCreateGuest(ctx context.Context, tx repository.TxStore, name string) (int64, error) {
	id, found, err := tx.FindGuestByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if found {
		return id, nil
	}
	return tx.CreateGuest(ctx, name)
}
