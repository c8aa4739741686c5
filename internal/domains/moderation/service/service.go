package service

import (
	"context"

	"guestdex-backend/internal/domains/moderation/model"
	"guestdex-backend/internal/domains/moderation/repository"
	"guestdex-backend/internal/infrastructure/storage"
	"guestdex-backend/internal/shared/auth"
	"guestdex-backend/pkg/cache"
)

// Service is the moderation workflow: versioned submissions in, a
// pending queue for review, and transactional approve/reject decisions
// that reconcile canonical storage.
type Service interface {
	// ---- submissions ----
	SubmitGuestUpdate(ctx context.Context, ident auth.Identity, guestID int64, year int, req model.GuestSubmissionRequest) (*model.SubmissionResult, error)
	SubmitGuestAddition(ctx context.Context, ident auth.Identity, req model.GuestAdditionRequest) (*model.SubmissionResult, error)
	SubmitGuestDeletion(ctx context.Context, ident auth.Identity, guestID int64, year int) (*model.SubmissionResult, error)
	SubmitCollectibleUpdate(ctx context.Context, ident auth.Identity, collectibleID string, req model.CollectibleSubmissionRequest) (*model.SubmissionResult, error)
	SubmitCollectibleAddition(ctx context.Context, ident auth.Identity, req model.CollectibleAdditionRequest, image *model.ImageUpload) (*model.SubmissionResult, error)
	SubmitCollectibleDeletion(ctx context.Context, ident auth.Identity, collectibleID string) (*model.SubmissionResult, error)

	// ---- queue ----
	PendingGuestEntries(ctx context.Context, ident auth.Identity) ([]model.PendingGuestEntry, error)
	PendingCollectibleEntries(ctx context.Context, ident auth.Identity) ([]model.PendingCollectibleEntry, error)

	// ---- decisions ----
	ApproveGuestEntry(ctx context.Context, ident auth.Identity, req model.DecisionRequest) (*model.GuestDecisionResult, error)
	RejectGuestEntry(ctx context.Context, ident auth.Identity, req model.DecisionRequest) (*model.GuestDecisionResult, error)
	ApproveCollectibleEntry(ctx context.Context, ident auth.Identity, req model.DecisionRequest) (*model.CollectibleDecisionResult, error)
	RejectCollectibleEntry(ctx context.Context, ident auth.Identity, req model.DecisionRequest) (*model.CollectibleDecisionResult, error)

	// ---- submission history ----
	GuestSubmissionHistory(ctx context.Context, ident auth.Identity, page, perPage int) (*model.GuestSubmissionHistoryPage, error)
	CollectibleSubmissionHistory(ctx context.Context, ident auth.Identity, page, perPage int) (*model.CollectibleSubmissionHistoryPage, error)
}

type moderationService struct {
	store  repository.Store
	cache  cache.Cache
	images storage.ImageStorage
}

func NewModerationService(store repository.Store, c cache.Cache, images storage.ImageStorage) Service {
	return &moderationService{
		store:  store,
		cache:  c,
		images: images,
	}
}
