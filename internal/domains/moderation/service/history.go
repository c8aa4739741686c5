package service

import (
	"context"

	"guestdex-backend/internal/domains/moderation/model"
	"guestdex-backend/internal/shared/auth"
	"guestdex-backend/internal/shared/utils"
)

const (
	defaultHistoryPerPage = 20
	maxHistoryPerPage     = 100
)

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultHistoryPerPage
	}
	if perPage > maxHistoryPerPage {
		perPage = maxHistoryPerPage
	}
	return page, perPage
}

func totalPages(total, perPage int) int {
	if total == 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// GuestSubmissionHistory lists the caller's own guest submissions,
// newest first, in any state.
func (s *moderationService) GuestSubmissionHistory(ctx context.Context, ident auth.Identity, page, perPage int) (*model.GuestSubmissionHistoryPage, error) {
	if !ident.CanSubmit() {
		return nil, model.ErrUnauthorized
	}

	page, perPage = normalizePage(page, perPage)
	items, total, err := s.store.ListUserGuestSubmissions(ctx, ident.UserID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].Blurb = utils.DecodeText(items[i].Blurb)
		items[i].Biography = utils.DecodeText(items[i].Biography)
	}

	return &model.GuestSubmissionHistoryPage{
		Submissions: items,
		TotalCount:  total,
		Page:        page,
		PerPage:     perPage,
		TotalPages:  totalPages(total, perPage),
	}, nil
}

// CollectibleSubmissionHistory lists the caller's own collectible
// submissions, newest first.
func (s *moderationService) CollectibleSubmissionHistory(ctx context.Context, ident auth.Identity, page, perPage int) (*model.CollectibleSubmissionHistoryPage, error) {
	if !ident.CanSubmit() {
		return nil, model.ErrUnauthorized
	}

	page, perPage = normalizePage(page, perPage)
	items, total, err := s.store.ListUserCollectibleSubmissions(ctx, ident.UserID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}

	return &model.CollectibleSubmissionHistoryPage{
		Submissions: items,
		TotalCount:  total,
		Page:        page,
		PerPage:     perPage,
		TotalPages:  totalPages(total, perPage),
	}, nil
}
