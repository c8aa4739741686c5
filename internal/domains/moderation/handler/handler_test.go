package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestdex-backend/internal/domains/moderation/model"
	"guestdex-backend/internal/shared/auth"
)

// stubService lets each test pin just the calls it exercises.
type stubService struct {
	submitGuestAddition func(auth.Identity, model.GuestAdditionRequest) (*model.SubmissionResult, error)
	approveGuestEntry   func(auth.Identity, model.DecisionRequest) (*model.GuestDecisionResult, error)
	guestHistory        func(auth.Identity, int, int) (*model.GuestSubmissionHistoryPage, error)
}

func (s *stubService) SubmitGuestUpdate(context.Context, auth.Identity, int64, int, model.GuestSubmissionRequest) (*model.SubmissionResult, error) {
	return &model.SubmissionResult{Version: 1}, nil
}

func (s *stubService) SubmitGuestAddition(_ context.Context, ident auth.Identity, req model.GuestAdditionRequest) (*model.SubmissionResult, error) {
	if s.submitGuestAddition != nil {
		return s.submitGuestAddition(ident, req)
	}
	return &model.SubmissionResult{Version: 1}, nil
}

func (s *stubService) SubmitGuestDeletion(context.Context, auth.Identity, int64, int) (*model.SubmissionResult, error) {
	return &model.SubmissionResult{Version: 1}, nil
}

func (s *stubService) SubmitCollectibleUpdate(context.Context, auth.Identity, string, model.CollectibleSubmissionRequest) (*model.SubmissionResult, error) {
	return &model.SubmissionResult{Version: 1}, nil
}

func (s *stubService) SubmitCollectibleAddition(context.Context, auth.Identity, model.CollectibleAdditionRequest, *model.ImageUpload) (*model.SubmissionResult, error) {
	return &model.SubmissionResult{Version: 1, CollectibleID: "c-1"}, nil
}

func (s *stubService) SubmitCollectibleDeletion(context.Context, auth.Identity, string) (*model.SubmissionResult, error) {
	return &model.SubmissionResult{Version: 1, CollectibleID: "c-1"}, nil
}

func (s *stubService) PendingGuestEntries(context.Context, auth.Identity) ([]model.PendingGuestEntry, error) {
	return nil, nil
}

func (s *stubService) PendingCollectibleEntries(context.Context, auth.Identity) ([]model.PendingCollectibleEntry, error) {
	return nil, nil
}

func (s *stubService) ApproveGuestEntry(_ context.Context, ident auth.Identity, req model.DecisionRequest) (*model.GuestDecisionResult, error) {
	if s.approveGuestEntry != nil {
		return s.approveGuestEntry(ident, req)
	}
	return &model.GuestDecisionResult{EntryID: req.ID}, nil
}

func (s *stubService) RejectGuestEntry(_ context.Context, _ auth.Identity, req model.DecisionRequest) (*model.GuestDecisionResult, error) {
	return &model.GuestDecisionResult{EntryID: req.ID}, nil
}

func (s *stubService) ApproveCollectibleEntry(_ context.Context, _ auth.Identity, req model.DecisionRequest) (*model.CollectibleDecisionResult, error) {
	return &model.CollectibleDecisionResult{EntryID: req.ID}, nil
}

func (s *stubService) RejectCollectibleEntry(_ context.Context, _ auth.Identity, req model.DecisionRequest) (*model.CollectibleDecisionResult, error) {
	return &model.CollectibleDecisionResult{EntryID: req.ID}, nil
}

func (s *stubService) GuestSubmissionHistory(_ context.Context, ident auth.Identity, page, perPage int) (*model.GuestSubmissionHistoryPage, error) {
	if s.guestHistory != nil {
		return s.guestHistory(ident, page, perPage)
	}
	return &model.GuestSubmissionHistoryPage{}, nil
}

func (s *stubService) CollectibleSubmissionHistory(context.Context, auth.Identity, int, int) (*model.CollectibleSubmissionHistoryPage, error) {
	return &model.CollectibleSubmissionHistoryPage{}, nil
}

func newTestRouter(svc *stubService, ident *auth.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if ident != nil {
		router.Use(func(c *gin.Context) {
			c.Set("identity", *ident)
			c.Next()
		})
	}

	h := NewModerationHandler(svc)
	h.RegisterEditorRoutes(router.Group("/api/v1"))
	h.RegisterModeratorRoutes(router.Group("/api/v1/moderation"))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSubmitGuestAddition_Created(t *testing.T) {
	ident := auth.Identity{UserID: 10, Role: auth.RoleEditor}
	svc := &stubService{}
	router := newTestRouter(svc, &ident)

	w := doJSON(t, router, http.MethodPost, "/api/v1/guests/add", model.GuestAdditionRequest{
		GuestName: "jane doe",
		Year:      2026,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"version":1`)
}

func TestSubmitGuestAddition_ValidationFailed(t *testing.T) {
	ident := auth.Identity{UserID: 10, Role: auth.RoleEditor}
	router := newTestRouter(&stubService{}, &ident)

	w := doJSON(t, router, http.MethodPost, "/api/v1/guests/add", map[string]interface{}{
		"year": 2026,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "guest_name is required")
}

func TestSubmitGuestAddition_Unauthenticated(t *testing.T) {
	router := newTestRouter(&stubService{}, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/guests/add", model.GuestAdditionRequest{
		GuestName: "jane doe",
		Year:      2026,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitGuestUpdate_BadGuestID(t *testing.T) {
	ident := auth.Identity{UserID: 10, Role: auth.RoleEditor}
	router := newTestRouter(&stubService{}, &ident)

	w := doJSON(t, router, http.MethodPut, "/api/v1/guests/not-a-number/2026", model.GuestSubmissionRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApproveGuestEntry_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{"already decided", model.ErrAlreadyDecided, http.StatusConflict, "CONFLICT"},
		{"entry not found", model.ErrEntryNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"subject not found", model.ErrSubjectNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"insufficient role", model.ErrUnauthorized, http.StatusForbidden, "FORBIDDEN"},
		{"version conflict", model.ErrVersionConflict, http.StatusConflict, "CONFLICT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ident := auth.Identity{UserID: 20, Role: auth.RoleModerator}
			svc := &stubService{
				approveGuestEntry: func(auth.Identity, model.DecisionRequest) (*model.GuestDecisionResult, error) {
					return nil, tt.serviceErr
				},
			}
			router := newTestRouter(svc, &ident)

			w := doJSON(t, router, http.MethodPost, "/api/v1/moderation/guests/approve", model.DecisionRequest{ID: 1})
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantCode)
		})
	}
}

func TestApproveGuestEntry_MissingID(t *testing.T) {
	ident := auth.Identity{UserID: 20, Role: auth.RoleModerator}
	router := newTestRouter(&stubService{}, &ident)

	w := doJSON(t, router, http.MethodPost, "/api/v1/moderation/guests/approve", map[string]interface{}{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGuestSubmissionHistory_OwnAccountOnly(t *testing.T) {
	ident := auth.Identity{UserID: 10, Role: auth.RoleEditor}
	router := newTestRouter(&stubService{}, &ident)

	w := doJSON(t, router, http.MethodGet, "/api/v1/users/99/guest_submissions", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/users/10/guest_submissions?page=2&per_page=5", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuestSubmissionHistory_PassesPaging(t *testing.T) {
	ident := auth.Identity{UserID: 10, Role: auth.RoleEditor}
	var gotPage, gotPerPage int
	svc := &stubService{
		guestHistory: func(_ auth.Identity, page, perPage int) (*model.GuestSubmissionHistoryPage, error) {
			gotPage, gotPerPage = page, perPage
			return &model.GuestSubmissionHistoryPage{}, nil
		},
	}
	router := newTestRouter(svc, &ident)

	w := doJSON(t, router, http.MethodGet, "/api/v1/users/10/guest_submissions?page=3&per_page=7", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, gotPage)
	assert.Equal(t, 7, gotPerPage)
}
