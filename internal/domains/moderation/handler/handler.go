package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	collectiblemodel "guestdex-backend/internal/domains/collectible/model"
	guestmodel "guestdex-backend/internal/domains/guest/model"
	"guestdex-backend/internal/domains/moderation/model"
	"guestdex-backend/internal/domains/moderation/service"
	"guestdex-backend/internal/shared/auth"
	"guestdex-backend/internal/shared/middleware"
	"guestdex-backend/internal/shared/response"
)

const maxImageBytes = 10 << 20

// =====================================================
// MODERATION HANDLER
// =====================================================

type ModerationHandler struct {
	moderationService service.Service
}

func NewModerationHandler(moderationService service.Service) *ModerationHandler {
	return &ModerationHandler{
		moderationService: moderationService,
	}
}

// =====================================================
// ROUTES REGISTRATION
// =====================================================

// RegisterEditorRoutes mounts the submission and history endpoints. The
// group must already carry auth and the editor role gate.
func (h *ModerationHandler) RegisterEditorRoutes(router *gin.RouterGroup) {
	router.POST("/guests/add", h.SubmitGuestAddition)
	router.PUT("/guests/:guest_id/:year", h.SubmitGuestUpdate)
	router.POST("/guests/delete/:guest_id/:year", h.SubmitGuestDeletion)

	router.PUT("/collectibles/:collectible_id", h.SubmitCollectibleUpdate)
	router.POST("/collectibles/add", h.SubmitCollectibleAddition)
	router.POST("/collectibles/delete/:collectible_id", h.SubmitCollectibleDeletion)

	router.GET("/users/:user_id/guest_submissions", h.GuestSubmissionHistory)
	router.GET("/users/:user_id/collectible_submissions", h.CollectibleSubmissionHistory)
}

// RegisterModeratorRoutes mounts the queue and decision endpoints. The
// group must already carry auth and the moderator role gate.
func (h *ModerationHandler) RegisterModeratorRoutes(router *gin.RouterGroup) {
	router.GET("/guests/pending", h.PendingGuestEntries)
	router.POST("/guests/approve", h.ApproveGuestEntry)
	router.POST("/guests/reject", h.RejectGuestEntry)

	router.GET("/collectibles/pending", h.PendingCollectibleEntries)
	router.POST("/collectibles/approve", h.ApproveCollectibleEntry)
	router.POST("/collectibles/reject", h.RejectCollectibleEntry)
}

// =====================================================
// GUEST SUBMISSIONS
// =====================================================

func (h *ModerationHandler) SubmitGuestAddition(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.GuestAdditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	result, err := h.moderationService.SubmitGuestAddition(c.Request.Context(), ident, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

func (h *ModerationHandler) SubmitGuestUpdate(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	guestID, year, ok := parseGuestKey(c)
	if !ok {
		return
	}

	var req model.GuestSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.moderationService.SubmitGuestUpdate(c.Request.Context(), ident, guestID, year, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

func (h *ModerationHandler) SubmitGuestDeletion(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	guestID, year, ok := parseGuestKey(c)
	if !ok {
		return
	}

	result, err := h.moderationService.SubmitGuestDeletion(c.Request.Context(), ident, guestID, year)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// =====================================================
// COLLECTIBLE SUBMISSIONS
// =====================================================

func (h *ModerationHandler) SubmitCollectibleUpdate(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	collectibleID := c.Param("collectible_id")

	var req model.CollectibleSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.moderationService.SubmitCollectibleUpdate(c.Request.Context(), ident, collectibleID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// SubmitCollectibleAddition accepts multipart form data: the record
// fields plus an optional "image" file part.
func (h *ModerationHandler) SubmitCollectibleAddition(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.CollectibleAdditionRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid form data")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	image, err := readImagePart(c)
	if err != nil {
		response.BadRequest(c, "Invalid image upload")
		return
	}

	result, err := h.moderationService.SubmitCollectibleAddition(c.Request.Context(), ident, req, image)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

func (h *ModerationHandler) SubmitCollectibleDeletion(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.moderationService.SubmitCollectibleDeletion(c.Request.Context(), ident, c.Param("collectible_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// =====================================================
// QUEUE
// =====================================================

func (h *ModerationHandler) PendingGuestEntries(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	entries, err := h.moderationService.PendingGuestEntries(c.Request.Context(), ident)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entries)
}

func (h *ModerationHandler) PendingCollectibleEntries(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	entries, err := h.moderationService.PendingCollectibleEntries(c.Request.Context(), ident)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entries)
}

// =====================================================
// DECISIONS
// =====================================================

func (h *ModerationHandler) ApproveGuestEntry(c *gin.Context) {
	h.decide(c, func(c *gin.Context, req model.DecisionRequest) (interface{}, error) {
		ident, _ := middleware.GetIdentity(c)
		return h.moderationService.ApproveGuestEntry(c.Request.Context(), ident, req)
	})
}

func (h *ModerationHandler) RejectGuestEntry(c *gin.Context) {
	h.decide(c, func(c *gin.Context, req model.DecisionRequest) (interface{}, error) {
		ident, _ := middleware.GetIdentity(c)
		return h.moderationService.RejectGuestEntry(c.Request.Context(), ident, req)
	})
}

func (h *ModerationHandler) ApproveCollectibleEntry(c *gin.Context) {
	h.decide(c, func(c *gin.Context, req model.DecisionRequest) (interface{}, error) {
		ident, _ := middleware.GetIdentity(c)
		return h.moderationService.ApproveCollectibleEntry(c.Request.Context(), ident, req)
	})
}

func (h *ModerationHandler) RejectCollectibleEntry(c *gin.Context) {
	h.decide(c, func(c *gin.Context, req model.DecisionRequest) (interface{}, error) {
		ident, _ := middleware.GetIdentity(c)
		return h.moderationService.RejectCollectibleEntry(c.Request.Context(), ident, req)
	})
}

// decide binds and validates the shared decision request shape, then
// dispatches to the given service call.
func (h *ModerationHandler) decide(c *gin.Context, fn func(*gin.Context, model.DecisionRequest) (interface{}, error)) {
	if _, ok := middleware.GetIdentity(c); !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	result, err := fn(c, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// =====================================================
// SUBMISSION HISTORY
// =====================================================

func (h *ModerationHandler) GuestSubmissionHistory(c *gin.Context) {
	ident, ok := h.historyIdentity(c)
	if !ok {
		return
	}

	page, perPage := parsePaging(c)
	result, err := h.moderationService.GuestSubmissionHistory(c.Request.Context(), ident, page, perPage)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *ModerationHandler) CollectibleSubmissionHistory(c *gin.Context) {
	ident, ok := h.historyIdentity(c)
	if !ok {
		return
	}

	page, perPage := parsePaging(c)
	result, err := h.moderationService.CollectibleSubmissionHistory(c.Request.Context(), ident, page, perPage)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// historyIdentity ensures the caller only reads their own history.
func (h *ModerationHandler) historyIdentity(c *gin.Context) (ident auth.Identity, ok bool) {
	ident, ok = middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return ident, false
	}

	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return ident, false
	}
	if userID != ident.UserID {
		response.Forbidden(c, "Submission history is limited to your own account")
		return ident, false
	}
	return ident, true
}

// =====================================================
// HELPERS
// =====================================================

func parseGuestKey(c *gin.Context) (int64, int, bool) {
	guestID, err := strconv.ParseInt(c.Param("guest_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid guest id")
		return 0, 0, false
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.BadRequest(c, "Invalid year")
		return 0, 0, false
	}
	return guestID, year, true
}

func parsePaging(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	return page, perPage
}

func readImagePart(c *gin.Context) (*model.ImageUpload, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	if fileHeader.Size > maxImageBytes {
		return nil, errors.New("image too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return nil, err
	}

	return &model.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// handleServiceError maps service errors to HTTP responses without
// leaking internals.
func (h *ModerationHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrUnauthorized):
		response.Forbidden(c, "Insufficient role for this operation")
	case errors.Is(err, model.ErrEntryNotFound):
		response.NotFound(c, "Moderation entry not found")
	case errors.Is(err, model.ErrSubjectNotFound):
		response.NotFound(c, "Subject not found")
	case errors.Is(err, guestmodel.ErrGuestNotFound):
		response.NotFound(c, "Guest not found")
	case errors.Is(err, collectiblemodel.ErrCollectibleNotFound):
		response.NotFound(c, "Collectible not found")
	case errors.Is(err, model.ErrAlreadyDecided):
		response.Conflict(c, "Entry has already been decided")
	case errors.Is(err, model.ErrVersionConflict):
		response.Conflict(c, "A conflicting submission was filed at the same time. Please retry.")
	default:
		response.InternalServerError(c, "Internal server error")
	}
}
