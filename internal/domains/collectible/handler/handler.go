package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"guestdex-backend/internal/domains/collectible/model"
	"guestdex-backend/internal/domains/collectible/service"
	"guestdex-backend/internal/shared/response"
)

// =====================================================
// COLLECTIBLE HANDLER
// =====================================================

type CollectibleHandler struct {
	collectibleService service.Service
}

func NewCollectibleHandler(collectibleService service.Service) *CollectibleHandler {
	return &CollectibleHandler{
		collectibleService: collectibleService,
	}
}

// RegisterPublicRoutes mounts the unauthenticated collectible reads.
func (h *CollectibleHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/collectibles/unsorted", h.ListUnsorted)
	router.GET("/collectibles/by_year/:year", h.ListByYear)
	router.GET("/collectibles/categories", h.Categories)
}

// RegisterEditorRoutes mounts the detail read used by the edit forms.
func (h *CollectibleHandler) RegisterEditorRoutes(router *gin.RouterGroup) {
	router.GET("/collectibles/:collectible_id", h.Get)
}

func (h *CollectibleHandler) ListUnsorted(c *gin.Context) {
	items, err := h.collectibleService.ListUnsorted(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *CollectibleHandler) ListByYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.BadRequest(c, "Invalid year")
		return
	}

	items, err := h.collectibleService.ListByYear(c.Request.Context(), year)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Categories returns the distinct category names, or the collectibles
// in one category when ?category= is given.
func (h *CollectibleHandler) Categories(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		items, err := h.collectibleService.ListByCategory(c.Request.Context(), category)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, items)
		return
	}

	categories, err := h.collectibleService.ListCategories(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, categories)
}

func (h *CollectibleHandler) Get(c *gin.Context) {
	item, err := h.collectibleService.Get(c.Request.Context(), c.Param("collectible_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

func (h *CollectibleHandler) handleServiceError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrCollectibleNotFound) {
		response.NotFound(c, "Collectible not found")
		return
	}
	response.InternalServerError(c, "Internal server error")
}
