package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"guestdex-backend/internal/domains/guest/model"
	"guestdex-backend/internal/domains/guest/service"
	"guestdex-backend/internal/shared/response"
)

// =====================================================
// GUEST HANDLER
// =====================================================

type GuestHandler struct {
	guestService service.Service
}

func NewGuestHandler(guestService service.Service) *GuestHandler {
	return &GuestHandler{
		guestService: guestService,
	}
}

// RegisterPublicRoutes mounts the unauthenticated directory reads.
func (h *GuestHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/guests", h.ListGuests)
	router.GET("/guests/search", h.Search)
	router.GET("/guests/accolades", h.ListAccolades)
	router.GET("/guests/:guest_id", h.GetYearBlurbs)
	router.GET("/guests/:guest_id/:year", h.GetGuest)
	router.GET("/guest_profile/:guest_id", h.GetProfile)
	router.GET("/vendors", h.ListVendors)
	router.GET("/vendors/:guest_id/:year", h.GetVendor)
	router.GET("/years", h.ListYears)
	router.GET("/vendor_years", h.ListVendorYears)
}

func (h *GuestHandler) ListGuests(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "Invalid year")
			return
		}
		year = parsed
	}

	guests, err := h.guestService.ListGuests(c.Request.Context(), year)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, guests)
}

func (h *GuestHandler) GetGuest(c *gin.Context) {
	guestID, year, ok := parseGuestKey(c)
	if !ok {
		return
	}

	guest, err := h.guestService.GetGuest(c.Request.Context(), guestID, year)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, guest)
}

func (h *GuestHandler) GetYearBlurbs(c *gin.Context) {
	guestID, ok := parseGuestID(c)
	if !ok {
		return
	}

	blurbs, err := h.guestService.GetYearBlurbs(c.Request.Context(), guestID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, blurbs)
}

func (h *GuestHandler) GetProfile(c *gin.Context) {
	guestID, ok := parseGuestID(c)
	if !ok {
		return
	}

	profile, err := h.guestService.GetProfile(c.Request.Context(), guestID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profile)
}

func (h *GuestHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "Query parameter q is required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	result, err := h.guestService.Search(c.Request.Context(), query, page, perPage)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *GuestHandler) ListAccolades(c *gin.Context) {
	entries, err := h.guestService.ListAccolades(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, entries)
}

func (h *GuestHandler) ListVendors(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "Invalid year")
			return
		}
		year = parsed
	}

	vendors, err := h.guestService.ListVendors(c.Request.Context(), year)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, vendors)
}

func (h *GuestHandler) GetVendor(c *gin.Context) {
	guestID, year, ok := parseGuestKey(c)
	if !ok {
		return
	}

	vendor, err := h.guestService.GetVendor(c.Request.Context(), guestID, year)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, vendor)
}

func (h *GuestHandler) ListYears(c *gin.Context) {
	years, err := h.guestService.ListYears(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, years)
}

func (h *GuestHandler) ListVendorYears(c *gin.Context) {
	years, err := h.guestService.ListVendorYears(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, years)
}

// =====================================================
// HELPERS
// =====================================================

func parseGuestID(c *gin.Context) (int64, bool) {
	guestID, err := strconv.ParseInt(c.Param("guest_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid guest id")
		return 0, false
	}
	return guestID, true
}

func parseGuestKey(c *gin.Context) (int64, int, bool) {
	guestID, ok := parseGuestID(c)
	if !ok {
		return 0, 0, false
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.BadRequest(c, "Invalid year")
		return 0, 0, false
	}
	return guestID, year, true
}

func (h *GuestHandler) handleServiceError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrGuestNotFound) {
		response.NotFound(c, "Guest not found")
		return
	}
	response.InternalServerError(c, "Internal server error")
}
