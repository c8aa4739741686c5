package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"guestdex-backend/internal/domains/user/model"
	"guestdex-backend/internal/domains/user/service"
	"guestdex-backend/internal/shared/middleware"
	"guestdex-backend/internal/shared/response"
)

// =====================================================
// USER HANDLER
// =====================================================

type UserHandler struct {
	userService service.Service
}

func NewUserHandler(userService service.Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// RegisterPublicRoutes mounts login.
func (h *UserHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.POST("/auth/login", h.Login)
}

// RegisterAdminRoutes mounts account management. The group must already
// carry auth and the admin role gate.
func (h *UserHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/users", h.ListUsers)
	router.POST("/users", h.CreateUser)
	router.DELETE("/users/:id", h.DeactivateUser)
	router.POST("/users/:id/password", h.UpdatePassword)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	result, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), ident)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), ident, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, user)
}

func (h *UserHandler) DeactivateUser(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return
	}

	if err := h.userService.DeactivateUser(c.Request.Context(), ident, id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return
	}

	var req model.PasswordUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	if err := h.userService.UpdatePassword(c.Request.Context(), ident, id, req); err != nil {
		h.handleServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}

func (h *UserHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid user name or password")
	case errors.Is(err, model.ErrUserInactive):
		response.Forbidden(c, "Account is deactivated")
	case errors.Is(err, model.ErrForbidden):
		response.Forbidden(c, "Insufficient role for this operation")
	case errors.Is(err, model.ErrUserNotFound):
		response.NotFound(c, "User not found")
	case errors.Is(err, model.ErrUserAlreadyExists):
		response.Conflict(c, "User name is already taken")
	default:
		response.InternalServerError(c, "Internal server error")
	}
}
