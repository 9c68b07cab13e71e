package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	validatorlib "github.com/go-playground/validator/v10"

	"deipna/internal/middleware"
	"deipna/internal/pkg/response"
)

// Handler maps the session operations onto the HTTP edge.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the routes that take no bearer token.
// The rate limiter guards the credential endpoints only.
func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup, limiter gin.HandlerFunc) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", limiter, h.Register)
		authGroup.POST("/login", limiter, h.Login)
		authGroup.POST("/refresh", h.Refresh)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.GET("/me", h.Me)
		authGroup.POST("/logout", h.Logout)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "An account with this email already exists")
			return
		}
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "Failed to register")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":        result.AccessToken,
		"refreshToken": result.RefreshToken,
		"user":         result.User,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "Failed to login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        result.AccessToken,
		"refreshToken": result.RefreshToken,
		"user":         result.User,
	})
}

func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidRefreshToken) {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired refresh token")
			return
		}
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "Failed to refresh session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        result.AccessToken,
		"refreshToken": result.RefreshToken,
		"user":         result.User,
	})
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	user, err := h.service.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "Failed to load user")
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) Logout(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	accessRaw := ""
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		accessRaw = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}

	if err := h.service.Logout(c.Request.Context(), userID, accessRaw); err != nil {
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "Failed to logout")
		return
	}

	c.Status(http.StatusNoContent)
}

// bindError reports field-level detail when the failure came from
// validation tags, a generic message otherwise.
func bindError(c *gin.Context, err error) {
	var verrs validatorlib.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		response.ValidationError(c, http.StatusBadRequest, "Validation failed", fields)
		return
	}
	response.Error(c, http.StatusBadRequest, "Invalid request body")
}
