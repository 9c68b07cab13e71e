package reservation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"deipna/internal/middleware"
	"deipna/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts reservation creation. It sits behind the
// optional auth middleware: a valid token identifies the booker, anything
// else falls back to guest checkout.
func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup, optionalAuth gin.HandlerFunc) {
	api.POST("/reservations", optionalAuth, h.Create)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/reservations")
	{
		group.GET("/my", h.My)
		group.GET("/:id", h.Show)
		group.PATCH("/:id/status", h.UpdateStatus)
		group.DELETE("/:id", h.Cancel)
	}
}

func (h *Handler) My(c *gin.Context) {
	reservations, err := h.service.My(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "Failed to load reservations")
		return
	}
	c.JSON(http.StatusOK, reservations)
}

func (h *Handler) Show(c *gin.Context) {
	res, err := h.service.Get(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Failed to load reservation")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.service.Create(c.Request.Context(), c.GetString(middleware.ContextUserID), req)
	if err != nil {
		if errors.Is(err, ErrGuestInfoRequired) {
			response.Error(c, http.StatusBadRequest,
				"guestInfo (firstName, lastName, email, phone) is required for guest bookings")
			return
		}
		if errors.Is(err, ErrRestaurantNotFound) {
			response.Error(c, http.StatusNotFound, "Restaurant not found")
			return
		}
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "Failed to create reservation")
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.service.UpdateStatus(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			response.Error(c, http.StatusBadRequest,
				"Status must be one of: CONFIRMED, CANCELLED, COMPLETED, NO_SHOW")
			return
		}
		h.writeError(c, err, "Failed to update reservation")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Cancel(c *gin.Context) {
	res, err := h.service.Cancel(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Failed to cancel reservation")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "Reservation not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "You are not allowed to access this reservation")
	default:
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, fallback)
	}
}
