package restaurant

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"deipna/internal/middleware"
	"deipna/internal/pkg/response"
	"deipna/internal/pkg/validator"
	"deipna/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	group := api.Group("/restaurants")
	{
		group.GET("/search", h.Search)
		group.GET("/:id", h.Show)
		group.GET("/:id/available-slots", h.AvailableSlots)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/restaurants")
	{
		group.GET("/mine", h.Mine)
		group.POST("", h.Create)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
		group.GET("/:id/reservations", h.Reservations)
	}
}

func (h *Handler) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	params := repository.SearchParams{
		Query:        c.Query("query"),
		City:         c.Query("city"),
		CuisineTypes: c.QueryArray("cuisineTypes"),
		PriceRange:   c.Query("priceRange"),
		Page:         page,
		Size:         size,
	}

	result, err := h.service.Search(c.Request.Context(), params)
	if err != nil {
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "Failed to search restaurants")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) Mine(c *gin.Context) {
	restaurant, err := h.service.Mine(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "Failed to load restaurant")
		return
	}
	if restaurant == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

func (h *Handler) Show(c *gin.Context) {
	restaurant, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Failed to load restaurant")
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ValidationError(c, http.StatusBadRequest, "Validation failed", fields)
		return
	}

	restaurant, err := h.service.Create(c.Request.Context(), c.GetString(middleware.ContextUserID), req)
	if err != nil {
		if errors.Is(err, ErrAlreadyHasRestaurant) {
			response.Error(c, http.StatusConflict, "You already have a restaurant")
			return
		}
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "Failed to create restaurant")
		return
	}
	c.JSON(http.StatusCreated, restaurant)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ValidationError(c, http.StatusBadRequest, "Validation failed", fields)
		return
	}

	restaurant, err := h.service.Update(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err, "Failed to update restaurant")
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

func (h *Handler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Failed to delete restaurant")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) AvailableSlots(c *gin.Context) {
	slots, err := h.service.AvailableSlots(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			response.Error(c, http.StatusBadRequest, `Query param "date" (YYYY-MM-DD) is required`)
			return
		}
		h.writeError(c, err, "Failed to compute available slots")
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (h *Handler) Reservations(c *gin.Context) {
	filter := repository.ReservationFilter{
		Date:      c.Query("date"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	reservations, err := h.service.Reservations(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id"), filter)
	if err != nil {
		h.writeError(c, err, "Failed to load reservations")
		return
	}
	c.JSON(http.StatusOK, reservations)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "Restaurant not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "You are not the owner of this restaurant")
	default:
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, fallback)
	}
}
