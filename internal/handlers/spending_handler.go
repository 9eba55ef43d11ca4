package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gagyebu/internal/category"
	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/models"
	"gagyebu/internal/pagination"
	"gagyebu/internal/services"
	"gagyebu/internal/temporal"
	"gagyebu/internal/uuid"
)

// SpendingHandler handles spending timeline requests
type SpendingHandler struct {
	spendingService services.SpendingServicer
	times           *temporal.Resolver
}

// NewSpendingHandler creates a new SpendingHandler
func NewSpendingHandler(spendingService services.SpendingServicer, times *temporal.Resolver) *SpendingHandler {
	return &SpendingHandler{spendingService: spendingService, times: times}
}

// SpendingQuery holds the filters accepted by ListSpendings.
type SpendingQuery struct {
	pagination.PageRequest
	Role     string `form:"role" binding:"omitempty,household_role"`
	Month    string `form:"month" binding:"omitempty,month_key"`
	Category string `form:"category"`
}

// ListSpendings returns the merged timeline, newest first
func (h *SpendingHandler) ListSpendings(c *gin.Context) {
	var q SpendingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.SpendingFilter
	if q.Role != "" {
		role := models.Role(q.Role)
		filter.Role = &role
	}
	if q.Category != "" {
		label := category.Normalize(&q.Category)
		filter.Category = &label
	}
	if q.Month != "" {
		start, err := monthStart(h.times, q.Month, time.Now())
		if err != nil {
			respondWithError(c, err)
			return
		}
		end := start.AddDate(0, 1, 0)
		filter.From, filter.To = &start, &end
	}

	page, err := h.spendingService.List(c.Request.Context(), filter, q.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetSpending returns one spending of the timeline
func (h *SpendingHandler) GetSpending(c *gin.Context) {
	id := c.Param("id")
	if !uuid.IsValid(id) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid spending ID"))
		return
	}

	spending, err := h.spendingService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"spending": spending})
}

// ListCategories returns the canonical categories the timeline is grouped by
func (h *SpendingHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories":  category.Canonical(),
		"unspecified": category.Unspecified,
	})
}
