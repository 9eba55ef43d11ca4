package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gagyebu/internal/cache"
	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/stats"
	"gagyebu/internal/temporal"
)

const defaultTrendMonths = 12

// TimelineSource hands out the cached household timeline.
type TimelineSource interface {
	Get(ctx context.Context) (cache.Snapshot, error)
}

// StatsHandler handles dashboard aggregate requests
type StatsHandler struct {
	timeline TimelineSource
	times    *temporal.Resolver
	now      func() time.Time
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(timeline TimelineSource, times *temporal.Resolver) *StatsHandler {
	return &StatsHandler{timeline: timeline, times: times, now: time.Now}
}

// MonthQuery selects one month; empty means the current one.
type MonthQuery struct {
	Month string `form:"month" binding:"omitempty,month_key"`
}

// TrendQuery selects how many months the trend covers.
type TrendQuery struct {
	Months int `form:"months" binding:"omitempty,min=1,max=36"`
}

// Summary returns the caller's and the couple's totals for a month
func (h *StatsHandler) Summary(c *gin.Context) {
	_, role, err := getCaller(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	start, ok := h.bindMonth(c)
	if !ok {
		return
	}

	snap, err := h.timeline.Get(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": stats.Summarize(snap.Spendings, h.times, start, role),
		"fresh":   snap.Fresh,
	})
}

// Monthly returns totals for the last N months, oldest first
func (h *StatsHandler) Monthly(c *gin.Context) {
	var q TrendQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if q.Months == 0 {
		q.Months = defaultTrendMonths
	}

	snap, err := h.timeline.Get(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"months": stats.MonthlyTrend(snap.Spendings, h.times, h.now(), q.Months),
		"fresh":  snap.Fresh,
	})
}

// CategoryMonthly returns per-category totals for the last N months, oldest first
func (h *StatsHandler) CategoryMonthly(c *gin.Context) {
	var q TrendQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if q.Months == 0 {
		q.Months = defaultTrendMonths
	}

	snap, err := h.timeline.Get(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"months": stats.CategoryMonthly(snap.Spendings, h.times, h.now(), q.Months),
		"fresh":  snap.Fresh,
	})
}

// Distribution returns spending counts per amount range
func (h *StatsHandler) Distribution(c *gin.Context) {
	var q MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	snap, err := h.timeline.Get(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	list := snap.Spendings
	if q.Month != "" {
		start, err := monthStart(h.times, q.Month, h.now())
		if err != nil {
			respondWithError(c, err)
			return
		}
		list = stats.InMonth(list, h.times, start)
	}

	c.JSON(http.StatusOK, gin.H{
		"buckets": stats.Distribution(list),
		"fresh":   snap.Fresh,
	})
}

func (h *StatsHandler) bindMonth(c *gin.Context) (time.Time, bool) {
	var q MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return time.Time{}, false
	}
	start, err := monthStart(h.times, q.Month, h.now())
	if err != nil {
		respondWithError(c, err)
		return time.Time{}, false
	}
	return start, true
}
