package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"gagyebu/internal/cache"
	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/models"
)

func at(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 12, 0, 0, 0, seoul).UTC()
	return &t
}

func timelineFixture() []models.Spending {
	return []models.Spending{
		{ID: "1", Role: models.RoleHusband, Amount: 15000, Category: "식비", OccurredAt: at(2024, 3, 15)},
		{ID: "2", Role: models.RoleWife, Amount: 5000, Category: "교통비", OccurredAt: at(2024, 3, 16)},
		{ID: "3", Role: models.RoleWife, Amount: 250000, Category: "여행", OccurredAt: at(2024, 2, 10)},
		{ID: "4", Role: models.RoleHusband, Amount: 3000, Category: "기타"},
	}
}

func setupStatsRouter(tl *mockTimeline) *gin.Engine {
	h := NewStatsHandler(tl, testResolver())
	h.now = func() time.Time { return time.Date(2024, 3, 20, 9, 0, 0, 0, seoul) }
	r := gin.New()
	r.Use(injectCaller("wife@example.com", models.RoleWife))
	r.GET("/stats/summary", h.Summary)
	r.GET("/stats/monthly", h.Monthly)
	r.GET("/stats/categories/monthly", h.CategoryMonthly)
	r.GET("/stats/distribution", h.Distribution)
	return r
}

func TestStatsHandler_Summary(t *testing.T) {
	tl := &mockTimeline{snap: cache.Snapshot{Spendings: timelineFixture(), Fresh: true}}

	t.Run("current_month", func(t *testing.T) {
		w := doRequest(setupStatsRouter(tl), http.MethodGet, "/stats/summary", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		body := parseJSON(t, w)
		summary := body["summary"].(map[string]interface{})
		if summary["month"] != "2024-03" {
			t.Errorf("expected 2024-03, got %v", summary["month"])
		}
		if summary["my_total"] != float64(5000) {
			t.Errorf("expected my total 5000, got %v", summary["my_total"])
		}
		if summary["couple_total"] != float64(20000) {
			t.Errorf("expected couple total 20000, got %v", summary["couple_total"])
		}
		if summary["undated_count"] != float64(1) {
			t.Errorf("expected 1 undated, got %v", summary["undated_count"])
		}
		if body["fresh"] != true {
			t.Errorf("expected fresh, got %v", body["fresh"])
		}
	})

	t.Run("explicit_month", func(t *testing.T) {
		w := doRequest(setupStatsRouter(tl), http.MethodGet, "/stats/summary?month=2024-02", nil)
		summary := parseJSON(t, w)["summary"].(map[string]interface{})
		if summary["couple_total"] != float64(250000) {
			t.Errorf("expected 250000, got %v", summary["couple_total"])
		}
	})

	t.Run("invalid_month", func(t *testing.T) {
		w := doRequest(setupStatsRouter(tl), http.MethodGet, "/stats/summary?month=March", nil)
		assertErrorCode(t, w, http.StatusBadRequest, "INVALID_INPUT")
	})

	t.Run("timeline_error", func(t *testing.T) {
		w := doRequest(setupStatsRouter(&mockTimeline{err: apperrors.ErrInternalServer}), http.MethodGet, "/stats/summary", nil)
		assertErrorCode(t, w, http.StatusInternalServerError, "INTERNAL_ERROR")
	})
}

func TestStatsHandler_Monthly(t *testing.T) {
	tl := &mockTimeline{snap: cache.Snapshot{Spendings: timelineFixture(), Fresh: false}}

	t.Run("default_twelve_months", func(t *testing.T) {
		w := doRequest(setupStatsRouter(tl), http.MethodGet, "/stats/monthly", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		body := parseJSON(t, w)
		months := body["months"].([]interface{})
		if len(months) != 12 {
			t.Fatalf("expected 12 months, got %d", len(months))
		}
		if body["fresh"] != false {
			t.Errorf("expected stale flag, got %v", body["fresh"])
		}
	})

	t.Run("custom_count", func(t *testing.T) {
		w := doRequest(setupStatsRouter(tl), http.MethodGet, "/stats/monthly?months=2", nil)
		months := parseJSON(t, w)["months"].([]interface{})
		if len(months) != 2 {
			t.Fatalf("expected 2 months, got %d", len(months))
		}
	})

	t.Run("out_of_range", func(t *testing.T) {
		w := doRequest(setupStatsRouter(tl), http.MethodGet, "/stats/monthly?months=37", nil)
		assertErrorCode(t, w, http.StatusBadRequest, "INVALID_INPUT")
	})
}

func TestStatsHandler_CategoryMonthly(t *testing.T) {
	tl := &mockTimeline{snap: cache.Snapshot{Spendings: timelineFixture(), Fresh: true}}

	t.Run("two_months", func(t *testing.T) {
		w := doRequest(setupStatsRouter(tl), http.MethodGet, "/stats/categories/monthly?months=2", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		months := parseJSON(t, w)["months"].([]interface{})
		if len(months) != 2 {
			t.Fatalf("expected 2 months, got %d", len(months))
		}

		feb := months[0].(map[string]interface{})
		if feb["month"] != "2024-02" {
			t.Errorf("expected oldest month first, got %v", feb["month"])
		}
		if feb["categories"].(map[string]interface{})["여행"] != float64(250000) {
			t.Errorf("unexpected February totals %v", feb["categories"])
		}

		mar := months[1].(map[string]interface{})["categories"].(map[string]interface{})
		if mar["식비"] != float64(15000) || mar["교통비"] != float64(5000) {
			t.Errorf("unexpected March totals %v", mar)
		}
	})

	t.Run("default_twelve_months", func(t *testing.T) {
		w := doRequest(setupStatsRouter(tl), http.MethodGet, "/stats/categories/monthly", nil)
		if months := parseJSON(t, w)["months"].([]interface{}); len(months) != 12 {
			t.Errorf("expected 12 months, got %d", len(months))
		}
	})

	t.Run("out_of_range", func(t *testing.T) {
		w := doRequest(setupStatsRouter(tl), http.MethodGet, "/stats/categories/monthly?months=0", nil)
		if w.Code != http.StatusOK {
			t.Errorf("expected zero to fall back to the default, got %d", w.Code)
		}
		w = doRequest(setupStatsRouter(tl), http.MethodGet, "/stats/categories/monthly?months=40", nil)
		assertErrorCode(t, w, http.StatusBadRequest, "INVALID_INPUT")
	})
}

func TestStatsHandler_Distribution(t *testing.T) {
	tl := &mockTimeline{snap: cache.Snapshot{Spendings: timelineFixture(), Fresh: true}}

	count := func(buckets []interface{}) float64 {
		var total float64
		for _, b := range buckets {
			total += b.(map[string]interface{})["count"].(float64)
		}
		return total
	}

	t.Run("all_time", func(t *testing.T) {
		w := doRequest(setupStatsRouter(tl), http.MethodGet, "/stats/distribution", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		buckets := parseJSON(t, w)["buckets"].([]interface{})
		if len(buckets) != 6 {
			t.Fatalf("expected 6 buckets, got %d", len(buckets))
		}
		if got := count(buckets); got != 4 {
			t.Errorf("expected 4 counted records, got %v", got)
		}
	})

	t.Run("one_month", func(t *testing.T) {
		w := doRequest(setupStatsRouter(tl), http.MethodGet, "/stats/distribution?month=2024-03", nil)
		buckets := parseJSON(t, w)["buckets"].([]interface{})
		if got := count(buckets); got != 2 {
			t.Errorf("expected 2 counted records, got %v", got)
		}
	})
}
