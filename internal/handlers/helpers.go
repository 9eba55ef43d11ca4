package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/middleware"
	"gagyebu/internal/models"
	"gagyebu/internal/temporal"
)

// getCaller extracts the authenticated caller's email and role from the Gin
// context. Returns ErrUnauthorized if not present.
func getCaller(c *gin.Context) (string, models.Role, error) {
	email := c.GetString(middleware.EmailKey)
	role, ok := c.Get(middleware.RoleKey)
	if email == "" || !ok {
		return "", "", apperrors.ErrUnauthorized
	}
	r, ok := role.(models.Role)
	if !ok {
		return "", "", apperrors.ErrUnauthorized
	}
	return email, r, nil
}

// monthStart parses an optional "YYYY-MM" key, defaulting to the month
// holding now.
func monthStart(times *temporal.Resolver, key string, now time.Time) (time.Time, error) {
	if key == "" {
		return times.MonthStart(now), nil
	}
	start, ok := times.ParseMonthKey(key)
	if !ok {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must look like YYYY-MM")
	}
	return start, nil
}

// respondWithError writes the JSON error response for err.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}
