package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gagyebu/internal/models"
	"gagyebu/internal/uuid"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// UniqueEmail returns an address no other fixture in this run has used.
func UniqueEmail() string {
	return fmt.Sprintf("member%d@test.com", nextID())
}

// NewSpending builds an unsaved spending for owner with a derived id.
// A nil at leaves the instant absent.
func NewSpending(owner string, role models.Role, amount int64, category string, at *time.Time) models.Spending {
	sourceID := nextID()
	return models.Spending{
		ID:         uuid.SpendingID(owner, string(role), sourceID, at, amount),
		OwnerEmail: owner,
		Role:       role,
		SourceID:   sourceID,
		Amount:     amount,
		Category:   category,
		Location:   fmt.Sprintf("Shop %d", sourceID),
		OccurredAt: at,
		CreatedAt:  time.Now().UTC(),
	}
}

// CreateTestSpending saves a spending for owner at the given instant.
func CreateTestSpending(t *testing.T, db *gorm.DB, owner string, role models.Role, amount int64, at time.Time) *models.Spending {
	t.Helper()

	s := NewSpending(owner, role, amount, "식비", &at)
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("failed to create test spending: %v", err)
	}
	return &s
}

// CreateTestSyncRun saves a succeeded sync run for owner.
func CreateTestSyncRun(t *testing.T, db *gorm.DB, owner string, role models.Role) *models.SyncRun {
	t.Helper()

	now := time.Now().UTC()
	run := &models.SyncRun{
		OwnerEmail:  owner,
		Role:        role,
		FileID:      fmt.Sprintf("file-%d", nextID()),
		FileName:    "clevmoney_backup.db",
		RecordCount: 1,
		Status:      models.SyncStatusSucceeded,
		StartedAt:   now,
		FinishedAt:  now,
	}
	if err := db.Create(run).Error; err != nil {
		t.Fatalf("failed to create test sync run: %v", err)
	}
	return run
}

// Time returns a pointer to t.
func Time(t time.Time) *time.Time {
	return &t
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}
