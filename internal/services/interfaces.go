package services

import (
	"context"
	"time"

	"gagyebu/internal/models"
	"gagyebu/internal/pagination"
)

// SpendingFilter holds optional filter parameters for listing spendings.
// From is inclusive, To exclusive; either bound excludes undated records.
type SpendingFilter struct {
	Role     *models.Role
	Category *string
	From     *time.Time
	To       *time.Time
}

// SpendingServicer defines the contract for the spending store.
type SpendingServicer interface {
	ReplaceForOwners(ctx context.Context, owners []string, records []models.Spending) error
	QueryAll(ctx context.Context) ([]models.Spending, error)
	GetByID(ctx context.Context, id string) (*models.Spending, error)
	List(ctx context.Context, filter SpendingFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Spending], error)
}

// SyncRunServicer defines the contract for the sync run ledger.
type SyncRunServicer interface {
	Record(ctx context.Context, run *models.SyncRun, source []byte)
	Latest(ctx context.Context, ownerEmail string) (*models.SyncRun, error)
	Recent(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.SyncRun], error)
}

// MemberSyncResult describes one member's part of a sync.
type MemberSyncResult struct {
	Email           string      `json:"email"`
	Role            models.Role `json:"role"`
	FileName        string      `json:"file_name,omitempty"`
	RecordCount     int         `json:"record_count"`
	InvalidInstants int         `json:"invalid_instant_count"`
}

// SyncResult is the outcome of a sync. Failures are reported here rather
// than as an error so callers branch on one shape.
type SyncResult struct {
	Success         bool               `json:"success"`
	Code            string             `json:"code,omitempty"`
	Message         string             `json:"message"`
	Retriable       bool               `json:"retriable"`
	StatusCode      int                `json:"-"`
	RecordCount     int                `json:"record_count"`
	InvalidInstants int                `json:"invalid_instant_count"`
	Members         []MemberSyncResult `json:"members"`
	DurationMs      int64              `json:"duration_ms"`
}

// SyncServicer defines the contract for pulling exports into the store.
type SyncServicer interface {
	SyncHousehold(ctx context.Context) SyncResult
	SyncMember(ctx context.Context, role models.Role) SyncResult
}
