package models

import "time"

// SyncStatus is the outcome of one account's sync attempt.
type SyncStatus string

const (
	SyncStatusSucceeded SyncStatus = "succeeded"
	SyncStatusFailed    SyncStatus = "failed"
)

// SyncRun records one account's sync attempt: which file was read and what
// came of it.
type SyncRun struct {
	Base
	OwnerEmail     string     `gorm:"not null;index" json:"owner_email"`
	Role           Role       `gorm:"type:varchar(16);not null" json:"role"`
	FileID         string     `json:"file_id,omitempty"`
	FileName       string     `json:"file_name,omitempty"`
	FileModifiedAt *time.Time `json:"file_modified_at,omitempty"`
	Checksum       string     `gorm:"size:64" json:"checksum,omitempty"`
	RecordCount    int        `json:"record_count"`
	InvalidInstant int        `json:"invalid_instant_count"`
	Status         SyncStatus `gorm:"type:varchar(16);not null" json:"status"`
	ErrorCode      string     `json:"error_code,omitempty"`
	StartedAt      time.Time  `gorm:"not null" json:"started_at"`
	FinishedAt     time.Time  `gorm:"not null" json:"finished_at"`
}
