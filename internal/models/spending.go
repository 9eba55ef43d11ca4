package models

import "time"

// UnspecifiedCategory is stored when the source row has no resolvable category.
const UnspecifiedCategory = "미정"

// Spending is one normalized expense record synced from a member's export.
// ID is derived from the source fields (see uuid.Derive), not generated, so
// re-syncing an unchanged export reproduces the same keys.
type Spending struct {
	ID                string     `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerEmail        string     `gorm:"not null;index" json:"owner_email"`
	Role              Role       `gorm:"type:varchar(16);not null;index" json:"role"`
	SourceID          int64      `gorm:"not null" json:"source_id"`
	Amount            int64      `gorm:"type:bigint;not null" json:"amount"`
	Category          string     `gorm:"not null;index" json:"category"`
	SubCategory       *string    `json:"sub_category,omitempty"`
	Location          string     `json:"location"`
	Memo              *string    `json:"memo,omitempty"`
	PaymentInstrument *string    `json:"payment_instrument,omitempty"`
	OccurredAt        *time.Time `gorm:"index" json:"occurred_at,omitempty"`
	CreatedAt         time.Time  `gorm:"not null" json:"created_at"`
}

// HasInstant reports whether the record carries a resolved point in time.
func (s *Spending) HasInstant() bool {
	return s.OccurredAt != nil
}
