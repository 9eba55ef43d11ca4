// Package ingest turns extracted export rows into normalized spendings.
package ingest

import (
	"fmt"
	"strings"
	"time"

	"gagyebu/internal/category"
	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/extract"
	"gagyebu/internal/logger"
	"gagyebu/internal/models"
	"gagyebu/internal/temporal"
)

// SchemaVersion tags the shape of a SourceRecord.
type SchemaVersion int

const (
	// SchemaLegacy records come from single-user syncs and carry no role;
	// the role is looked up from the owner.
	SchemaLegacy SchemaVersion = 1
	// SchemaHousehold records carry the role they were synced under.
	SchemaHousehold SchemaVersion = 2
)

// SourceRecord is one extracted row with the account it was read from.
type SourceRecord struct {
	SchemaVersion SchemaVersion
	OwnerEmail    string
	Role          models.Role
	Row           extract.Row
}

// HouseholdRecords tags rows read from one member's export.
func HouseholdRecords(ownerEmail string, role models.Role, rows []extract.Row) []SourceRecord {
	out := make([]SourceRecord, len(rows))
	for i, row := range rows {
		out[i] = SourceRecord{
			SchemaVersion: SchemaHousehold,
			OwnerEmail:    ownerEmail,
			Role:          role,
			Row:           row,
		}
	}
	return out
}

// RoleLookup resolves an owner email to a household role.
type RoleLookup interface {
	RoleFor(email string) (models.Role, error)
}

// Stats counts what normalization saw.
type Stats struct {
	Records         int
	InvalidInstants int
}

// Normalizer applies category and time normalization to SourceRecords.
type Normalizer struct {
	times *temporal.Resolver
	roles RoleLookup
	now   func() time.Time
}

// NewNormalizer returns a Normalizer. roles is only consulted for legacy
// records and may be nil when none are expected.
func NewNormalizer(times *temporal.Resolver, roles RoleLookup) *Normalizer {
	return &Normalizer{times: times, roles: roles, now: time.Now}
}

// Normalize converts one record. The derived id is left empty; it is
// assigned when batches are merged. An unreadable date or time does not fail
// the record: OccurredAt stays nil.
func (n *Normalizer) Normalize(rec SourceRecord) (models.Spending, error) {
	role, err := n.roleOf(rec)
	if err != nil {
		return models.Spending{}, err
	}

	row := rec.Row
	s := models.Spending{
		OwnerEmail:        strings.ToLower(strings.TrimSpace(rec.OwnerEmail)),
		Role:              role,
		SourceID:          row.ID,
		Category:          category.Normalize(row.CategoryName),
		SubCategory:       category.NormalizeOptional(row.SubCategoryName),
		Location:          deref(row.Where),
		Memo:              nonEmpty(row.Memo),
		PaymentInstrument: nonEmpty(row.Card),
		CreatedAt:         n.now().UTC(),
	}

	if row.Amount != nil {
		s.Amount = *row.Amount
	} else {
		logger.Get().Warnw("record has no amount, storing 0", "owner", s.OwnerEmail, "source_id", row.ID)
	}

	date, clock := deref(row.Date), deref(row.Time)
	s.OccurredAt = n.times.ResolvePtr(date, clock)
	if s.OccurredAt == nil {
		logger.Get().Warnw("record date unreadable, keeping it without an instant",
			"code", apperrors.ErrInvalidTemporalValue.Code,
			"owner", s.OwnerEmail,
			"source_id", row.ID,
			"date", date,
			"time", clock,
		)
	}

	return s, nil
}

// NormalizeAll converts recs in order. The first record that cannot be
// attributed to a member fails the whole batch.
func (n *Normalizer) NormalizeAll(recs []SourceRecord) ([]models.Spending, Stats, error) {
	out := make([]models.Spending, 0, len(recs))
	var stats Stats
	for _, rec := range recs {
		s, err := n.Normalize(rec)
		if err != nil {
			return nil, stats, err
		}
		stats.Records++
		if !s.HasInstant() {
			stats.InvalidInstants++
		}
		out = append(out, s)
	}
	return out, stats, nil
}

func (n *Normalizer) roleOf(rec SourceRecord) (models.Role, error) {
	switch rec.SchemaVersion {
	case SchemaHousehold:
		if !rec.Role.Valid() {
			return "", apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("unknown household role %q", rec.Role))
		}
		return rec.Role, nil
	case SchemaLegacy:
		if n.roles == nil {
			return "", apperrors.ErrUnknownOwner
		}
		return n.roles.RoleFor(rec.OwnerEmail)
	default:
		return "", apperrors.WithMessage(apperrors.ErrUnsupportedSchemaType,
			fmt.Sprintf("Unsupported source record version %d", rec.SchemaVersion))
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
