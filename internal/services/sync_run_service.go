package services

import (
	"context"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"

	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/logger"
	"gagyebu/internal/models"
	"gagyebu/internal/pagination"
)

// syncRunService keeps the ledger of sync attempts.
type syncRunService struct {
	db *gorm.DB
}

// NewSyncRunService creates a new SyncRunServicer.
func NewSyncRunService(db *gorm.DB) SyncRunServicer {
	return &syncRunService{db: db}
}

// Record stores run, stamping the BLAKE2b-256 checksum of source when given.
// Errors are logged but never propagate; the ledger must not fail a sync.
func (s *syncRunService) Record(ctx context.Context, run *models.SyncRun, source []byte) {
	if source != nil {
		sum := blake2b.Sum256(source)
		run.Checksum = hex.EncodeToString(sum[:])
	}

	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		logger.Get().Errorw("failed to record sync run",
			"error", err,
			"owner", run.OwnerEmail,
			"role", run.Role,
			"status", run.Status,
		)
	}
}

// Latest returns the most recent run for ownerEmail.
func (s *syncRunService) Latest(ctx context.Context, ownerEmail string) (*models.SyncRun, error) {
	var run models.SyncRun
	err := s.db.WithContext(ctx).
		Where("owner_email = ?", ownerEmail).
		Order("started_at DESC").
		First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "no sync has run for this account yet")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &run, nil
}

// Recent retrieves a paginated list of runs, newest first.
func (s *syncRunService) Recent(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.SyncRun], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.WithContext(ctx).Model(&models.SyncRun{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var runs []models.SyncRun
	if err := base.Order("started_at DESC").Scopes(pagination.Paginate(page)).Find(&runs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(runs, page.Page, page.PageSize, totalItems)
	return &result, nil
}
