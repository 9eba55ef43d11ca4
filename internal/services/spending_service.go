package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/logger"
	"gagyebu/internal/models"
	"gagyebu/internal/pagination"
)

const (
	insertBatchSize = 200
	timelineOrder   = "occurred_at IS NULL, occurred_at DESC, role ASC, source_id DESC"
)

// spendingService persists the merged timeline.
type spendingService struct {
	db *gorm.DB
}

// NewSpendingService creates a new SpendingServicer.
func NewSpendingService(db *gorm.DB) SpendingServicer {
	return &spendingService{db: db}
}

// ReplaceForOwners deletes every stored spending of owners and inserts
// records in one transaction. On failure the previous rows are untouched.
func (s *spendingService) ReplaceForOwners(ctx context.Context, owners []string, records []models.Spending) error {
	if len(owners) == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one owner is required")
	}

	allowed := make(map[string]bool, len(owners))
	normalized := make([]string, 0, len(owners))
	for _, o := range owners {
		o = strings.ToLower(strings.TrimSpace(o))
		allowed[o] = true
		normalized = append(normalized, o)
	}
	for i := range records {
		if !allowed[records[i].OwnerEmail] {
			return apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("record %s belongs to %s, which is not being replaced", records[i].ID, records[i].OwnerEmail))
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_email IN ?", normalized).Delete(&models.Spending{}).Error; err != nil {
			return fmt.Errorf("delete previous spendings: %w", err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(records, insertBatchSize).Error; err != nil {
			return fmt.Errorf("insert spendings: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Get().Errorw("replacing spendings failed", "owners", normalized, "records", len(records), "error", err)
		return apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}

	logger.Get().Infow("spendings replaced", "owners", normalized, "records", len(records))
	return nil
}

// QueryAll returns every stored spending in timeline order.
func (s *spendingService) QueryAll(ctx context.Context) ([]models.Spending, error) {
	var list []models.Spending
	if err := s.db.WithContext(ctx).Order(timelineOrder).Find(&list).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	return list, nil
}

// GetByID returns one stored spending.
func (s *spendingService) GetByID(ctx context.Context, id string) (*models.Spending, error) {
	var spending models.Spending
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&spending).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "spending not found")
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	return &spending, nil
}

// List retrieves a filtered, paginated slice of the timeline.
func (s *spendingService) List(ctx context.Context, filter SpendingFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Spending], error) {
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.Spending{})
	if filter.Role != nil {
		base = base.Where("role = ?", *filter.Role)
	}
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}
	if filter.From != nil {
		base = base.Where("occurred_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		base = base.Where("occurred_at < ?", filter.To.UTC())
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}

	var list []models.Spending
	if err := base.Order(timelineOrder).Scopes(pagination.Paginate(page)).Find(&list).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}

	result := pagination.NewPageResponse(list, page.Page, page.PageSize, totalItems)
	return &result, nil
}
