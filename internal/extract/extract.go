// Package extract reads spending rows out of an expense-app export, which is
// a SQLite database with a spendinglist table and a catelist lookup table.
package extract

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/logger"
)

// Row is one spendinglist row with its category names resolved. Codes and
// amount are stored as text in the export and come back cast to integers.
type Row struct {
	ID              int64   `gorm:"column:_id"`
	Date            *string `gorm:"column:s_date"`
	Time            *string `gorm:"column:s_time"`
	Where           *string `gorm:"column:s_where"`
	Memo            *string `gorm:"column:s_memo"`
	Card            *string `gorm:"column:s_card"`
	CategoryCode    *int64  `gorm:"column:s_cate"`
	SubCategoryCode *int64  `gorm:"column:s_subcate"`
	Amount          *int64  `gorm:"column:s_price"`
	CategoryName    *string `gorm:"column:category_name"`
	SubCategoryName *string `gorm:"column:subcategory_name"`
}

// requiredColumns lists the columns the query reads, per table.
var requiredColumns = map[string][]string{
	"spendinglist": {"_id", "s_date", "s_time", "s_where", "s_memo", "s_card", "s_cate", "s_subcate", "s_price"},
	"catelist":     {"_id", "c_name"},
}

const spendingQuery = `
SELECT
	s._id,
	s.s_date,
	s.s_time,
	s.s_where,
	s.s_memo,
	s.s_card,
	CAST(s.s_cate AS INTEGER) AS s_cate,
	CAST(s.s_subcate AS INTEGER) AS s_subcate,
	CAST(s.s_price AS INTEGER) AS s_price,
	c1.c_name AS category_name,
	c2.c_name AS subcategory_name
FROM spendinglist s
LEFT JOIN catelist c1 ON CAST(s.s_cate AS INTEGER) = c1._id
LEFT JOIN catelist c2 ON CAST(s.s_subcate AS INTEGER) = c2._id
ORDER BY s.s_date DESC, s.s_time DESC`

// Source is an open, read-only export file.
type Source struct {
	path string
	db   *gorm.DB
}

// Open opens the export at path read-only and checks that the tables and
// columns the extractor needs are present.
func Open(ctx context.Context, path string) (*Source, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCorruptSourceFile, err)
	}

	src := &Source{path: path, db: db}
	if err := src.checkSchema(ctx); err != nil {
		src.Close()
		return nil, err
	}
	return src, nil
}

func (s *Source) checkSchema(ctx context.Context) error {
	for table, columns := range requiredColumns {
		var names []string
		if err := s.db.WithContext(ctx).
			Raw("SELECT name FROM pragma_table_info(?)", table).
			Scan(&names).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrCorruptSourceFile, err)
		}
		if len(names) == 0 {
			return apperrors.Wrap(apperrors.ErrCorruptSourceFile, fmt.Errorf("table %s is missing", table))
		}

		present := make(map[string]bool, len(names))
		for _, n := range names {
			present[n] = true
		}
		for _, col := range columns {
			if !present[col] {
				return apperrors.Wrap(apperrors.ErrCorruptSourceFile, fmt.Errorf("column %s.%s is missing", table, col))
			}
		}
	}
	return nil
}

// Rows returns every spending row, newest date and time first. A category
// code with no lookup row yields a nil name; the row is kept.
func (s *Source) Rows(ctx context.Context) ([]Row, error) {
	var rows []Row
	if err := s.db.WithContext(ctx).Raw(spendingQuery).Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCorruptSourceFile, err)
	}
	return rows, nil
}

// Close releases the database handle. Errors are logged only.
func (s *Source) Close() {
	sqlDB, err := s.db.DB()
	if err != nil {
		logger.Get().Warnw("failed to get export handle", "path", s.path, "error", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Get().Warnw("failed to close export", "path", s.path, "error", err)
	}
}

// ReadFile opens the export at path, reads all rows and closes it.
func ReadFile(ctx context.Context, path string) ([]Row, error) {
	src, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return src.Rows(ctx)
}
