package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ExportCategory is one catelist row.
type ExportCategory struct {
	ID   int64
	Name string
}

// ExportSpending is one spendinglist row. Code and price columns are text in
// real exports, so they are written as text here too.
type ExportSpending struct {
	ID          int64
	Date        string
	Time        string
	Where       string
	Memo        *string
	Card        *string
	Category    string
	SubCategory string
	Price       string
}

// ExportBuilder writes expense-app export files for tests.
type ExportBuilder struct {
	Categories []ExportCategory
	Spendings  []ExportSpending

	// SkipCategoryTable leaves catelist out, producing a broken export.
	SkipCategoryTable bool
}

// WriteFile writes the export under t.TempDir and returns its path.
func (b *ExportBuilder) WriteFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clevmoney_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to create export: %v", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	stmts := []string{
		`CREATE TABLE spendinglist (
			_id INTEGER PRIMARY KEY,
			s_date TEXT, s_time TEXT, s_where TEXT, s_memo TEXT, s_card TEXT,
			s_cate TEXT, s_subcate TEXT, s_price TEXT,
			s_cardmonth TEXT, s_ipter TEXT, s_oraw TEXT)`,
	}
	if !b.SkipCategoryTable {
		stmts = append(stmts, `CREATE TABLE catelist (_id INTEGER PRIMARY KEY, c_name TEXT)`)
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create export table: %v", err)
		}
	}

	if !b.SkipCategoryTable {
		for _, c := range b.Categories {
			if err := db.Exec("INSERT INTO catelist (_id, c_name) VALUES (?, ?)", c.ID, c.Name).Error; err != nil {
				t.Fatalf("failed to insert export category: %v", err)
			}
		}
	}
	for _, s := range b.Spendings {
		if err := db.Exec(
			`INSERT INTO spendinglist (_id, s_date, s_time, s_where, s_memo, s_card, s_cate, s_subcate, s_price)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID, s.Date, s.Time, s.Where, s.Memo, s.Card, s.Category, s.SubCategory, s.Price,
		).Error; err != nil {
			t.Fatalf("failed to insert export spending: %v", err)
		}
	}

	return path
}

// Bytes writes the export and returns its contents.
func (b *ExportBuilder) Bytes(t *testing.T) []byte {
	t.Helper()

	data, err := os.ReadFile(b.WriteFile(t))
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	return data
}

// SampleExport returns a small export with the categories used across tests.
func SampleExport() *ExportBuilder {
	return &ExportBuilder{
		Categories: []ExportCategory{
			{ID: 5, Name: "🍟식비"},
			{ID: 6, Name: "카페"},
			{ID: 7, Name: "🚌교통비"},
		},
		Spendings: []ExportSpending{
			{ID: 1, Date: "2024-03-15", Time: "14:30:00", Where: "김밥천국", Category: "5", SubCategory: "6", Price: "15000"},
			{ID: 2, Date: "2024-03-16", Time: "08:10:00", Where: "지하철", Category: "7", Price: "1400", Card: String("신한카드")},
			{ID: 3, Date: "2024-03-16", Time: "12:00:00", Where: "정체불명", Category: "999", Price: "3000", Memo: String("메모")},
		},
	}
}
