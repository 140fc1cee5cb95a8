// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"github.com/Aidin1998/studysheets/internal/config"
	"github.com/Aidin1998/studysheets/internal/database"
	"github.com/Aidin1998/studysheets/pkg/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// NewTestDB opens a migrated in-memory sqlite database. The pool is pinned to a
// single connection so every statement sees the same in-memory database.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		DSN:          ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Str returns a pointer to s.
func Str(s string) *string {
	return &s
}

// ID returns id as a request id.
func ID(id uint) *models.ID {
	v := models.ID(id)
	return &v
}

// Field returns a supplied string field.
func Field(s string) models.NullString {
	return models.Supplied(Str(s))
}

// SeedSheet inserts a sheet with the given title and returns it.
func SeedSheet(t testing.TB, db *gorm.DB, sheet models.Sheet) models.Sheet {
	t.Helper()
	require.NoError(t, db.Create(&sheet).Error)
	return sheet
}

// SeedAttribute inserts a keyword for sheetID and returns it.
func SeedAttribute(t testing.TB, db *gorm.DB, sheetID uint, keyword string) models.Attribute {
	t.Helper()
	attribute := models.Attribute{SheetID: sheetID, Keyword: Str(keyword)}
	require.NoError(t, db.Create(&attribute).Error)
	return attribute
}
