package persistence

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupSQLiteDB creates an in-memory SQLite database with the agency schema
func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	statements := []string{
		`CREATE TABLE agencies (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			company_email TEXT,
			company_phone TEXT,
			address TEXT,
			city TEXT,
			country TEXT,
			white_label INTEGER NOT NULL DEFAULT 1,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE sub_accounts (
			id TEXT PRIMARY KEY,
			agency_id TEXT NOT NULL,
			name TEXT NOT NULL,
			company_email TEXT,
			company_phone TEXT,
			address TEXT,
			city TEXT,
			country TEXT,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE sidebar_options (
			id TEXT PRIMARY KEY,
			agency_id TEXT NOT NULL,
			parent_id TEXT,
			name TEXT NOT NULL,
			link TEXT NOT NULL,
			icon TEXT,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE permission_sets (
			id TEXT PRIMARY KEY,
			agency_id TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE permission_grants (
			id TEXT PRIMARY KEY,
			agency_id TEXT NOT NULL,
			permission_set_id TEXT NOT NULL,
			sub_account_id TEXT NOT NULL,
			sidebar_option_id TEXT NOT NULL,
			access INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE(permission_set_id, sub_account_id, sidebar_option_id)
		)`,
		`CREATE TABLE audit_logs (
			id TEXT PRIMARY KEY,
			agency_id TEXT NOT NULL,
			sub_account_id TEXT,
			description TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

// newMockPostgres creates a GORM handle on the postgres dialect over sqlmock
func newMockPostgres(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return gormDB, mock, mockDB
}
