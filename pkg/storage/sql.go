package storage

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLStorage implements RunStorage on a SQL database via GORM
type SQLStorage struct {
	db *gorm.DB
}

// FromSQLite creates a storage backed by a SQLite database file
func FromSQLite(file string) (RunStorage, error) {
	return FromSQL(sqlite.Open(file))
}

// FromSQL creates a new SQL storage instance
func FromSQL(dialect gorm.Dialector, opts ...gorm.Option) (RunStorage, error) {
	db, err := gorm.Open(dialect, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLStorage{db: db}, nil
}

// SaveRun creates a new run record
func (s *SQLStorage) SaveRun(record *Record) error {
	if result := s.db.Create(record); result.Error != nil {
		return fmt.Errorf("failed to create record: %w", result.Error)
	}
	return nil
}

// Runs retrieves records, applying the given filters in memory
func (s *SQLStorage) Runs(filters ...RunFilter) ([]*Record, error) {
	var records []*Record

	result := s.db.Order("created_at").Find(&records)
	if result.Error != nil && result.Error != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to fetch records: %w", result.Error)
	}

	filtered := lo.Filter(records, func(record *Record, _ int) bool {
		for _, filter := range filters {
			if !filter(*record) {
				return false
			}
		}
		return true
	})

	return filtered, nil
}

// Close closes the database connection
func (s *SQLStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// RunsWithQuery allows customized querying using GORM's query builder
func (s *SQLStorage) RunsWithQuery(query func(*gorm.DB) *gorm.DB) ([]*Record, error) {
	var records []*Record

	result := query(s.db).Find(&records)
	if result.Error != nil && result.Error != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to execute query: %w", result.Error)
	}

	return records, nil
}
