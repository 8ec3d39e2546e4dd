package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Document is the GORM model backing the store. One row per document.
type Document struct {
	ID        uint   `gorm:"primaryKey"`
	Namespace string `gorm:"size:50;uniqueIndex:idx_doc_key;not null"`
	Owner     string `gorm:"size:255;uniqueIndex:idx_doc_key;not null"`
	Path      string `gorm:"size:500;uniqueIndex:idx_doc_key;not null"`
	Data      []byte `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM.
func (Document) TableName() string {
	return "documents"
}

// Config holds database configuration options.
type Config struct {
	Path        string
	Debug       bool
	MaxIdleConn int
	MaxOpenConn int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	}
}

// DB implements Store on SQLite via GORM.
type DB struct {
	db   *gorm.DB
	path string
}

// New opens the document store and runs migrations.
func New(cfg Config) (*DB, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	// DELETE journal mode for simpler transaction handling
	// (WAL mode has visibility issues with the pure-Go SQLite driver)
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", cfg.Path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&Document{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &DB{db: db, path: cfg.Path}, nil
}

// Read returns the document bytes, or ErrNotFound.
func (d *DB) Read(ctx context.Context, key Key) ([]byte, error) {
	var doc Document
	err := d.db.WithContext(ctx).
		Where("namespace = ? AND owner = ? AND path = ?", key.Namespace, key.Owner, key.Path).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read document: %w", err)
	}
	return doc.Data, nil
}

// Write upserts the full document in one statement.
func (d *DB) Write(ctx context.Context, key Key, data []byte) error {
	doc := Document{
		Namespace: key.Namespace,
		Owner:     key.Owner,
		Path:      key.Path,
		Data:      data,
	}
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "owner"}, {Name: "path"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// Exists reports whether the document is present.
func (d *DB) Exists(ctx context.Context, key Key) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&Document{}).
		Where("namespace = ? AND owner = ? AND path = ?", key.Namespace, key.Owner, key.Path).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check document: %w", err)
	}
	return count > 0, nil
}

// Delete removes the document. Deleting an absent document is not an error.
func (d *DB) Delete(ctx context.Context, key Key) error {
	err := d.db.WithContext(ctx).
		Where("namespace = ? AND owner = ? AND path = ?", key.Namespace, key.Owner, key.Path).
		Delete(&Document{}).Error
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// List returns the paths of all documents under a namespace/owner pair,
// filtered by path prefix. Used for listing a user's enrollments.
func (d *DB) List(ctx context.Context, namespace, owner, pathPrefix string) ([]string, error) {
	var paths []string
	err := d.db.WithContext(ctx).Model(&Document{}).
		Where("namespace = ? AND owner = ? AND path LIKE ?", namespace, owner, pathPrefix+"%").
		Order("path").
		Pluck("path", &paths).Error
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return paths, nil
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

// Close closes the database connection.
func (d *DB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
