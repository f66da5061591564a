package storage

import (
	"context"
	"fmt"

	"flaskr/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormList keeps entries in the entries table. Rows of one list share a
// list_key and are ordered by their auto-increment id.
type GormList struct {
	db  *gorm.DB
	key string
}

func OpenGorm(driver string, dsn string, key string) (*GormList, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// sqlite allows a single writer; concurrent inserts would fail with "database is locked".
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	err = db.AutoMigrate(&models.Entry{})
	if err != nil {
		return nil, fmt.Errorf("migrate entries: %w", err)
	}
	return NewGormList(db, key), nil
}

func NewGormList(db *gorm.DB, key string) *GormList {
	return &GormList{db: db, key: key}
}

func (l *GormList) Append(ctx context.Context, e models.Entry) error {
	row := models.Entry{ListKey: l.key, Title: e.Title, Text: e.Text}
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (l *GormList) All(ctx context.Context) ([]models.Entry, error) {
	var entries []models.Entry
	err := l.db.WithContext(ctx).
		Where("list_key = ?", l.key).
		Order("entry_id").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("select entries: %w", err)
	}
	return entries, nil
}

func (l *GormList) Close() error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
