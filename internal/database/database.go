package database

import (
	"fmt"
	"time"

	"taskboard-backend/internal/database/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	LogLevel        logger.LogLevel
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	// SkipAutoMigrate leaves the schema untouched. The zero value migrates,
	// which is what the server and the test harness need.
	SkipAutoMigrate bool
}

// withDefaults fills unset options. A nil receiver yields the full defaults.
func (o *Options) withDefaults() *Options {
	opts := &Options{}
	if o != nil {
		*opts = *o
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Error
	}
	if opts.MaxOpenConns == 0 {
		opts.MaxOpenConns = 20
	}
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 10
	}
	if opts.ConnMaxLifetime == 0 {
		opts.ConnMaxLifetime = 30 * time.Minute
	}
	if opts.ConnMaxIdleTime == 0 {
		opts.ConnMaxIdleTime = 10 * time.Minute
	}
	return opts
}

// Initialize opens a Postgres connection and creates the schema from GORM
// models. TranslateError is enabled so unique-constraint violations surface
// as gorm.ErrDuplicatedKey for the error-translator middleware.
func Initialize(dsn string, opts *Options) (*gorm.DB, error) {
	opts = opts.withDefaults()

	// Open DB
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(opts.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}

	// AutoMigrate all models, parents before children
	if !opts.SkipAutoMigrate {
		all := []interface{}{
			&models.Organization{},
			&models.User{},
			&models.Project{},
			&models.ProjectMember{},
			&models.Task{},
			&models.Comment{},
			&models.Attachment{},
		}
		if err := db.AutoMigrate(all...); err != nil {
			return nil, fmt.Errorf("auto-migrate: %w", err)
		}
	}

	return db, nil
}
