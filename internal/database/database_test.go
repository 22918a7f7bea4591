package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gorm.io/gorm/logger"
)

func TestOptionsWithDefaultsNil(t *testing.T) {
	var opts *Options

	got := opts.withDefaults()

	assert.Equal(t, logger.Error, got.LogLevel)
	assert.Equal(t, 20, got.MaxOpenConns)
	assert.Equal(t, 10, got.MaxIdleConns)
	assert.Equal(t, 30*time.Minute, got.ConnMaxLifetime)
	assert.Equal(t, 10*time.Minute, got.ConnMaxIdleTime)
	assert.False(t, got.SkipAutoMigrate)
}

func TestOptionsWithDefaultsKeepsExplicitValues(t *testing.T) {
	got := (&Options{
		LogLevel:     logger.Silent,
		MaxOpenConns: 5,
	}).withDefaults()

	assert.Equal(t, logger.Silent, got.LogLevel)
	assert.Equal(t, 5, got.MaxOpenConns)
	assert.Equal(t, 10, got.MaxIdleConns)
}

func TestOptionsWithDefaultsHonorsSkipAutoMigrate(t *testing.T) {
	got := (&Options{SkipAutoMigrate: true}).withDefaults()

	assert.True(t, got.SkipAutoMigrate)
}
