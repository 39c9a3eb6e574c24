// Package cache persists analysed pitch estimates in SQLite so a profile of
// an unchanged source with unchanged analysis settings is not analysed
// twice.
package cache

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

	"github.com/cwbudde/algo-pitch/pitch/profile"
)

// ErrClosed is returned by operations on a nil or closed cache.
var ErrClosed = errors.New("cache: closed")

// Key identifies one analysis: the source and every setting that changes
// the estimates.
type Key struct {
	Name       string
	Length     int
	SampleRate float64
	Algorithm  string
	Params     string
	BlockSize  int
	Overlap    int
}

// KeyOf returns the key of p.
func KeyOf(p *profile.Profile) Key {
	return Key{
		Name:       p.Name(),
		Length:     len(p.Signal()),
		SampleRate: p.SampleRate(),
		Algorithm:  p.Detector().Algorithm().String(),
		Params:     p.Detector().Params(),
		BlockSize:  p.BlockSize(),
		Overlap:    p.Overlap(),
	}
}

type record struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	Name       string    `gorm:"uniqueIndex:idx_profile_key,priority:1"`
	Length     int       `gorm:"uniqueIndex:idx_profile_key,priority:2"`
	SampleRate float64   `gorm:"uniqueIndex:idx_profile_key,priority:3"`
	Algorithm  string    `gorm:"uniqueIndex:idx_profile_key,priority:4"`
	Params     string    `gorm:"uniqueIndex:idx_profile_key,priority:5"`
	BlockSize  int       `gorm:"uniqueIndex:idx_profile_key,priority:6"`
	Overlap    int       `gorm:"uniqueIndex:idx_profile_key,priority:7"`
	Estimates  []float64 `gorm:"serializer:json"`
	ElapsedNs  int64
	UpdatedAt  time.Time
}

func (record) TableName() string { return "pitch_profiles" }

// Cache is a SQLite-backed estimate store. It is safe for concurrent use.
type Cache struct {
	db *gorm.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("cache: creating db dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("cache: opening sqlite db: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("cache: getting sql.DB from gorm: %w", err)
	}
	// SQLite allows one writer; concurrent analyses queue on the connection.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&record{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("cache: auto migrate: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the database.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	c.db = nil
	return sqlDB.Close()
}

func (c *Cache) where(ctx context.Context, k Key) *gorm.DB {
	return c.db.WithContext(ctx).Where(
		"name = ? AND length = ? AND sample_rate = ? AND algorithm = ? AND params = ? AND block_size = ? AND overlap = ?",
		k.Name, k.Length, k.SampleRate, k.Algorithm, k.Params, k.BlockSize, k.Overlap,
	)
}

// Get returns the estimates stored under k. ok is false when there are
// none.
func (c *Cache) Get(ctx context.Context, k Key) (estimates []float64, elapsed time.Duration, ok bool, err error) {
	if c == nil || c.db == nil {
		return nil, 0, false, ErrClosed
	}

	var rec record
	err = c.where(ctx, k).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("cache: get: %w", err)
	}
	return rec.Estimates, time.Duration(rec.ElapsedNs), true, nil
}

// Put stores estimates under k, replacing earlier ones.
func (c *Cache) Put(ctx context.Context, k Key, estimates []float64, elapsed time.Duration) error {
	if c == nil || c.db == nil {
		return ErrClosed
	}

	rec := record{
		Name:       k.Name,
		Length:     k.Length,
		SampleRate: k.SampleRate,
		Algorithm:  k.Algorithm,
		Params:     k.Params,
		BlockSize:  k.BlockSize,
		Overlap:    k.Overlap,
		Estimates:  estimates,
		ElapsedNs:  int64(elapsed),
	}
	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "name"}, {Name: "length"}, {Name: "sample_rate"}, {Name: "algorithm"},
			{Name: "params"}, {Name: "block_size"}, {Name: "overlap"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"estimates", "elapsed_ns", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("cache: put: %w", err)
	}
	return nil
}

// Len returns the number of stored analyses.
func (c *Cache) Len(ctx context.Context) (int64, error) {
	if c == nil || c.db == nil {
		return 0, ErrClosed
	}
	var n int64
	if err := c.db.WithContext(ctx).Model(&record{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("cache: count: %w", err)
	}
	return n, nil
}

// Load restores p from the cache. It reports false, leaving p untouched,
// when nothing matching is stored.
func (c *Cache) Load(ctx context.Context, p *profile.Profile) (bool, error) {
	estimates, elapsed, ok, err := c.Get(ctx, KeyOf(p))
	if err != nil || !ok {
		return false, err
	}
	if err := p.Restore(estimates, elapsed); err != nil {
		return false, fmt.Errorf("cache: restore: %w", err)
	}
	return true, nil
}

// Store saves the estimates of an analysed profile.
func (c *Cache) Store(ctx context.Context, p *profile.Profile) error {
	estimates, err := p.Pitch()
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	return c.Put(ctx, KeyOf(p), estimates, p.Elapsed())
}
