// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package gormstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tomtom215/recommendations/internal/config"
	"github.com/tomtom215/recommendations/internal/database"
	"github.com/tomtom215/recommendations/internal/logging"
	"github.com/tomtom215/recommendations/internal/metrics"
	"github.com/tomtom215/recommendations/internal/models"
)

const (
	tableRecommendations = "recommendations"
	defaultQueryTimeout  = 30 * time.Second
)

// Store is the GORM-backed database.Store for PostgreSQL and SQLite.
type Store struct {
	db      *gorm.DB
	dialect string

	// writeMu serializes writes inside this process. PostgreSQL writers in
	// other processes are serialized by an advisory lock on the triple.
	writeMu sync.Mutex
}

var _ database.Store = (*Store)(nil)

// Open connects with the driver named in cfg.Driver and migrates the schema.
func Open(cfg *config.DatabaseConfig) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres driver requires a DSN")
		}
		dialector = postgres.Open(cfg.DSN)
	case config.DriverSQLite:
		dsn, err := sqliteDSN(sqlitePath(cfg))
		if err != nil {
			return nil, err
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("gormstore: unsupported driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   logging.NewGormLogger(),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get connection pool: %w", err)
	}
	if cfg.Driver == config.DriverSQLite {
		// One connection keeps ":memory:" a single database and avoids
		// SQLITE_BUSY between pooled writers.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(&models.Recommendation{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	logging.Info().Str("driver", cfg.Driver).Msg("GORM store ready")
	return &Store{db: db, dialect: cfg.Driver}, nil
}

// sqlitePath prefers DATABASE_URL and falls back to the file path setting.
func sqlitePath(cfg *config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	return cfg.Path
}

func sqliteDSN(path string) (string, error) {
	if path == "" || path == ":memory:" {
		return "file::memory:", nil
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return "", fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}
	return path + "?_busy_timeout=5000", nil
}

// Dialect returns the configured driver name.
func (s *Store) Dialect() string {
	return s.dialect
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

func observe(operation string, start time.Time, err error) {
	if models.IsDomainError(err) {
		err = nil
	}
	metrics.RecordDBQuery(operation, tableRecommendations, time.Since(start), err)
}

// isConstraintViolation reports a CHECK or NOT NULL rejection from either
// backend, translated or raw.
func isConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23514" || pgErr.Code == "23502"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrConstraint
	}
	return false
}

func (s *Store) writeError(ctx context.Context, op string, err error) error {
	if isConstraintViolation(err) {
		return &models.DataValidationError{
			Message: "Invalid Recommendation: " + err.Error(),
			Err:     err,
		}
	}
	logging.Ctx(ctx).Error().Err(err).Str("operation", op).Msg("Store write failed, rolled back")
	return fmt.Errorf("%s recommendation: %w", op, err)
}

// lockTriple serializes writers of one triple across PostgreSQL sessions for
// the rest of the transaction.
func (s *Store) lockTriple(tx *gorm.DB, rec *models.Recommendation) error {
	if s.dialect != config.DriverPostgres {
		return nil
	}
	key := strings.Join([]string{rec.ProductASKU, rec.ProductBSKU, string(rec.RecommendationType)}, "\x00")
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error
}

func checkDuplicate(tx *gorm.DB, rec *models.Recommendation, excludeID *int64) error {
	q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_a_sku = ? AND product_b_sku = ? AND recommendation_type = ?",
			rec.ProductASKU, rec.ProductBSKU, string(rec.RecommendationType))
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var existing models.Recommendation
	err := q.Order("id").Limit(1).Find(&existing).Error
	if err != nil {
		return fmt.Errorf("duplicate check: %w", err)
	}
	if !existing.HasID() {
		return nil
	}
	return &models.ConflictError{
		ProductASKU: rec.ProductASKU,
		ProductBSKU: rec.ProductBSKU,
		Type:        rec.RecommendationType,
		ExistingID:  existing.IDValue(),
	}
}

// Insert persists a copy of rec and returns it with its new ID.
func (s *Store) Insert(ctx context.Context, rec *models.Recommendation) (out *models.Recommendation, err error) {
	defer func(start time.Time) { observe("insert", start, err) }(time.Now())

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	row := *rec
	row.ID = nil

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.lockTriple(tx, &row); err != nil {
			return fmt.Errorf("lock triple: %w", err)
		}
		if err := checkDuplicate(tx, &row, nil); err != nil {
			return err
		}
		if err := tx.Create(&row).Error; err != nil {
			return s.writeError(ctx, "insert", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Update overwrites every field of the record identified by rec.ID.
func (s *Store) Update(ctx context.Context, rec *models.Recommendation) (out *models.Recommendation, err error) {
	defer func(start time.Time) { observe("update", start, err) }(time.Now())

	if !rec.HasID() {
		return nil, models.ErrPrimaryKeyNotSet
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	id := rec.IDValue()
	var updated models.Recommendation

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.lockTriple(tx, rec); err != nil {
			return fmt.Errorf("lock triple: %w", err)
		}
		if err := checkDuplicate(tx, rec, &id); err != nil {
			return err
		}

		res := tx.Model(&models.Recommendation{}).Where("id = ?", id).Updates(map[string]interface{}{
			"product_a_sku":       rec.ProductASKU,
			"product_b_sku":       rec.ProductBSKU,
			"recommendation_type": string(rec.RecommendationType),
			"likes":               rec.Likes,
		})
		if res.Error != nil {
			return s.writeError(ctx, "update", res.Error)
		}
		if res.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return tx.First(&updated, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the record; a missing id is not an error.
func (s *Store) Delete(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { observe("delete", start, err) }(time.Now())

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.db.WithContext(ctx).Delete(&models.Recommendation{}, id).Error; err != nil {
		return fmt.Errorf("delete recommendation %d: %w", id, err)
	}
	return nil
}

// FindByID returns the record or models.ErrNotFound.
func (s *Store) FindByID(ctx context.Context, id int64) (out *models.Recommendation, err error) {
	defer func(start time.Time) { observe("find_by_id", start, err) }(time.Now())

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var rec models.Recommendation
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("find recommendation %d: %w", id, err)
	}
	return &rec, nil
}

// FindAll returns every record ordered by id.
func (s *Store) FindAll(ctx context.Context) ([]models.Recommendation, error) {
	return s.FindFiltered(ctx, models.RecommendationFilter{})
}

// FindFiltered applies each set filter as an AND-ed Where clause.
func (s *Store) FindFiltered(ctx context.Context, filter models.RecommendationFilter) (out []models.Recommendation, err error) {
	op := "find_filtered"
	if filter.IsEmpty() {
		op = "find_all"
	}
	defer func(start time.Time) { observe(op, start, err) }(time.Now())

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	q := s.db.WithContext(ctx).Model(&models.Recommendation{})
	if filter.ProductASKU != nil {
		q = q.Where("product_a_sku = ?", *filter.ProductASKU)
	}
	if filter.ProductBSKU != nil {
		q = q.Where("product_b_sku = ?", *filter.ProductBSKU)
	}
	if filter.Type != nil {
		q = q.Where("recommendation_type = ?", string(*filter.Type))
	}

	out = []models.Recommendation{}
	if err := q.Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("query recommendations: %w", err)
	}
	if out == nil {
		out = []models.Recommendation{}
	}
	return out, nil
}

// FindDuplicate returns the record holding the ordered triple, or models.ErrNotFound.
func (s *Store) FindDuplicate(ctx context.Context, skuA, skuB string, recType models.RecommendationType) (out *models.Recommendation, err error) {
	defer func(start time.Time) { observe("find_duplicate", start, err) }(time.Now())

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var rec models.Recommendation
	err = s.db.WithContext(ctx).
		Where("product_a_sku = ? AND product_b_sku = ? AND recommendation_type = ?", skuA, skuB, string(recType)).
		Order("id").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find duplicate: %w", err)
	}
	return &rec, nil
}

// IncrementLikes adds one like with a single UPDATE.
func (s *Store) IncrementLikes(ctx context.Context, id int64) (out *models.Recommendation, err error) {
	defer func(start time.Time) { observe("increment_likes", start, err) }(time.Now())
	return s.changeLikes(ctx, id, gorm.Expr("likes + ?", 1), nil)
}

// DecrementLikes removes one like. A counter at zero is left unchanged and
// reported as a validation error.
func (s *Store) DecrementLikes(ctx context.Context, id int64) (out *models.Recommendation, err error) {
	defer func(start time.Time) { observe("decrement_likes", start, err) }(time.Now())
	return s.changeLikes(ctx, id, gorm.Expr("likes - ?", 1), func(tx *gorm.DB) *gorm.DB {
		return tx.Where("likes > ?", 0)
	})
}

func (s *Store) changeLikes(ctx context.Context, id int64, expr clause.Expr, guard func(*gorm.DB) *gorm.DB) (*models.Recommendation, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var rec models.Recommendation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.Recommendation{}).Where("id = ?", id)
		if guard != nil {
			q = guard(q)
		}
		res := q.UpdateColumn("likes", expr)
		if res.Error != nil {
			return fmt.Errorf("update likes %d: %w", id, res.Error)
		}

		if err := tx.First(&rec, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return fmt.Errorf("reload recommendation %d: %w", id, err)
		}
		if res.RowsAffected == 0 {
			return database.NoLikesError(id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (n int64, err error) {
	defer func(start time.Time) { observe("count", start, err) }(time.Now())

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := s.db.WithContext(ctx).Model(&models.Recommendation{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count recommendations: %w", err)
	}
	return n, nil
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Close closes the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
