package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// sqliteTimeFormat matches datetime('now') output for lexicographic comparison
const sqliteTimeFormat = "2006-01-02 15:04:05"

// SQLiteCache is a SQLite implementation of the ReputationCache interface
type SQLiteCache struct {
	db          *sql.DB
	logger      *zap.Logger
	cleanupFreq time.Duration
	stopCh      chan struct{}
}

// NewSQLiteCache creates a new SQLite cache
func NewSQLiteCache(dbPath string, logger *zap.Logger, cleanupFreq time.Duration) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS reputation_cache (
			kind TEXT NOT NULL,
			key TEXT NOT NULL,
			payload BLOB,
			stored_at TIMESTAMP,
			expires_at TIMESTAMP,
			PRIMARY KEY (kind, key)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	// Create index on expires_at for faster cleanup
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_expires_at ON reputation_cache(expires_at)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	cache := &SQLiteCache{
		db:          db,
		logger:      logger,
		cleanupFreq: cleanupFreq,
		stopCh:      make(chan struct{}),
	}

	// Start background cleanup
	go cache.startCleanupTask()

	return cache, nil
}

// Get retrieves a cached payload for a (kind, key) pair
func (c *SQLiteCache) Get(ctx context.Context, kind, key string) ([]byte, bool) {
	var payload []byte

	err := c.db.QueryRowContext(ctx, `
		SELECT payload
		FROM reputation_cache
		WHERE kind = ? AND key = ? AND expires_at > datetime('now')
	`, kind, key).Scan(&payload)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false
		}
		c.logger.Error("Failed to query cache", zap.Error(err),
			zap.String("kind", kind), zap.String("key", key))
		return nil, false
	}

	return payload, true
}

// Set stores a cache entry. Timestamps are stored as UTC datetime strings so
// they compare correctly against sqlite's datetime('now').
func (c *SQLiteCache) Set(ctx context.Context, kind, key string, payload []byte, ttl time.Duration) error {
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)

	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO reputation_cache (kind, key, payload, stored_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
	`, kind, key, payload, now.Format(sqliteTimeFormat), expiresAt.Format(sqliteTimeFormat))

	if err != nil {
		return fmt.Errorf("failed to insert cache entry: %w", err)
	}
	return nil
}

// Delete removes a cache entry
func (c *SQLiteCache) Delete(ctx context.Context, kind, key string) error {
	_, err := c.db.ExecContext(ctx, `
		DELETE FROM reputation_cache
		WHERE kind = ? AND key = ?
	`, kind, key)

	if err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}

	return nil
}

// Cleanup removes expired entries
func (c *SQLiteCache) Cleanup(ctx context.Context) error {
	result, err := c.db.ExecContext(ctx, `
		DELETE FROM reputation_cache
		WHERE expires_at <= datetime('now')
	`)

	if err != nil {
		return fmt.Errorf("failed to clean up expired entries: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.logger.Warn("Failed to get rows affected during cleanup", zap.Error(err))
	} else {
		c.logger.Debug("Cleaned up expired cache entries", zap.Int64("expired_count", rowsAffected))
	}

	return nil
}

// startCleanupTask starts a background task to clean up expired entries
func (c *SQLiteCache) startCleanupTask() {
	ticker := time.NewTicker(c.cleanupFreq)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.Cleanup(context.Background()); err != nil {
				c.logger.Error("Failed to clean up cache", zap.Error(err))
			}
		case <-c.stopCh:
			return
		}
	}
}

// Stop stops the background cleanup task and closes the database connection
func (c *SQLiteCache) Stop() {
	close(c.stopCh)
	if err := c.db.Close(); err != nil {
		c.logger.Error("Failed to close SQLite database", zap.Error(err))
	}
}
