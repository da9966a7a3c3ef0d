// Package sqlite provides a SQLite-backed implementation of the enrichment cache port.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/ewilliams-labs/deepcut/backend/internal/core/domain"
	"github.com/ewilliams-labs/deepcut/backend/internal/core/ports"
)

// Adapter implements the metadata cache port for SQLite
type Adapter struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

var _ ports.MetadataCache = (*Adapter)(nil)

// NewAdapter creates a connection and runs the schema migration. Entries
// older than ttl are treated as missing; ttl <= 0 keeps entries forever.
func NewAdapter(storagePath string, ttl time.Duration) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	// One connection: writes are serialized and :memory: stays a single database.
	db.SetMaxOpenConns(1)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db, ttl: ttl, now: time.Now}

	if err := adapter.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

// Get returns the cached meta for artist, if present and fresh.
func (a *Adapter) Get(ctx context.Context, artist string) (domain.EnrichmentMeta, bool, error) {
	row := a.db.QueryRowContext(ctx, `
		SELECT sample_url, sample_track, sample_page, image, fetched_at
		FROM enrichment_cache
		WHERE artist_key = ?
	`, cacheKey(artist))

	var sampleURL, sampleTrack, samplePage, image sql.NullString
	var fetchedAt int64
	if err := row.Scan(&sampleURL, &sampleTrack, &samplePage, &image, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.EnrichmentMeta{}, false, nil
		}
		return domain.EnrichmentMeta{}, false, fmt.Errorf("failed to load cache entry: %w", err)
	}

	if a.ttl > 0 && a.now().Sub(time.Unix(fetchedAt, 0)) > a.ttl {
		return domain.EnrichmentMeta{}, false, nil
	}

	return domain.EnrichmentMeta{
		SampleURL:   nullToPtr(sampleURL),
		SampleTrack: nullToPtr(sampleTrack),
		SamplePage:  nullToPtr(samplePage),
		Image:       nullToPtr(image),
	}, true, nil
}

// Put stores meta for artist, replacing any previous entry.
func (a *Adapter) Put(ctx context.Context, artist string, meta domain.EnrichmentMeta) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO enrichment_cache (artist_key, sample_url, sample_track, sample_page, image, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(artist_key) DO UPDATE SET
			sample_url = excluded.sample_url,
			sample_track = excluded.sample_track,
			sample_page = excluded.sample_page,
			image = excluded.image,
			fetched_at = excluded.fetched_at
	`,
		cacheKey(artist),
		ptrToNull(meta.SampleURL),
		ptrToNull(meta.SampleTrack),
		ptrToNull(meta.SamplePage),
		ptrToNull(meta.Image),
		a.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save cache entry: %w", err)
	}
	return nil
}

// Purge deletes entries older than the TTL and reports how many were removed.
func (a *Adapter) Purge(ctx context.Context) (int64, error) {
	if a.ttl <= 0 {
		return 0, nil
	}
	cutoff := a.now().Add(-a.ttl).Unix()
	res, err := a.db.ExecContext(ctx, "DELETE FROM enrichment_cache WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged rows: %w", err)
	}
	return n, nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS enrichment_cache (
		artist_key TEXT PRIMARY KEY,
		sample_url TEXT,
		sample_track TEXT,
		sample_page TEXT,
		image TEXT,
		fetched_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_enrichment_cache_fetched_at ON enrichment_cache(fetched_at);
	`
	_, err := a.db.Exec(query)
	return err
}

func cacheKey(artist string) string {
	return strings.ToLower(strings.TrimSpace(artist))
}

func nullToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func ptrToNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
