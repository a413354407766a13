package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
)

var (
	// ErrNotFound is returned when a requested record doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrStorage marks connection or write failures of the backing store.
	// Wrapped into every error returned by a mutating operation so callers
	// can classify without string matching.
	ErrStorage = errors.New("storage error")
)

// Catalog is the durable files_index table plus its queries.
type Catalog struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer; readers share it through WAL.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

// Open creates or opens the catalog at dbPath and ensures the schema
// exists. Safe to call from multiple processes; schema creation races are
// tolerated.
func Open(dbPath string) (*Catalog, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &Catalog{db: db}, nil
}

// Close closes the database connection
func (c *Catalog) Close() error {
	return c.db.Close()
}

// UpsertFile inserts or updates the record for rec.Path and returns the
// effective id. An existing row keeps its id; every mutable field is
// overwritten. The lookup is by path rather than ON CONFLICT because the
// unique index on path may be absent on catalogs with historical duplicates.
func (c *Catalog) UpsertFile(ctx context.Context, rec *FileRecord) (int64, error) {
	abs, err := filepath.Abs(rec.Path)
	if err == nil {
		rec.Path = abs
	}

	var blob []byte
	var dim interface{}
	if rec.Embedding != nil {
		blob = serializeVector(rec.Embedding)
		dim = len(rec.Embedding)
	}

	var existingID int64
	err = c.db.QueryRowContext(ctx, "SELECT id FROM files_index WHERE path = ? ORDER BY id DESC LIMIT 1", rec.Path).Scan(&existingID)
	switch {
	case err == nil:
		_, err = c.db.ExecContext(ctx, `
			UPDATE files_index
			SET filename = ?, extension = ?, size_bytes = ?,
			    created_at = ?, indexed_at = ?, text_snippet = ?,
			    full_text = ?, embedding = ?, embedding_dim = ?
			WHERE id = ?`,
			rec.Filename, rec.Extension, rec.SizeBytes,
			rec.CreatedAt, rec.IndexedAt, rec.TextSnippet,
			rec.FullText, blob, dim, existingID)
		if err != nil {
			return 0, fmt.Errorf("%w: update %s: %v", ErrStorage, rec.Path, err)
		}
		rec.ID = existingID
		return existingID, nil

	case err == sql.ErrNoRows:
		res, err := c.db.ExecContext(ctx, `
			INSERT INTO files_index (
				path, filename, extension, size_bytes,
				created_at, indexed_at, text_snippet, full_text,
				embedding, embedding_dim
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.Path, rec.Filename, rec.Extension, rec.SizeBytes,
			rec.CreatedAt, rec.IndexedAt, rec.TextSnippet, rec.FullText,
			blob, dim)
		if err != nil {
			return 0, fmt.Errorf("%w: insert %s: %v", ErrStorage, rec.Path, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		rec.ID = id
		return id, nil

	default:
		return 0, fmt.Errorf("%w: lookup %s: %v", ErrStorage, rec.Path, err)
	}
}

// GetByPath returns the newest record for a path, or ErrNotFound.
func (c *Catalog) GetByPath(ctx context.Context, path string) (*FileRecord, error) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	query := `
		SELECT id, path, filename, extension, size_bytes,
		       created_at, indexed_at, text_snippet, full_text, embedding
		FROM files_index
		WHERE path = ?
		ORDER BY id DESC
		LIMIT 1
	`
	var rec FileRecord
	var blob []byte
	var createdAt, indexedAt sql.NullTime
	err := c.db.QueryRowContext(ctx, query, path).Scan(
		&rec.ID, &rec.Path, &rec.Filename, &rec.Extension, &rec.SizeBytes,
		&createdAt, &indexedAt, &rec.TextSnippet, &rec.FullText, &blob,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if createdAt.Valid {
		rec.CreatedAt = createdAt.Time
	}
	if indexedAt.Valid {
		rec.IndexedAt = indexedAt.Time
	}
	if blob != nil {
		rec.Embedding = deserializeVector(blob)
	}
	return &rec, nil
}

// DeleteByPath removes the row(s) for path. Not an error if absent.
func (c *Catalog) DeleteByPath(ctx context.Context, path string) error {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if _, err := c.db.ExecContext(ctx, "DELETE FROM files_index WHERE path = ?", path); err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrStorage, path, err)
	}
	return nil
}

// ListPaths returns the set of all stored paths, normalized to absolute
// form for reconciliation comparisons.
func (c *Catalog) ListPaths(ctx context.Context) (map[string]struct{}, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT path FROM files_index")
	if err != nil {
		return nil, fmt.Errorf("%w: list paths: %v", ErrStorage, err)
	}
	defer func() { _ = rows.Close() }()

	paths := make(map[string]struct{})
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		paths[p] = struct{}{}
	}
	return paths, rows.Err()
}

// Dedupe keeps only the row with the maximum id for each path and deletes
// the rest. Idempotent; a no-op on a clean catalog.
func (c *Catalog) Dedupe(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `
		DELETE FROM files_index
		WHERE id NOT IN (SELECT MAX(id) FROM files_index GROUP BY path)
	`)
	if err != nil {
		return fmt.Errorf("%w: dedupe: %v", ErrStorage, err)
	}
	return nil
}

// QueryRecent returns up to limit records ordered by created_at descending.
// Embeddings and full text are not loaded.
func (c *Catalog) QueryRecent(ctx context.Context, limit int) ([]FileRecord, error) {
	if limit <= 0 {
		return []FileRecord{}, nil
	}
	query := `
		SELECT id, path, filename, extension, size_bytes, created_at, indexed_at, text_snippet
		FROM files_index
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := c.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	recs := make([]FileRecord, 0, limit)
	for rows.Next() {
		var rec FileRecord
		var createdAt, indexedAt sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.Path, &rec.Filename, &rec.Extension,
			&rec.SizeBytes, &createdAt, &indexedAt, &rec.TextSnippet); err != nil {
			return nil, err
		}
		if createdAt.Valid {
			rec.CreatedAt = createdAt.Time
		}
		if indexedAt.Valid {
			rec.IndexedAt = indexedAt.Time
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// QueryAllWithEmbedding returns every record that has an embedding, with
// the vector loaded. Used by the Go-side similarity fallback and by
// similarity graphing.
func (c *Catalog) QueryAllWithEmbedding(ctx context.Context) ([]FileRecord, error) {
	query := `
		SELECT id, path, filename, extension, text_snippet, embedding
		FROM files_index
		WHERE embedding IS NOT NULL
		ORDER BY id
	`
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var recs []FileRecord
	for rows.Next() {
		var rec FileRecord
		var blob []byte
		if err := rows.Scan(&rec.ID, &rec.Path, &rec.Filename, &rec.Extension,
			&rec.TextSnippet, &blob); err != nil {
			return nil, err
		}
		rec.Embedding = deserializeVector(blob)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Stats reports catalog contents for status surfaces.
func (c *Catalog) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByExtension: make(map[string]int)}

	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM files_index").Scan(&stats.TotalFiles); err != nil {
		return nil, err
	}
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM files_index WHERE embedding IS NOT NULL").Scan(&stats.WithEmbedding); err != nil {
		return nil, err
	}

	rows, err := c.db.QueryContext(ctx, "SELECT COALESCE(extension, ''), COUNT(*) FROM files_index GROUP BY extension")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var ext string
		var n int
		if err := rows.Scan(&ext, &n); err != nil {
			return nil, err
		}
		stats.ByExtension[ext] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var pageCount, pageSize int
	if err := c.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount); err == nil {
		_ = c.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize)
		stats.IndexSizeMB = float64(pageCount*pageSize) / (1024 * 1024)
	}

	return stats, nil
}
