// Package docstore is a tenant-partitioned JSON document store on SQLite.
// Documents live under (tenant, collection, id), mirroring the layout
// tenants/{tenant}/{collection}/{id}.
package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"novel/internal/docstore/migrations"
)

// Collections used by the callable backend.
const (
	CollectionScenario   = "scenario"
	CollectionCharacters = "characters"
	CollectionSaveData   = "saveData"
)

// ErrNotFound is returned by Get when no document exists.
var ErrNotFound = errors.New("document not found")

// Document is one stored JSON body.
type Document struct {
	ID        string
	Body      json.RawMessage
	CreatedAt time.Time
}

// Item is one document of a batch write.
type Item struct {
	ID   string
	Body []byte
}

// Store persists documents in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a SQLite document store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Put writes a document, replacing any existing one with the same id.
func (s *Store) Put(ctx context.Context, tenantID, collection, id string, body []byte) error {
	return s.PutBatch(ctx, tenantID, collection, []Item{{ID: id, Body: body}})
}

// PutBatch writes all items in one transaction. The first invalid item or
// failed write aborts the whole batch.
func (s *Store) PutBatch(ctx context.Context, tenantID, collection string, items []Item) error {
	if err := s.check(ctx, tenantID, collection); err != nil {
		return err
	}
	for _, it := range items {
		if strings.TrimSpace(it.ID) == "" {
			return fmt.Errorf("document id is required")
		}
		if !json.Valid(it.Body) {
			return fmt.Errorf("document %s: body is not valid JSON", it.ID)
		}
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	createdAt := s.now().UTC().UnixMilli()
	for _, it := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO documents (tenant_id, collection, doc_id, body, created_at)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT (tenant_id, collection, doc_id)
			 DO UPDATE SET body = excluded.body, created_at = excluded.created_at`,
			tenantID, collection, it.ID, string(it.Body), createdAt,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("put %s/%s/%s: %w", tenantID, collection, it.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// Get returns one document or ErrNotFound.
func (s *Store) Get(ctx context.Context, tenantID, collection, id string) (Document, error) {
	if err := s.check(ctx, tenantID, collection); err != nil {
		return Document{}, err
	}
	var (
		body      string
		createdAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT body, created_at FROM documents
		 WHERE tenant_id = ? AND collection = ? AND doc_id = ?`,
		tenantID, collection, id,
	).Scan(&body, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("get %s/%s/%s: %w", tenantID, collection, id, err)
	}
	return Document{ID: id, Body: json.RawMessage(body), CreatedAt: time.UnixMilli(createdAt).UTC()}, nil
}

// List returns every document of a collection ordered by id. An empty
// collection yields an empty slice.
func (s *Store) List(ctx context.Context, tenantID, collection string) ([]Document, error) {
	if err := s.check(ctx, tenantID, collection); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT doc_id, body, created_at FROM documents
		 WHERE tenant_id = ? AND collection = ?
		 ORDER BY doc_id`,
		tenantID, collection,
	)
	if err != nil {
		return nil, fmt.Errorf("list %s/%s: %w", tenantID, collection, err)
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		var (
			id, body  string
			createdAt int64
		)
		if err := rows.Scan(&id, &body, &createdAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, Document{ID: id, Body: json.RawMessage(body), CreatedAt: time.UnixMilli(createdAt).UTC()})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s/%s: %w", tenantID, collection, err)
	}
	return docs, nil
}

func (s *Store) check(ctx context.Context, tenantID, collection string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(tenantID) == "" {
		return fmt.Errorf("tenant id is required")
	}
	if strings.TrimSpace(collection) == "" {
		return fmt.Errorf("collection is required")
	}
	return nil
}

// ScenarioDocID is the document id of a scenario line: its order, zero-padded.
func ScenarioDocID(order int) string {
	return fmt.Sprintf("%05d", order)
}

// CharacterDocID is the document id of one character expression.
func CharacterDocID(characterID, expressionID string) string {
	return characterID + "_" + expressionID
}
