// Package sqlstore keeps governance records as JSON documents in SQLite.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/de-tools/aims/pkg/models/store"
)

const documentsSchema = `
	CREATE TABLE IF NOT EXISTS documents (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		id TEXT NOT NULL,
		body TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE (kind, id)
	);
`

// ErrNotFound is returned when no document matches a kind and id.
var ErrNotFound = errors.New("document not found")

type Settings struct {
	DbPath string
}

// NewDB opens the SQLite database at settings.DbPath and creates the schema.
// ":memory:" and an empty path give a private in-memory database.
func NewDB(settings Settings) (*sql.DB, error) {
	path := settings.DbPath
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(documentsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return db, nil
}

type Store interface {
	List(ctx context.Context, kind store.Kind) ([]store.Document, error)
	Get(ctx context.Context, kind store.Kind, id string) (store.Document, error)
	Insert(ctx context.Context, doc store.Document) error
	Update(ctx context.Context, doc store.Document) error
	Delete(ctx context.Context, kind store.Kind, id string) error
}

type defaultStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{db: db, now: time.Now}, nil
}

func (s *defaultStore) List(ctx context.Context, kind store.Kind) ([]store.Document, error) {
	logger := zerolog.Ctx(ctx)

	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, id, body, updated_at FROM documents WHERE kind = ? ORDER BY seq`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list %s failed: %w", kind, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close document rows")
		}
	}(rows)

	docs := []store.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s failed: %w", kind, err)
	}
	return docs, nil
}

func (s *defaultStore) Get(ctx context.Context, kind store.Kind, id string) (store.Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT kind, id, body, updated_at FROM documents WHERE kind = ? AND id = ?`, string(kind), id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Document{}, ErrNotFound
	}
	return doc, err
}

func (s *defaultStore) Insert(ctx context.Context, doc store.Document) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (kind, id, body, updated_at) VALUES (?, ?, ?, ?)`,
		string(doc.Kind), doc.ID, string(doc.Body), s.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert %s %s: %w", doc.Kind, doc.ID, err)
	}
	return nil
}

func (s *defaultStore) Update(ctx context.Context, doc store.Document) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE documents SET body = ?, updated_at = ? WHERE kind = ? AND id = ?`,
		string(doc.Body), s.now().UTC(), string(doc.Kind), doc.ID)
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", doc.Kind, doc.ID, err)
	}
	return expectOne(res)
}

func (s *defaultStore) Delete(ctx context.Context, kind store.Kind, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE kind = ? AND id = ?`, string(kind), id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", kind, id, err)
	}
	return expectOne(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (store.Document, error) {
	var (
		doc  store.Document
		kind string
		body string
	)
	if err := row.Scan(&kind, &doc.ID, &body, &doc.UpdatedAt); err != nil {
		return store.Document{}, err
	}
	doc.Kind = store.Kind(kind)
	doc.Body = []byte(body)
	return doc, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
