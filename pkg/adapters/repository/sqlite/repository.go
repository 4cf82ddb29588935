package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/core/domain"
	"github.com/wadjakorntonsri/go-portfolio-cms/pkg/ports"
	_ "modernc.org/sqlite" // Local SQLite driver
)

// SQLiteRepository stores every collection as JSON documents in one table.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		fields JSON NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (collection, id)
	);
	CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents(collection);
	`
	_, err := db.Exec(query)
	return err
}

// fieldName guards the JSON path used for ordering.
var fieldName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func (r *SQLiteRepository) GetDocument(ctx context.Context, collection, id string) (*ports.Document, error) {
	query := `SELECT id, fields FROM documents WHERE collection = ? AND id = ?`

	var doc ports.Document
	var raw string
	err := r.db.QueryRowContext(ctx, query, collection, id).Scan(&doc.ID, &raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if doc.Fields, err = decodeFields(raw); err != nil {
		return nil, fmt.Errorf("document %s/%s: %w", collection, id, err)
	}
	return &doc, nil
}

func (r *SQLiteRepository) SetDocument(ctx context.Context, collection, id string, fields ports.Fields) error {
	query := `INSERT INTO documents (collection, id, fields, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?)
			  ON CONFLICT(collection, id) DO UPDATE SET fields = excluded.fields, updated_at = excluded.updated_at`

	raw, err := encodeFields(fields)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx, query, collection, id, raw, now, now)
	return err
}

func (r *SQLiteRepository) UpdateDocument(ctx context.Context, collection, id string, fields ports.Fields) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var raw string
	err = tx.QueryRowContext(ctx, `SELECT fields FROM documents WHERE collection = ? AND id = ?`, collection, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return fmt.Errorf("document %s/%s: %w", collection, id, domain.ErrNotFound)
	}
	if err != nil {
		return err
	}

	merged, err := decodeFields(raw)
	if err != nil {
		return fmt.Errorf("document %s/%s: %w", collection, id, err)
	}
	maps.Copy(merged, fields)

	encoded, err := encodeFields(merged)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `UPDATE documents SET fields = ?, updated_at = ? WHERE collection = ? AND id = ?`,
		encoded, time.Now().UTC(), collection, id)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *SQLiteRepository) AddDocument(ctx context.Context, collection string, fields ports.Fields) (string, error) {
	query := `INSERT INTO documents (collection, id, fields, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`

	raw, err := encodeFields(fields)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, query, collection, id, raw, now, now); err != nil {
		return "", err
	}
	return id, nil
}

// DeleteDocument is a no-op for an absent document.
func (r *SQLiteRepository) DeleteDocument(ctx context.Context, collection, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id)
	return err
}

func (r *SQLiteRepository) ListDocuments(ctx context.Context, collection string, order *ports.Order) ([]ports.Document, error) {
	query := `SELECT id, fields FROM documents WHERE collection = ?`
	args := []interface{}{collection}

	if order != nil {
		if !fieldName.MatchString(order.Field) {
			return nil, fmt.Errorf("invalid order field %q", order.Field)
		}
		dir := "ASC"
		switch order.Direction {
		case ports.Asc, "":
		case ports.Desc:
			dir = "DESC"
		default:
			return nil, fmt.Errorf("invalid order direction %q", order.Direction)
		}
		query += " ORDER BY json_extract(fields, ?) " + dir + ", rowid ASC"
		args = append(args, "$."+order.Field)
	} else {
		query += " ORDER BY rowid ASC"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []ports.Document
	for rows.Next() {
		var d ports.Document
		var raw string
		if err := rows.Scan(&d.ID, &raw); err != nil {
			return nil, err
		}
		if d.Fields, err = decodeFields(raw); err != nil {
			return nil, fmt.Errorf("document %s/%s: %w", collection, d.ID, err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *SQLiteRepository) Dump(ctx context.Context) ([]ports.DumpedDocument, error) {
	query := `SELECT collection, id, fields, created_at, updated_at FROM documents ORDER BY collection, rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []ports.DumpedDocument
	for rows.Next() {
		var d ports.DumpedDocument
		var raw string
		if err := rows.Scan(&d.Collection, &d.ID, &raw, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		if d.Fields, err = decodeFields(raw); err != nil {
			return nil, fmt.Errorf("document %s/%s: %w", d.Collection, d.ID, err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Fields are stored as TEXT; SQLite's JSON functions reject BLOB input.
func encodeFields(fields ports.Fields) (string, error) {
	if fields == nil {
		fields = ports.Fields{}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode fields: %w", err)
	}
	return string(raw), nil
}

func decodeFields(raw string) (ports.Fields, error) {
	fields := ports.Fields{}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, errors.Join(domain.ErrInvalidContent, err)
	}
	return fields, nil
}

// Ensure interface compliance
var _ ports.DocumentStore = (*SQLiteRepository)(nil)
