package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// DocumentRepo manages registered documents.
type DocumentRepo struct {
	db *sql.DB
}

var documentColumns = []string{
	"id", "filename", "path", "title", "total_chars", "processed", "created_at", "processed_at",
}

// Create registers a document and returns its id.
func (r *DocumentRepo) Create(ctx context.Context, d Document) (int64, error) {
	query, args := sqlite().Insert(documentsTable).
		Columns("filename", "path", "title", "total_chars", "processed", "created_at").
		Values(d.Filename, d.Path, d.Title, d.TotalChars, false, time.Now().Unix()).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert document: %w", err)
	}
	return res.LastInsertId()
}

// Get returns the document, or nil if it does not exist.
func (r *DocumentRepo) Get(ctx context.Context, id int64) (*Document, error) {
	query, args := sqlite().Select(documentColumns...).
		From(sqlite().Table(documentsTable)).
		Where(entsql.EQ("id", id)).
		Query()
	d, err := scanDocument(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return d, err
}

// GetByPath returns the document registered at path, or nil.
func (r *DocumentRepo) GetByPath(ctx context.Context, path string) (*Document, error) {
	query, args := sqlite().Select(documentColumns...).
		From(sqlite().Table(documentsTable)).
		Where(entsql.EQ("path", path)).
		Query()
	d, err := scanDocument(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return d, err
}

// List returns all documents, newest first.
func (r *DocumentRepo) List(ctx context.Context) ([]Document, error) {
	query, args := sqlite().Select(documentColumns...).
		From(sqlite().Table(documentsTable)).
		OrderBy(entsql.Desc("id")).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *d)
	}
	return docs, rows.Err()
}

// MarkProcessed flags a document as having its questions generated.
func (r *DocumentRepo) MarkProcessed(ctx context.Context, id int64) error {
	query, args := sqlite().Update(documentsTable).
		Set("processed", true).
		Set("processed_at", time.Now().Unix()).
		Where(entsql.EQ("id", id)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mark document processed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("document %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a document together with its questions, saves and stats.
func (r *DocumentRepo) Delete(ctx context.Context, id int64) error {
	query, args := sqlite().Delete(documentsTable).Where(entsql.EQ("id", id)).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func scanDocument(row scanner) (*Document, error) {
	var (
		d           Document
		created     int64
		processedAt sql.NullInt64
	)
	err := row.Scan(&d.ID, &d.Filename, &d.Path, &d.Title, &d.TotalChars, &d.Processed, &created, &processedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	d.CreatedAt = time.Unix(created, 0)
	if processedAt.Valid {
		d.ProcessedAt = time.Unix(processedAt.Int64, 0)
	}
	return &d, nil
}
