package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/cv-studio/internal/cv"
)

// CVRecord is a stored CV document with its ownership metadata. The document
// itself lives in a JSONB column.
type CVRecord struct {
	ID         uuid.UUID    `json:"id"`
	UserID     uuid.UUID    `json:"user_id"`
	Title      string       `json:"title"`
	TemplateID *string      `json:"template_id,omitempty"`
	Document   *cv.Document `json:"document"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// CVSummary is the list-view projection of a stored CV. The document body is
// omitted to keep list responses small.
type CVSummary struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	TemplateID *string   `json:"template_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateCV stores a new CV document for the user and returns its ID. The
// template ID is optional; nil stores NULL.
func (db *DB) CreateCV(ctx context.Context, userID uuid.UUID, title string, templateID *string, doc *cv.Document) (uuid.UUID, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO cvs (user_id, title, template_id, document) VALUES ($1, $2, $3, $4) RETURNING id`,
		userID, title, templateID, body,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create cv: %w", err)
	}
	return id, nil
}

// ListCVs returns the user's CVs, most recently updated first
func (db *DB) ListCVs(ctx context.Context, userID uuid.UUID) ([]CVSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, template_id, created_at, updated_at
		 FROM cvs WHERE user_id = $1
		 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cvs: %w", err)
	}
	defer rows.Close()

	summaries := []CVSummary{}
	for rows.Next() {
		var s CVSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.TemplateID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cv row: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// GetCV retrieves one of the user's CVs by ID. Returns (nil, nil) when the CV
// does not exist or belongs to a different user; callers cannot tell the two
// apart, which keeps document existence private to its owner.
func (db *DB) GetCV(ctx context.Context, userID, cvID uuid.UUID) (*CVRecord, error) {
	var (
		rec  CVRecord
		body []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, title, template_id, document, created_at, updated_at
		 FROM cvs WHERE id = $1 AND user_id = $2`,
		cvID, userID,
	).Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.TemplateID, &body, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cv: %w", err)
	}

	rec.Document = &cv.Document{}
	if err := json.Unmarshal(body, rec.Document); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return &rec, nil
}

// UpdateCV replaces the stored document (and optionally the title and
// template) of one of the user's CVs. An empty title and a nil template ID
// leave the stored values alone. Returns false when the CV does not exist or
// is not theirs.
func (db *DB) UpdateCV(ctx context.Context, userID, cvID uuid.UUID, title string, templateID *string, doc *cv.Document) (bool, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return false, fmt.Errorf("failed to marshal document: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE cvs SET title = COALESCE(NULLIF($1, ''), title),
		                template_id = COALESCE($2, template_id),
		                document = $3, updated_at = NOW()
		 WHERE id = $4 AND user_id = $5`,
		title, templateID, body, cvID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update cv: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteCV removes one of the user's CVs. Returns false when the CV does not
// exist or is not theirs.
func (db *DB) DeleteCV(ctx context.Context, userID, cvID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM cvs WHERE id = $1 AND user_id = $2`,
		cvID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete cv: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CountCVs returns the total number of stored CVs across all users
func (db *DB) CountCVs(ctx context.Context) (int, error) {
	var n int
	err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM cvs`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count cvs: %w", err)
	}
	return n, nil
}
