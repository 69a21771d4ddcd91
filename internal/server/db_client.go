package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/cv-studio/internal/cv"
	"github.com/jonathan/cv-studio/internal/db"
)

// DBClient is the persistence surface the server depends on. *db.DB satisfies
// it; tests substitute an in-memory fake.
type DBClient interface {
	CreateUser(ctx context.Context, name, email string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	CountUsers(ctx context.Context) (int, error)

	CreateCV(ctx context.Context, userID uuid.UUID, title string, templateID *string, doc *cv.Document) (uuid.UUID, error)
	ListCVs(ctx context.Context, userID uuid.UUID) ([]db.CVSummary, error)
	GetCV(ctx context.Context, userID, cvID uuid.UUID) (*db.CVRecord, error)
	UpdateCV(ctx context.Context, userID, cvID uuid.UUID, title string, templateID *string, doc *cv.Document) (bool, error)
	DeleteCV(ctx context.Context, userID, cvID uuid.UUID) (bool, error)
	CountCVs(ctx context.Context) (int, error)

	RecordGeneration(ctx context.Context, userID uuid.UUID, kind, model string) error
	CountGenerations(ctx context.Context) (int, error)
	GenerationKindCounts(ctx context.Context) (map[string]int, error)
}
