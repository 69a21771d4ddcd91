package server

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cv-studio/internal/config"
	"github.com/jonathan/cv-studio/internal/cv"
	"github.com/jonathan/cv-studio/internal/db"
	"github.com/jonathan/cv-studio/internal/llm"
)

// fakeDB is an in-memory DBClient for handler tests.
type fakeDB struct {
	mu     sync.Mutex
	users  map[uuid.UUID]*db.User
	emails map[string]uuid.UUID
	cvs    map[uuid.UUID]*db.CVRecord
	events []struct {
		UserID uuid.UUID
		Kind   string
		Model  string
	}
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:  make(map[uuid.UUID]*db.User),
		emails: make(map[string]uuid.UUID),
		cvs:    make(map[uuid.UUID]*db.CVRecord),
	}
}

func (f *fakeDB) CreateUser(_ context.Context, name, email string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, taken := f.emails[email]; taken {
		return uuid.Nil, fmt.Errorf("duplicate email")
	}
	id := uuid.New()
	now := time.Now()
	f.users[id] = &db.User{ID: id, Name: name, Email: email, CreatedAt: now, UpdatedAt: now}
	f.emails[email] = id
	return id, nil
}

func (f *fakeDB) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	id, ok := f.emails[email]
	f.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return f.GetUser(context.Background(), id)
}

func (f *fakeDB) CheckEmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.emails[email]
	return ok, nil
}

func (f *fakeDB) UpdatePassword(_ context.Context, userID uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("no such user")
	}
	u.PasswordHash = hash
	u.PasswordSet = true
	u.UpdatedAt = time.Now()
	return nil
}

func (f *fakeDB) CountUsers(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users), nil
}

func (f *fakeDB) CreateCV(_ context.Context, userID uuid.UUID, title string, templateID *string, doc *cv.Document) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	now := time.Now()
	f.cvs[id] = &db.CVRecord{
		ID: id, UserID: userID, Title: title, TemplateID: templateID,
		Document: doc.Clone(), CreatedAt: now, UpdatedAt: now,
	}
	return id, nil
}

func (f *fakeDB) ListCVs(_ context.Context, userID uuid.UUID) ([]db.CVSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.CVSummary
	for _, rec := range f.cvs {
		if rec.UserID != userID {
			continue
		}
		out = append(out, db.CVSummary{ID: rec.ID, Title: rec.Title, TemplateID: rec.TemplateID, CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (f *fakeDB) GetCV(_ context.Context, userID, cvID uuid.UUID) (*db.CVRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.cvs[cvID]
	if !ok || rec.UserID != userID {
		return nil, nil
	}
	copied := *rec
	copied.Document = rec.Document.Clone()
	return &copied, nil
}

func (f *fakeDB) UpdateCV(_ context.Context, userID, cvID uuid.UUID, title string, templateID *string, doc *cv.Document) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.cvs[cvID]
	if !ok || rec.UserID != userID {
		return false, nil
	}
	if title != "" {
		rec.Title = title
	}
	if templateID != nil {
		rec.TemplateID = templateID
	}
	rec.Document = doc.Clone()
	rec.UpdatedAt = time.Now()
	return true, nil
}

func (f *fakeDB) DeleteCV(_ context.Context, userID, cvID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.cvs[cvID]
	if !ok || rec.UserID != userID {
		return false, nil
	}
	delete(f.cvs, cvID)
	return true, nil
}

func (f *fakeDB) CountCVs(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cvs), nil
}

func (f *fakeDB) RecordGeneration(_ context.Context, userID uuid.UUID, kind, model string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, struct {
		UserID uuid.UUID
		Kind   string
		Model  string
	}{userID, kind, model})
	return nil
}

func (f *fakeDB) CountGenerations(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events), nil
}

func (f *fakeDB) GenerationKindCounts(_ context.Context) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[string]int)
	for _, e := range f.events {
		counts[e.Kind]++
	}
	return counts, nil
}

// fakeLLM returns canned output and records the prompts it saw.
type fakeLLM struct {
	mu      sync.Mutex
	output  string
	err     error
	prompts []string
	tiers   []llm.ModelTier
}

func (f *fakeLLM) record(prompt string, tier llm.ModelTier) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.tiers = append(f.tiers, tier)
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

func (f *fakeLLM) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.record(prompt, tier)
}

func (f *fakeLLM) GenerateJSON(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.record(prompt, tier)
}

func (f *fakeLLM) Close() error { return nil }

// fakeExporter returns fixed bytes instead of driving a browser.
type fakeExporter struct{}

func (fakeExporter) Export(_ context.Context, _ *cv.Document) ([]byte, error) {
	return []byte("%PDF-1.7 fake"), nil
}

func testConfig() *config.Config {
	return &config.Config{
		ListenAddr:  ":0",
		AdminEmails: []string{"admin@example.com"},
		JWT:         &config.JWTConfig{Secret: "test-secret", ExpirationHours: 1},
		Password:    &config.PasswordConfig{BcryptCost: 10},
	}
}

// newTestServer builds a server on fakes. The returned fakes can be inspected
// or mutated per test.
func newTestServer(llmClient llm.Client) (*Server, *fakeDB) {
	database := newFakeDB()
	s := build(testConfig(), database, llmClient, fakeExporter{})
	return s, database
}
