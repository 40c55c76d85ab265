package domain

import (
	"context"
	"encoding/json"
	"time"
)

// CV is a per-user structured resume document. Exactly one CV per user
// carries IsDefault while the user owns at least one CV.
type CV struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Title        string          `json:"title"`
	Education    json.RawMessage `json:"education,omitempty"`
	Experience   json.RawMessage `json:"experience,omitempty"`
	Skills       json.RawMessage `json:"skills,omitempty"`
	Languages    json.RawMessage `json:"languages,omitempty"`
	Certificates json.RawMessage `json:"certificates,omitempty"`
	Projects     json.RawMessage `json:"projects,omitempty"`
	Avatar       *string         `json:"avatar,omitempty"`
	PdfURL       *string         `json:"pdf_url,omitempty"`
	IsDefault    bool            `json:"is_default"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type CVRepository interface {
	Create(ctx context.Context, cv *CV) error
	GetByID(ctx context.Context, id string) (*CV, error)
	FetchByUser(ctx context.Context, userID string) ([]CV, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Update(ctx context.Context, cv *CV) error
	// SetDefault clears the previous default and marks the target in a
	// single transaction; there is no observable state with zero or
	// two defaults.
	SetDefault(ctx context.Context, userID, cvID string) error
	// Delete removes the CV and, when it was the default, promotes the
	// most recently created remaining CV in the same transaction.
	Delete(ctx context.Context, cv *CV) error
}

type CVUsecase interface {
	Create(ctx context.Context, userID string, cv *CV) error
	GetMine(ctx context.Context, userID string) ([]CV, error)
	Get(ctx context.Context, requester Requester, id string) (*CV, error)
	Update(ctx context.Context, userID string, cv *CV) (*CV, error)
	SetDefault(ctx context.Context, userID, id string) (*CV, error)
	Delete(ctx context.Context, userID, id string) error
}
