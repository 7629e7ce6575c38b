// Package store persists named chart definitions for the HTTP service.
//
// A stored chart pairs a [chartfile.Definition] with a stable identity so
// that clients can save a definition once and re-render it on demand
// (GET /api/charts/{id}/render) without resubmitting the document.
//
// # Architecture
//
// The package defines a small [Store] interface with two backends:
//
//   - [MemStore]: in-memory map, the default. State is lost on restart,
//     which is fine for development and tests.
//   - [MongoStore]: MongoDB-backed persistence for deployments where
//     saved charts must survive restarts.
//
// Both backends are safe for concurrent use. Lookups for unknown IDs
// return an error carrying [apperrors.ErrCodeChartNotFound] so HTTP
// handlers can map storage misses to 404 without inspecting backend
// details.
//
// # Usage
//
//	st := store.NewMemStore()
//	defer st.Close(ctx)
//
//	chart := store.New("revenue", def)
//	if err := st.Save(ctx, chart); err != nil {
//		return err
//	}
//
//	saved, err := st.Get(ctx, chart.ID)
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kritika1265/chartkit/pkg/chartfile"
)

// Chart is a saved chart definition with identity and timestamps.
type Chart struct {
	ID         uuid.UUID            `json:"id"`
	Name       string               `json:"name"`
	Definition chartfile.Definition `json:"definition"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// New creates a Chart around def with a fresh ID and current timestamps.
func New(name string, def chartfile.Definition) *Chart {
	now := time.Now().UTC()
	return &Chart{
		ID:         uuid.New(),
		Name:       name,
		Definition: def,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Store persists charts. Implementations must be safe for concurrent use.
type Store interface {
	// Save inserts the chart, or replaces the stored version when a chart
	// with the same ID already exists. It refreshes UpdatedAt.
	Save(ctx context.Context, chart *Chart) error

	// Get returns the chart with the given ID, or an error carrying
	// [apperrors.ErrCodeChartNotFound] when no such chart exists.
	Get(ctx context.Context, id uuid.UUID) (*Chart, error)

	// List returns all stored charts ordered by creation time.
	List(ctx context.Context) ([]*Chart, error)

	// Delete removes the chart with the given ID, or returns an error
	// carrying [apperrors.ErrCodeChartNotFound] when no such chart exists.
	Delete(ctx context.Context, id uuid.UUID) error

	// Close releases backend resources. The store must not be used after
	// Close returns.
	Close(ctx context.Context) error
}
