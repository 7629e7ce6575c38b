package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/kritika1265/chartkit/pkg/errors"
)

// MemStore keeps charts in memory. It is the default backend for the
// service and for tests; contents are lost when the process exits.
type MemStore struct {
	mu     sync.RWMutex
	charts map[uuid.UUID]*Chart
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{charts: make(map[uuid.UUID]*Chart)}
}

// Save inserts or replaces the chart. The stored copy is detached from the
// caller's value, so later mutations of chart do not leak into the store.
func (s *MemStore) Save(ctx context.Context, chart *Chart) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *chart
	cp.UpdatedAt = time.Now().UTC()
	if existing, ok := s.charts[chart.ID]; ok {
		cp.CreatedAt = existing.CreatedAt
	}
	s.charts[chart.ID] = &cp
	chart.UpdatedAt = cp.UpdatedAt
	chart.CreatedAt = cp.CreatedAt
	return nil
}

// Get returns a copy of the chart with the given ID.
func (s *MemStore) Get(ctx context.Context, id uuid.UUID) (*Chart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	chart, ok := s.charts[id]
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeChartNotFound, "chart %s not found", id)
	}
	cp := *chart
	return &cp, nil
}

// List returns copies of all charts ordered by creation time.
func (s *MemStore) List(ctx context.Context) ([]*Chart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	charts := make([]*Chart, 0, len(s.charts))
	for _, chart := range s.charts {
		cp := *chart
		charts = append(charts, &cp)
	}
	sort.Slice(charts, func(i, j int) bool {
		if !charts[i].CreatedAt.Equal(charts[j].CreatedAt) {
			return charts[i].CreatedAt.Before(charts[j].CreatedAt)
		}
		return charts[i].ID.String() < charts[j].ID.String()
	})
	return charts, nil
}

// Delete removes the chart with the given ID.
func (s *MemStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.charts[id]; !ok {
		return apperrors.New(apperrors.ErrCodeChartNotFound, "chart %s not found", id)
	}
	delete(s.charts, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemStore)(nil)
