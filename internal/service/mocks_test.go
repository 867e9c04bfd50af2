package service

import (
	"context"
	"sync"

	"github.com/omopgraph/omopgraph/internal/traverse"
)

// mockSnapshotStore records calls and returns configured responses.
type mockSnapshotStore struct {
	mu    sync.Mutex
	calls int

	view func(ctx context.Context, fn func(src traverse.Source) error) error
}

func (m *mockSnapshotStore) View(ctx context.Context, fn func(src traverse.Source) error) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	return m.view(ctx, fn)
}
