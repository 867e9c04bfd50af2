package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/omopgraph/omopgraph/internal/models"
	"github.com/omopgraph/omopgraph/internal/traverse"
)

// snapshotSource reads relationships inside one transaction.
type snapshotSource struct {
	store *GraphStore
	tx    pgx.Tx
}

func (s *snapshotSource) OutgoingRelationships(ctx context.Context, conceptIDs []int64, labels []string) ([]models.ConceptRelationship, error) {
	return s.store.outgoing(ctx, s.tx, conceptIDs, labels)
}

// View runs fn against a read-only, repeatable-read snapshot so every level
// of a traversal sees the same data. The snapshot holds one pooled
// connection until fn returns.
func (s *GraphStore) View(ctx context.Context, fn func(src traverse.Source) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("beginning snapshot: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	if err := fn(&snapshotSource{store: s, tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}

	return nil
}
