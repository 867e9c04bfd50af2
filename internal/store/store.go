// Package store provides read access to the OMOP concept relationship graph.
//
// GraphStore reads from PostgreSQL through the shared pool; MemoryStore
// serves the same contract from an in-process graph for fixtures and tests.
// Both satisfy traverse.Source and expose View for snapshot reads.
package store

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/omopgraph/omopgraph/internal/dbpool"
)

const defaultQueryTimeout = 30 * time.Second

// DefaultSchema is the schema holding the OMOP vocabulary tables.
const DefaultSchema = "cdm"

var schemaPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// Base contains shared dependencies for all stores.
// Embed this in each store struct.
type Base struct {
	Pool   *dbpool.Pool
	Log    *logrus.Logger
	Schema string
}

// ValidateSchema checks that name is a plain Postgres identifier.
func ValidateSchema(name string) error {
	if !schemaPattern.MatchString(name) {
		return fmt.Errorf("invalid schema name %q", name)
	}

	return nil
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

func (b *Base) schema() string {
	if b.Schema == "" {
		return DefaultSchema
	}

	return b.Schema
}
