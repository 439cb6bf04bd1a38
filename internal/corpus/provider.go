// Package corpus loads the read-only snapshot of users, projects and skill
// statistics that a ranking call is computed from.
package corpus

import (
	"context"

	"skill-match-workers/internal/models"
)

// Provider returns a full snapshot. Failure to read users or projects is a
// CORPUS_UNAVAILABLE error.
type Provider interface {
	LoadSnapshot(ctx context.Context) (*models.CorpusSnapshot, error)
}

// ProjectSource supplies the project side of a snapshot when projects are
// not read from Postgres.
type ProjectSource interface {
	LoadProjects(ctx context.Context) ([]models.Project, error)
}

// IDFCache stores the IDF map computed from the last snapshot.
type IDFCache interface {
	Get(ctx context.Context) (models.IDFMap, bool, error)
	Set(ctx context.Context, idf models.IDFMap) error
	Invalidate(ctx context.Context) error
}
