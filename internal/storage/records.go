package storage

import (
	"context"

	"paperforge/internal/models"
)

// RunRecords persists the id→run mapping. Unknown ids surface as
// util.ErrRunNotFound from every method.
type RunRecords interface {
	Insert(ctx context.Context, run models.Run) error
	Get(ctx context.Context, runID string) (models.Run, error)
	SetArtifact(ctx context.Context, runID string, kind models.ArtifactKind, path string, status models.RunStatus) error
	UpdateStatus(ctx context.Context, runID string, status models.RunStatus) error
}
