package storage

import (
	"context"
	"sync"

	"paperforge/internal/models"
	"paperforge/internal/util"
)

// MemoryRunRecords keeps the id→run mapping in process memory, guarded for
// concurrent request handlers. The default backend for single-node setups.
type MemoryRunRecords struct {
	mu   sync.RWMutex
	runs map[string]models.Run
}

func NewMemoryRunRecords() *MemoryRunRecords {
	return &MemoryRunRecords{runs: make(map[string]models.Run)}
}

func (m *MemoryRunRecords) Insert(ctx context.Context, run models.Run) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.RunID] = run
	return nil
}

func (m *MemoryRunRecords) Get(ctx context.Context, runID string) (models.Run, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()
	run, ok := m.runs[runID]
	if !ok {
		return models.Run{}, util.ErrRunNotFound
	}
	return run, nil
}

func (m *MemoryRunRecords) SetArtifact(ctx context.Context, runID string, kind models.ArtifactKind, path string, status models.RunStatus) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[runID]
	if !ok {
		return util.ErrRunNotFound
	}
	switch kind {
	case models.ArtifactTex:
		if run.TexPath == "" {
			run.TexPath = path
		}
	case models.ArtifactPdf:
		if run.PdfPath == "" {
			run.PdfPath = path
		}
	}
	run.Status = status
	m.runs[runID] = run
	return nil
}

func (m *MemoryRunRecords) UpdateStatus(ctx context.Context, runID string, status models.RunStatus) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[runID]
	if !ok {
		return util.ErrRunNotFound
	}
	run.Status = status
	m.runs[runID] = run
	return nil
}
