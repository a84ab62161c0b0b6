package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"paperforge/internal/models"
	"paperforge/internal/util"

	"github.com/google/uuid"
)

const (
	texArtifactName = "paper.tex"
	pdfArtifactName = "paper.pdf"
)

// Store owns the run lifecycle: the id→record mapping (via RunRecords) and
// the per-run artifact directory tree under root. Artifact retrieval is a
// pure read of previously attached bytes; the store never regenerates
// content.
type Store struct {
	records RunRecords
	root    string
}

func NewStore(records RunRecords, root string) *Store {
	return &Store{records: records, root: root}
}

// CreateRun mints a fresh run id (timestamp plus random fragment, so ids sort
// by creation time and never collide) and persists the pending record.
func (s *Store) CreateRun(ctx context.Context, topic string, provider models.Provider) (models.Run, error) {
	now := time.Now().UTC()
	run := models.Run{
		RunID:     now.Format("20060102_150405") + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
		Topic:     topic,
		Provider:  provider,
		Status:    models.StatusPending,
		CreatedAt: now,
	}
	if err := util.EnsureDir(s.runDir(run.RunID)); err != nil {
		return models.Run{}, err
	}
	if err := s.records.Insert(ctx, run); err != nil {
		return models.Run{}, err
	}
	return run, nil
}

// AttachTex writes the tex artifact and moves the run to tex_ready.
func (s *Store) AttachTex(ctx context.Context, runID string, content []byte) (string, error) {
	return s.attach(ctx, runID, models.ArtifactTex, texArtifactName, content, models.StatusTexReady)
}

// AttachPdf writes the pdf artifact and moves the run to pdf_ready.
func (s *Store) AttachPdf(ctx context.Context, runID string, content []byte) (string, error) {
	return s.attach(ctx, runID, models.ArtifactPdf, pdfArtifactName, content, models.StatusPdfReady)
}

func (s *Store) attach(ctx context.Context, runID string, kind models.ArtifactKind, name string, content []byte, status models.RunStatus) (string, error) {
	if _, err := s.records.Get(ctx, runID); err != nil {
		return "", err
	}
	path := filepath.Join(s.runDir(runID), name)
	if err := util.WriteBytesAtomic(path, content); err != nil {
		return "", fmt.Errorf("write %s artifact: %w", kind, err)
	}
	if err := s.records.SetArtifact(ctx, runID, kind, path, status); err != nil {
		return "", err
	}
	return name, nil
}

// MarkPdfFailed records that compilation was attempted and failed, leaving
// the tex artifact untouched so callers can distinguish "never attempted"
// from "attempted and failed".
func (s *Store) MarkPdfFailed(ctx context.Context, runID string) error {
	return s.records.UpdateStatus(ctx, runID, models.StatusPdfFailed)
}

func (s *Store) GetRun(ctx context.Context, runID string) (models.Run, error) {
	return s.records.Get(ctx, runID)
}

// GetArtifact returns the previously attached bytes for the run, or
// util.ErrRunNotFound / util.ErrArtifactNotReady.
func (s *Store) GetArtifact(ctx context.Context, runID string, kind models.ArtifactKind) ([]byte, error) {
	run, err := s.records.Get(ctx, runID)
	if err != nil {
		return nil, err
	}
	path := run.TexPath
	if kind == models.ArtifactPdf {
		path = run.PdfPath
	}
	if path == "" {
		return nil, util.ErrArtifactNotReady
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s artifact: %w", kind, err)
	}
	return b, nil
}

func (s *Store) runDir(runID string) string {
	return util.SafeJoin(s.root, runID)
}
