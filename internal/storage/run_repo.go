package storage

import (
	"context"
	"errors"
	"fmt"

	"paperforge/internal/models"
	"paperforge/internal/util"

	"github.com/jackc/pgx/v5"
)

// RunRepo is the Postgres-backed RunRecords implementation.
//
// Schema:
//
//	CREATE TABLE runs (
//	  run_id     TEXT PRIMARY KEY,
//	  topic      TEXT NOT NULL,
//	  provider   TEXT NOT NULL,
//	  status     TEXT NOT NULL,
//	  tex_path   TEXT,
//	  pdf_path   TEXT,
//	  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

func (r *RunRepo) Insert(ctx context.Context, run models.Run) error {
	_, err := r.db.Pool.Exec(ctx, `
INSERT INTO runs (run_id, topic, provider, status, tex_path, pdf_path)
VALUES ($1, $2, $3, $4, NULLIF($5,''), NULLIF($6,''))`,
		run.RunID, run.Topic, string(run.Provider), string(run.Status), run.TexPath, run.PdfPath,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (r *RunRepo) Get(ctx context.Context, runID string) (models.Run, error) {
	var run models.Run
	err := r.db.Pool.QueryRow(ctx, `
SELECT run_id, topic, provider, status, COALESCE(tex_path,''), COALESCE(pdf_path,''), created_at
FROM runs
WHERE run_id=$1`, runID).
		Scan(&run.RunID, &run.Topic, &run.Provider, &run.Status, &run.TexPath, &run.PdfPath, &run.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Run{}, util.ErrRunNotFound
	}
	if err != nil {
		return models.Run{}, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

func (r *RunRepo) SetArtifact(ctx context.Context, runID string, kind models.ArtifactKind, path string, status models.RunStatus) error {
	column := "tex_path"
	if kind == models.ArtifactPdf {
		column = "pdf_path"
	}
	// Artifact paths are write-once: COALESCE keeps an existing path.
	tag, err := r.db.Pool.Exec(ctx, `
UPDATE runs SET `+column+`=COALESCE(`+column+`, NULLIF($2,'')), status=$3 WHERE run_id=$1`,
		runID, path, string(status))
	if err != nil {
		return fmt.Errorf("set run artifact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return util.ErrRunNotFound
	}
	return nil
}

func (r *RunRepo) UpdateStatus(ctx context.Context, runID string, status models.RunStatus) error {
	tag, err := r.db.Pool.Exec(ctx, `UPDATE runs SET status=$2 WHERE run_id=$1`, runID, string(status))
	if err != nil {
		return fmt.Errorf("update run status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return util.ErrRunNotFound
	}
	return nil
}
