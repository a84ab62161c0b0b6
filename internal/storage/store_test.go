package storage

import (
	"context"
	"sync"
	"testing"

	"paperforge/internal/models"
	"paperforge/internal/util"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(NewMemoryRunRecords(), t.TempDir())
}

func TestStoreArtifactRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	run, err := s.CreateRun(ctx, "Quantum Error Correction", models.ProviderGemini)
	require.NoError(t, err)
	require.NotEmpty(t, run.RunID)
	require.Equal(t, models.StatusPending, run.Status)

	tex := []byte("\\documentclass{article}\\begin{document}Hello\\end{document}")
	name, err := s.AttachTex(ctx, run.RunID, tex)
	require.NoError(t, err)
	require.Equal(t, "paper.tex", name)

	got, err := s.GetArtifact(ctx, run.RunID, models.ArtifactTex)
	require.NoError(t, err)
	require.Equal(t, tex, got)

	loaded, err := s.GetRun(ctx, run.RunID)
	require.NoError(t, err)
	require.Equal(t, models.StatusTexReady, loaded.Status)
}

func TestStorePdfLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	run, err := s.CreateRun(ctx, "topic one", models.ProviderGroq)
	require.NoError(t, err)

	_, err = s.GetArtifact(ctx, run.RunID, models.ArtifactPdf)
	require.ErrorIs(t, err, util.ErrArtifactNotReady)

	_, err = s.AttachTex(ctx, run.RunID, []byte("tex"))
	require.NoError(t, err)

	require.NoError(t, s.MarkPdfFailed(ctx, run.RunID))
	loaded, err := s.GetRun(ctx, run.RunID)
	require.NoError(t, err)
	require.Equal(t, models.StatusPdfFailed, loaded.Status)
	// tex stays readable after a failed compile
	_, err = s.GetArtifact(ctx, run.RunID, models.ArtifactTex)
	require.NoError(t, err)

	name, err := s.AttachPdf(ctx, run.RunID, []byte("%PDF-1.5"))
	require.NoError(t, err)
	require.Equal(t, "paper.pdf", name)
	got, err := s.GetArtifact(ctx, run.RunID, models.ArtifactPdf)
	require.NoError(t, err)
	require.Equal(t, []byte("%PDF-1.5"), got)
}

func TestStoreUnknownRun(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.AttachTex(ctx, "nope", []byte("x"))
	require.ErrorIs(t, err, util.ErrRunNotFound)
	_, err = s.GetArtifact(ctx, "nope", models.ArtifactTex)
	require.ErrorIs(t, err, util.ErrRunNotFound)
	require.ErrorIs(t, s.MarkPdfFailed(ctx, "nope"), util.ErrRunNotFound)
}

func TestStoreConcurrentRunIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	const n = 64
	ids := make(chan string, n)
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			run, err := s.CreateRun(ctx, "concurrent topic", models.ProviderGroq)
			if err != nil {
				errs <- err
				return
			}
			ids <- run.RunID
		}()
	}
	wg.Wait()
	close(ids)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	seen := make(map[string]bool, n)
	for id := range ids {
		require.False(t, seen[id], "duplicate run id %s", id)
		seen[id] = true
	}
	require.Len(t, seen, n)
}

func TestMemoryRecordsArtifactPathWriteOnce(t *testing.T) {
	ctx := context.Background()
	rec := NewMemoryRunRecords()
	require.NoError(t, rec.Insert(ctx, models.Run{RunID: "r1", Status: models.StatusPending}))

	require.NoError(t, rec.SetArtifact(ctx, "r1", models.ArtifactTex, "/a/paper.tex", models.StatusTexReady))
	require.NoError(t, rec.SetArtifact(ctx, "r1", models.ArtifactTex, "/b/other.tex", models.StatusTexReady))

	run, err := rec.Get(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, "/a/paper.tex", run.TexPath)
}
