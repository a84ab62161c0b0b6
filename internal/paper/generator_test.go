package paper

import (
	"context"
	"errors"
	"testing"
	"time"

	"paperforge/internal/compiler"
	"paperforge/internal/models"
	"paperforge/internal/providers"
	"paperforge/internal/storage"
	"paperforge/internal/util"

	"github.com/stretchr/testify/require"
)

const stubDoc = "\\documentclass{article}\\begin{document}Hello\\end{document}"

type stubLLM struct {
	text  string
	err   error
	calls int
}

func (s *stubLLM) Generate(ctx context.Context, provider models.Provider, req providers.GenerateRequest) (providers.GenerateResponse, providers.ProviderInfo, error) {
	s.calls++
	if s.err != nil {
		return providers.GenerateResponse{}, providers.ProviderInfo{Name: string(provider)}, s.err
	}
	return providers.GenerateResponse{Text: s.text}, providers.ProviderInfo{Name: string(provider), Model: "stub"}, nil
}

type stubStrategy struct {
	pdf []byte
	err error
}

func (s *stubStrategy) Name() string    { return "stub" }
func (s *stubStrategy) Available() bool { return true }
func (s *stubStrategy) Compile(ctx context.Context, workDir string) ([]byte, error) {
	return s.pdf, s.err
}

func newGenerator(t *testing.T, llm LLM, strategies ...compiler.Strategy) (*Generator, *storage.Store) {
	t.Helper()
	store := storage.NewStore(storage.NewMemoryRunRecords(), t.TempDir())
	return NewGenerator(llm, store, compiler.NewWithStrategies(time.Minute, strategies...)), store
}

func TestGenerateFullSuccess(t *testing.T) {
	ctx := context.Background()
	llm := &stubLLM{text: stubDoc}
	g, store := newGenerator(t, llm, &stubStrategy{pdf: []byte("%PDF-1.5")})

	res, err := g.Generate(ctx, "Quantum Error Correction", models.ProviderGemini)
	require.NoError(t, err)
	require.NotEmpty(t, res.RunID)
	require.Equal(t, "paper.tex", res.TexFilename)
	require.Equal(t, "paper.pdf", res.PdfFilename)

	tex, err := store.GetArtifact(ctx, res.RunID, models.ArtifactTex)
	require.NoError(t, err)
	require.Equal(t, stubDoc, string(tex))

	run, err := store.GetRun(ctx, res.RunID)
	require.NoError(t, err)
	require.Equal(t, models.StatusPdfReady, run.Status)
}

func TestGenerateDegradedSuccessOnCompileFailure(t *testing.T) {
	ctx := context.Background()
	llm := &stubLLM{text: stubDoc}
	g, store := newGenerator(t, llm, &stubStrategy{err: errors.New("missing natbib")})

	res, err := g.Generate(ctx, "Quantum Error Correction", models.ProviderGroq)
	require.NoError(t, err)
	require.Equal(t, "paper.tex", res.TexFilename)
	require.Empty(t, res.PdfFilename)

	run, err := store.GetRun(ctx, res.RunID)
	require.NoError(t, err)
	require.Equal(t, models.StatusPdfFailed, run.Status)

	_, err = store.GetArtifact(ctx, res.RunID, models.ArtifactPdf)
	require.ErrorIs(t, err, util.ErrArtifactNotReady)
}

func TestGenerateShortTopicSkipsProvider(t *testing.T) {
	llm := &stubLLM{text: stubDoc}
	g, _ := newGenerator(t, llm, &stubStrategy{pdf: []byte("x")})

	_, err := g.Generate(context.Background(), " ab ", models.ProviderGemini)
	require.ErrorIs(t, err, util.ErrInvalidTopic)
	require.Zero(t, llm.calls)
}

func TestGenerateProviderFailureCreatesNoRun(t *testing.T) {
	rateLimited := &providers.ProviderError{Kind: providers.FailureRateLimited, Err: errors.New("429 too many requests")}
	llm := &stubLLM{err: rateLimited}
	g, _ := newGenerator(t, llm, &stubStrategy{pdf: []byte("x")})

	_, err := g.Generate(context.Background(), "Quantum Error Correction", models.ProviderGroq)
	var pe *providers.ProviderError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, providers.FailureRateLimited, pe.Kind)
}

func TestGenerateNonLatexOutputFails(t *testing.T) {
	llm := &stubLLM{text: "I cannot write that paper."}
	g, _ := newGenerator(t, llm, &stubStrategy{pdf: []byte("x")})

	_, err := g.Generate(context.Background(), "Quantum Error Correction", models.ProviderGemini)
	require.ErrorIs(t, err, util.ErrNoLatexFound)
}
