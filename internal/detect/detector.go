// Package detect scores content for likelihood of AI authorship via a
// remote provider call. Three entry points (stored run, raw text, uploaded
// PDF) converge on one scoring call; nothing is cached.
package detect

import (
	"context"
	"errors"
	"strings"

	"paperforge/internal/models"
	"paperforge/internal/storage"
	"paperforge/internal/util"
)

const minDetectLen = 50

// Scorer is the slice of the provider manager the detector needs.
type Scorer interface {
	Score(ctx context.Context, provider models.Provider, content string, source models.DetectionSource) (models.DetectionResult, error)
}

type Detector struct {
	scorer   Scorer
	store    *storage.Store
	provider models.Provider
}

func NewDetector(scorer Scorer, store *storage.Store, provider models.Provider) *Detector {
	if provider == "" {
		provider = models.ProviderGroq
	}
	return &Detector{scorer: scorer, store: store, provider: provider}
}

// FromRun scores a stored run's LaTeX. When only the PDF was kept, its
// extracted text is scored instead.
func (d *Detector) FromRun(ctx context.Context, runID string) (models.DetectionResult, error) {
	tex, err := d.store.GetArtifact(ctx, runID, models.ArtifactTex)
	if err == nil {
		return d.scorer.Score(ctx, d.provider, "LaTeX (UTF-8):\n"+string(tex), models.SourceLatexRun)
	}
	if !errors.Is(err, util.ErrArtifactNotReady) {
		return models.DetectionResult{}, err
	}
	pdf, pdfErr := d.store.GetArtifact(ctx, runID, models.ArtifactPdf)
	if pdfErr != nil {
		return models.DetectionResult{}, err
	}
	text, extractErr := ExtractText(pdf)
	if extractErr != nil {
		return models.DetectionResult{}, extractErr
	}
	return d.scorer.Score(ctx, d.provider, text, models.SourceLatexRun)
}

// FromRaw scores caller-supplied LaTeX or plain text.
func (d *Detector) FromRaw(ctx context.Context, content string) (models.DetectionResult, error) {
	if len(strings.TrimSpace(content)) < minDetectLen {
		return models.DetectionResult{}, util.ErrInputTooShort
	}
	return d.scorer.Score(ctx, d.provider, "LaTeX (UTF-8):\n"+content, models.SourceRawText)
}

// FromPDF extracts plain text from an uploaded PDF and scores it.
func (d *Detector) FromPDF(ctx context.Context, pdfBytes []byte) (models.DetectionResult, error) {
	text, err := ExtractText(pdfBytes)
	if err != nil {
		return models.DetectionResult{}, err
	}
	if len(text) < minDetectLen {
		return models.DetectionResult{}, util.ErrNoExtractableText
	}
	return d.scorer.Score(ctx, d.provider, text, models.SourceUploadedPdf)
}
