// Package paper drives one generation request end to end: provider call,
// LaTeX cleanup, run persistence, and the PDF compile attempt.
package paper

import (
	"context"
	"errors"
	"log"
	"strings"

	"paperforge/internal/compiler"
	"paperforge/internal/latex"
	"paperforge/internal/models"
	"paperforge/internal/providers"
	"paperforge/internal/storage"
	"paperforge/internal/util"
)

const minTopicLen = 3

// LLM is the slice of the provider manager the generator needs.
type LLM interface {
	Generate(ctx context.Context, provider models.Provider, req providers.GenerateRequest) (providers.GenerateResponse, providers.ProviderInfo, error)
}

type Generator struct {
	providers LLM
	store     *storage.Store
	compiler  *compiler.Bridge
}

func NewGenerator(llm LLM, store *storage.Store, bridge *compiler.Bridge) *Generator {
	return &Generator{providers: llm, store: store, compiler: bridge}
}

type Result struct {
	RunID       string          `json:"run_id"`
	Provider    models.Provider `json:"provider"`
	TexFilename string          `json:"tex_filename"`
	PdfFilename string          `json:"pdf_filename,omitempty"`
}

// Generate runs the full flow. A provider or post-processing failure fails
// the request before any run exists; a compile failure degrades to a
// tex-only success with the run left in pdf_failed.
func (g *Generator) Generate(ctx context.Context, topic string, provider models.Provider) (Result, error) {
	topic = strings.TrimSpace(topic)
	if len(topic) < minTopicLen {
		return Result{}, util.ErrInvalidTopic
	}

	resp, info, err := g.providers.Generate(ctx, provider, providers.GenerateRequest{
		Operation: "paper_generate",
		System:    latex.SystemInstruction(),
		Prompt:    latex.UserPrompt(topic),
	})
	if err != nil {
		return Result{}, err
	}

	tex, err := latex.Clean(resp.Text)
	if err != nil {
		return Result{}, err
	}

	run, err := g.store.CreateRun(ctx, topic, provider)
	if err != nil {
		return Result{}, err
	}
	texName, err := g.store.AttachTex(ctx, run.RunID, []byte(tex))
	if err != nil {
		return Result{}, err
	}

	result := Result{RunID: run.RunID, Provider: provider, TexFilename: texName}

	pdf, err := g.compiler.Compile(ctx, tex)
	if err != nil {
		var ce *compiler.CompilationError
		if errors.As(err, &ce) {
			// Degraded success: the tex artifact alone is useful.
			log.Printf("generate run=%s provider=%s model=%s: pdf compile failed, serving tex only", run.RunID, info.Name, info.Model)
			if markErr := g.store.MarkPdfFailed(ctx, run.RunID); markErr != nil {
				return Result{}, markErr
			}
			return result, nil
		}
		return Result{}, err
	}

	pdfName, err := g.store.AttachPdf(ctx, run.RunID, pdf)
	if err != nil {
		return Result{}, err
	}
	result.PdfFilename = pdfName
	return result, nil
}
