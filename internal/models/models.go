package models

import "time"

type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderGroq   Provider = "groq"
)

type RunStatus string

const (
	StatusPending   RunStatus = "pending"
	StatusTexReady  RunStatus = "tex_ready"
	StatusPdfReady  RunStatus = "pdf_ready"
	StatusPdfFailed RunStatus = "pdf_failed"
)

// Run tracks one generation request's lifecycle and artifacts. The run id is
// immutable once assigned and artifact paths are write-once.
type Run struct {
	RunID     string    `json:"run_id"`
	Topic     string    `json:"topic"`
	Provider  Provider  `json:"provider"`
	Status    RunStatus `json:"status"`
	TexPath   string    `json:"tex_path,omitempty"`
	PdfPath   string    `json:"pdf_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type DetectionSource string

const (
	SourceLatexRun    DetectionSource = "latex_run"
	SourceRawText     DetectionSource = "raw_text"
	SourceUploadedPdf DetectionSource = "uploaded_pdf"
)

// DetectionResult is returned directly to the caller and never persisted.
type DetectionResult struct {
	Score     int             `json:"score"`
	Reasoning string          `json:"reasoning"`
	Source    DetectionSource `json:"source"`
}

type ArtifactKind string

const (
	ArtifactTex ArtifactKind = "tex"
	ArtifactPdf ArtifactKind = "pdf"
)
