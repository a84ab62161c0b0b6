package providers

import (
	"context"
	"fmt"
	"strings"

	"paperforge/internal/config"
	"paperforge/internal/models"
)

type NamedProvider struct {
	Ref      ProviderRef
	Provider LLMProvider
}

// Manager owns the configured provider variants and the detection scoring
// call layered on top of plain generation.
type Manager struct {
	llms           []NamedProvider
	detectMaxChars int
}

func NewManager(cfg config.Config) (*Manager, error) {
	m := &Manager{detectMaxChars: cfg.DetectMaxChars}
	if m.detectMaxChars <= 0 {
		m.detectMaxChars = 20000
	}
	for _, ref := range ParseProviderList(cfg.LLMProviders) {
		p, err := buildProvider(ref, cfg)
		if err != nil {
			return nil, err
		}
		m.llms = append(m.llms, NamedProvider{Ref: ref, Provider: p})
	}
	if len(m.llms) == 0 {
		m.llms = []NamedProvider{{Ref: ProviderRef{Raw: "mock", Name: "mock"}, Provider: NewMockProvider()}}
	}
	return m, nil
}

func buildProvider(ref ProviderRef, cfg config.Config) (LLMProvider, error) {
	switch strings.ToLower(ref.Name) {
	case "mock":
		return NewMockProvider(), nil
	case "gemini":
		return NewGeminiProvider(ref.KeyAlias, cfg.GeminiModel), nil
	case "groq":
		return NewGroqProvider(ref.KeyAlias, cfg.GroqModel), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", ref.Name)
	}
}

func (m *Manager) find(name models.Provider) (LLMProvider, bool) {
	target := strings.ToLower(string(name))
	for i := range m.llms {
		if strings.ToLower(m.llms[i].Ref.Name) == target {
			return m.llms[i].Provider, true
		}
	}
	// A mock-only registry serves every variant, so the service runs keyless.
	for i := range m.llms {
		if strings.ToLower(m.llms[i].Ref.Name) == "mock" {
			return m.llms[i].Provider, true
		}
	}
	return nil, false
}

// Generate performs a single attempt against the selected backend. Failures
// are classified but never retried here.
func (m *Manager) Generate(ctx context.Context, provider models.Provider, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return GenerateResponse{}, ProviderInfo{}, fmt.Errorf("prompt must not be empty")
	}
	p, ok := m.find(provider)
	if !ok {
		return GenerateResponse{}, ProviderInfo{}, fmt.Errorf("provider %q not configured", provider)
	}
	return p.Generate(ctx, req)
}

const detectSystemPrompt = "You are an AI-writing detector. Given the text of a research paper (LaTeX or plain text), " +
	"estimate how likely the document was AI-generated. First, think privately if needed. Then OUTPUT ONLY ONE LINE " +
	"in the exact format: SCORE:<0-100>; REASON:<brief reason>. Do NOT add extra text, markdown, or XML tags. " +
	"If you find any -- or text-based emoticons like :) or :( or XD, flag the text as AI-generated with a score " +
	"around 80, but do NOT mention these symbols in the reason. Instead, give a generic explanation such as strict " +
	"phrasing, lack of natural flow, or repetitive patterns. Otherwise, flag normally as human or AI based on content."

// Score asks the selected backend how likely the content is AI-generated.
// Content is truncated to stay under backend token limits.
func (m *Manager) Score(ctx context.Context, provider models.Provider, content string, source models.DetectionSource) (models.DetectionResult, error) {
	if strings.TrimSpace(content) == "" {
		return models.DetectionResult{}, fmt.Errorf("detection content must not be empty")
	}
	if len(content) > m.detectMaxChars {
		content = content[:m.detectMaxChars]
	}
	resp, _, err := m.Generate(ctx, provider, GenerateRequest{
		Operation: "detect",
		System:    detectSystemPrompt,
		Prompt:    content,
	})
	if err != nil {
		return models.DetectionResult{}, err
	}
	score, reasoning, err := ParseDetection(resp.Text)
	if err != nil {
		return models.DetectionResult{}, wrap(err)
	}
	return models.DetectionResult{Score: score, Reasoning: reasoning, Source: source}, nil
}
