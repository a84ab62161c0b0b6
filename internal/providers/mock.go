package providers

import (
	"context"
	"strings"
)

// MockProvider returns deterministic output per operation so the service and
// its tests run without any provider keys configured.
type MockProvider struct{}

func NewMockProvider() *MockProvider { return &MockProvider{} }

const mockPaper = `\documentclass{article}
\title{Mock Research Paper}
\author{Anonymous}
\begin{document}
\maketitle
\section{Introduction}
Deterministic mock content -- replace with a real provider for semantic quality :)
\end{document}`

func (m *MockProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	_ = ctx
	info := ProviderInfo{Name: "mock", Model: "mock-llm-v1"}
	op := strings.ToLower(req.Operation)
	switch {
	case strings.Contains(op, "detect"):
		return GenerateResponse{Text: "SCORE:80; REASON:Repetitive phrasing and uniform sentence structure."}, info, nil
	case strings.Contains(op, "paper"):
		return GenerateResponse{Text: "```latex\n" + mockPaper + "\n```"}, info, nil
	default:
		return GenerateResponse{Text: "Mock response."}, info, nil
	}
}
