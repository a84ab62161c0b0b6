package providers

import (
	"context"
	"testing"

	"paperforge/internal/config"
	"paperforge/internal/models"

	"github.com/stretchr/testify/require"
)

func TestManagerMockServesAllVariants(t *testing.T) {
	m, err := NewManager(config.Config{LLMProviders: "mock"})
	require.NoError(t, err)

	for _, p := range []models.Provider{models.ProviderGemini, models.ProviderGroq} {
		resp, info, err := m.Generate(context.Background(), p, GenerateRequest{Operation: "paper_generate", Prompt: "topic"})
		require.NoError(t, err)
		require.Equal(t, "mock", info.Name)
		require.Contains(t, resp.Text, `\documentclass`)
	}
}

func TestManagerRejectsEmptyPrompt(t *testing.T) {
	m, err := NewManager(config.Config{LLMProviders: "mock"})
	require.NoError(t, err)
	_, _, err = m.Generate(context.Background(), models.ProviderGroq, GenerateRequest{Operation: "paper_generate", Prompt: "  "})
	require.Error(t, err)
}

func TestManagerScoreParsesMockOutput(t *testing.T) {
	m, err := NewManager(config.Config{LLMProviders: "mock", DetectMaxChars: 100})
	require.NoError(t, err)
	res, err := m.Score(context.Background(), models.ProviderGroq, "some suspiciously uniform text that is long enough", models.SourceRawText)
	require.NoError(t, err)
	require.Equal(t, 80, res.Score)
	require.Equal(t, models.SourceRawText, res.Source)
	require.NotEmpty(t, res.Reasoning)
}

func TestManagerUnknownProviderFails(t *testing.T) {
	_, err := NewManager(config.Config{LLMProviders: "anthropic"})
	require.Error(t, err)
}

func TestParseProviderListAliases(t *testing.T) {
	refs := ParseProviderList("gemini | groq:team2")
	require.Len(t, refs, 2)
	require.Equal(t, "gemini", refs[0].Name)
	require.Equal(t, "groq", refs[1].Name)
	require.Equal(t, "team2", refs[1].KeyAlias)
}
