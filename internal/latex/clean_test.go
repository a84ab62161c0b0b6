package latex

import (
	"strings"
	"testing"

	"paperforge/internal/util"

	"github.com/stretchr/testify/require"
)

const minimalDoc = "\\documentclass{article}\n\\begin{document}\nHello\n\\end{document}"

func TestCleanStripsCodeFences(t *testing.T) {
	out, err := Clean("```latex\n" + minimalDoc + "\n```")
	require.NoError(t, err)
	require.Equal(t, minimalDoc, out)
}

func TestCleanTrimsSurroundingProse(t *testing.T) {
	raw := "Sure! Here is your paper:\n\n" + minimalDoc + "\n\nLet me know if you need changes."
	out, err := Clean(raw)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, `\documentclass`))
	require.True(t, strings.HasSuffix(out, `\end{document}`))
	require.NotContains(t, out, "Sure!")
	require.NotContains(t, out, "Let me know")
}

func TestCleanAppendsMissingEndDocument(t *testing.T) {
	out, err := Clean("\\documentclass{article}\n\\begin{document}\ntruncated output")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(out, `\end{document}`))
}

func TestCleanNoLatexFound(t *testing.T) {
	_, err := Clean("I cannot produce a paper on that topic.")
	require.ErrorIs(t, err, util.ErrNoLatexFound)
}

func TestCleanRemovesImageContent(t *testing.T) {
	raw := "\\documentclass{article}\n\\begin{document}\n" +
		"\\begin{figure}\n\\includegraphics[width=\\textwidth]{plot.png}\n\\label{fig:plot}\n\\end{figure}\n" +
		"As shown in Figure~\\ref{fig:plot}, results improve.\n" +
		"\\end{document}"
	out, err := Clean(raw)
	require.NoError(t, err)
	require.NotContains(t, out, `\includegraphics`)
	require.NotContains(t, out, `\begin{figure}`)
	require.Contains(t, out, "As shown in the analysis, results improve.")
}

func TestCleanEscapesBibliographyAmpersands(t *testing.T) {
	raw := "\\documentclass{article}\n\\begin{document}\nBody with \\cite{smith2020}.\n" +
		"\\begin{thebibliography}{9}\n" +
		"\\bibitem{smith2020} Smith, A. \\& Jones, B. (2020). Signals & Systems. Journal, 1(2), 3-4.\n" +
		"\\end{thebibliography}\n\\end{document}"
	out, err := Clean(raw)
	require.NoError(t, err)
	require.Contains(t, out, `Signals \& Systems`)
	require.NotContains(t, out, `\\&`+` Jones`) // already-escaped stays single-escaped
	require.Contains(t, out, `\citep{smith2020}`)
	require.NotContains(t, out, `\cite{smith2020}`)
}

func TestCleanIdempotentOnCleanDocument(t *testing.T) {
	once, err := Clean(minimalDoc)
	require.NoError(t, err)
	twice, err := Clean(once)
	require.NoError(t, err)
	require.Equal(t, once, twice)
}

func TestSystemInstructionCarriesTemplate(t *testing.T) {
	sys := SystemInstruction()
	require.Contains(t, sys, "TEMPLATE BEGIN")
	require.Contains(t, sys, `\documentclass`)
	require.Contains(t, UserPrompt("Quantum Error Correction"), "Quantum Error Correction")
}
