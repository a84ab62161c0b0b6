package latex

import (
	"regexp"
	"strings"

	"paperforge/internal/util"
)

var (
	includeGraphics = regexp.MustCompile(`\\includegraphics(\[[^\]]*\])?\{[^}]*\}`)
	figureEnv       = regexp.MustCompile(`(?s)\\begin\{figure\*?\}.*?\\end\{figure\*?\}`)
	figureRef       = regexp.MustCompile(`(?i)figure~?\\ref\{[^}]+\}`)
	figRef          = regexp.MustCompile(`\\ref\{fig:[^}]+\}`)
	figLabel        = regexp.MustCompile(`\\label\{fig:[^}]+\}`)
	citeCmd         = regexp.MustCompile(`\\cite\{([^}]+)\}`)
	tripleBlank     = regexp.MustCompile(`\n\s*\n\s*\n+`)
)

const (
	docClassMarker = `\documentclass`
	endDocMarker   = `\end{document}`
)

// Clean turns raw provider output into a syntactically plausible standalone
// LaTeX document: code fences and surrounding prose are stripped, image
// content is removed (generated papers are text-and-math only), and common
// bibliography mistakes are repaired. Returns ErrNoLatexFound when the output
// carries no \documentclass marker at all.
func Clean(raw string) (string, error) {
	text := stripCodeFences(raw)

	start := strings.Index(text, docClassMarker)
	if start < 0 {
		return "", util.ErrNoLatexFound
	}
	text = text[start:]
	if end := strings.LastIndex(text, endDocMarker); end >= 0 {
		text = text[:end+len(endDocMarker)]
	} else {
		text = strings.TrimSpace(text) + "\n" + endDocMarker
	}

	text = removeImages(text)
	text = fixBibliography(text)
	text = tripleBlank.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text), nil
}

func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return text
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) > 0 && strings.HasPrefix(lines[0], "```") {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func removeImages(text string) string {
	text = includeGraphics.ReplaceAllString(text, "")
	text = figureEnv.ReplaceAllString(text, "")
	text = figureRef.ReplaceAllString(text, "the analysis")
	text = figRef.ReplaceAllString(text, "the analysis")
	text = figLabel.ReplaceAllString(text, "")
	return text
}

// fixBibliography escapes bare ampersands inside the thebibliography
// environment and normalizes \cite to natbib's numerical \citep.
func fixBibliography(text string) string {
	const begin = `\begin{thebibliography}`
	const end = `\end{thebibliography}`
	if i := strings.Index(text, begin); i >= 0 {
		if j := strings.Index(text[i:], end); j >= 0 {
			body := text[i : i+j]
			text = text[:i] + escapeAmpersands(body) + text[i+j:]
		}
	}
	return citeCmd.ReplaceAllString(text, `\citep{$1}`)
}

func escapeAmpersands(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prev := rune(0)
	for _, ch := range s {
		if ch == '&' && prev != '\\' {
			b.WriteString(`\&`)
		} else {
			b.WriteRune(ch)
		}
		prev = ch
	}
	return b.String()
}
