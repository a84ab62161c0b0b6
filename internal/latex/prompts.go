package latex

import (
	_ "embed"
)

//go:embed template.tex
var paperTemplate string

// SystemInstruction is the generation system prompt: LaTeX only, template
// followed exactly, no images, numerical natbib citations.
func SystemInstruction() string {
	return "You are a professional research writing assistant that outputs LaTeX only. " +
		"Follow the provided LaTeX template exactly. Replace bracketed placeholders with concrete, topic-relevant content. " +
		"Output must be a single valid LaTeX document starting with \\documentclass and ending with \\end{document}. " +
		"Do NOT include any explanations, markdown, code fences, or commentary. " +
		"Do NOT include any images, figures, or \\includegraphics commands. " +
		"Do NOT invent citations; use neutral placeholders in the bibliography consistent with the template if needed. " +
		"In bibliography entries, always escape & characters as \\& (backslash-ampersand). " +
		"Use numerical citation style with natbib: \\citep{key} for parenthetical and \\citet{key} for textual citations. " +
		"Bibliography entries should follow the numerical format: Author, A. (Year). Title. Journal, Volume(Issue), Pages. " +
		"Focus on text content and mathematical equations only. " +
		"Ensure the document compiles with standard LaTeX engines and follows proper LaTeX syntax.\n\n" +
		"TEMPLATE BEGIN\n" + paperTemplate + "\nTEMPLATE END"
}

// UserPrompt builds the per-topic generation request.
func UserPrompt(topic string) string {
	return "Generate a complete research paper in LaTeX strictly following the template. " +
		"Topic: " + topic + ". " +
		"Ensure all placeholders are replaced with detailed, coherent content relevant to this topic. " +
		"Do NOT include any figures, images, or \\includegraphics commands. " +
		"Focus on comprehensive text content and mathematical equations only. " +
		"Do NOT include any tables or tabular environments."
}
