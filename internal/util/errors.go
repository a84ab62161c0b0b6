package util

import "errors"

var (
	ErrInvalidTopic    = errors.New("topic must be at least 3 characters")
	ErrInputTooShort   = errors.New("detection input must be at least 50 characters")
	ErrInvalidProvider = errors.New("unsupported provider")

	ErrNoLatexFound      = errors.New("no LaTeX document found in model output")
	ErrNoExtractableText = errors.New("no extractable text found in PDF")

	ErrRunNotFound      = errors.New("run not found")
	ErrArtifactNotReady = errors.New("artifact not ready")
)
