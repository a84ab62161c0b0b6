// Package compiler turns LaTeX source into PDF bytes through an ordered
// chain of compilation strategies.
package compiler

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"paperforge/internal/config"
)

const jobName = "paper"

// Strategy is one way of running a LaTeX engine over a working directory
// containing paper.tex. Each strategy is tried at most once per request.
type Strategy interface {
	Name() string
	Available() bool
	Compile(ctx context.Context, workDir string) ([]byte, error)
}

// CompilationError reports that every strategy failed, carrying the captured
// engine log of the last attempt.
type CompilationError struct {
	Log string
}

func (e *CompilationError) Error() string {
	return "latex compilation failed"
}

type Bridge struct {
	strategies []Strategy
	timeout    time.Duration
}

func New(cfg config.Config) *Bridge {
	b := &Bridge{timeout: time.Duration(cfg.CompileTimeoutSecs) * time.Second}
	if b.timeout <= 0 {
		b.timeout = 180 * time.Second
	}
	for _, name := range strings.Split(cfg.CompileStrategies, "|") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "pdflatex":
			b.strategies = append(b.strategies, &PdflatexStrategy{})
		case "docker":
			b.strategies = append(b.strategies, &DockerStrategy{Image: cfg.TexliveImage})
		case "":
		default:
			log.Printf("compiler: ignoring unknown strategy %q", name)
		}
	}
	return b
}

// NewWithStrategies is the injection point used by tests and callers that
// manage their own strategy chain.
func NewWithStrategies(timeout time.Duration, strategies ...Strategy) *Bridge {
	return &Bridge{strategies: strategies, timeout: timeout}
}

// Compile writes texSource into a scoped temp directory, tries each available
// strategy in order, and returns the produced PDF bytes. The directory is
// removed on every path. Failure of all strategies surfaces as
// *CompilationError with the last engine log.
func (b *Bridge) Compile(ctx context.Context, texSource string) ([]byte, error) {
	workDir, err := os.MkdirTemp("", "paperforge-compile-*")
	if err != nil {
		return nil, fmt.Errorf("create compile dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	texPath := filepath.Join(workDir, jobName+".tex")
	if err := os.WriteFile(texPath, []byte(texSource), 0o644); err != nil {
		return nil, fmt.Errorf("write tex source: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	lastLog := "no latex toolchain available"
	for _, s := range b.strategies {
		if !s.Available() {
			continue
		}
		pdf, err := s.Compile(ctx, workDir)
		if err == nil {
			return pdf, nil
		}
		lastLog = fmt.Sprintf("%s: %v", s.Name(), err)
		log.Printf("compiler: strategy %s failed, trying next", s.Name())
	}
	return nil, &CompilationError{Log: lastLog}
}
