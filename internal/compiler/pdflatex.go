package compiler

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// PdflatexStrategy runs a locally installed pdflatex. Two passes so
// cross-references and the table of contents resolve.
type PdflatexStrategy struct{}

func (s *PdflatexStrategy) Name() string { return "pdflatex" }

func (s *PdflatexStrategy) Available() bool {
	_, err := exec.LookPath("pdflatex")
	return err == nil
}

func (s *PdflatexStrategy) Compile(ctx context.Context, workDir string) ([]byte, error) {
	args := []string{
		"-interaction=nonstopmode",
		"-halt-on-error",
		"-output-directory=" + workDir,
		"-jobname=" + jobName,
		filepath.Join(workDir, jobName+".tex"),
	}
	var out []byte
	for pass := 0; pass < 2; pass++ {
		cmd := exec.CommandContext(ctx, "pdflatex", args...)
		cmd.Dir = workDir
		var err error
		out, err = cmd.CombinedOutput()
		if err != nil {
			// Bibliography warnings exit non-zero on the first pass but can
			// still yield a usable PDF; the existence check below decides.
			continue
		}
	}
	return readProducedPDF(workDir, out)
}

func readProducedPDF(workDir string, engineLog []byte) ([]byte, error) {
	pdfPath := filepath.Join(workDir, jobName+".pdf")
	pdf, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("no pdf produced: %s", string(engineLog))
	}
	return pdf, nil
}
