package compiler

import (
	"context"
	"os/exec"
)

// DockerStrategy compiles inside a texlive container, for hosts without a
// local LaTeX toolchain. The work dir is bind-mounted at /workdir so paths
// mirror the host layout.
type DockerStrategy struct {
	Image string
}

func (s *DockerStrategy) Name() string { return "docker" }

func (s *DockerStrategy) Available() bool {
	_, err := exec.LookPath("docker")
	return err == nil
}

func (s *DockerStrategy) Compile(ctx context.Context, workDir string) ([]byte, error) {
	image := s.Image
	if image == "" {
		image = "texlive/texlive:latest"
	}
	args := []string{
		"run", "--rm",
		"-v", workDir + ":/workdir",
		"-w", "/workdir",
		image,
		"pdflatex", "-interaction=nonstopmode", "-halt-on-error",
		"-jobname", jobName,
		jobName + ".tex",
	}
	var out []byte
	for pass := 0; pass < 2; pass++ {
		cmd := exec.CommandContext(ctx, "docker", args...)
		var err error
		out, err = cmd.CombinedOutput()
		if err != nil {
			continue
		}
	}
	return readProducedPDF(workDir, out)
}
