// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// commandRunner abstracts command execution for testing.
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// OfficeConverter converts documents with a local LibreOffice installation
// running headless.
type OfficeConverter struct {
	binary string
	run    commandRunner
}

// NewOfficeConverter returns a converter that invokes binary (usually
// "soffice"). It fails when binary is not on PATH.
func NewOfficeConverter(binary string) (*OfficeConverter, error) {
	if _, err := exec.LookPath(binary); err != nil {
		return nil, fmt.Errorf("LibreOffice binary %q not available: %w", binary, err)
	}
	return &OfficeConverter{binary: binary, run: execRunner{}}, nil
}

// Convert writes a PDF rendering of inputPath to outputPath. LibreOffice
// names its output after the input, so it converts into a scratch directory
// next to outputPath and renames the result. Each call uses its own profile
// directory so a running LibreOffice instance does not block it.
func (o *OfficeConverter) Convert(ctx context.Context, inputPath, outputPath string) error {
	scratch, err := os.MkdirTemp(filepath.Dir(outputPath), ".soffice-*")
	if err != nil {
		return fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	profile, err := filepath.Abs(filepath.Join(scratch, "profile"))
	if err != nil {
		return fmt.Errorf("resolving profile directory: %w", err)
	}

	args := []string{
		"-env:UserInstallation=file://" + filepath.ToSlash(profile),
		"--headless",
		"--convert-to", "pdf",
		"--outdir", scratch,
		inputPath,
	}
	if out, err := o.run.Run(ctx, o.binary, args...); err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("running %s: %w: %s", o.binary, err, msg)
		}
		return fmt.Errorf("running %s: %w", o.binary, err)
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	produced := filepath.Join(scratch, base+targetExtension)
	if _, err := os.Stat(produced); err != nil {
		return fmt.Errorf("%s produced no PDF for %s", o.binary, inputPath)
	}
	if err := os.Rename(produced, outputPath); err != nil {
		return fmt.Errorf("moving %s: %w", produced, err)
	}
	return nil
}
