// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns downloaded .docx templates into PDF files through a
// pluggable conversion backend.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/template-scraper/internal/fsutil"
	"github.com/pdiddy/template-scraper/internal/output"
)

const (
	sourceExtension = ".docx"
	targetExtension = ".pdf"
)

// ErrConversion wraps a backend failure for a single document.
var ErrConversion = errors.New("conversion failed")

// Converter transforms the document at inputPath into a PDF at outputPath.
// Backends (LibreOffice, container image) implement this interface.
type Converter interface {
	Convert(ctx context.Context, inputPath, outputPath string) error
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(ctx context.Context, inputPath, outputPath string) error

// Convert calls f.
func (f ConverterFunc) Convert(ctx context.Context, inputPath, outputPath string) error {
	return f(ctx, inputPath, outputPath)
}

// BatchResult holds the outcome of a conversion sweep.
type BatchResult struct {
	// Converted lists the PDF files written, in directory order.
	Converted []string

	// Ignored counts entries of the source directory without the .docx extension.
	Ignored int
}

// Sweeper converts every .docx file of a source directory into an output directory.
type Sweeper struct {
	conv      Converter
	sourceDir string
	outputDir string
	printer   *output.Printer
}

// NewSweeper returns a Sweeper reading from sourceDir and writing to outputDir.
func NewSweeper(c Converter, sourceDir, outputDir string, p *output.Printer) *Sweeper {
	if p == nil {
		p = output.Discard()
	}
	return &Sweeper{conv: c, sourceDir: sourceDir, outputDir: outputDir, printer: p}
}

// ConvertAll converts each .docx file of the source directory, one at a time,
// into a .pdf of the same base name in the output directory. The output
// directory is created if missing. The first failed conversion stops the
// sweep; the returned BatchResult lists what was converted before it.
func (s *Sweeper) ConvertAll(ctx context.Context) (BatchResult, error) {
	var result BatchResult
	err := fsutil.WithDir(s.outputDir, s.reportMissingDir, func() error {
		var err error
		result, err = s.sweep(ctx)
		return err
	})
	return result, err
}

func (s *Sweeper) reportMissingDir(dir string) {
	s.printer.Warning("Folder %s does not exist!", dir)
	s.printer.Info("Creating folder...")
}

func (s *Sweeper) sweep(ctx context.Context) (BatchResult, error) {
	var result BatchResult
	entries, err := os.ReadDir(s.sourceDir)
	if err != nil {
		return result, fmt.Errorf("listing %s: %w", s.sourceDir, err)
	}

	log := zerolog.Ctx(ctx)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, sourceExtension) {
			result.Ignored++
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		in := filepath.Join(s.sourceDir, name)
		out := filepath.Join(s.outputDir, strings.TrimSuffix(name, sourceExtension)+targetExtension)
		if err := s.conv.Convert(ctx, in, out); err != nil {
			return result, fmt.Errorf("%w: %s: %w", ErrConversion, name, err)
		}
		log.Debug().Str("input", in).Str("output", out).Msg("Converted template")
		result.Converted = append(result.Converted, out)
	}
	return result, nil
}
