// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// Keep pdfcpu from installing its config and fonts under the user's home.
	api.DisableConfigDir()
}

// ValidatingConverter runs another converter and checks that its output is
// a structurally valid PDF. Invalid output is removed.
type ValidatingConverter struct {
	next     Converter
	validate func(path string) error
}

// NewValidatingConverter wraps next with pdfcpu validation in relaxed mode.
func NewValidatingConverter(next Converter) *ValidatingConverter {
	return &ValidatingConverter{next: next, validate: ValidatePDF}
}

// Convert runs the wrapped converter, then validates outputPath.
func (v *ValidatingConverter) Convert(ctx context.Context, inputPath, outputPath string) error {
	if err := v.next.Convert(ctx, inputPath, outputPath); err != nil {
		return err
	}
	if err := v.validate(outputPath); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("invalid PDF for %s: %w", inputPath, err)
	}
	return nil
}

// ValidatePDF checks the PDF at path with pdfcpu.
func ValidatePDF(path string) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return api.ValidateFile(path, conf)
}
