// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/template-scraper/internal/container"
)

// ContainerConverter converts documents by piping them through a container
// image that reads a .docx on stdin and writes a PDF to stdout.
type ContainerConverter struct {
	runtime container.Runtime
	image   string
}

// NewContainerConverter returns a converter running image on rt. It verifies
// that the image exists locally.
func NewContainerConverter(ctx context.Context, rt container.Runtime, image string) (*ContainerConverter, error) {
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("conversion image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerConverter{runtime: rt, image: image}, nil
}

// Convert pipes inputPath through the image and writes the output to
// outputPath via a temporary file.
func (c *ContainerConverter) Convert(ctx context.Context, inputPath, outputPath string) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inputPath, err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(outputPath), ".convert-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	runErr := c.runtime.Run(ctx, c.image, in, tmp)
	info, statErr := tmp.Stat()
	closeErr := tmp.Close()
	switch {
	case runErr != nil:
		os.Remove(tmpPath)
		return fmt.Errorf("converting %s with %s: %w", inputPath, c.image, runErr)
	case statErr != nil:
		os.Remove(tmpPath)
		return fmt.Errorf("inspecting output: %w", statErr)
	case closeErr != nil:
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	case info.Size() == 0:
		os.Remove(tmpPath)
		return fmt.Errorf("%s produced empty output for %s", c.image, inputPath)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
