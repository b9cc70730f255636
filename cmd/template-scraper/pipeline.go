// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/template-scraper/internal/catalog"
	"github.com/pdiddy/template-scraper/internal/container"
	"github.com/pdiddy/template-scraper/internal/convert"
	"github.com/pdiddy/template-scraper/internal/fetch"
	"github.com/pdiddy/template-scraper/internal/httputil"
	"github.com/pdiddy/template-scraper/internal/pipeline"
	"github.com/pdiddy/template-scraper/pkg/types"
)

// loadConfig merges defaults, config file, environment, and flags.
func loadConfig() (types.PipelineConfig, error) {
	cfg := types.DefaultPipelineConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	// Unmarshal merges into the default slice; offsets replace it.
	if viper.IsSet("catalog.offsets") {
		cfg.Catalog.Offsets = viper.GetIntSlice("catalog.offsets")
	}
	if cfg.Catalog.CriteriaFile != "" {
		criteria, err := catalog.LoadCriteria(cfg.Catalog.CriteriaFile, cfg.Catalog.Criteria)
		if err != nil {
			return cfg, err
		}
		cfg.Catalog.Criteria = criteria
	}
	if len(cfg.Catalog.Offsets) == 0 {
		return cfg, fmt.Errorf("no catalog offsets configured")
	}
	return cfg, nil
}

// newConverter builds the configured conversion backend.
func newConverter(ctx context.Context, cfg types.ConversionConfig) (convert.Converter, error) {
	var conv convert.Converter
	switch cfg.Backend {
	case types.BackendOffice:
		c, err := convert.NewOfficeConverter(cfg.Soffice)
		if err != nil {
			return nil, err
		}
		conv = c
	case types.BackendContainer:
		rt, err := container.DetectRuntime(ctx)
		if err != nil {
			return nil, err
		}
		c, err := convert.NewContainerConverter(ctx, rt, cfg.Image)
		if err != nil {
			return nil, err
		}
		conv = c
	default:
		return nil, fmt.Errorf("unknown conversion backend %q: must be %s or %s",
			cfg.Backend, types.BackendOffice, types.BackendContainer)
	}
	if cfg.Validate {
		conv = convert.NewValidatingConverter(conv)
	}
	return conv, nil
}

// newDriver wires the pipeline stages. The converter is only built when
// withConverter is set, so the fetch stage runs without a conversion backend.
func newDriver(ctx context.Context, cfg types.PipelineConfig, withConverter bool) (*pipeline.Driver, error) {
	hc := httputil.NewClient(cfg.HTTP)

	var sweeper pipeline.Sweeper
	if withConverter {
		conv, err := newConverter(ctx, cfg.Conversion)
		if err != nil {
			return nil, fmt.Errorf("convert: %w", err)
		}
		sweeper = convert.NewSweeper(conv, cfg.Fetch.DownloadDir, cfg.Conversion.OutputDir, printer)
	}

	return pipeline.New(
		catalog.NewClient(hc, cfg.Catalog, cfg.HTTP),
		fetch.New(hc, cfg.Fetch, cfg.HTTP, printer),
		sweeper,
		cfg.Catalog.Offsets,
		printer,
	), nil
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	d, err := newDriver(cmd.Context(), cfg, true)
	if err != nil {
		return err
	}
	summary, err := d.Run(cmd.Context())
	if err != nil {
		return err
	}
	printer.Success("%d downloaded, %d skipped, %d converted", summary.Downloaded, summary.Skipped, summary.Converted)
	return nil
}
