// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives a scrape run: query and fetch each catalog page in
// turn, then convert everything that was downloaded.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/pdiddy/template-scraper/internal/convert"
	"github.com/pdiddy/template-scraper/internal/fetch"
	"github.com/pdiddy/template-scraper/internal/output"
	"github.com/pdiddy/template-scraper/pkg/types"
)

// Catalog returns the templates of one search page.
type Catalog interface {
	FetchPage(ctx context.Context, offset int) ([]types.TemplateRef, error)
}

// Fetcher downloads every template of a page and returns once all are done.
type Fetcher interface {
	FetchPage(ctx context.Context, refs []types.TemplateRef) ([]fetch.Result, error)
}

// Sweeper converts the downloaded templates.
type Sweeper interface {
	ConvertAll(ctx context.Context) (convert.BatchResult, error)
}

// PageSummary describes one query and fetch round.
type PageSummary struct {
	Page       int
	Offset     int
	Templates  int
	Downloaded int
	Skipped    int
}

// Summary describes a pipeline run.
type Summary struct {
	RunID      string
	Pages      []PageSummary
	Downloaded int
	Skipped    int
	Converted  int
}

// Driver sequences the catalog, fetch, and convert phases.
type Driver struct {
	catalog Catalog
	fetcher Fetcher
	sweeper Sweeper
	offsets []int
	printer *output.Printer
}

// New returns a Driver that queries the given page offsets in order.
func New(c Catalog, f Fetcher, s Sweeper, offsets []int, p *output.Printer) *Driver {
	if p == nil {
		p = output.Discard()
	}
	return &Driver{
		catalog: c,
		fetcher: f,
		sweeper: s,
		offsets: append([]int(nil), offsets...),
		printer: p,
	}
}

// Run executes the whole pipeline. Each page is queried only after every
// fetch of the previous page finished, and conversion starts only after the
// last page. The first error stops the run; it names the phase and page.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	ctx, summary := d.begin(ctx)

	if err := d.fetchPages(ctx, &summary); err != nil {
		return summary, err
	}
	if err := d.convert(ctx, &summary); err != nil {
		return summary, err
	}

	d.printer.Success("Done!")
	return summary, nil
}

// Fetch runs only the query and fetch phase.
func (d *Driver) Fetch(ctx context.Context) (Summary, error) {
	ctx, summary := d.begin(ctx)
	if err := d.fetchPages(ctx, &summary); err != nil {
		return summary, err
	}
	d.printer.Success("Done!")
	return summary, nil
}

// Convert runs only the conversion phase.
func (d *Driver) Convert(ctx context.Context) (Summary, error) {
	ctx, summary := d.begin(ctx)
	if err := d.convert(ctx, &summary); err != nil {
		return summary, err
	}
	d.printer.Success("Done!")
	return summary, nil
}

func (d *Driver) begin(ctx context.Context) (context.Context, Summary) {
	runID := xid.New().String()
	log := zerolog.Ctx(ctx).With().Str("run_id", runID).Logger()
	d.printer.Info("Starting scraper...")
	return log.WithContext(ctx), Summary{RunID: runID}
}

func (d *Driver) fetchPages(ctx context.Context, summary *Summary) error {
	for i, offset := range d.offsets {
		page := i + 1

		refs, err := d.catalog.FetchPage(ctx, offset)
		if err != nil {
			return fmt.Errorf("catalog query at offset %d: %w", offset, err)
		}
		d.printer.Info("Downloading %d resumes from page %d...", len(refs), page)

		results, err := d.fetcher.FetchPage(ctx, refs)
		ps := PageSummary{Page: page, Offset: offset, Templates: len(refs)}
		for _, r := range results {
			switch r.Status {
			case types.FetchDownloaded:
				ps.Downloaded++
			case types.FetchSkipped:
				ps.Skipped++
				d.printer.Warning("skipped %s: %s", r.Ref.Slug, r.Reason)
			}
		}
		summary.Pages = append(summary.Pages, ps)
		summary.Downloaded += ps.Downloaded
		summary.Skipped += ps.Skipped
		if err != nil {
			return fmt.Errorf("fetch page %d (offset %d): %w", page, offset, err)
		}

		zerolog.Ctx(ctx).Info().
			Int("page", page).
			Int("offset", offset).
			Int("downloaded", ps.Downloaded).
			Int("skipped", ps.Skipped).
			Msg("Page finished")
		d.printer.Info("Finished downloading %d resumes from page %d", len(refs), page)
	}
	return nil
}

func (d *Driver) convert(ctx context.Context, summary *Summary) error {
	d.printer.Info("Converting docx to pdf...")
	result, err := d.sweeper.ConvertAll(ctx)
	summary.Converted = len(result.Converted)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	return nil
}
