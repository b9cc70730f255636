// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads template documents from their gallery landing pages.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/template-scraper/internal/fsutil"
	"github.com/pdiddy/template-scraper/internal/httputil"
	"github.com/pdiddy/template-scraper/internal/output"
	"github.com/pdiddy/template-scraper/pkg/types"
)

const (
	landingPath   = "/en-us/template/"
	docxExtension = ".docx"
)

// ErrNoDownloadLink is returned when a landing page does not embed a download
// affordance. No file is written for the template.
var ErrNoDownloadLink = errors.New("download link not found in landing page")

// downloadLinkPattern matches the download affordance embedded in the landing
// page's serialized page data.
var downloadLinkPattern = regexp.MustCompile(`,\{"__typename":"TemplateAffordance","link":"(.*)","type":"DOWNLOAD"\}\]`)

// Result holds the outcome of fetching one template.
type Result struct {
	Ref    types.TemplateRef
	Status types.FetchStatus

	// Path is the written file, set when Status is downloaded.
	Path string

	// Reason explains a skip or failure.
	Reason string
}

// Fetcher resolves landing pages, extracts download links, and saves the
// documents into the download directory.
type Fetcher struct {
	http    *http.Client
	cfg     types.FetchConfig
	httpCfg types.HTTPConfig
	printer *output.Printer
}

// New returns a Fetcher. Directory bootstrap messages go to p.
func New(hc *http.Client, cfg types.FetchConfig, httpCfg types.HTTPConfig, p *output.Printer) *Fetcher {
	if p == nil {
		p = output.Discard()
	}
	return &Fetcher{http: hc, cfg: cfg, httpCfg: httpCfg, printer: p}
}

// LandingURL returns the landing page URL for ref.
func (f *Fetcher) LandingURL(ref types.TemplateRef) string {
	return strings.TrimRight(f.cfg.BaseURL, "/") + landingPath + url.PathEscape(ref.Slug+"-"+ref.ID)
}

// FilePath returns where the document for ref is saved.
func (f *Fetcher) FilePath(ref types.TemplateRef) string {
	return filepath.Join(f.cfg.DownloadDir, ref.Slug+docxExtension)
}

// Fetch downloads the document for ref. A non-200 response from the landing
// page or the download link yields a skipped Result and no error. A landing
// page without a download link yields ErrNoDownloadLink. If the download
// directory is missing it is created and the fetch proceeds.
func (f *Fetcher) Fetch(ctx context.Context, ref types.TemplateRef) (Result, error) {
	var res Result
	err := fsutil.WithDir(f.cfg.DownloadDir, f.reportMissingDir, func() error {
		var err error
		res, err = f.fetch(ctx, ref)
		return err
	})
	if err != nil {
		return Result{Ref: ref, Status: types.FetchFailed, Reason: err.Error()},
			fmt.Errorf("fetching %s (%s): %w", ref.Slug, ref.ID, err)
	}
	return res, nil
}

// FetchPage fetches every ref concurrently and waits for all of them to
// finish. Results are returned in ref order. The returned error joins the
// errors of every failed ref; results of the other refs are still returned.
func (f *Fetcher) FetchPage(ctx context.Context, refs []types.TemplateRef) ([]Result, error) {
	results := make([]Result, len(refs))
	errs := make([]error, len(refs))

	var g errgroup.Group
	if f.cfg.Concurrency > 0 {
		g.SetLimit(f.cfg.Concurrency)
	}
	for i, ref := range refs {
		g.Go(func() error {
			results[i], errs[i] = f.Fetch(ctx, ref)
			return nil
		})
	}
	g.Wait()

	return results, errors.Join(errs...)
}

func (f *Fetcher) reportMissingDir(dir string) {
	f.printer.Warning("Folder %s does not exist!", dir)
	f.printer.Info("Creating folder...")
}

func (f *Fetcher) fetch(ctx context.Context, ref types.TemplateRef) (Result, error) {
	log := zerolog.Ctx(ctx).With().Str("template_id", ref.ID).Str("slug", ref.Slug).Logger()

	landingURL := f.LandingURL(ref)
	body, status, err := f.get(ctx, landingURL)
	if err != nil {
		return Result{}, fmt.Errorf("landing page: %w", err)
	}
	if status != http.StatusOK {
		log.Debug().Int("status", status).Msg("Landing page unavailable, skipping")
		return skipped(ref, "landing page", landingURL, status), nil
	}

	link, err := ExtractDownloadLink(body)
	if err != nil {
		return Result{}, err
	}

	doc, status, err := f.get(ctx, link)
	if err != nil {
		return Result{}, fmt.Errorf("download: %w", err)
	}
	if status != http.StatusOK {
		log.Debug().Int("status", status).Msg("Download unavailable, skipping")
		return skipped(ref, "download", link, status), nil
	}

	path := f.FilePath(ref)
	if err := writeFile(path, doc); err != nil {
		return Result{}, fmt.Errorf("saving %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("bytes", len(doc)).Msg("Saved template")

	return Result{Ref: ref, Status: types.FetchDownloaded, Path: path}, nil
}

// get returns the body and status code of a GET request. The body is only
// read when the status is 200.
func (f *Fetcher) get(ctx context.Context, u string) ([]byte, int, error) {
	resp, err := httputil.Get(ctx, f.http, u, f.httpCfg)
	if err != nil {
		return nil, 0, err
	}
	defer httputil.Drain(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading %s: %w", u, err)
	}
	return body, resp.StatusCode, nil
}

func skipped(ref types.TemplateRef, step, u string, status int) Result {
	se := &httputil.StatusError{Method: http.MethodGet, URL: u, StatusCode: status}
	return Result{
		Ref:    ref,
		Status: types.FetchSkipped,
		Reason: step + ": " + se.Error(),
	}
}

// ExtractDownloadLink finds the download affordance in a landing page body
// and returns its link. JSON string escapes in the link are decoded.
func ExtractDownloadLink(body []byte) (string, error) {
	m := downloadLinkPattern.FindSubmatch(body)
	if m == nil {
		return "", ErrNoDownloadLink
	}
	raw := string(m[1])

	var link string
	if err := json.Unmarshal([]byte(`"`+raw+`"`), &link); err != nil {
		return raw, nil
	}
	return link, nil
}

// writeFile writes data to path through a temporary file in the same
// directory, replacing any existing file.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
