// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog queries the template gallery's GraphQL search endpoint and
// returns references to the templates a page of results contains.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/template-scraper/internal/httputil"
	"github.com/pdiddy/template-scraper/internal/slug"
	"github.com/pdiddy/template-scraper/pkg/types"
)

// ErrMalformedResponse is returned when the search response does not have the
// expected shape. The whole page is rejected; no partial results are returned.
var ErrMalformedResponse = errors.New("malformed search response")

// Request is one GraphQL operation in the batched request body.
type Request struct {
	OperationName string               `json:"operationName"`
	Variables     types.SearchCriteria `json:"variables"`
	Query         string               `json:"query"`
}

// BuildRequest returns the request body for a single search page. The body is
// a one-element array, the batched form the gallery endpoint accepts.
func BuildRequest(criteria types.SearchCriteria) []Request {
	return []Request{{
		OperationName: operationName,
		Variables:     criteria,
		Query:         searchDocument,
	}}
}

// Client fetches pages of search results.
type Client struct {
	http    *http.Client
	cfg     types.CatalogConfig
	httpCfg types.HTTPConfig
}

// NewClient returns a Client that sends requests through hc.
func NewClient(hc *http.Client, cfg types.CatalogConfig, httpCfg types.HTTPConfig) *Client {
	return &Client{http: hc, cfg: cfg, httpCfg: httpCfg}
}

// FetchPage queries the search endpoint for the page starting at offset and
// returns the templates whose supporting application matches the configured
// one, in server order. A non-2xx response yields a *httputil.StatusError.
func (c *Client) FetchPage(ctx context.Context, offset int) ([]types.TemplateRef, error) {
	criteria := c.cfg.Criteria.WithOffset(offset)

	resp, err := httputil.PostJSON(ctx, c.http, c.cfg.Endpoint, BuildRequest(criteria), c.httpCfg)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer httputil.Drain(resp)

	if !httputil.IsSuccess(resp.StatusCode) {
		return nil, &httputil.StatusError{
			Method:     http.MethodPost,
			URL:        c.cfg.Endpoint,
			StatusCode: resp.StatusCode,
		}
	}

	refs, err := ParseResponse(resp.Body, c.cfg.Application)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().
		Int("offset", offset).
		Int("refs", len(refs)).
		Msg("Fetched catalog page")
	return refs, nil
}

// searchResponse mirrors the parts of the batched GraphQL response we read.
type searchResponse []struct {
	Data *struct {
		SearchTemplates *struct {
			Templates *struct {
				Templates []templateRecord `json:"templates"`
			} `json:"templates"`
		} `json:"searchTemplates"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// templateRecord keeps supportingApplication raw so a missing key can be told
// apart from a null value.
type templateRecord struct {
	ID                    *string         `json:"id"`
	Title                 *string         `json:"title"`
	SupportingApplication json.RawMessage `json:"supportingApplication"`
}

// application returns the record's supporting application. ok is false when
// the value is null or not a string; err is set when the key is absent.
func (r templateRecord) application() (app string, ok bool, err error) {
	if r.SupportingApplication == nil {
		return "", false, errors.New("missing supportingApplication")
	}
	if string(r.SupportingApplication) == "null" {
		return "", false, nil
	}
	if err := json.Unmarshal(r.SupportingApplication, &app); err != nil {
		return "", false, nil
	}
	return app, true, nil
}

// ParseResponse decodes a search response and keeps the templates whose
// supportingApplication equals application. Each kept record becomes a
// TemplateRef with a normalized title slug. A null or non-string application
// does not match; only kept records must carry an id and a title.
func ParseResponse(r io.Reader, application string) ([]types.TemplateRef, error) {
	var sr searchResponse
	if err := json.NewDecoder(r).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(sr) == 0 {
		return nil, fmt.Errorf("%w: empty response array", ErrMalformedResponse)
	}

	first := sr[0]
	if first.Data == nil || first.Data.SearchTemplates == nil || first.Data.SearchTemplates.Templates == nil {
		if len(first.Errors) > 0 {
			msgs := make([]string, len(first.Errors))
			for i, e := range first.Errors {
				msgs[i] = e.Message
			}
			return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, strings.Join(msgs, "; "))
		}
		return nil, fmt.Errorf("%w: missing data.searchTemplates.templates", ErrMalformedResponse)
	}

	records := first.Data.SearchTemplates.Templates.Templates
	if records == nil {
		return nil, fmt.Errorf("%w: missing templates list", ErrMalformedResponse)
	}

	refs := make([]types.TemplateRef, 0, len(records))
	for i, rec := range records {
		app, ok, err := rec.application()
		if err != nil {
			return nil, fmt.Errorf("%w: template %d: %v", ErrMalformedResponse, i, err)
		}
		if !ok || app != application {
			continue
		}
		if rec.ID == nil || rec.Title == nil {
			return nil, fmt.Errorf("%w: template %d lacks id or title", ErrMalformedResponse, i)
		}
		refs = append(refs, types.TemplateRef{
			ID:   *rec.ID,
			Slug: slug.Normalize(*rec.Title),
		})
	}
	return refs, nil
}
