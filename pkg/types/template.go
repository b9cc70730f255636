// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the template-scraper pipeline.
package types

// SearchCriteria holds the variables sent with one catalog search request.
// Values are copied per page; use WithOffset rather than assigning Offset on a
// shared instance.
type SearchCriteria struct {
	// Query is the free-text search string (e.g. "resumes,resume,cv").
	Query string `json:"query" yaml:"query"`

	// Filters lists keyword filters in "keywords=<term>" form.
	Filters []string `json:"filters" yaml:"filters"`

	// Locale selects the gallery locale (e.g. "en-us").
	Locale string `json:"locale" yaml:"locale"`

	// Offset is the index of the first result of the page.
	Offset int `json:"offset" yaml:"offset"`

	// Limit is the page size.
	Limit int `json:"limit" yaml:"limit"`

	// Generic is passed through to the search operation unchanged.
	Generic bool `json:"generic" yaml:"generic"`
}

// WithOffset returns a copy of c with Offset set to offset. The Filters slice
// is copied so the returned value shares no memory with c.
func (c SearchCriteria) WithOffset(offset int) SearchCriteria {
	out := c
	out.Offset = offset
	out.Filters = append([]string(nil), c.Filters...)
	return out
}

// TemplateRef identifies one template returned by the catalog.
type TemplateRef struct {
	// ID is the opaque template identifier assigned by the gallery.
	ID string `json:"id" yaml:"id"`

	// Slug is the normalized title, used in the landing page URL and the
	// downloaded file name.
	Slug string `json:"slug" yaml:"slug"`
}

// FetchStatus indicates the outcome of fetching a single template.
type FetchStatus string

const (
	FetchDownloaded FetchStatus = "downloaded"
	FetchSkipped    FetchStatus = "skipped"
	FetchFailed     FetchStatus = "failed"
)
