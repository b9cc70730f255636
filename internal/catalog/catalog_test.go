// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/template-scraper/internal/httputil"
	"github.com/pdiddy/template-scraper/internal/slug"
	"github.com/pdiddy/template-scraper/pkg/types"
)

type record struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Application string `json:"supportingApplication"`
}

// searchJSON renders a batched search response holding records.
func searchJSON(records []record) string {
	body, _ := json.Marshal(records)
	return fmt.Sprintf(`[{"data":{"searchTemplates":{"id":"s","templates":{"templates":%s,"__typename":"Templates"},"totalCount":%d,"__typename":"SearchTemplates"}}}]`,
		body, len(records))
}

var sampleRecords = []record{
	{"tm001", "Modern Resume", "WORD"},
	{"tm002", "Resume Deck", "POWERPOINT"},
	{"tm003", "Bold  CV", "WORD"},
	{"tm004", "Resume Tracker", "EXCEL"},
	{"tm005", "Simple\tcover letter", "WORD"},
}

func testConfig(endpoint string) types.CatalogConfig {
	cfg := types.DefaultPipelineConfig().Catalog
	cfg.Endpoint = endpoint
	return cfg
}

func TestParseResponse_FiltersWordTemplates(t *testing.T) {
	refs, err := ParseResponse(strings.NewReader(searchJSON(sampleRecords)), "WORD")
	require.NoError(t, err)

	want := []types.TemplateRef{
		{ID: "tm001", Slug: "modern-resume"},
		{ID: "tm003", Slug: "bold-cv"},
		{ID: "tm005", Slug: "simple-cover-letter"},
	}
	assert.Equal(t, want, refs)
	assert.Equal(t, slug.Normalize(sampleRecords[2].Title), refs[1].Slug)
}

func TestParseResponse_OtherApplication(t *testing.T) {
	refs, err := ParseResponse(strings.NewReader(searchJSON(sampleRecords)), "EXCEL")
	require.NoError(t, err)
	assert.Equal(t, []types.TemplateRef{{ID: "tm004", Slug: "resume-tracker"}}, refs)
}

func TestParseResponse_EmptyTemplates(t *testing.T) {
	refs, err := ParseResponse(strings.NewReader(searchJSON(nil)), "WORD")
	require.Error(t, err, "null templates list is malformed")
	assert.Nil(t, refs)

	refs, err = ParseResponse(strings.NewReader(searchJSON([]record{})), "WORD")
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestParseResponse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"object instead of array", `{"data":{}}`},
		{"empty array", `[]`},
		{"missing data", `[{}]`},
		{"missing searchTemplates", `[{"data":{}}]`},
		{"missing templates", `[{"data":{"searchTemplates":{}}}]`},
		{"graphql errors", `[{"errors":[{"message":"unknown operation"}]}]`},
		{"record without title", `[{"data":{"searchTemplates":{"templates":{"templates":[{"id":"x","supportingApplication":"WORD"}]}}}}]`},
		{"matching record with null id", `[{"data":{"searchTemplates":{"templates":{"templates":[{"id":null,"title":"t","supportingApplication":"WORD"}]}}}}]`},
		{"record without application", `[{"data":{"searchTemplates":{"templates":{"templates":[{"id":"x","title":"t"}]}}}}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refs, err := ParseResponse(strings.NewReader(tt.body), "WORD")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedResponse), "got %v", err)
			assert.Nil(t, refs)
		})
	}
}

func TestParseResponse_NullAndIncompleteOtherRecords(t *testing.T) {
	body := `[{"data":{"searchTemplates":{"templates":{"templates":[` +
		`{"id":"1","title":"Modern Resume","supportingApplication":"WORD"},` +
		`{"id":"2","title":"Deck","supportingApplication":null},` +
		`{"id":"3","supportingApplication":"POWERPOINT"},` +
		`{"title":"Numbers","supportingApplication":7}` +
		`]}}}}]`

	refs, err := ParseResponse(strings.NewReader(body), "WORD")
	require.NoError(t, err)
	assert.Equal(t, []types.TemplateRef{{ID: "1", Slug: "modern-resume"}}, refs)
}

func TestParseResponse_MissingApplicationKey(t *testing.T) {
	body := `[{"data":{"searchTemplates":{"templates":{"templates":[` +
		`{"id":"1","title":"Modern Resume","supportingApplication":"WORD"},` +
		`{"id":"2","title":"Deck"}` +
		`]}}}}]`

	refs, err := ParseResponse(strings.NewReader(body), "WORD")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
	assert.Contains(t, err.Error(), "template 1: missing supportingApplication")
	assert.Nil(t, refs)
}

func TestParseResponse_GraphQLErrorMessage(t *testing.T) {
	_, err := ParseResponse(strings.NewReader(`[{"errors":[{"message":"bad offset"},{"message":"try again"}]}]`), "WORD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad offset; try again")
}

func TestBuildRequest(t *testing.T) {
	criteria := types.DefaultPipelineConfig().Catalog.Criteria.WithOffset(100)
	body, err := json.Marshal(BuildRequest(criteria))
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Len(t, decoded, 1)

	op := decoded[0]
	assert.Equal(t, "getSearchTemplateGrid", op["operationName"])
	assert.True(t, strings.HasPrefix(op["query"].(string), "query getSearchTemplateGrid("))

	vars := op["variables"].(map[string]any)
	assert.Equal(t, "resumes,resume,cv", vars["query"])
	assert.Equal(t, []any{"keywords=resumes", "keywords=resume", "keywords=cv"}, vars["filters"])
	assert.Equal(t, "en-us", vars["locale"])
	assert.Equal(t, float64(100), vars["offset"])
	assert.Equal(t, float64(50), vars["limit"])
	assert.Equal(t, false, vars["generic"])
}

func TestFetchPage(t *testing.T) {
	var mu sync.Mutex
	var offsets []int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body []Request
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) || !assert.Len(t, body, 1) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		mu.Lock()
		offsets = append(offsets, body[0].Variables.Offset)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, searchJSON(sampleRecords))
	}))
	defer ts.Close()

	c := NewClient(ts.Client(), testConfig(ts.URL), types.HTTPConfig{Timeout: 5 * time.Second})
	for _, off := range []int{0, 50, 100} {
		refs, err := c.FetchPage(context.Background(), off)
		require.NoError(t, err)
		assert.Len(t, refs, 3)
	}
	assert.Equal(t, []int{0, 50, 100}, offsets)
}

func TestFetchPage_DoesNotMutateBaseCriteria(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, searchJSON([]record{}))
	}))
	defer ts.Close()

	cfg := testConfig(ts.URL)
	c := NewClient(ts.Client(), cfg, types.HTTPConfig{})
	_, err := c.FetchPage(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, 0, c.cfg.Criteria.Offset)
}

func TestFetchPage_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := NewClient(ts.Client(), testConfig(ts.URL), types.HTTPConfig{})
	refs, err := c.FetchPage(context.Background(), 0)
	require.Error(t, err)
	assert.Nil(t, refs)

	var se *httputil.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
}

func TestFetchPage_MalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"data":null}]`)
	}))
	defer ts.Close()

	c := NewClient(ts.Client(), testConfig(ts.URL), types.HTTPConfig{})
	_, err := c.FetchPage(context.Background(), 0)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}
