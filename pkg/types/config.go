// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero disables the timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// CatalogConfig holds settings for the catalog query stage.
type CatalogConfig struct {
	// Endpoint is the GraphQL endpoint URL.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// Offsets lists the page offsets queried, in order.
	Offsets []int `json:"offsets" yaml:"offsets" mapstructure:"offsets"`

	// Application is the supportingApplication value kept by the filter (default "WORD").
	Application string `json:"application" yaml:"application" mapstructure:"application"`

	// CriteriaFile optionally names a YAML file overriding Criteria.
	CriteriaFile string `json:"criteria_file,omitempty" yaml:"criteria_file,omitempty" mapstructure:"criteria_file"`

	// Criteria is the base search request; Offset is replaced per page.
	Criteria SearchCriteria `json:"criteria" yaml:"criteria" mapstructure:"criteria"`
}

// FetchConfig holds settings for the template fetch stage.
type FetchConfig struct {
	// BaseURL is the gallery site root used to build landing page URLs.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// DownloadDir receives the downloaded .docx files.
	DownloadDir string `json:"download_dir" yaml:"download_dir" mapstructure:"download_dir"`

	// Concurrency caps in-flight fetches per page. Zero means one goroutine per template.
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
}

// ConversionBackend identifies the document-to-PDF conversion tool.
type ConversionBackend string

const (
	BackendOffice    ConversionBackend = "office"
	BackendContainer ConversionBackend = "container"
)

// ConversionConfig holds settings for the conversion stage.
type ConversionConfig struct {
	// Backend selects the conversion tool: office or container.
	Backend ConversionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// OutputDir receives the converted .pdf files.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Soffice is the LibreOffice binary used by the office backend.
	Soffice string `json:"soffice" yaml:"soffice" mapstructure:"soffice"`

	// Image is the container image used by the container backend.
	Image string `json:"image" yaml:"image" mapstructure:"image"`

	// Validate enables structural validation of every produced PDF.
	Validate bool `json:"validate" yaml:"validate" mapstructure:"validate"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	HTTP       HTTPConfig       `json:"http" yaml:"http" mapstructure:"http"`
	Catalog    CatalogConfig    `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	Fetch      FetchConfig      `json:"fetch" yaml:"fetch" mapstructure:"fetch"`
	Conversion ConversionConfig `json:"convert" yaml:"convert" mapstructure:"convert"`
}

// DefaultPipelineConfig returns the configuration used when nothing is
// overridden: three pages of 50 resume/CV templates from the Microsoft
// Create gallery, downloaded to templates/ and converted into templates_pdf/.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		HTTP: HTTPConfig{
			Timeout:   60 * time.Second,
			UserAgent: "template-scraper/0.1",
		},
		Catalog: CatalogConfig{
			Endpoint:    "https://create.microsoft.com/api/graphql",
			Offsets:     []int{0, 50, 100},
			Application: "WORD",
			Criteria: SearchCriteria{
				Query: "resumes,resume,cv",
				Filters: []string{
					"keywords=resumes",
					"keywords=resume",
					"keywords=cv",
				},
				Locale:  "en-us",
				Limit:   50,
				Generic: false,
			},
		},
		Fetch: FetchConfig{
			BaseURL:     "https://create.microsoft.com",
			DownloadDir: "templates",
		},
		Conversion: ConversionConfig{
			Backend:   BackendOffice,
			OutputDir: "templates_pdf",
			Soffice:   "soffice",
			Image:     "docx2pdf:latest",
			Validate:  true,
		},
	}
}
