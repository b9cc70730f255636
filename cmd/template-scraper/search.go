// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/template-scraper/internal/catalog"
	"github.com/pdiddy/template-scraper/internal/httputil"
	"github.com/pdiddy/template-scraper/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "List the templates the catalog returns for each page",
	Long: `Search queries each configured catalog page and prints the id and slug of
every template with the configured supporting application. Nothing is
downloaded.`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("save-criteria", "", "write the effective search criteria to this YAML file")

	rootCmd.AddCommand(searchCmd)
}

// searchPage is one page of search output.
type searchPage struct {
	Offset    int                 `json:"offset"`
	Templates []types.TemplateRef `json:"templates"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if path, _ := cmd.Flags().GetString("save-criteria"); path != "" {
		if err := catalog.WriteCriteria(path, cfg.Catalog.Criteria); err != nil {
			return err
		}
	}

	client := catalog.NewClient(httputil.NewClient(cfg.HTTP), cfg.Catalog, cfg.HTTP)
	pages := make([]searchPage, 0, len(cfg.Catalog.Offsets))
	for _, offset := range cfg.Catalog.Offsets {
		refs, err := client.FetchPage(cmd.Context(), offset)
		if err != nil {
			return fmt.Errorf("catalog query at offset %d: %w", offset, err)
		}
		pages = append(pages, searchPage{Offset: offset, Templates: refs})
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(pages)
	}
	for i, p := range pages {
		fmt.Fprintf(out, "page %d (offset %d): %d templates\n", i+1, p.Offset, len(p.Templates))
		for _, ref := range p.Templates {
			fmt.Fprintf(out, "  %-12s %s\n", ref.ID, ref.Slug)
		}
	}
	return nil
}
