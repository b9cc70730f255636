// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Query the catalog and download templates without converting them",
	Long: `Fetch queries each configured catalog page in order and downloads every
Word template of the page concurrently into the download directory. Templates
whose landing page or download link answers with a non-200 status are skipped
with a warning.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		d, err := newDriver(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		summary, err := d.Fetch(cmd.Context())
		if err != nil {
			return err
		}
		printer.Success("%d downloaded, %d skipped", summary.Downloaded, summary.Skipped)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}
