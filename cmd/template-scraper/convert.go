// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert downloaded .docx templates to PDF",
	Long: `Convert transforms every .docx file in the download directory into a PDF
of the same name in the output directory, one file at a time. The first
failed conversion stops the run. Supports a local LibreOffice (office) and a
docker or podman image (container) backend.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		d, err := newDriver(cmd.Context(), cfg, true)
		if err != nil {
			return err
		}
		summary, err := d.Convert(cmd.Context())
		if err != nil {
			return err
		}
		printer.Success("%d converted", summary.Converted)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
