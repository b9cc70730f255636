// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the template-scraper CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/template-scraper/internal/output"
	"github.com/pdiddy/template-scraper/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// printer reports progress; replaced in PersistentPreRunE once the colour
// mode is known.
var printer = output.NewPrinter(os.Stdout, os.Stderr, false)

// rootCmd runs the whole pipeline when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "template-scraper",
	Short: "Download resume templates from the template gallery and convert them to PDF",
	Long: `template-scraper searches the template gallery for resume and CV templates,
downloads every Word template of the first result pages into templates/, and
converts the downloads to PDF in templates_pdf/.

Running the command without a subcommand executes the full pipeline. The
search, fetch, and convert subcommands run a single stage.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		mode, err := output.ParseColorMode(viper.GetString("color"))
		if err != nil {
			return err
		}
		printer = output.NewPrinter(os.Stdout, os.Stderr, output.ResolveColors(mode, os.Stdout))

		level := zerolog.Disabled
		if viper.GetBool("verbose") {
			level = zerolog.DebugLevel
		}
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
			Level(level).
			With().Timestamp().Logger()
		cmd.SetContext(log.WithContext(cmd.Context()))
		return nil
	},
	RunE: runPipeline,
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := types.DefaultPipelineConfig()
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: template-scraper.yaml in . or ~/.config/template-scraper)")
	flags.BoolP("verbose", "v", false, "log HTTP requests and per-template progress to stderr")
	flags.String("color", "auto", "colour output: auto, always, or never")
	flags.IntSlice("offsets", defaults.Catalog.Offsets, "catalog page offsets, queried in order")
	flags.String("criteria", "", "YAML file overriding the search criteria")
	flags.String("download-dir", defaults.Fetch.DownloadDir, "directory for downloaded .docx templates")
	flags.String("output-dir", defaults.Conversion.OutputDir, "directory for converted PDFs")
	flags.Int("concurrency", defaults.Fetch.Concurrency, "maximum concurrent downloads per page (0 = unlimited)")
	flags.Duration("timeout", defaults.HTTP.Timeout, "HTTP request timeout")
	flags.String("backend", string(defaults.Conversion.Backend), "conversion backend: office or container")
	flags.Bool("validate", defaults.Conversion.Validate, "validate every produced PDF")

	for key, flag := range map[string]string{
		"verbose":               "verbose",
		"color":                 "color",
		"catalog.offsets":       "offsets",
		"catalog.criteria_file": "criteria",
		"fetch.download_dir":    "download-dir",
		"convert.output_dir":    "output-dir",
		"fetch.concurrency":     "concurrency",
		"http.timeout":          "timeout",
		"convert.backend":       "backend",
		"convert.validate":      "validate",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("template-scraper")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "template-scraper"))
		}
	}

	viper.SetEnvPrefix("TEMPLATE_SCRAPER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		printer.Info("Using config file: %s", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		printer.Error("%v", err)
		os.Exit(1)
	}
}
