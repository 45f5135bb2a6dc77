// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"pii-scrub/internal/config"
	"pii-scrub/internal/core"
	"pii-scrub/internal/formatters"
	"pii-scrub/internal/observability"
	"pii-scrub/internal/preprocessors"

	_ "pii-scrub/internal/formatters/json"
	_ "pii-scrub/internal/formatters/text"

	"github.com/joho/godotenv"
	"golang.org/x/term"
)

// cliFlags holds command line flag values
type cliFlags struct {
	configFile  string
	profile     string
	format      string
	categories  string
	mask        bool
	verbose     bool
	debug       bool
	noColor     bool
	failOnMatch bool
}

func main() {
	os.Exit(run())
}

func run() int {
	// Optional .env for local overrides; absence is not an error.
	_ = godotenv.Load()

	flags := parseFlags()

	cfg := loadConfiguration(flags.configFile)
	final, err := resolveConfiguration(cfg, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	formatter, err := formatters.Get(final.format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	level := observability.ObservabilityMetrics
	if final.debug {
		level = observability.ObservabilityDebug
	}
	observer := observability.NewStandardObserver(level, os.Stderr)

	pipelineConfig := core.PipelineConfig{
		MaxChars:    cfg.Classifier.MaxChars,
		Overlap:     cfg.Classifier.Overlap,
		Timeout:     time.Duration(cfg.Classifier.TimeoutSeconds) * time.Second,
		Concurrency: cfg.Classifier.Concurrency,
		Categories:  core.ParseCategories(final.categories),
	}
	// The CLI has no classifier binding: the contextual model belongs to
	// the host integration. Detection runs pattern-only here.
	pipeline := core.NewPipeline(pipelineConfig, nil)
	pipeline.SetObserver(observer)
	for category, floor := range final.floors {
		pipeline.Filter().SetFloor(category, floor)
	}

	contents, err := collectInputs(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	options := formatters.FormatterOptions{
		Verbose: final.verbose,
		NoColor: final.noColor || !term.IsTerminal(int(os.Stdout.Fd())),
	}

	found := 0
	for _, content := range contents {
		spans := pipeline.Detect(context.Background(), content.Text)
		found += len(spans)

		report := formatters.Report{Spans: spans, SourceName: content.SourceName}
		if final.mask {
			result := pipeline.Mask(content.Text, spans)
			report.MaskedText = result.MaskedText
			report.Spans = result.AppliedSpans
		}

		out, err := formatter.Format(report, options)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 2
		}
		fmt.Println(out)
	}

	if flags.failOnMatch && found > 0 {
		return 1
	}
	return 0
}

func parseFlags() cliFlags {
	var flags cliFlags
	flag.StringVar(&flags.configFile, "config", "", "Path to config file (default: standard locations)")
	flag.StringVar(&flags.profile, "profile", "", "Named profile from the config file")
	flag.StringVar(&flags.format, "format", "", "Output format: text, json")
	flag.StringVar(&flags.categories, "categories", "", "Comma-separated categories to detect, or 'all'")
	flag.BoolVar(&flags.mask, "mask", false, "Emit the masked text alongside the findings")
	flag.BoolVar(&flags.verbose, "verbose", false, "Show matched values and confidence details")
	flag.BoolVar(&flags.debug, "debug", false, "Emit JSON operation records to stderr")
	flag.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&flags.failOnMatch, "fail-on-match", false, "Exit with status 1 when PII is found")
	flag.Parse()
	return flags
}

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string) *config.Config {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg = config.DefaultConfig()
	}
	return cfg
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	format     string
	categories string
	mask       bool
	verbose    bool
	debug      bool
	noColor    bool
	floors     map[string]float64
}

// resolveConfiguration layers profile settings over config defaults and
// flag values over both.
func resolveConfiguration(cfg *config.Config, flags cliFlags) (finalConfiguration, error) {
	final := finalConfiguration{
		format:     cfg.Defaults.Format,
		categories: cfg.Defaults.Categories,
		mask:       cfg.Defaults.Mask,
		verbose:    cfg.Defaults.Verbose,
		debug:      cfg.Defaults.Debug,
		noColor:    cfg.Defaults.NoColor,
		floors:     map[string]float64{},
	}
	for category, floor := range cfg.Floors {
		final.floors[category] = floor
	}

	if flags.profile != "" {
		profile, err := cfg.GetProfile(flags.profile)
		if err != nil {
			return final, err
		}
		if profile.Format != "" {
			final.format = profile.Format
		}
		if profile.Categories != "" {
			final.categories = profile.Categories
		}
		final.mask = final.mask || profile.Mask
		final.verbose = final.verbose || profile.Verbose
		final.noColor = final.noColor || profile.NoColor
		for category, floor := range profile.Floors {
			final.floors[category] = floor
		}
	}

	if flags.format != "" {
		final.format = flags.format
	}
	if flags.categories != "" {
		final.categories = flags.categories
	}
	final.mask = final.mask || flags.mask
	final.verbose = final.verbose || flags.verbose
	final.debug = final.debug || flags.debug
	final.noColor = final.noColor || flags.noColor

	if final.format == "" {
		final.format = "text"
	}
	return final, nil
}

// collectInputs reads the positional file arguments, or stdin when no files
// were given.
func collectInputs(paths []string) ([]*preprocessors.ProcessedContent, error) {
	if len(paths) == 0 {
		content, err := preprocessors.FromReader(os.Stdin, "stdin")
		if err != nil {
			return nil, err
		}
		return []*preprocessors.ProcessedContent{content}, nil
	}

	var contents []*preprocessors.ProcessedContent
	for _, path := range paths {
		content, err := preprocessors.FromFile(path)
		if err != nil {
			return nil, err
		}
		contents = append(contents, content)
	}
	return contents, nil
}
