package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bnema/request-inspector/internal/fetcher"
	"github.com/bnema/request-inspector/internal/loader"
	"github.com/bnema/request-inspector/internal/logging"
	"github.com/bnema/request-inspector/internal/matcher"
	"github.com/bnema/request-inspector/internal/models"
	"github.com/bnema/request-inspector/internal/options"
	"github.com/bnema/request-inspector/internal/tui"
)

// registerFilterFlags adds one flag per filter field
func registerFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("method", "", "HTTP method")
	cmd.Flags().StringSlice("domain", nil, "request hostname (repeatable)")
	cmd.Flags().String("url-pattern", "", "URL glob, * matches anything")
	cmd.Flags().String("cache-control", "", "Cache-Control value")
	cmd.Flags().String("x-cache", "", "X-Cache value")
	cmd.Flags().String("fulfilled-by", "", "fulfilling origin")
	cmd.Flags().String("cache-rank", "", "cache rank label")
}

// filterFromFlags builds a filter from the flags, one field at a time
func filterFromFlags(cmd *cobra.Command) models.Filter {
	var f models.Filter

	single := map[string]models.Field{
		"method":        models.FieldMethod,
		"url-pattern":   models.FieldURLPattern,
		"cache-control": models.FieldCacheControl,
		"x-cache":       models.FieldXCache,
		"fulfilled-by":  models.FieldFulfilledBy,
		"cache-rank":    models.FieldCacheRank,
	}
	for flag, field := range single {
		v, _ := cmd.Flags().GetString(flag)
		f = f.With(field, models.Single(v))
	}

	domains, _ := cmd.Flags().GetStringSlice("domain")
	for i, d := range domains {
		domains[i] = strings.ToLower(strings.TrimSpace(d))
	}
	return f.With(models.FieldDomains, models.Multi(domains))
}

// newLogger builds the CLI logger. Interactive commands log to the
// configured file, or only errors to stderr.
func newLogger(interactive bool) (*slog.Logger, io.Closer, error) {
	if cfg.Log.File != "" {
		return logging.NewFile(cfg.Log.File, cfg.Log.Level, cfg.Log.Format)
	}
	level := cfg.Log.Level
	if interactive {
		level = logging.LevelError
	}
	return logging.New(os.Stderr, level, cfg.Log.Format), io.NopCloser(nil), nil
}

// loadData loads the given paths, or the enabled configured sources
func loadData(ctx context.Context, logger *slog.Logger, args []string) ([]models.NetworkRequest, error) {
	sources := loader.SourcesFromPaths(args)
	if len(sources) == 0 {
		sources = cfg.EnabledSources()
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no input files given and no enabled sources in config")
	}

	l := loader.New(fetcher.New(cfg.HTTP), logger)
	results := l.Load(ctx, sources)

	errs := loader.Errors(results)
	if len(errs) == len(results) {
		return nil, errors.Join(errs...)
	}
	for _, err := range errs {
		logger.Warn("source skipped", "error", err)
	}

	return loader.Requests(results), nil
}

func runOptions(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	logger, closer, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	data, err := loadData(cmd.Context(), logger, args)
	if err != nil {
		return err
	}

	opts := options.Derive(data)
	logger.Debug("derived options", "requests", len(data))

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(opts)
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(opts)
	}
	return fmt.Errorf("unknown format %q", format)
}

func runFilter(cmd *cobra.Command, args []string) error {
	logger, closer, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	data, err := loadData(cmd.Context(), logger, args)
	if err != nil {
		return err
	}

	f := filterFromFlags(cmd)
	matched, err := matcher.Apply(f, data)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d requests match\n", len(matched), len(data))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(matched)
}

func runPanel(cmd *cobra.Command, args []string) error {
	logger, closer, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	data, err := loadData(cmd.Context(), logger, args)
	if err != nil {
		return err
	}

	m := tui.NewModel(data, filterFromFlags(cmd), cfg.UI.MaxRows)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	if err != nil {
		return fmt.Errorf("running panel: %w", err)
	}

	// Print the last filter so it can be reused with the filter command
	if fm, ok := final.(*tui.Model); ok && !fm.Filters().IsEmpty() {
		enc := json.NewEncoder(cmd.OutOrStdout())
		return enc.Encode(fm.Filters())
	}
	return nil
}

func runSources(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configured sources:")
	fmt.Fprintln(out)
	for _, src := range cfg.Sources {
		status := "enabled"
		if !src.Enabled {
			status = "disabled"
		}
		fmt.Fprintf(out, "  [%s] %s\n", status, src.Name)
		fmt.Fprintf(out, "         %s\n\n", src.Location)
	}
	return nil
}

const defaultConfig = `# Request inspector configuration

# HTTP client settings for remote sources
[http]
timeout = "30s"
retries = 3

# Logging: level is DEBUG, INFO, WARN or ERROR; format is text or json
[log]
level = "INFO"
format = "text"
# file = "./logs/inspector.log"

# Interactive panel settings
[ui]
max_rows = 20

# Datasets loaded when no files are given on the command line.
# location is a file path or an http(s) URL.

[[sources]]
name = "local-capture"
location = "./captures/session.har"
enabled = true

[[sources]]
name = "export"
location = "./captures/requests.json"
enabled = false
`

func runInit(cmd *cobra.Command, args []string) error {
	configPath := "./configs/inspector.toml"
	if cfgFile != "" {
		configPath = cfgFile
	}

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", configPath)
	return nil
}
