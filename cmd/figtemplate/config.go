package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/benoitkugler/figtemplate/disks"
	"github.com/benoitkugler/figtemplate/figstyle"
	"github.com/benoitkugler/figtemplate/figure"
	"github.com/benoitkugler/figtemplate/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// environment variables providing the flag defaults
const (
	envOutput  = "FIGTEMPLATE_OUTPUT"
	envFormat  = "FIGTEMPLATE_FORMAT"
	envBackend = "FIGTEMPLATE_BACKEND"
	envDPI     = "FIGTEMPLATE_DPI"
	envUseTeX  = "FIGTEMPLATE_USETEX"
)

const defaultEnvFile = ".env"

type config struct {
	output    string
	format    string
	backend   string
	dpi       float64
	noTeX     bool
	envFile   string
	verbose   bool
	logFormat string
}

// newLogger returns the logger selected by --log-format and --verbose.
func (cfg *config) newLogger(w io.Writer) (*slog.Logger, error) {
	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	switch strings.ToLower(cfg.logFormat) {
	case "", "text":
		return logging.NewLogger(w, level), nil
	case "json":
		return logging.NewStructuredLogger(w, level), nil
	}
	return nil, fmt.Errorf("unknown log format %q (expected text or json)", cfg.logFormat)
}

// loadEnvFile loads the variables of the dotenv file, without
// overriding the ones already set. A missing default file is ignored.
func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}
	err := godotenv.Load(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// applyEnv fills the flags not given on the command line
// from the environment.
func (cfg *config) applyEnv(flags *pflag.FlagSet) error {
	if v, ok := os.LookupEnv(envOutput); ok && !flags.Changed("output") {
		cfg.output = v
	}
	if v, ok := os.LookupEnv(envFormat); ok && !flags.Changed("format") {
		cfg.format = v
	}
	if v, ok := os.LookupEnv(envBackend); ok && !flags.Changed("backend") {
		cfg.backend = v
	}
	if v, ok := os.LookupEnv(envDPI); ok && !flags.Changed("dpi") {
		dpi, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || dpi <= 0 {
			return fmt.Errorf("invalid %s: %q", envDPI, v)
		}
		cfg.dpi = dpi
	}
	if v, ok := os.LookupEnv(envUseTeX); ok && !flags.Changed("no-tex") {
		useTeX, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %q", envUseTeX, v)
		}
		cfg.noTeX = !useTeX
	}
	return nil
}

// setupStyle applies the academic preset, honoring --no-tex.
func (cfg *config) setupStyle() {
	figstyle.SetupAcademic()
	if cfg.noTeX {
		p := figstyle.Current()
		p.UseTeX = false
		figstyle.Use(p)
	}
}

// drawOptions validates the output settings.
func (cfg *config) drawOptions() (disks.Options, error) {
	var (
		opts disks.Options
		err  error
	)
	if cfg.format != "" {
		opts.Format, err = figure.ParseFormat(cfg.format)
		if err != nil {
			return opts, err
		}
	}
	opts.Backend, err = figure.ParseBackend(cfg.backend)
	if err != nil {
		return opts, err
	}
	opts.DPI = cfg.dpi
	opts.Path = cfg.output
	if opts.Path == "" && opts.Format != "" {
		// keep the default location, with a matching extension
		opts.Path = strings.TrimSuffix(disks.DefaultPath, filepath.Ext(disks.DefaultPath)) + "." + string(opts.Format)
	}
	return opts, nil
}
