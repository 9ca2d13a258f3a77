// Package cli implements the extractor commands on top of the parser,
// extractor, analyzer and formatter packages.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mcncl/extractor/internal/config"
	"github.com/mcncl/extractor/internal/errors"
	"github.com/mcncl/extractor/internal/formatter"
	"github.com/mcncl/extractor/internal/logger"
)

// Version information
const (
	Version = "0.1.0"
)

// Globals are the flags shared by every command
type Globals struct {
	Input        string `help:"Path to input document. If not specified, reads from stdin." short:"i" type:"path" env:"EXTRACTOR_INPUT"`
	Output       string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path" env:"EXTRACTOR_OUTPUT"`
	Format       string `help:"Input format: auto, json, yaml, msgpack or bson." short:"f" env:"EXTRACTOR_FORMAT"`
	OutputFormat string `help:"Output format: text, json or yaml." name:"output-format" env:"EXTRACTOR_OUTPUT_FORMAT"`
	Config       string `help:"Path to config file. Defaults to the nearest .extractor.yml." short:"c" type:"path" env:"EXTRACTOR_CONFIG"`
	Debug        bool   `help:"Enable debug logging." short:"d" env:"EXTRACTOR_DEBUG"`
	Interactive  bool   `help:"Read a document typed into the terminal, finished with Ctrl+D." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Globals
	Config *config.Config
	Logger *slog.Logger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewContext resolves the configuration for g, applying overrides from
// command flags, and wires the standard streams.
func NewContext(g Globals, overrides config.CLIOverrides) (*Context, error) {
	path := g.Config
	if path == "" {
		path = config.FindConfigFile()
	}

	overrides.Format = g.Format
	overrides.Output = g.OutputFormat
	overrides.Debug = g.Debug
	cfg, err := config.LoadConfigWithCLI(path, overrides)
	if err != nil {
		return nil, errors.NewConfigError("failed to load configuration", err)
	}

	// Already validated by the config package.
	level, _ := logger.ParseLevel(cfg.Log.Level)
	log := logger.Setup(logger.Config{Level: level, JSON: cfg.Log.JSON, Writer: os.Stderr})
	if path != "" {
		log.Debug("loaded config", "path", path)
	}

	return &Context{
		Globals: g,
		Config:  cfg,
		Logger:  log,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}, nil
}

func (c *Context) formatter() *formatter.Formatter {
	output, _ := formatter.ParseOutput(c.Config.Output)
	return formatter.NewFormatter(output)
}

// WriteOutput writes rendered output to the -o file or stdout
func (c *Context) WriteOutput(out string) error {
	if c.Output != "" {
		if err := os.WriteFile(c.Output, []byte(out), 0o644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", c.Output), err)
		}
		fmt.Fprintf(c.Stderr, "Output written to %s\n", c.Output)
		return nil
	}

	if _, err := io.WriteString(c.Stdout, out); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// VersionCmd prints the version
type VersionCmd struct{}

func (VersionCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintf(ctx.Stdout, "extractor version %s\n", Version)
	return err
}
