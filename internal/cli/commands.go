package cli

import (
	"fmt"

	"github.com/mcncl/extractor/internal/analyzer"
	"github.com/mcncl/extractor/internal/coerce"
	"github.com/mcncl/extractor/internal/config"
	"github.com/mcncl/extractor/internal/errors"
	"github.com/mcncl/extractor/internal/extractor"
	"github.com/mcncl/extractor/internal/formatter"
	"github.com/mcncl/extractor/internal/models"
	"golang.org/x/sync/errgroup"
)

// GetCmd extracts typed values by key path
type GetCmd struct {
	Paths       []string `arg:"" name:"path" help:"Key paths to extract. Use '.' to descend into nested mappings."`
	As          string   `help:"Target type: bool, int, uint, number, string, date, decimal, array, map or object. Inferred from the value when omitted." short:"a" env:"EXTRACTOR_AS"`
	Mode        string   `help:"Extraction mode: lenient or forced." short:"m" env:"EXTRACTOR_MODE"`
	Forced      bool     `help:"Shorthand for --mode=forced." short:"F"`
	Each        bool     `help:"Convert each element of an array value to the target." short:"e"`
	Marker      string   `help:"Text rendered in place of elements that cannot be converted." env:"EXTRACTOR_MARKER"`
	Concurrency int      `help:"Maximum number of paths extracted at once." env:"EXTRACTOR_CONCURRENCY"`
}

// Overrides returns the settings this command's flags take over from the config file
func (c *GetCmd) Overrides() config.CLIOverrides {
	o := config.CLIOverrides{
		Mode:        c.Mode,
		Marker:      c.Marker,
		Concurrency: c.Concurrency,
	}
	if c.Forced {
		o.Mode = coerce.Forced.String()
	}
	return o
}

func (c *GetCmd) Run(ctx *Context) error {
	var (
		target models.TargetType
		err    error
	)
	if c.As != "" {
		if target, err = models.ParseTargetType(c.As); err != nil {
			return errors.NewInputError(fmt.Sprintf("invalid --as value %q", c.As), err)
		}
	}
	mode, err := coerce.ParseMode(ctx.Config.Mode)
	if err != nil {
		return errors.NewConfigError("invalid mode", err)
	}

	ir, err := ctx.ReadDocument()
	if err != nil {
		return err
	}
	root, err := extractor.New(ir.Root)
	if err != nil {
		return errors.NewExtractionError("document root must be a mapping", err)
	}

	var marker any
	if ctx.Config.Marker != "" {
		marker = ctx.Config.Marker
	}

	results := make([]formatter.Result, len(c.Paths))
	g := new(errgroup.Group)
	g.SetLimit(ctx.Config.Concurrency)
	for i, path := range c.Paths {
		i, path := i, path
		req := Request{Path: path, Target: target, Mode: mode, Each: c.Each, Marker: marker}
		if c.As == "" {
			if rule, ok := ctx.Config.FindTarget(path); ok {
				req.Target = rule
			} else {
				req.Infer = true
			}
		}
		g.Go(func() error {
			results[i] = Extract(root, req)
			ctx.Logger.Debug("extracted path", "path", path, "target", results[i].Target.String(), "error", results[i].Err)
			return nil
		})
	}
	_ = g.Wait()

	out, err := ctx.formatter().FormatResults(results)
	if err != nil {
		return err
	}
	if err := ctx.WriteOutput(out); err != nil {
		return err
	}

	var (
		failed   int
		firstErr error
	)
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		if firstErr == nil {
			firstErr = r.Err
		}
		failed++
	}
	if failed > 0 {
		return errors.NewExtractionError(fmt.Sprintf("%d of %d paths could not be extracted", failed, len(results)), firstErr)
	}
	return nil
}

// DescribeCmd reports how each key of the document can be extracted
type DescribeCmd struct {
	Depth int `help:"Maximum mapping depth to walk. Defaults to max_depth from the config."`
}

func (c *DescribeCmd) Run(ctx *Context) error {
	ir, err := ctx.ReadDocument()
	if err != nil {
		return err
	}

	depth := c.Depth
	if depth < 1 {
		depth = ctx.Config.MaxDepth
	}
	report, err := analyzer.NewAnalyzerWithDepth(depth).Analyze(ir)
	if err != nil {
		return errors.NewExtractionError("failed to analyze document", err)
	}

	out, err := ctx.formatter().FormatReport(report)
	if err != nil {
		return err
	}
	return ctx.WriteOutput(out)
}
