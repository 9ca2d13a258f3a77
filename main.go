package main

import (
	"fmt"
	"io/fs"
	"os"

	stderrors "errors" // Standard errors package
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/mcncl/extractor/internal/cli"
	"github.com/mcncl/extractor/internal/errors" // Custom errors package
)

// CLI defines the command-line interface
var CLI struct {
	cli.Globals

	Get      cli.GetCmd      `cmd:"" help:"Extract typed values by key path."`
	Describe cli.DescribeCmd `cmd:"" help:"Report each key's kind and the targets it converts to."`
	Version  cli.VersionCmd  `cmd:"" help:"Show version information."`
}

func newParser() *kong.Kong {
	return kong.Must(&CLI,
		kong.Name("extractor"),
		kong.Description("Extract typed values from JSON, YAML, MessagePack and BSON documents"),
		kong.UsageOnError(),
	)
}

func main() {
	// EXTRACTOR_* defaults may come from a .env file; kong reads them during parsing.
	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	parser := newParser()
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := run(kctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: extractor --help\n")
		os.Exit(1)
	}
}

// run executes the selected command
func run(kctx *kong.Context) error {
	ctx, err := cli.NewContext(CLI.Globals, CLI.Get.Overrides())
	if err != nil {
		return err
	}
	return kctx.Run(ctx)
}
