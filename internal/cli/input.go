package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/extractor/internal/errors"
	"github.com/mcncl/extractor/internal/models"
	"github.com/mcncl/extractor/internal/parser"
	"golang.org/x/term"
)

// ReadDocument decodes the input document from the -i file or stdin
func (c *Context) ReadDocument() (models.IntermediateRepresentation, error) {
	format, err := parser.ParseFormat(c.Config.Format)
	if err != nil {
		return models.IntermediateRepresentation{}, err
	}

	var ir models.IntermediateRepresentation
	switch {
	case c.Input != "":
		ir, err = parser.ParseFile(c.Input, format)
	case c.stdinIsTerminal():
		if !c.Interactive {
			return models.IntermediateRepresentation{}, errors.NewInputError("no input provided", errors.ErrNoInput)
		}
		ir, err = c.readInteractiveInput(format)
	default:
		ir, err = c.readStdin(format)
	}
	if err != nil {
		return models.IntermediateRepresentation{}, err
	}

	c.Logger.Debug("decoded document", "format", ir.Format, "root_is_array", ir.RootIsArray)
	return ir, nil
}

func (c *Context) stdinIsTerminal() bool {
	f, ok := c.Stdin.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (c *Context) readStdin(format parser.Format) (models.IntermediateRepresentation, error) {
	data, err := io.ReadAll(c.Stdin)
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return models.IntermediateRepresentation{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return parser.ParseBytes(data, format)
}

// readInteractiveInput lets users paste a document and signal completion
// with Ctrl+D (EOF)
func (c *Context) readInteractiveInput(format parser.Format) (models.IntermediateRepresentation, error) {
	fmt.Fprintln(c.Stderr, "Extractor Interactive Mode")
	fmt.Fprintln(c.Stderr, "Paste a JSON or YAML document below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(c.Stdin)
	var docBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		docBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.IntermediateRepresentation{}, errors.NewInputError("error reading input", err)
		}
	}

	doc := docBuilder.String()
	if strings.TrimSpace(doc) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(c.Stderr, "\nProcessing document...")
	return parser.ParseString(doc, format)
}
