package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors" // Standard errors package
	"github.com/mcncl/extractor/internal/errors" // Custom errors package
	"github.com/mcncl/extractor/internal/models"
	"github.com/vmihailenco/msgpack/v5"
	"go.mongodb.org/mongo-driver/bson"
	"gopkg.in/yaml.v3"
)

// Parse decodes one document from reader into an IntermediateRepresentation.
// JSON is decoded as a stream; the other formats are read fully first.
func Parse(reader io.Reader, format Format) (models.IntermediateRepresentation, error) {
	if format == FormatJSON {
		return parseJSON(reader)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data, format)
}

// ParseBytes decodes data in the given format, detecting it when format is
// FormatAuto or empty.
func ParseBytes(data []byte, format Format) (models.IntermediateRepresentation, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.IntermediateRepresentation{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	if format == "" || format == FormatAuto {
		format = DetectFormat("", data)
	}

	var (
		root models.JSONValue
		err  error
	)
	switch format {
	case FormatJSON:
		return parseJSON(bytes.NewReader(data))
	case FormatYAML:
		root, err = decodeYAML(data)
	case FormatMsgpack:
		root, err = decodeMsgpack(data)
	case FormatBSON:
		root, err = decodeBSON(data)
	default:
		return models.IntermediateRepresentation{}, errors.NewInputError(fmt.Sprintf("unknown format %q", format), errors.ErrUnsupportedFormat)
	}
	if err != nil {
		return models.IntermediateRepresentation{}, err
	}
	return newRepresentation(root, format), nil
}

func parseJSON(reader io.Reader) (models.IntermediateRepresentation, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber() // Keep numeric literals exact for decimal extraction

	var rootValue models.JSONValue
	if err := decoder.Decode(&rootValue); err != nil {
		if stderrors.Is(err, io.EOF) { // io.EOF means empty input if nothing was decoded
			return models.IntermediateRepresentation{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return models.IntermediateRepresentation{}, errors.NewParsingError(
				fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
				errors.ErrInvalidInput,
			)
		}
		return models.IntermediateRepresentation{}, errors.NewParsingError("failed to decode JSON", err)
	}

	// Only whitespace may follow the first value.
	if decoder.More() {
		var trailingValue interface{}
		if err := decoder.Decode(&trailingValue); err != nil {
			if !stderrors.Is(err, io.EOF) {
				return models.IntermediateRepresentation{}, errors.NewParsingError("invalid trailing data after first JSON value", err)
			}
		} else {
			return models.IntermediateRepresentation{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleValues)
		}
	}

	return newRepresentation(rootValue, FormatJSON), nil
}

func decodeYAML(data []byte) (models.JSONValue, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))

	var root models.JSONValue
	if err := decoder.Decode(&root); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return nil, errors.NewParsingError(fmt.Sprintf("YAML syntax error: %v", err), errors.ErrInvalidInput)
	}

	var next models.JSONValue
	if err := decoder.Decode(&next); !stderrors.Is(err, io.EOF) {
		return nil, errors.NewParsingError("multiple YAML documents found", errors.ErrMultipleValues)
	}
	return root, nil
}

func decodeMsgpack(data []byte) (models.JSONValue, error) {
	decoder := msgpack.NewDecoder(bytes.NewReader(data))

	var root models.JSONValue
	if err := decoder.Decode(&root); err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("MessagePack decode error: %v", err), errors.ErrInvalidInput)
	}

	var next models.JSONValue
	if err := decoder.Decode(&next); !stderrors.Is(err, io.EOF) {
		return nil, errors.NewParsingError("multiple MessagePack values found", errors.ErrMultipleValues)
	}
	return root, nil
}

func decodeBSON(data []byte) (models.JSONValue, error) {
	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("BSON decode error: %v", err), errors.ErrInvalidInput)
	}
	return doc, nil
}

func newRepresentation(root models.JSONValue, format Format) models.IntermediateRepresentation {
	root = normalizeValue(root)
	_, isArray := root.(models.JSONArray)
	return models.IntermediateRepresentation{
		Root:        root,
		RootIsArray: isArray,
		Format:      string(format),
	}
}

// ParseString parses a document from a string
func ParseString(input string, format Format) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(input) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseBytes([]byte(input), format)
}

// ParseFile parses a document from a file path. With FormatAuto the file
// extension decides, then the content.
func ParseFile(filePath string, format Format) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.IntermediateRepresentation{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if format == "" || format == FormatAuto {
		format = DetectFormat(filePath, data)
	}
	return ParseBytes(data, format)
}
