package parser

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/mcncl/extractor/internal/errors"
)

// Format names a wire format the parser can decode.
type Format string

const (
	FormatAuto    Format = "auto"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
	FormatBSON    Format = "bson"
)

// ParseFormat resolves a format name. An empty name means auto detection.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatJSON, FormatYAML, FormatMsgpack, FormatBSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "mpk", "messagepack":
		return FormatMsgpack, nil
	}
	return "", errors.NewInputError("unknown format "+name, errors.ErrUnsupportedFormat)
}

// DetectFormat picks a format from the file extension, falling back to
// sniffing the content. Text that is not JSON is treated as YAML.
func DetectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".msgpack", ".mpk":
		return FormatMsgpack
	case ".bson":
		return FormatBSON
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') && utf8.Valid(trimmed) {
		return FormatJSON
	}
	if looksLikeBSON(data) {
		return FormatBSON
	}
	if utf8.Valid(data) && !bytes.ContainsRune(data, 0) {
		return FormatYAML
	}
	return FormatMsgpack
}

// looksLikeBSON checks the document framing: a little-endian int32 total
// length followed by elements and a trailing zero byte.
func looksLikeBSON(data []byte) bool {
	if len(data) < 5 || data[len(data)-1] != 0 {
		return false
	}
	return int(binary.LittleEndian.Uint32(data[:4])) == len(data)
}
