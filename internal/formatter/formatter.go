package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mcncl/extractor/internal/analyzer"
	"github.com/mcncl/extractor/internal/coerce"
	"github.com/mcncl/extractor/internal/errors"
	"github.com/mcncl/extractor/internal/extractor"
	"github.com/mcncl/extractor/internal/models"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Output names a rendering format
type Output string

const (
	OutputText Output = "text"
	OutputJSON Output = "json"
	OutputYAML Output = "yaml"
)

// ParseOutput resolves an output format name. An empty name means text.
func ParseOutput(name string) (Output, error) {
	switch o := Output(strings.ToLower(strings.TrimSpace(name))); o {
	case "":
		return OutputText, nil
	case OutputText, OutputJSON, OutputYAML:
		return o, nil
	case "yml":
		return OutputYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", name)
}

// Result is the outcome of extracting one path
type Result struct {
	Path   string
	Target models.TargetType
	Mode   coerce.Mode
	Value  any
	Err    error
}

type resultDoc struct {
	Path   string `json:"path" yaml:"path"`
	Target string `json:"target" yaml:"target"`
	Mode   string `json:"mode" yaml:"mode"`
	Value  any    `json:"value" yaml:"value"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

type fieldDoc struct {
	Path     string   `json:"path" yaml:"path"`
	Accessor string   `json:"accessor" yaml:"accessor"`
	Kind     string   `json:"kind" yaml:"kind"`
	Mixed    bool     `json:"mixed,omitempty" yaml:"mixed,omitempty"`
	Accepts  []string `json:"accepts" yaml:"accepts"`
	Elements []string `json:"elements,omitempty" yaml:"elements,omitempty"`
	Hint     string   `json:"hint,omitempty" yaml:"hint,omitempty"`
}

type reportDoc struct {
	Format    string     `json:"format" yaml:"format"`
	Root      string     `json:"root" yaml:"root"`
	Truncated bool       `json:"truncated,omitempty" yaml:"truncated,omitempty"`
	Fields    []fieldDoc `json:"fields" yaml:"fields"`
}

// Formatter renders extraction results and analyzer reports
type Formatter struct {
	output Output
}

// NewFormatter creates a new Formatter instance
func NewFormatter(output Output) *Formatter {
	if output == "" {
		output = OutputText
	}
	return &Formatter{output: output}
}

// FormatResults renders results in argument order. Failed results are
// rendered in place, never dropped.
func (f *Formatter) FormatResults(results []Result) (string, error) {
	docs := make([]resultDoc, len(results))
	for i, r := range results {
		docs[i] = resultDoc{
			Path:   r.Path,
			Target: r.Target.String(),
			Mode:   r.Mode.String(),
			Value:  Plain(r.Value),
		}
		if r.Err != nil {
			docs[i].Value = nil
			docs[i].Error = r.Err.Error()
		}
	}

	switch f.output {
	case OutputJSON:
		return encodeJSON(docs)
	case OutputYAML:
		return encodeYAML(docs)
	}

	var sb strings.Builder
	for _, d := range docs {
		if d.Error != "" {
			fmt.Fprintf(&sb, "%s\terror: %s\n", d.Path, d.Error)
			continue
		}
		text, err := textValue(d.Value)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "%s\t%s\n", d.Path, text)
	}
	return sb.String(), nil
}

// FormatReport renders an analyzer report
func (f *Formatter) FormatReport(report analyzer.Report) (string, error) {
	doc := reportDoc{
		Format:    report.Format,
		Root:      report.RootKind.String(),
		Truncated: report.Truncated,
		Fields:    make([]fieldDoc, len(report.Fields)),
	}
	for i, field := range report.Fields {
		fd := fieldDoc{
			Path:     field.Path,
			Accessor: field.Accessor,
			Kind:     field.Kind.String(),
			Mixed:    field.Mixed,
			Accepts:  make([]string, len(field.Accepts)),
			Hint:     string(field.Hint),
		}
		for j, t := range field.Accepts {
			fd.Accepts[j] = t.String()
		}
		for _, k := range field.Elements {
			fd.Elements = append(fd.Elements, k.String())
		}
		doc.Fields[i] = fd
	}

	switch f.output {
	case OutputJSON:
		return encodeJSON(doc)
	case OutputYAML:
		return encodeYAML(doc)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "format: %s\nroot: %s\n\n", doc.Format, doc.Root)

	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tKIND\tACCESSOR\tACCEPTS\tHINT")
	for _, fd := range doc.Fields {
		kind := fd.Kind
		if fd.Mixed {
			kind += "*"
		}
		if len(fd.Elements) > 0 {
			kind += "<" + strings.Join(fd.Elements, "|") + ">"
		}
		accepts := strings.Join(fd.Accepts, ",")
		if accepts == "" {
			accepts = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", fd.Path, kind, fd.Accessor, accepts, fd.Hint)
	}
	if err := tw.Flush(); err != nil {
		return "", errors.NewOutputError("failed to render report", err)
	}
	if doc.Truncated {
		buf.WriteString("\n(depth limit reached; deeper keys omitted)\n")
	}
	return buf.String(), nil
}

// Plain converts an extracted value into strings, numbers, bools, slices and
// string-keyed maps. Nil pointers become nil, dates RFC 3339 text in UTC,
// decimals their exact string and nested views their mapping.
func Plain(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case *int64:
		if x == nil {
			return nil
		}
		return *x
	case *string:
		if x == nil {
			return nil
		}
		return *x
	case *time.Time:
		if x == nil {
			return nil
		}
		return x.UTC().Format(time.RFC3339Nano)
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case decimal.Decimal:
		return x.String()
	case *extractor.Extractor:
		if x == nil {
			return nil
		}
		return Plain(x.Data())
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if fl, err := x.Float64(); err == nil {
			return fl
		}
		return string(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = Plain(item)
		}
		return out
	case models.JSONArray:
		return Plain([]any(x))
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = Plain(item)
		}
		return out
	case models.JSONObject:
		return Plain(map[string]any(x))
	}
	return v
}

func textValue(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "null", nil
	case string:
		return x, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", errors.NewOutputError("failed to render value", err)
	}
	return string(data), nil
}

func encodeJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", errors.NewOutputError("failed to encode JSON", err)
	}
	return string(data) + "\n", nil
}

func encodeYAML(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", errors.NewOutputError("failed to encode YAML", err)
	}
	return string(data), nil
}
