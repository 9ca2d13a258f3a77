package analyzer

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/iancoleman/strcase"
	"github.com/mcncl/extractor/internal/coerce"
	"github.com/mcncl/extractor/internal/extractor"
	"github.com/mcncl/extractor/internal/models"
)

// DefaultMaxDepth bounds how many mapping levels are walked when no depth is given.
const DefaultMaxDepth = 8

// ElementSuffix marks a path segment that steps into sequence elements.
const ElementSuffix = "[]"

// Regex patterns for values that look like something other than their kind
var (
	rfc3339Regex       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`) // 2006-01-02T15:04:05Z
	dateOnlyRegex      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)                                              // 2006-01-02
	numericTextRegex   = regexp.MustCompile(`^\s*[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?\s*$`)
	unixTimestampRegex = regexp.MustCompile(`^1[0-9]{9}$`) // Unix timestamp (seconds since 1970)
	unixMilliRegex     = regexp.MustCompile(`^1[0-9]{12}$`) // Unix timestamp in milliseconds
)

// Hint flags a value whose content suggests a target its kind alone does not.
type Hint string

const (
	HintNone         Hint = ""
	HintUUID         Hint = "uuid"
	HintDateText     Hint = "date-text"
	HintNumericText  Hint = "numeric-text"
	HintEpochSeconds Hint = "epoch-seconds"
	HintEpochMillis  Hint = "epoch-millis"
)

// Field describes every value observed at one key path.
type Field struct {
	Path string
	// Accessor is the key path as a Go identifier.
	Accessor string
	Kind     models.Kind
	// Mixed is set when values at this path had different kinds, as happens
	// across the elements of a sequence.
	Mixed bool
	// Accepts lists the targets that forced extraction succeeds with for
	// every observed value.
	Accepts []models.TargetType
	// Elements lists the distinct element kinds of a sequence, in Kind order.
	Elements []models.Kind
	Hint     Hint
}

// Report is the result of analyzing one document.
type Report struct {
	Format   string
	RootKind models.Kind
	Fields   []Field
	// Truncated is set when mappings deeper than the depth limit were skipped.
	Truncated bool
}

// Analyzer walks a decoded document and reports how each key can be extracted.
type Analyzer struct {
	maxDepth int
	targets  []coerce.Checker
	fields   map[string]*Field
	order    []string
	report   Report
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithDepth(DefaultMaxDepth)
}

// NewAnalyzerWithDepth creates an Analyzer that descends at most maxDepth
// mapping levels. Values below 1 select DefaultMaxDepth.
func NewAnalyzerWithDepth(maxDepth int) *Analyzer {
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}
	return &Analyzer{
		maxDepth: maxDepth,
		targets:  append(coerce.Builtin(), extractor.NestedView),
	}
}

// Analyze processes the representation and returns a report with fields in
// depth-first, key-sorted order.
func (a *Analyzer) Analyze(ir models.IntermediateRepresentation) (Report, error) {
	a.fields = make(map[string]*Field)
	a.order = nil
	a.report = Report{Format: ir.Format}

	root := models.Of(ir.Root)
	a.report.RootKind = root.Kind()

	switch root.Kind() {
	case models.KindMapping:
		a.analyzeMapping(root, "", 1)
	case models.KindSequence:
		a.analyzeElements(root, ElementSuffix, 1)
	case models.KindAbsent:
		return Report{}, fmt.Errorf("document has no root value")
	}

	a.report.Fields = make([]Field, 0, len(a.order))
	for _, path := range a.order {
		a.report.Fields = append(a.report.Fields, *a.fields[path])
	}
	return a.report, nil
}

func (a *Analyzer) analyzeMapping(v models.Value, prefix string, depth int) {
	if depth > a.maxDepth {
		a.report.Truncated = true
		return
	}
	fields, _ := v.Fields()

	// To ensure deterministic ordering, extract keys, sort them, and then iterate.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		child := models.Of(fields[key])
		a.observe(path, child)

		switch child.Kind() {
		case models.KindMapping:
			a.analyzeMapping(child, path, depth+1)
		case models.KindSequence:
			a.analyzeElements(child, path+ElementSuffix, depth+1)
		}
	}
}

// analyzeElements merges the mapping elements of a sequence under one path
// prefix, so every element contributes to the same fields.
func (a *Analyzer) analyzeElements(v models.Value, prefix string, depth int) {
	items, _ := v.Items()
	for _, item := range items {
		if elem := models.Of(item); elem.Kind() == models.KindMapping {
			a.analyzeMapping(elem, prefix, depth)
		}
	}
}

func (a *Analyzer) observe(path string, v models.Value) {
	accepts := a.accepted(v)
	hint := detectHint(v)

	field, seen := a.fields[path]
	if !seen {
		a.fields[path] = &Field{
			Path:     path,
			Accessor: accessorName(path),
			Kind:     v.Kind(),
			Accepts:  accepts,
			Elements: elementKinds(v, nil),
			Hint:     hint,
		}
		a.order = append(a.order, path)
		return
	}

	if field.Kind != v.Kind() {
		field.Mixed = true
	}
	field.Accepts = intersect(field.Accepts, accepts)
	field.Elements = elementKinds(v, field.Elements)
	if field.Hint != hint {
		field.Hint = HintNone
	}
}

func (a *Analyzer) accepted(v models.Value) []models.TargetType {
	var out []models.TargetType
	for _, t := range a.targets {
		if t.Accepts(v) {
			out = append(out, t.Type())
		}
	}
	return out
}

func intersect(a, b []models.TargetType) []models.TargetType {
	var out []models.TargetType
	for _, x := range a {
		for _, y := range b {
			if x == y {
				out = append(out, x)
				break
			}
		}
	}
	return out
}

func elementKinds(v models.Value, known []models.Kind) []models.Kind {
	items, ok := v.Items()
	if !ok {
		return known
	}
	seen := make(map[models.Kind]bool, len(known))
	for _, k := range known {
		seen[k] = true
	}
	for _, item := range items {
		seen[models.Of(item).Kind()] = true
	}
	out := make([]models.Kind, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func detectHint(v models.Value) Hint {
	switch v.Kind() {
	case models.KindString:
		s, _ := v.Text()
		switch {
		case isUUID(s):
			return HintUUID
		case rfc3339Regex.MatchString(s), dateOnlyRegex.MatchString(s):
			return HintDateText
		case numericTextRegex.MatchString(s):
			return HintNumericText
		}
	case models.KindInteger:
		n, _ := v.Int()
		digits := strconv.FormatInt(n, 10)
		switch {
		case unixTimestampRegex.MatchString(digits):
			return HintEpochSeconds
		case unixMilliRegex.MatchString(digits):
			return HintEpochMillis
		}
	}
	return HintNone
}

// isUUID accepts the hyphenated form only; uuid.Parse alone also takes bare hex.
func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// accessorName converts a key path such as "items[].unit_price" to "ItemsUnitPrice".
func accessorName(path string) string {
	path = strings.ReplaceAll(path, ElementSuffix, "")
	path = strings.ReplaceAll(path, ".", "_")
	return strcase.ToCamel(path)
}
