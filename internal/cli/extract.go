package cli

import (
	"strings"

	"github.com/mcncl/extractor/internal/coerce"
	"github.com/mcncl/extractor/internal/extractor"
	"github.com/mcncl/extractor/internal/formatter"
	"github.com/mcncl/extractor/internal/models"
)

// PathSeparator splits a key path into nested mapping lookups.
const PathSeparator = "."

// Request describes one path extraction
type Request struct {
	Path   string
	Target models.TargetType
	// Infer picks the target from the value found at Path, ignoring Target.
	Infer bool
	Mode  coerce.Mode
	// Each coerces the elements of a sequence instead of the value itself.
	Each bool
	// Marker replaces elements that do not convert. Nil selects the
	// target's fallback.
	Marker any
}

// Extract resolves req.Path under root and converts the value it names.
// Intermediate segments are looked up as nested mappings in req.Mode, so a
// lenient lookup through a missing mapping yields the target's fallback.
func Extract(root *extractor.Extractor, req Request) formatter.Result {
	res := formatter.Result{Path: req.Path, Target: req.Target, Mode: req.Mode}

	view, key, err := resolve(root, req.Path, req.Mode)
	if err != nil {
		res.Err = err
		return res
	}

	if req.Infer {
		v := view.Lookup(key)
		if req.Each {
			v = v.Index(0)
		}
		res.Target = InferTarget(v)
	}

	if req.Each {
		res.Value, res.Err = extractEach(view, key, res.Target, req.Mode, req.Marker)
	} else {
		res.Value, res.Err = extractOne(view, key, res.Target, req.Mode)
	}
	return res
}

func resolve(root *extractor.Extractor, path string, mode coerce.Mode) (*extractor.Extractor, string, error) {
	segments := strings.Split(path, PathSeparator)
	view := root
	for _, segment := range segments[:len(segments)-1] {
		next, err := extractor.Get(view, segment, extractor.NestedView, mode)
		if err != nil {
			return nil, "", err
		}
		view = next
	}
	return view, segments[len(segments)-1], nil
}

// InferTarget picks the target a value converts to without loss.
func InferTarget(v models.Value) models.TargetType {
	switch v.Kind() {
	case models.KindBool:
		return models.TargetBool
	case models.KindInteger:
		return models.TargetSignedInteger
	case models.KindFloat:
		return models.TargetDecimalNumber
	case models.KindSequence:
		return models.TargetRawSequence
	case models.KindMapping:
		return models.TargetRawMapping
	}
	return models.TargetString
}

func extractOne(view *extractor.Extractor, key string, target models.TargetType, mode coerce.Mode) (any, error) {
	switch target {
	case models.TargetBool:
		return get(view, key, coerce.Bool, mode)
	case models.TargetSignedInteger:
		return get(view, key, coerce.Int, mode)
	case models.TargetUnsignedInteger:
		return get(view, key, coerce.Uint, mode)
	case models.TargetNumber:
		return get(view, key, coerce.Number, mode)
	case models.TargetUnixDate:
		return get(view, key, coerce.UnixDate, mode)
	case models.TargetDecimalNumber:
		return get(view, key, coerce.Decimal, mode)
	case models.TargetRawSequence:
		return get(view, key, coerce.Sequence, mode)
	case models.TargetRawMapping:
		return get(view, key, coerce.Mapping, mode)
	case models.TargetNestedMappingView:
		return get(view, key, extractor.NestedView, mode)
	}
	return get(view, key, coerce.String, mode)
}

func extractEach(view *extractor.Extractor, key string, target models.TargetType, mode coerce.Mode, marker any) (any, error) {
	switch target {
	case models.TargetBool:
		return each(view, key, coerce.Bool, mode, marker)
	case models.TargetSignedInteger:
		return each(view, key, coerce.Int, mode, marker)
	case models.TargetUnsignedInteger:
		return each(view, key, coerce.Uint, mode, marker)
	case models.TargetNumber:
		return each(view, key, coerce.Number, mode, marker)
	case models.TargetUnixDate:
		return each(view, key, coerce.UnixDate, mode, marker)
	case models.TargetDecimalNumber:
		return each(view, key, coerce.Decimal, mode, marker)
	case models.TargetRawSequence:
		return each(view, key, coerce.Sequence, mode, marker)
	case models.TargetRawMapping:
		return each(view, key, coerce.Mapping, mode, marker)
	case models.TargetNestedMappingView:
		return each(view, key, extractor.NestedView, mode, marker)
	}
	return each(view, key, coerce.String, mode, marker)
}

func get[T any](view *extractor.Extractor, key string, t coerce.Target[T], mode coerce.Mode) (any, error) {
	v, err := extractor.Get(view, key, t, mode)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func each[T any](view *extractor.Extractor, key string, t coerce.Target[T], mode coerce.Mode, marker any) (any, error) {
	if marker == nil {
		marker = t.Fallback()
	}
	items, err := extractor.GetMarked(view, key, t, mode, marker)
	if err != nil || items == nil {
		return nil, err
	}
	return items, nil
}
