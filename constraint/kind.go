package constraint

import (
	"encoding/json"
	"reflect"
	"time"

	verity "github.com/verity-go/verity"
)

// Kind is the closed set of runtime kind tags the engine distinguishes.
type Kind int

const (
	KindAny Kind = iota
	KindString
	KindNumber
	KindBool
	KindDate
	KindArray
	KindObject
	KindMap
	KindSet
	KindNull
	KindNullish
	kindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindMap:
		return "map"
	case KindSet:
		return "set"
	case KindNull:
		return "null"
	case KindNullish:
		return "nullish"
	default:
		return "unknown"
	}
}

// Expect is what a constraint demands of a raw value before any named rules
// run: either one of the closed kind tags, or an arbitrary predicate supplied
// by the schema author (the escape hatch for structural acceptance).
type Expect struct {
	kind Kind
	pred func(any) bool
	name string
}

// Primitive builds an Expect matching one kind tag.
func Primitive(k Kind) Expect { return Expect{kind: k} }

// Predicate builds an Expect delegating acceptance to fn. The name labels the
// expectation in error messages.
func Predicate(name string, fn func(any) bool) Expect {
	return Expect{pred: fn, name: name}
}

// IsPredicate reports whether the expectation is predicate-based.
func (e Expect) IsPredicate() bool { return e.pred != nil }

// Name renders the expectation for error messages.
func (e Expect) Name() string {
	if e.pred != nil {
		return e.name
	}
	return e.kind.String()
}

func (e Expect) check(v any) bool {
	if e.pred != nil {
		return e.pred(v)
	}
	switch e.kind {
	case KindAny:
		return true
	case KindNull:
		return v == nil
	case KindNullish:
		return v == nil || verity.IsAbsent(v)
	default:
		return KindOf(v) == e.kind
	}
}

// KindOf classifies an untyped value into a kind tag. Inputs are expected to
// come from JSON/YAML decoding or from Go callers handing over native values.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case bool:
		return KindBool
	case json.Number, float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return KindNumber
	case time.Time:
		return KindDate
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	case map[any]any:
		return KindMap
	}
	if verity.IsAbsent(v) {
		return KindNullish
	}
	// Typed slices and maps from Go callers.
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Slice, reflect.Array:
		return KindArray
	case reflect.Map:
		// A map with empty-struct values is the set container.
		if rv.Type().Elem() == reflect.TypeOf(struct{}{}) {
			return KindSet
		}
		if rv.Type().Key().Kind() == reflect.String {
			return KindObject
		}
		return KindMap
	}
	return kindUnknown
}
