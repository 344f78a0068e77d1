package verity

import (
	"bytes"
	"context"
	"io"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DecodeJSON decodes raw JSON into the engine's untyped value domain.
// Numbers are preserved as json.Number to avoid float64 precision loss.
func DecodeJSON(data []byte) (any, error) {
	return DecodeJSONReader(bytes.NewReader(data))
}

// DecodeJSONReader is the io.Reader variant of DecodeJSON.
func DecodeJSONReader(r io.Reader) (any, error) {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, AppendIssues(nil, Issue{Code: CodeParseError, Message: err.Error(), Cause: err})
	}
	return v, nil
}

// ParseJSON decodes JSON bytes and validates the result against the schema.
func ParseJSON[T any](ctx context.Context, s Schema[T], data []byte) (T, error) {
	var zero T
	v, err := DecodeJSON(data)
	if err != nil {
		return zero, err
	}
	return s.Parse(ctx, v)
}

// SafeParseJSON is the non-throwing variant of ParseJSON. Decode failures are
// reported through the envelope like any other issue.
func SafeParseJSON[T any](ctx context.Context, s Schema[T], data []byte) Result[T] {
	v, err := DecodeJSON(data)
	if err != nil {
		iss, _ := AsIssues(err)
		return FailResult[T](iss)
	}
	return s.SafeParse(ctx, v)
}

// DecodeYAML decodes raw YAML into the engine's untyped value domain.
// Scalars arrive with Go-native types (int, float64, bool, string); the
// number schema accepts all of them.
func DecodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, AppendIssues(nil, Issue{Code: CodeParseError, Message: err.Error(), Cause: err})
	}
	return v, nil
}

// ParseYAML decodes YAML bytes and validates the result against the schema.
func ParseYAML[T any](ctx context.Context, s Schema[T], data []byte) (T, error) {
	var zero T
	v, err := DecodeYAML(data)
	if err != nil {
		return zero, err
	}
	return s.Parse(ctx, v)
}
