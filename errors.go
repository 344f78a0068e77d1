package verity

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType     = "invalid_type"
	CodeUnsupportedType = "unsupported_type"
	CodeRequired        = "required"
	CodeUnknownKey      = "unknown_key"
	CodeTooSmall        = "too_small"
	CodeTooBig          = "too_big"
	CodeTooShort        = "too_short"
	CodeTooLong         = "too_long"
	CodeInvalidLength   = "invalid_length"
	CodePattern         = "pattern"
	CodeInvalidFormat   = "invalid_format"
	CodeNotInteger      = "not_integer"
	CodeNotFinite       = "not_finite"
	CodeOutOfRange      = "out_of_range"
	CodeParseError      = "parse_error"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // Engine path: "*.<index>" for elements, "root$.<key>" for object properties.
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, format names, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"min":1, "max":10, "got":42})
	// for i18n and observability.
	Params map[string]any
	// Rule optionally records the rule name that produced this issue.
	Rule string
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at root$.email
		if it.Path == "" {
			fmt.Fprintf(b, "%s: %s", it.Code, it.Message)
		} else {
			fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Messages returns the plain message strings of all issues, in order.
func (iss Issues) Messages() []string {
	out := make([]string, 0, len(iss))
	for _, it := range iss {
		out = append(out, it.Message)
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Rebase prefixes every issue path with base, joining nested segments with a
// dot. An empty child path collapses onto the base itself. Composite parsers
// use this to qualify child failures with the element index or property key.
func (iss Issues) Rebase(base string) Issues {
	if len(iss) == 0 {
		return iss
	}
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		it.Path = JoinPath(base, it.Path)
		out = append(out, it)
	}
	return out
}

// JoinPath joins two path segments with a dot, tolerating empty halves.
func JoinPath(base, sub string) string {
	switch {
	case base == "":
		return sub
	case sub == "":
		return base
	default:
		return base + "." + sub
	}
}

// ParseError is raised only by the error-returning Parse entry point. It wraps
// the structured issue payload and, when the schema carries a description,
// embeds it in a human-readable message.
type ParseError struct {
	Description string
	Issues      Issues
}

func (e *ParseError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("failed parsing `%s` input: %s", e.Description, e.Issues.Error())
	}
	return "failed parsing input: " + e.Issues.Error()
}

// Unwrap exposes the issue payload so errors.As(err, &Issues{}) keeps working
// across the Parse boundary.
func (e *ParseError) Unwrap() error { return e.Issues }
