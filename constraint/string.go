package constraint

import (
	"regexp"
	"strings"

	guuid "github.com/google/uuid"

	verity "github.com/verity-go/verity"
	"github.com/verity-go/verity/i18n"
)

// String is the rule family for string values. The wrapper shares one
// underlying Constraint, so chained calls configure the same evaluator.
type String struct{ *Constraint }

// NewString returns a string constraint with no rules attached.
func NewString() String { return String{New(Primitive(KindString))} }

func str(v any) string {
	s, _ := v.(string)
	return s
}

// MinLength requires len(value) >= n.
func (s String) MinLength(n int) String {
	s.Add("minLength", verity.CodeTooShort,
		func(v any) bool { return len(str(v)) >= n },
		ruleMsg(verity.CodeTooShort, nil),
		map[string]any{"min": n})
	return s
}

// MaxLength requires len(value) <= n.
func (s String) MaxLength(n int) String {
	s.Add("maxLength", verity.CodeTooLong,
		func(v any) bool { return len(str(v)) <= n },
		ruleMsg(verity.CodeTooLong, nil),
		map[string]any{"max": n})
	return s
}

// Length requires len(value) == n exactly.
func (s String) Length(n int) String {
	s.Add("length", verity.CodeInvalidLength,
		func(v any) bool { return len(str(v)) == n },
		ruleMsg(verity.CodeInvalidLength, map[string]any{"want": n}),
		map[string]any{"want": n})
	return s
}

// Pattern requires the value to match re.
func (s String) Pattern(re *regexp.Regexp) String {
	s.Add("pattern", verity.CodePattern,
		func(v any) bool { return re.MatchString(str(v)) },
		ruleMsg(verity.CodePattern, nil),
		map[string]any{"pattern": re.String()})
	return s
}

// StartsWith requires the given prefix.
func (s String) StartsWith(prefix string) String {
	s.Add("startsWith", verity.CodeInvalidFormat,
		func(v any) bool { return strings.HasPrefix(str(v), prefix) },
		func(any) string { return i18n.T(verity.CodeInvalidFormat, nil) + ": must start with " + prefix },
		map[string]any{"prefix": prefix})
	return s
}

// EndsWith requires the given suffix.
func (s String) EndsWith(suffix string) String {
	s.Add("endsWith", verity.CodeInvalidFormat,
		func(v any) bool { return strings.HasSuffix(str(v), suffix) },
		func(any) string { return i18n.T(verity.CodeInvalidFormat, nil) + ": must end with " + suffix },
		map[string]any{"suffix": suffix})
	return s
}

// NotEmpty rejects the empty string.
func (s String) NotEmpty() String {
	s.Add("notEmpty", verity.CodeTooShort,
		func(v any) bool { return str(v) != "" },
		ruleMsg(verity.CodeTooShort, nil), nil)
	return s
}

// UUID requires the RFC 4122 textual form.
func (s String) UUID() String {
	s.Add("uuid", verity.CodeInvalidFormat,
		func(v any) bool {
			_, err := guuid.Parse(str(v))
			return err == nil
		},
		func(any) string { return i18n.T(verity.CodeInvalidFormat, nil) + ": must be a UUID" },
		nil)
	return s
}

// Nullable permits null while keeping the String wrapper for chaining.
func (s String) Nullable() String { s.Constraint.Nullable(); return s }

// Nullish permits null and absent while keeping the String wrapper.
func (s String) Nullish() String { s.Constraint.Nullish(); return s }
