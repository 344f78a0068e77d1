package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "given").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var tmpl string
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			tmpl = "{expected}型である必要があります({given}が与えられました)"
		case "unsupported_type":
			tmpl = "{given}型はサポートされていません"
		case "required":
			tmpl = "必須プロパティが不足しています: {keys}"
		case "unknown_key":
			tmpl = "未知のキーです"
		case "too_small":
			tmpl = "小さすぎます"
		case "too_big":
			tmpl = "大きすぎます"
		case "too_short":
			tmpl = "短すぎます"
		case "too_long":
			tmpl = "長すぎます"
		case "invalid_length":
			tmpl = "長さが{want}ではありません"
		case "pattern":
			tmpl = "パターンに一致しません"
		case "invalid_format":
			tmpl = "形式が不正です"
		case "not_integer":
			tmpl = "整数である必要があります"
		case "not_finite":
			tmpl = "有限の数である必要があります"
		case "out_of_range":
			tmpl = "{min}と{max}の範囲内である必要があります"
		case "parse_error":
			tmpl = "解析エラー"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			tmpl = "must be of type {expected}, {given} given"
		case "unsupported_type":
			tmpl = "unsupported type {given}"
		case "required":
			tmpl = "required properties missing: {keys}"
		case "unknown_key":
			tmpl = "unknown key"
		case "too_small":
			tmpl = "too small"
		case "too_big":
			tmpl = "too big"
		case "too_short":
			tmpl = "too short"
		case "too_long":
			tmpl = "too long"
		case "invalid_length":
			tmpl = "length must be exactly {want}"
		case "pattern":
			tmpl = "does not match pattern"
		case "invalid_format":
			tmpl = "invalid format"
		case "not_integer":
			tmpl = "must be an integer"
		case "not_finite":
			tmpl = "must be a finite number"
		case "out_of_range":
			tmpl = "must be between {min} and {max}"
		case "parse_error":
			tmpl = "parse error"
		}
	}
	if tmpl == "" {
		return code
	}
	return expand(tmpl, data)
}

// expand substitutes {key} placeholders with data values. Placeholders with
// no matching entry are left as-is.
func expand(tmpl string, data map[string]string) string {
	if !strings.ContainsRune(tmpl, '{') {
		return tmpl
	}
	out := tmpl
	for k, v := range data {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
