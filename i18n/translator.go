package i18n

import (
	"sort"
	"strings"
)

// Translator retrieves localized messages for Issue codes.
// data provides values for the {placeholders} of the message (for example,
// "field" or "max").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dict = map[string]map[string]string{
	"en": {
		"invalid_value":     "{field} must be one of {allowed}, got {got}",
		"required":          "{field} is required",
		"too_long":          "{field} must be at most {max} characters, got {got}",
		"out_of_range":      "{field} must be between {min} and {max}, got {got}",
		"range_order":       "{field} range {lo}-{hi} must not be descending",
		"exclusive":         "exactly one of {fields} must be given, got {got}",
		"duplicate":         "{field} {value} is already used by {other}",
		"reference_missing": "{field} references {target} {ref} which is not defined",
		"circular":          "circular reference {path}",
		"unused":            "{subject} is not referenced by any {by}",
		"file_missing":      "referenced file {path} does not exist",
		"rule_panic":        "rule {rule} failed: {error}",
	},
	"ja": {
		"invalid_value":     "{field} は {allowed} のいずれかである必要があります (値: {got})",
		"required":          "{field} は必須です",
		"too_long":          "{field} は {max} 文字以内である必要があります (値: {got})",
		"out_of_range":      "{field} は {min} から {max} の範囲である必要があります (値: {got})",
		"range_order":       "{field} の範囲 {lo}-{hi} が降順です",
		"exclusive":         "{fields} のうち一つだけを指定してください (指定数: {got})",
		"duplicate":         "{field} {value} は {other} で既に使われています",
		"reference_missing": "{field} が参照する {target} {ref} は定義されていません",
		"circular":          "循環参照 {path}",
		"unused":            "{subject} はどの {by} からも参照されていません",
		"file_missing":      "参照ファイル {path} が存在しません",
		"rule_panic":        "ルール {rule} の実行に失敗しました: {error}",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dict[t.lang][code]
	if !ok {
		tmpl, ok = dict["en"][code]
	}
	if !ok {
		return code
	}
	return expand(tmpl, data)
}

// expand replaces {key} with data[key]; unknown placeholders are kept.
func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", data[k])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
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
