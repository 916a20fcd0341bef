package i18n

import "sync"

// Translator retrieves localized messages for error codes.
// data provides optional metadata to embed in the message (for example,
// "element" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dict = map[string]map[string]string{
	"en": {
		"namespace_mismatch":   "namespace mismatch",
		"unrecognized_element": "unrecognized element",
		"misplaced_element":    "element used outside its valid context",
		"missing_attribute":    "missing or empty attribute",
		"empty_property":       "empty property",
		"duplicate_key":        "duplicate key",
		"structural_mismatch":  "structural mismatch",
		"premature_end":        "premature end of input",
		"number_format":        "invalid number",
		"unsupported_feature":  "unsupported feature",
		"unexpected_token":     "unexpected token",
		"trailing_content":     "trailing content",
		"too_deep":             "nesting too deep",
		"truncated":            "truncated",
		"parse_error":          "parse error",
		"invalid_character":    "character not allowed in XML",
	},
	"ja": {
		"namespace_mismatch":   "名前空間が不正です",
		"unrecognized_element": "未知の要素です",
		"misplaced_element":    "この位置では使えない要素です",
		"missing_attribute":    "属性がないか空です",
		"empty_property":       "プロパティが空です",
		"duplicate_key":        "キーが重複しています",
		"structural_mismatch":  "構造が不正です",
		"premature_end":        "入力が途中で終わっています",
		"number_format":        "数値が不正です",
		"unsupported_feature":  "未対応の機能です",
		"unexpected_token":     "予期しないトークンです",
		"trailing_content":     "余分な内容があります",
		"too_deep":             "入れ子が深すぎます",
		"truncated":            "打ち切られました",
		"parse_error":          "解析エラー",
		"invalid_character":    "XMLで使えない文字です",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	if m, ok := dict[t.lang][code]; ok {
		return m
	}
	return code
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
