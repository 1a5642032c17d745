package i18n

import "strings"

// Message codes used by the validation layer.
const (
	CodeInvalidValue         = "invalid_value"
	CodeMandatory            = "mandatory"
	CodeEncoderPrecondition  = "encoder_precondition"
	CodeUnsupportedMediaType = "unsupported_content_type"
	CodeLabelHeader          = "label_header"
	CodeLabelQuery           = "label_query"
	CodeLabelURLParameter    = "label_url_parameter"
)

// Translator retrieves localized messages for message codes.
// data provides values for the {placeholders} in the message (for example,
// "value" and "path" for invalid_value).
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl := t.template(code)
	if tmpl == "" {
		return code
	}
	return fill(tmpl, data)
}

func (t dictTranslator) template(code string) string {
	switch t.lang {
	case "ja":
		switch code {
		case CodeInvalidValue:
			return "{path} に不正な値 {value} が渡されました"
		case CodeMandatory:
			return "{label} \"{name}\" は必須です。"
		case CodeEncoderPrecondition:
			return "入力値がバリデータの要求する型ではありません。"
		case CodeUnsupportedMediaType:
			return "サポートされていないコンテントタイプです (対応: {supported})"
		case CodeLabelHeader:
			return "ヘッダー"
		case CodeLabelQuery:
			return "クエリパラメータ"
		case CodeLabelURLParameter:
			return "URLパラメータ"
		}
	default: // "en"
		switch code {
		case CodeInvalidValue:
			return "Invalid value {value} supplied to {path}"
		case CodeMandatory:
			return "{label} \"{name}\" is mandatory."
		case CodeEncoderPrecondition:
			return "Given value for input was not what the validator needed."
		case CodeUnsupportedMediaType:
			return "unsupported content type (supported: {supported})"
		case CodeLabelHeader:
			return "Header"
		case CodeLabelQuery:
			return "Query parameter"
		case CodeLabelURLParameter:
			return "URL parameter"
		}
	}
	return ""
}

func fill(tmpl string, data map[string]string) string {
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
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
