package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "required":
			return "必須です"
		case "required_if":
			return "依存先の条件により必須です"
		case "invalid_enum":
			return "許可された値ではありません"
		case "unknown_key":
			return "未知のキーです"
		case "parse_error":
			return "解析エラー"
		case "too_short":
			return "要素数が不足しています"
		case "duplicate":
			return "重複しています"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			if data["expected"] != "" && data["got"] != "" {
				return "expected " + data["expected"] + ", got " + data["got"]
			}
			return "invalid type"
		case "required":
			return "is required"
		case "required_if":
			if data["value"] != "" {
				return "is required when " + quote(data["key"]) + " is " + quote(data["value"])
			}
			return "is required when " + quote(data["key"]) + " is present"
		case "invalid_enum":
			if data["value"] != "" {
				return "value " + quote(data["value"]) + " is not one of the allowed values"
			}
			return "is not one of the allowed values"
		case "unknown_key":
			return "unknown key received"
		case "parse_error":
			return "parse error"
		case "too_short":
			if data["min"] != "" {
				return "requires at least " + data["min"] + " item(s)"
			}
			return "has too few items"
		case "duplicate":
			if data["key"] != "" {
				return "duplicate value for " + quote(data["key"])
			}
			return "duplicate value"
		}
	}
	return code
}

func quote(s string) string { return `"` + s + `"` }

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
