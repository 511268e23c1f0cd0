package layouts

import (
	"golang.org/x/text/language"
	"strings"
	"sync"
)

// LocaleNamer maps a language identifier to a locale name such as "ru-RU".
// It reports false when the platform does not know the identifier.
type LocaleNamer func(langID uint16) (string, bool)

// reserved identifiers are placeholders, not languages.
var reserved = map[uint16]struct{}{
	0x0000: {}, // neutral
	0x007F: {}, // invariant
	0x0400: {}, // user default
	0x0800: {}, // system default
	0x0C00: {}, // custom default
	0x1000: {}, // custom unspecified
	0x1400: {}, // custom UI default
}

// builtinLocales covers the layouts people actually switch between, so the
// common path never leaves the process.
var builtinLocales = map[uint16]string{
	0x0401: "ar-SA",
	0x0402: "bg-BG",
	0x0404: "zh-TW",
	0x0405: "cs-CZ",
	0x0406: "da-DK",
	0x0407: "de-DE",
	0x0408: "el-GR",
	0x0409: "en-US",
	0x040B: "fi-FI",
	0x040C: "fr-FR",
	0x040D: "he-IL",
	0x040E: "hu-HU",
	0x0410: "it-IT",
	0x0411: "ja-JP",
	0x0412: "ko-KR",
	0x0413: "nl-NL",
	0x0414: "nb-NO",
	0x0415: "pl-PL",
	0x0416: "pt-BR",
	0x0418: "ro-RO",
	0x0419: "ru-RU",
	0x041A: "hr-HR",
	0x041B: "sk-SK",
	0x041D: "sv-SE",
	0x041E: "th-TH",
	0x041F: "tr-TR",
	0x0422: "uk-UA",
	0x0423: "be-BY",
	0x0424: "sl-SI",
	0x0425: "et-EE",
	0x0426: "lv-LV",
	0x0427: "lt-LT",
	0x0429: "fa-IR",
	0x042A: "vi-VN",
	0x042B: "hy-AM",
	0x042C: "az-Latn-AZ",
	0x0437: "ka-GE",
	0x0439: "hi-IN",
	0x043F: "kk-KZ",
	0x0443: "uz-Latn-UZ",
	0x0804: "zh-CN",
	0x0807: "de-CH",
	0x0809: "en-GB",
	0x080A: "es-MX",
	0x080C: "fr-BE",
	0x0816: "pt-PT",
	0x0C07: "de-AT",
	0x0C09: "en-AU",
	0x0C0A: "es-ES",
	0x0C0C: "fr-CA",
	0x1009: "en-CA",
	0x100C: "fr-CH",
}

// Registry resolves language identifiers to layout codes. It is safe for
// concurrent use.
type Registry struct {
	namer LocaleNamer

	mu    sync.RWMutex
	cache map[uint16]LayoutCode
}

// NewRegistry creates a registry backed by the built-in table. namer may be
// nil; when set it is asked about identifiers the table does not know.
func NewRegistry(namer LocaleNamer) *Registry {
	return &Registry{
		namer: namer,
		cache: make(map[uint16]LayoutCode),
	}
}

// LangIDFromHKL extracts the language identifier from a keyboard layout
// handle. The high word names the physical layout and is ignored.
func LangIDFromHKL(hkl uintptr) uint16 {
	return uint16(hkl & 0xFFFF)
}

func (r *Registry) Resolve(langID uint16) LayoutCode {
	r.mu.RLock()
	code, ok := r.cache[langID]
	r.mu.RUnlock()
	if ok {
		return code
	}

	code = r.resolve(langID)

	r.mu.Lock()
	r.cache[langID] = code
	r.mu.Unlock()

	return code
}

func (r *Registry) resolve(langID uint16) LayoutCode {
	name := r.LocaleName(langID)
	if name == "" {
		return Unknown(langID)
	}

	tag, ok := TagFromLocaleName(name)
	if !ok {
		return Unknown(langID)
	}

	return Known(tag)
}

// LocaleName returns the locale name for langID, or "" if there is none.
func (r *Registry) LocaleName(langID uint16) string {
	if _, ok := reserved[langID]; ok {
		return ""
	}

	if name, ok := builtinLocales[langID]; ok {
		return name
	}

	if r.namer == nil {
		return ""
	}

	name, ok := r.namer(langID)
	if !ok {
		return ""
	}

	return name
}

// TagFromLocaleName turns a locale name into an upper-case base language
// tag: "uk-UA" -> "UK", "sr-Latn-RS" -> "SR".
func TagFromLocaleName(name string) (string, bool) {
	tag, err := language.Parse(name)
	if err != nil {
		return "", false
	}

	base, conf := tag.Base()
	if conf != language.Exact {
		return "", false
	}

	return strings.ToUpper(base.String()), true
}
