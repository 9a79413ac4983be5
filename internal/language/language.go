package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Descriptor is one entry of the voice-pack catalogue.
type Descriptor struct {
	Code        string       // short key used for folder and .toc names
	DisplayName string       // English name
	EngineToken string       // value passed to +miles_language
	Tag         language.Tag // BCP 47 tag used for native display names
}

var catalogue = [...]Descriptor{
	{"en", "English", "english", language.English},
	{"ja", "Japanese", "japanese", language.Japanese},
	{"cn", "Chinese", "chinese", language.Chinese},
	{"de", "German", "german", language.German},
	{"fr", "French", "french", language.French},
	{"es", "Spanish", "spanish", language.Spanish},
	{"ru", "Russian", "russian", language.Russian},
	{"ko", "Korean", "korean", language.Korean},
}

var byCode map[string]int

func init() {
	byCode = make(map[string]int, len(catalogue))
	for i := range catalogue {
		byCode[catalogue[i].Code] = i
	}
}

func normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Lookup returns the descriptor for code. Codes are matched case-insensitively.
func Lookup(code string) (Descriptor, bool) {
	idx, ok := byCode[normalize(code)]
	if !ok {
		return Descriptor{}, false
	}
	return catalogue[idx], true
}

// Known reports whether code names a catalogue entry.
func Known(code string) bool {
	_, ok := byCode[normalize(code)]
	return ok
}

// Normalize returns the canonical form of a known code, or "" when unknown.
func Normalize(code string) string {
	if d, ok := Lookup(code); ok {
		return d.Code
	}
	return ""
}

// All returns a copy of the catalogue in display order.
func All() []Descriptor {
	out := make([]Descriptor, len(catalogue))
	copy(out, catalogue[:])
	return out
}

// Codes returns the catalogue codes in display order.
func Codes() []string {
	out := make([]string, len(catalogue))
	for i := range catalogue {
		out[i] = catalogue[i].Code
	}
	return out
}

// NativeName returns the language's name in that language, falling back to
// the English display name.
func NativeName(code string) string {
	d, ok := Lookup(code)
	if !ok {
		return strings.ToUpper(strings.TrimSpace(code))
	}
	if name := display.Self.Name(d.Tag); name != "" {
		return name
	}
	return d.DisplayName
}

// Label renders "Native (English)" for menus and tables.
func Label(code string) string {
	d, ok := Lookup(code)
	if !ok {
		return NativeName(code)
	}
	native := NativeName(code)
	if strings.EqualFold(native, d.DisplayName) {
		return d.DisplayName
	}
	return native + " (" + d.DisplayName + ")"
}

// LaunchOption returns the launch parameter that makes the engine load the
// voice pack for code, or "" for unknown codes.
func LaunchOption(code string) string {
	d, ok := Lookup(code)
	if !ok {
		return ""
	}
	return "+miles_language " + d.EngineToken
}
