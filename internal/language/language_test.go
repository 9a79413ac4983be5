package language

import (
	"strings"
	"testing"
)

func TestCatalogueOrderAndSize(t *testing.T) {
	want := []string{"en", "ja", "cn", "de", "fr", "es", "ru", "ko"}
	got := Codes()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Codes() = %v, want %v", got, want)
	}
	if len(All()) != 8 {
		t.Fatalf("expected 8 descriptors, got %d", len(All()))
	}
}

func TestAllReturnsCopy(t *testing.T) {
	entries := All()
	entries[0].Code = "xx"
	if d, _ := Lookup("en"); d.Code != "en" {
		t.Fatalf("catalogue mutated through All(): %+v", d)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		input string
		code  string
		ok    bool
	}{
		{"en", "en", true},
		{"EN", "en", true},
		{" cn ", "cn", true},
		{"zh", "", false},
		{"voen", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, ok := Lookup(tt.input)
			if ok != tt.ok || d.Code != tt.code {
				t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)", tt.input, d.Code, ok, tt.code, tt.ok)
			}
			if Known(tt.input) != tt.ok {
				t.Errorf("Known(%q) = %v", tt.input, !tt.ok)
			}
		})
	}
}

func TestLaunchOption(t *testing.T) {
	tests := map[string]string{
		"en": "+miles_language english",
		"cn": "+miles_language chinese",
		"ko": "+miles_language korean",
		"xx": "",
	}
	for code, want := range tests {
		if got := LaunchOption(code); got != want {
			t.Errorf("LaunchOption(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestNativeNames(t *testing.T) {
	if got := NativeName("ja"); got != "日本語" {
		t.Errorf("NativeName(ja) = %q", got)
	}
	if got := NativeName("de"); got != "Deutsch" {
		t.Errorf("NativeName(de) = %q", got)
	}
	if got := NativeName("en"); got != "English" {
		t.Errorf("NativeName(en) = %q", got)
	}
	if got := NativeName("xx"); got != "XX" {
		t.Errorf("NativeName(xx) = %q", got)
	}
	if got := Label("en"); got != "English" {
		t.Errorf("Label(en) = %q", got)
	}
	if got := Label("de"); got != "Deutsch (German)" {
		t.Errorf("Label(de) = %q", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("FR"); got != "fr" {
		t.Errorf("Normalize(FR) = %q", got)
	}
	if got := Normalize("it"); got != "" {
		t.Errorf("Normalize(it) = %q", got)
	}
}
