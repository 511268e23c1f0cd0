package layouts

import (
	"sync/atomic"
	"testing"
)

func TestResolveCommonLanguages(t *testing.T) {
	r := NewRegistry(nil)

	cases := map[uint16]string{
		1033: "EN",
		1049: "RU",
		1058: "UK",
	}
	for id, want := range cases {
		code := r.Resolve(id)
		if code.IsUnknown() {
			t.Fatalf("0x%04X resolved to %s", id, code)
		}
		if code.Label() != want {
			t.Errorf("0x%04X: expected %q, got %q", id, want, code.Label())
		}
	}
}

func TestResolveRegionalVariantsShareCode(t *testing.T) {
	r := NewRegistry(nil)

	us := r.Resolve(0x0409)
	gb := r.Resolve(0x0809)
	if us != gb {
		t.Errorf("en-US and en-GB should be the same code, got %s and %s", us, gb)
	}
}

func TestResolveReservedIsUnknown(t *testing.T) {
	called := false
	r := NewRegistry(func(uint16) (string, bool) {
		called = true
		return "en-US", true
	})

	code := r.Resolve(0x0C00)
	if !code.IsUnknown() {
		t.Fatalf("expected unknown, got %s", code)
	}
	if code.Raw() != 0x0C00 {
		t.Errorf("expected raw 0x0C00, got 0x%04X", code.Raw())
	}
	if code.String() != "unknown(0x0C00)" {
		t.Errorf("unexpected string %q", code.String())
	}
	if code.Label() != UnknownLabel {
		t.Errorf("unexpected label %q", code.Label())
	}
	if called {
		t.Error("locale namer must not be asked about reserved identifiers")
	}
}

func TestResolveUnrecognizedWithoutNamer(t *testing.T) {
	r := NewRegistry(nil)

	code := r.Resolve(0x7A7A)
	if code != Unknown(0x7A7A) {
		t.Errorf("expected unknown(0x7A7A), got %s", code)
	}
}

func TestResolveFallsBackToNamerAndCaches(t *testing.T) {
	var calls atomic.Int32
	r := NewRegistry(func(id uint16) (string, bool) {
		calls.Add(1)
		if id == 0x0C1A {
			return "sr-Cyrl-CS", true
		}
		return "", false
	})

	for i := 0; i < 3; i++ {
		if code := r.Resolve(0x0C1A); code.Label() != "SR" {
			t.Fatalf("expected SR, got %s", code)
		}
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("expected one namer call, got %d", n)
	}

	if code := r.Resolve(0x0001); !code.IsUnknown() {
		t.Errorf("expected unknown for unnamed id, got %s", code)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	r := NewRegistry(nil)

	for _, id := range []uint16{0x0409, 0x0422, 0x0C00, 0xBEEF} {
		if a, b := r.Resolve(id), r.Resolve(id); a != b {
			t.Errorf("0x%04X resolved differently: %s then %s", id, a, b)
		}
	}
}

func TestTagFromLocaleName(t *testing.T) {
	cases := []struct {
		name string
		tag  string
		ok   bool
	}{
		{"en-US", "EN", true},
		{"uk-UA", "UK", true},
		{"sr-Latn-RS", "SR", true},
		{"zh-TW", "ZH", true},
		{"und", "", false},
		{"not a locale", "", false},
		{"", "", false},
	}

	for _, c := range cases {
		tag, ok := TagFromLocaleName(c.name)
		if tag != c.tag || ok != c.ok {
			t.Errorf("%q: expected (%q, %v), got (%q, %v)", c.name, c.tag, c.ok, tag, ok)
		}
	}
}

func TestLangIDFromHKL(t *testing.T) {
	// Russian layout loaded on a US keyboard: HKL 0x04090419.
	if id := LangIDFromHKL(0x04090419); id != 0x0419 {
		t.Errorf("expected 0x0419, got 0x%04X", id)
	}
	if id := LangIDFromHKL(0); id != 0 {
		t.Errorf("expected 0, got 0x%04X", id)
	}
}
