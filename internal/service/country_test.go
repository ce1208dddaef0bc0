package service

import "testing"

func TestArabicCountryName(t *testing.T) {
	cases := []struct {
		name string
		code string
		want string
	}{
		{"saudi", "SA", "المملكة العربية السعودية"},
		{"emirates", "AE", "الإمارات العربية المتحدة"},
		{"kuwait", "KW", "الكويت"},
		{"lowercase", "sa", "المملكة العربية السعودية"},
		{"padded", "  AE ", "الإمارات العربية المتحدة"},
		{"unknown code", "ZZ", "ZZ"},
		{"empty", "", ""},
		{"blank", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ArabicCountryName(tc.code); got != tc.want {
				t.Fatalf("ArabicCountryName(%q) = %q, want %q", tc.code, got, tc.want)
			}
		})
	}
}

func TestIsLegacyCountryCode(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"SA", true},
		{"KW", true},
		{"sa", false},
		{"S1", false},
		{"SAU", false},
		{"S", false},
		{"", false},
		{"المملكة العربية السعودية", false},
	}
	for _, tc := range cases {
		if got := isLegacyCountryCode(tc.value); got != tc.want {
			t.Fatalf("isLegacyCountryCode(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestNormalizeCountryValue(t *testing.T) {
	if got := NormalizeCountryValue("SA"); got != "المملكة العربية السعودية" {
		t.Fatalf("legacy code not converted, got %q", got)
	}
	if got := NormalizeCountryValue(" KW "); got != "الكويت" {
		t.Fatalf("padded legacy code not converted, got %q", got)
	}
	if got := NormalizeCountryValue("المملكة العربية السعودية"); got != "المملكة العربية السعودية" {
		t.Fatalf("arabic name should pass through, got %q", got)
	}
	if got := NormalizeCountryValue(""); got != "" {
		t.Fatalf("empty value should stay empty, got %q", got)
	}
}
