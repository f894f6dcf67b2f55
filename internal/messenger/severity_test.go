package messenger

import (
	"strings"
	"testing"
)

func allSeverities() []Severity {
	out := make([]Severity, 0, 16)
	for v := Severity(0); v <= SeverityAll; v++ {
		out = append(out, v)
	}
	return out
}

func allCategories() []Category {
	out := make([]Category, 0, 8)
	for v := Category(0); v <= CategoryAll; v++ {
		out = append(out, v)
	}
	return out
}

func TestSeverityUnionLaws(t *testing.T) {
	for _, a := range allSeverities() {
		if got := a.Union(SeverityNone); got != a {
			t.Errorf("%v ∪ none = %v", a, got)
		}
		if got := a.Union(SeverityAll); got != SeverityAll {
			t.Errorf("%v ∪ all = %v", a, got)
		}
		for _, b := range allSeverities() {
			u := a.Union(b)
			if u != b.Union(a) {
				t.Errorf("union not commutative for %v, %v", a, b)
			}
			if u.Error() != (a.Error() || b.Error()) ||
				u.Warning() != (a.Warning() || b.Warning()) ||
				u.Information() != (a.Information() || b.Information()) ||
				u.Verbose() != (a.Verbose() || b.Verbose()) {
				t.Errorf("%v ∪ %v = %v has wrong flags", a, b, u)
			}
			for _, c := range allSeverities() {
				if a.Union(b).Union(c) != a.Union(b.Union(c)) {
					t.Errorf("union not associative for %v, %v, %v", a, b, c)
				}
			}
		}
	}
}

func TestCategoryUnionLaws(t *testing.T) {
	for _, a := range allCategories() {
		if got := a.Union(CategoryNone); got != a {
			t.Errorf("%v ∪ none = %v", a, got)
		}
		if got := a.Union(CategoryAll); got != CategoryAll {
			t.Errorf("%v ∪ all = %v", a, got)
		}
		for _, b := range allCategories() {
			u := a.Union(b)
			if u != b.Union(a) {
				t.Errorf("union not commutative for %v, %v", a, b)
			}
			if u.General() != (a.General() || b.General()) ||
				u.Validation() != (a.Validation() || b.Validation()) ||
				u.Performance() != (a.Performance() || b.Performance()) {
				t.Errorf("%v ∪ %v = %v has wrong flags", a, b, u)
			}
			for _, c := range allCategories() {
				if a.Union(b).Union(c) != a.Union(b.Union(c)) {
					t.Errorf("union not associative for %v, %v, %v", a, b, c)
				}
			}
		}
	}
}

func TestSeverityPresets(t *testing.T) {
	tests := []struct {
		name                     string
		s                        Severity
		err, warn, info, verbose bool
	}{
		{"none", SeverityNone, false, false, false, false},
		{"errors", SeverityError, true, false, false, false},
		{"errors only", SeverityErrorsOnly, true, false, false, false},
		{"warnings", SeverityWarning, false, true, false, false},
		{"information", SeverityInformation, false, false, true, false},
		{"verbose", SeverityVerbose, false, false, false, true},
		{"errors and warnings", SeverityErrorsAndWarnings, true, true, false, false},
		{"all", SeverityAll, true, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.s.Error() != tt.err || tt.s.Warning() != tt.warn ||
				tt.s.Information() != tt.info || tt.s.Verbose() != tt.verbose {
				t.Fatalf("%v flags = %v %v %v %v", tt.s, tt.s.Error(), tt.s.Warning(), tt.s.Information(), tt.s.Verbose())
			}
		})
	}
}

func TestSeverityString(t *testing.T) {
	tests := map[Severity]string{
		SeverityNone:              "none",
		SeverityErrorsAndWarnings: "error|warning",
		SeverityAll:               "error|warning|information|verbose",
		SeverityVerbose:           "verbose",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", s, got, want)
		}
	}
	if got := (CategoryGeneral | CategoryPerformance).String(); got != "general|performance" {
		t.Errorf("category String() = %q", got)
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"error", SeverityError},
		{"error,warning", SeverityErrorsAndWarnings},
		{"Warning | Error", SeverityErrorsAndWarnings},
		{"errors-and-warnings", SeverityErrorsAndWarnings},
		{"errors-only", SeverityErrorsOnly},
		{"info", SeverityInformation},
		{"all", SeverityAll},
		{"none", SeverityNone},
		{"verbose,information", SeverityVerbose | SeverityInformation},
	}
	for _, tt := range tests {
		got, err := ParseSeverity(tt.in)
		if err != nil {
			t.Errorf("ParseSeverity(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSeverity(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "fatal", "error,bogus"} {
		if _, err := ParseSeverity(bad); err == nil {
			t.Errorf("ParseSeverity(%q) succeeded", bad)
		}
	}
	_, err := ParseSeverity("fatal")
	if err == nil || !strings.Contains(err.Error(), "errors-and-warnings") {
		t.Errorf("error does not list the accepted names: %v", err)
	}
}

func TestParseCategory(t *testing.T) {
	got, err := ParseCategory("general,validation")
	if err != nil || got != CategoryGeneral|CategoryValidation {
		t.Fatalf("ParseCategory = %v, %v", got, err)
	}
	if _, err := ParseCategory("errors-and-warnings"); err == nil {
		t.Fatal("severity preset accepted as category")
	}
}

func TestTextRoundTrip(t *testing.T) {
	for _, s := range allSeverities() {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText: %v", err)
		}
		var back Severity
		if err := back.UnmarshalText(text); err != nil || back != s {
			t.Errorf("severity %v -> %q -> %v (%v)", s, text, back, err)
		}
	}
	for _, c := range allCategories() {
		text, _ := c.MarshalText()
		var back Category
		if err := back.UnmarshalText(text); err != nil || back != c {
			t.Errorf("category %v -> %q -> %v (%v)", c, text, back, err)
		}
	}
}
