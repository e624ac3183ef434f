package weaviate

import (
	"strings"
	"testing"
)

func TestClassNameFor(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{name: "punctuation versus plain", a: "a.pdf", b: "apdf"},
		{name: "dots versus dashes", a: "report.v2.pdf", b: "report-v2-pdf"},
		{name: "spaces versus underscores", a: "annual report.pdf", b: "annual_report.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classA := classNameFor(tt.a)
			classB := classNameFor(tt.b)
			if classA == classB {
				t.Errorf("classNameFor(%q) and classNameFor(%q) both map to %q", tt.a, tt.b, classA)
			}
		})
	}
}

func TestClassNameForIsStableAndWellFormed(t *testing.T) {
	first := classNameFor("a.pdf")
	second := classNameFor("a.pdf")
	if first != second {
		t.Errorf("classNameFor is not stable: %q != %q", first, second)
	}

	if !strings.HasPrefix(first, "DocumentChunks_") {
		t.Errorf("class name %q missing DocumentChunks_ prefix", first)
	}
	for _, r := range first {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			continue
		}
		t.Errorf("class name %q contains invalid rune %q", first, r)
	}
}
