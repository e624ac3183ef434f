package insight

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ExtractHeadings scans document text for lines that look like section titles.
// A line qualifies when its trimmed length is strictly between 3 and 100
// characters and it is either entirely upper-case or title-cased. This is a
// heuristic: lower-case headers are missed and short upper-case sentences are
// accepted. Duplicates collapse, order is not significant.
func ExtractHeadings(fullText string) []string {
	seen := make(map[string]struct{})
	headings := make([]string, 0)

	for _, line := range strings.Split(fullText, "\n") {
		trimmed := strings.TrimSpace(line)
		length := utf8.RuneCountInString(trimmed)
		if length <= 3 || length >= 100 {
			continue
		}
		if !isUpper(trimmed) && !isTitle(trimmed) {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		headings = append(headings, trimmed)
	}

	return headings
}

// isUpper reports whether s contains at least one cased character and no
// lower-case ones.
func isUpper(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}

// isTitle reports whether every cased run in s starts with an upper-case
// letter followed only by lower-case ones, e.g. "Some Heading Words".
func isTitle(s string) bool {
	hasCased := false
	prevCased := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			if prevCased {
				return false
			}
			hasCased = true
			prevCased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			hasCased = true
		default:
			prevCased = false
		}
	}
	return hasCased
}
