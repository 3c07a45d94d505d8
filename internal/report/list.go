package report

import (
	"regexp"
	"strings"

	"github.com/quantastica/qps-client/internal/domain"
)

var quotedToken = regexp.MustCompile(`'([^'\n]*)'`)

// ParseQuotedList returns every single-quoted token, e.g. the backend names in
// "[<QasmSimulator('qasm_simulator') from AerProvider()>]".
func ParseQuotedList(raw string) []string {
	matches := quotedToken.FindAllStringSubmatch(raw, -1)
	values := make([]string, 0, len(matches))
	for _, match := range matches {
		values = append(values, match[1])
	}
	return values
}

// ParseLineList returns the trimmed, non-empty lines of raw.
func ParseLineList(raw string) []string {
	lines := splitLines(strings.TrimSpace(raw))
	values := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

// ParseList dispatches on the listing style of the probe that produced raw.
func ParseList(style domain.ListStyle, raw string) []string {
	if style == domain.ListStyleQuoted {
		return ParseQuotedList(raw)
	}
	return ParseLineList(raw)
}
