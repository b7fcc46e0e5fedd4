package recovery

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrNoContent means the input held nothing a title could be taken from
var ErrNoContent = errors.New("no content to extract a title from")

const maxTitleLength = 80

var (
	quotedTitlePattern  = regexp.MustCompile(`"title"\s*:\s*"([^"]+)"`)
	labeledTitlePattern = regexp.MustCompile(`(?i)\btitle\s*[:=]\s*"([^"]+)"`)
	headingPattern      = regexp.MustCompile(`(?m)^#{1,6}\s+(.+)$`)
)

// ExtractTitle probes free-form generator output for something usable as a
// deck title. Probes run in order of faithfulness: a quoted JSON title
// field, a bare title label, a markdown heading, then the first non-empty
// line. It errors only when the input is effectively empty.
func ExtractTitle(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrNoContent
	}

	if m := quotedTitlePattern.FindStringSubmatch(trimmed); m != nil {
		if t := cleanTitle(m[1]); t != "" {
			return t, nil
		}
	}
	if m := labeledTitlePattern.FindStringSubmatch(trimmed); m != nil {
		if t := cleanTitle(m[1]); t != "" {
			return t, nil
		}
	}
	if m := headingPattern.FindStringSubmatch(trimmed); m != nil {
		if t := cleanTitle(m[1]); t != "" {
			return t, nil
		}
	}

	for _, line := range strings.Split(trimmed, "\n") {
		if t := cleanTitle(line); t != "" {
			return t, nil
		}
	}
	return "", ErrNoContent
}

func cleanTitle(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`+"`")
	s = strings.TrimSpace(s)
	if len(s) > maxTitleLength {
		cut := maxTitleLength
		// never split a multibyte rune
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = strings.TrimSpace(s[:cut])
	}
	return s
}
