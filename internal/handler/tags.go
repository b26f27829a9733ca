package handler

import (
	"regexp"
	"strings"
)

// hashtagPattern matches "#" followed by word characters, Unicode-aware.
var hashtagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

// tokenSeparators splits free-form tag input on whitespace, commas and
// semicolons.
var tokenSeparators = regexp.MustCompile(`[\s,;]+`)

// ExtractTags turns raw tag input into a normalized hashtag list. If the
// input contains hashtag-shaped tokens, only those are kept; otherwise
// the input is split on separators and every token gets a "#" prefix.
func ExtractTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}

	if matches := hashtagPattern.FindAllString(raw, -1); len(matches) > 0 {
		return matches
	}

	tokens := tokenSeparators.Split(raw, -1)
	tags := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token == "" {
			continue
		}
		if !strings.HasPrefix(token, "#") {
			token = "#" + token
		}
		tags = append(tags, token)
	}
	return tags
}
