// mzizi/utils/jsonutils/json.go
package jsonutils

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	reFence         = regexp.MustCompile("(?s)```json(.*?)```")
	reObject        = regexp.MustCompile(`(?s)\{.*\}`)
	reTrailingComma = regexp.MustCompile(`,(\s*[}\]])`)
)

// ExtractJSON pulls a JSON object out of LLM output.
//
// Priority:
// 1. Triple-backtick fenced ```json ... ```
// 2. Any {...} JSON object
//
// Invisible Unicode characters and trailing commas before closing
// braces/brackets are stripped, both common model formatting slips.
func ExtractJSON(input string) string {
	input = strings.TrimSpace(strings.Map(func(r rune) rune {
		if r == '\uFEFF' || r == '\u200B' || r == '\u200C' || r == '\u200D' {
			return -1
		}
		return r
	}, input))

	if match := reFence.FindStringSubmatch(input); len(match) > 1 {
		input = strings.TrimSpace(match[1])
	} else if match := reObject.FindString(input); match != "" {
		input = strings.TrimSpace(match)
	}

	input = reTrailingComma.ReplaceAllString(input, "$1")

	return strings.TrimSpace(input)
}

// StripFencedJSON removes a fenced ```json``` block from the text, returning
// what remains around it. Used to keep the conversational part of a reply
// once its structured payload has been parsed out.
func StripFencedJSON(input string) string {
	return strings.TrimSpace(reFence.ReplaceAllString(input, ""))
}

// ToJSON serializes a Go value to an indented JSON string.
// Returns an empty string if serialization fails.
func ToJSON(v interface{}) string {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(bytes))
}
