package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Ellipsis marks text that was cut short
const Ellipsis = "…"

// bulletMarker matches list markers a content source may leave at the start of a line
var bulletMarker = regexp.MustCompile(`^(?:[-*+](?:\s+|$)|[•·‣▪◦]\s*|\d{1,3}[.)](?:\s+|$))`)

// stopWords are ignored when comparing bullets for duplicates
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "with": true, "by": true,
}

// cleanBodyLines trims lines, strips list markers and drops lines left blank
func cleanBodyLines(lines []string) []string {
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		for {
			stripped := strings.TrimSpace(bulletMarker.ReplaceAllString(line, ""))
			if stripped == line {
				break
			}
			line = stripped
		}
		if line == "" {
			continue
		}
		cleaned = append(cleaned, strings.Join(strings.Fields(line), " "))
	}
	return cleaned
}

// dedupeLines removes lines whose comparison key matches an earlier line.
// The first occurrence keeps its position.
func dedupeLines(lines []string) []string {
	seen := make(map[string]bool, len(lines))
	unique := make([]string, 0, len(lines))
	for _, line := range lines {
		key := comparisonKey(line)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, line)
	}
	return unique
}

// comparisonKey lowercases a line, keeps alphanumeric words and drops stop words
func comparisonKey(line string) string {
	words := strings.FieldsFunc(strings.ToLower(line), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	kept := make([]string, 0, len(words))
	for _, word := range words {
		if !stopWords[word] {
			kept = append(kept, word)
		}
	}

	if len(kept) == 0 {
		return strings.ToLower(strings.TrimSpace(line))
	}
	return strings.Join(kept, " ")
}

// limitLines keeps at most limit lines. On overflow the last kept line is an
// indicator naming how many lines were dropped.
func limitLines(lines []string, limit int) ([]string, int) {
	if limit < 2 || len(lines) <= limit {
		return lines, 0
	}

	kept := limit - 1
	dropped := len(lines) - kept

	limited := make([]string, 0, limit)
	limited = append(limited, lines[:kept]...)
	limited = append(limited, fmt.Sprintf("%s (+%d more)", Ellipsis, dropped))
	return limited, dropped
}

// fitLine shortens a line to maxWords words and maxChars runes.
// A line cut anywhere but at a sentence end gets a trailing ellipsis, which
// counts toward maxChars.
func fitLine(line string, maxWords, maxChars int) string {
	words := strings.Fields(line)
	text := strings.Join(words, " ")
	cut := false

	if maxWords > 0 && len(words) > maxWords {
		text = strings.Join(words[:maxWords], " ")
		cut = true
	}

	runes := []rune(text)
	overLimit := maxChars > 0 && len(runes) > maxChars
	noRoom := maxChars > 0 && cut && !endsSentence(text) && len(runes)+1 > maxChars

	if !overLimit && !noRoom {
		if cut {
			return withEllipsis(text)
		}
		return text
	}

	if end := lastSentenceEnd(runes, maxChars); end > 0 {
		return strings.TrimSpace(string(runes[:end+1]))
	}

	window := runes[:maxChars-1]
	if space := lastSpace(window); space > 0 {
		return withEllipsis(string(window[:space]))
	}
	return withEllipsis(string(window))
}

// lastSentenceEnd returns the index of the last '.', '!' or '?' within the
// first limit runes that is followed by whitespace or the end of the text
func lastSentenceEnd(runes []rune, limit int) int {
	if limit > len(runes) {
		limit = len(runes)
	}
	for i := limit - 1; i > 0; i-- {
		if !isSentenceEnd(runes[i]) {
			continue
		}
		if i == len(runes)-1 || unicode.IsSpace(runes[i+1]) {
			return i
		}
	}
	return -1
}

func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i > 0; i-- {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}

func withEllipsis(text string) string {
	text = strings.TrimRight(text, " ,;:-")
	if endsSentence(text) {
		return text
	}
	return text + Ellipsis
}

func endsSentence(text string) bool {
	runes := []rune(text)
	return len(runes) > 0 && isSentenceEnd(runes[len(runes)-1])
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
