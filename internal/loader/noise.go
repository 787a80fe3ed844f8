package loader

import (
	"regexp"
	"strings"
)

// noisePatterns match lines that carry no content: bare page numbers,
// dotted leader lines, and separator rules.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*page\s*\d+\s*$`),
	regexp.MustCompile(`^\d+$`),
	regexp.MustCompile(`^\.{10,}$`),
	regexp.MustCompile(`^[\-=]+\s*$`),
}

// noiseIndicators are substrings typical of headers, footers, and front
// matter; short lines containing them are dropped.
var noiseIndicators = []string{
	"copyright", "all rights reserved", "published by",
	"chapter", "section", "table of contents", "contents",
	"......", "---------", "––––––", "page", "isbn",
}

// isNoiseLine reports whether a line is header/footer/page-number noise.
func isNoiseLine(line string) bool {
	line = strings.TrimSpace(line)

	if len(line) < 3 {
		return true
	}

	for _, p := range noisePatterns {
		if p.MatchString(line) {
			return true
		}
	}

	lower := strings.ToLower(line)
	for _, indicator := range noiseIndicators {
		if strings.Contains(lower, indicator) && len(line) < 100 {
			return true
		}
	}

	return false
}

// isSeparatorLine reports whether a line is mostly dashes, equals signs, or
// dots, as found in plain-text section separators.
func isSeparatorLine(line string) bool {
	if len(line) < 3 {
		return true
	}
	if strings.Count(line, "-") > len(line)*7/10 {
		return true
	}
	if strings.Count(line, "=") > len(line)*7/10 {
		return true
	}
	if strings.Count(line, ".") > len(line)/2 {
		return true
	}
	return false
}

var internalSpaceRe = regexp.MustCompile(`\s+`)

// cleanLines drops noise lines and collapses internal whitespace, returning
// the surviving lines.
func cleanLines(text string, noise func(string) bool) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || noise(line) {
			continue
		}
		out = append(out, internalSpaceRe.ReplaceAllString(line, " "))
	}
	return out
}
