package chunker

import "strings"

// ContentType is the coarse structural classification of a text span, used
// to exclude boilerplate from main content.
type ContentType string

const (
	// ContentFrontMatter is publishing boilerplate (copyright, ISBN, etc.).
	ContentFrontMatter ContentType = "front_matter"
	// ContentTOC is a table of contents.
	ContentTOC ContentType = "toc"
	// ContentHeader is a short heading block.
	ContentHeader ContentType = "header"
	// ContentRepetitive is filler with low word diversity.
	ContentRepetitive ContentType = "repetitive"
	// ContentMain is regular body text.
	ContentMain ContentType = "main_content"
)

// frontMatterIndicators mark publishing front matter. Matched case-insensitively.
var frontMatterIndicators = []string{
	"published by", "copyright", "all rights reserved",
	"isbn", "first edition", "printed in", "distributed by",
}

// tocIndicators suggest a table of contents; confirmed by repeated "page"
// mentions or dotted leader lines in short spans.
var tocIndicators = []string{"contents", "chapters", "page"}

// Classify labels text with its content type using lexical heuristics.
// Checks run in a fixed order and the first match wins: front matter, table
// of contents, header, repetitive, then main content as the fallthrough.
// It is a pure function of text; the empty string is main content.
func Classify(text string) ContentType {
	if text == "" {
		return ContentMain
	}
	lower := strings.ToLower(text)

	for _, indicator := range frontMatterIndicators {
		if strings.Contains(lower, indicator) {
			return ContentFrontMatter
		}
	}

	for _, indicator := range tocIndicators {
		if strings.Contains(lower, indicator) {
			if len(text) < 800 && (strings.Count(lower, "page") > 1 || strings.Contains(text, "......")) {
				return ContentTOC
			}
			break
		}
	}

	lines := strings.Split(text, "\n")
	if len(lines) <= 3 {
		short := true
		for _, line := range lines {
			if len(line) >= 100 {
				short = false
				break
			}
		}
		if short {
			return ContentHeader
		}
	}

	words := strings.Fields(text)
	if len(words) > 10 {
		unique := make(map[string]struct{}, len(words))
		for _, w := range words {
			unique[w] = struct{}{}
		}
		if float64(len(unique))/float64(len(words)) < 0.3 {
			return ContentRepetitive
		}
	}

	return ContentMain
}
