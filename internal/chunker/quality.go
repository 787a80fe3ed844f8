package chunker

import (
	"regexp"
	"strings"
)

// The thresholds and character classes below are empirically tuned and are
// part of the chunking contract; do not reinterpret them.
var (
	// wordRe matches meaningful alphabetic words (3+ letters).
	wordRe = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)
	// sentenceRe matches sentence bodies up to and including their terminator.
	sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]`)
	// specialCharRe matches characters typical of separators and leader lines.
	specialCharRe = regexp.MustCompile(`[.\-=*]`)
	// punctuationRunRe matches runs of sentence-ending punctuation.
	punctuationRunRe = regexp.MustCompile(`[.!?]+`)
)

// IsQualityChunk reports whether content is worth keeping as a chunk.
// It rejects spans that are too short or too long for the configured chunk
// size, classified boilerplate, word-poor or repetitive text, degenerate
// sentence structure, separator-heavy spans, and mostly-whitespace spans.
// It is the sole retention gate; QualityScore is independent of it.
func (c *Chunker) IsQualityChunk(chunkContent string) bool {
	content := strings.TrimSpace(chunkContent)

	if len(content) < 80 || float64(len(content)) > float64(c.chunkSize)*1.5 {
		return false
	}

	switch Classify(content) {
	case ContentFrontMatter, ContentTOC, ContentHeader:
		return false
	}

	words := wordRe.FindAllString(content, -1)
	if len(words) < 8 {
		return false
	}

	uniqueRatio := uniqueWordRatio(words)
	if uniqueRatio < 0.5 && len(words) > 15 {
		return false
	}

	sentences := sentenceRe.FindAllString(content, -1)
	if len(sentences) >= 2 {
		total := 0
		for _, s := range sentences {
			total += len(s)
		}
		avg := float64(total) / float64(len(sentences))
		if avg < 25 || avg > 300 {
			return false
		}
	}

	specialChars := len(specialCharRe.FindAllString(content, -1))
	if float64(specialChars) > float64(len(content))*0.2 {
		return false
	}

	stripped := strings.ReplaceAll(strings.ReplaceAll(content, " ", ""), "\n", "")
	if float64(len(stripped))/float64(len(content)) < 0.6 {
		return false
	}

	return true
}

// QualityScore estimates the usefulness of text on a [0,1] scale, combining
// length fit against the target chunk size, word diversity, and sentence
// structure. The score is informational; retention is decided by
// IsQualityChunk alone.
func (c *Chunker) QualityScore(text string) float64 {
	score := 0.0

	lengthRatio := float64(len(text)) / float64(c.chunkSize)
	switch {
	case lengthRatio >= 0.7 && lengthRatio <= 1.0:
		score += 0.4
	case lengthRatio >= 0.5 && lengthRatio <= 1.2:
		score += 0.2
	}

	words := wordRe.FindAllString(text, -1)
	if len(words) >= 8 {
		score += uniqueWordRatio(words) * 0.3
	}

	boundaries := punctuationRunRe.FindAllString(text, -1)
	if len(boundaries) >= 2 {
		total := 0
		for _, b := range boundaries {
			total += len(b)
		}
		avg := float64(total) / float64(len(boundaries))
		if avg >= 40 && avg <= 200 {
			score += 0.3
		}
	}

	if score > 1.0 {
		return 1.0
	}
	return score
}

func uniqueWordRatio(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	return float64(len(unique)) / float64(len(words))
}
