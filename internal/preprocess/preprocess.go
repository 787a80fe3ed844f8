// Package preprocess cleans and normalizes document text before chunking.
package preprocess

import (
	"math"
	"regexp"
	"strings"

	"github.com/hyperjump/kizami/internal/models"
)

// Cleanup patterns. Order of application matters; see Clean.
var (
	urlRe              = regexp.MustCompile(`https?://\S+`)
	emailRe            = regexp.MustCompile(`\S+@\S+`)
	multipleNewlinesRe = regexp.MustCompile(`\n\s*\n\s*\n+`)
	multipleSpacesRe   = regexp.MustCompile(`[ \t]+`)
	// \p{L}\p{N}_ mirrors a Unicode-aware \w so Arabic and other
	// non-Latin letters survive cleanup.
	specialCharsRe    = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?;:()\-@']`)
	consecutiveDotsRe = regexp.MustCompile(`\.{4,}`)
	isolatedCharsRe   = regexp.MustCompile(`\s+[a-zA-Z]\s+`)

	arabicCharRe   = regexp.MustCompile(`[\x{0600}-\x{06FF}]`)
	englishCharRe  = regexp.MustCompile(`[a-zA-Z]`)
	sentenceMarkRe = regexp.MustCompile(`[.!?]+`)
	wordRe         = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)
)

// LanguagePatterns holds simple language and structure statistics for text.
type LanguagePatterns struct {
	ArabicRatio    float64 `json:"arabic_ratio"`
	EnglishRatio   float64 `json:"english_ratio"`
	SentenceCount  int     `json:"sentence_count"`
	ParagraphCount int     `json:"paragraph_count"`
	WordCount      int     `json:"word_count"`
}

// Info is the preprocessing metadata block attached to a document.
type Info struct {
	OriginalLength   int              `json:"original_length"`
	CleanedLength    int              `json:"cleaned_length"`
	ReductionPercent float64          `json:"reduction_percent"`
	LanguagePatterns LanguagePatterns `json:"language_patterns"`
}

// Clean normalizes text: strips URLs and emails, normalizes line endings,
// collapses excess blank lines and horizontal whitespace, removes characters
// outside basic punctuation, squeezes dotted leaders, and drops isolated
// single letters.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = urlRe.ReplaceAllString(text, " ")
	text = emailRe.ReplaceAllString(text, " ")

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	text = multipleNewlinesRe.ReplaceAllString(text, "\n\n")
	text = multipleSpacesRe.ReplaceAllString(text, " ")
	text = specialCharsRe.ReplaceAllString(text, " ")
	text = consecutiveDotsRe.ReplaceAllString(text, "...")
	text = isolatedCharsRe.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// NormalizeWhitespace collapses all whitespace runs to single spaces.
func NormalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// DetectPatterns computes language and structure statistics for text.
func DetectPatterns(text string) LanguagePatterns {
	p := LanguagePatterns{
		SentenceCount:  len(sentenceMarkRe.FindAllString(text, -1)),
		ParagraphCount: len(strings.Split(text, "\n\n")),
		WordCount:      len(wordRe.FindAllString(text, -1)),
	}
	if total := len(text); total > 0 {
		p.ArabicRatio = float64(len(arabicCharRe.FindAllString(text, -1))) / float64(total)
		p.EnglishRatio = float64(len(englishCharRe.FindAllString(text, -1))) / float64(total)
	}
	return p
}

// Document cleans doc's content in place and attaches an Info block under
// the "preprocessing" metadata key.
func Document(doc *models.Document) *models.Document {
	original := doc.Content
	cleaned := Clean(original)

	info := Info{
		OriginalLength:   len(original),
		CleanedLength:    len(cleaned),
		LanguagePatterns: DetectPatterns(cleaned),
	}
	if len(original) > 0 {
		reduction := (1 - float64(len(cleaned))/float64(len(original))) * 100
		info.ReductionPercent = math.Round(reduction*100) / 100
	}

	if doc.Metadata == nil {
		doc.Metadata = make(map[string]interface{})
	}
	doc.Metadata["preprocessing"] = info
	doc.Content = cleaned
	return doc
}
