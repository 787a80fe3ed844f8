package chunker

import (
	"regexp"
	"strings"

	"github.com/hyperjump/kizami/internal/models"
)

// sentenceEndingRe splits text on sentence-ending punctuation followed by whitespace.
var sentenceEndingRe = regexp.MustCompile(`[.!?]+[\s\n]+`)

// minSentenceLen discards fragments too short to carry meaning on their own.
const minSentenceLen = 20

// chunkBySentences splits content into sentences and aggregates them into
// chunks of at most chunkSize characters. When overlap is enabled, the last
// few sentences of a closed chunk seed the next one so context survives the
// boundary. Candidates are quality-filtered inline.
func (c *Chunker) chunkBySentences(content string) []*models.TextChunk {
	var sentences []string
	for _, s := range sentenceEndingRe.Split(content, -1) {
		s = strings.TrimSpace(s)
		if len(s) > minSentenceLen {
			sentences = append(sentences, s)
		}
	}

	var chunks []*models.TextChunk
	var current []string
	currentLen := 0
	chunkID := 0

	for _, sentence := range sentences {
		if currentLen+len(sentence) > c.chunkSize && currentLen > 0 {
			if chunk := c.closeSentenceChunk(current, chunkID); chunk != nil {
				chunks = append(chunks, chunk)
				chunkID++
			}

			if c.chunkOverlap > 0 && len(current) > 0 {
				// Keep the tail of the closed chunk for overlap.
				overlapCount := len(current) / 3
				if overlapCount < 1 {
					overlapCount = 1
				}
				if overlapCount > 3 {
					overlapCount = 3
				}
				current = current[len(current)-overlapCount:]
			} else {
				current = nil
			}
		}

		current = append(current, sentence)
		currentLen = joinedLen(current)
	}

	if joinedLen(current) > 0 {
		if chunk := c.closeSentenceChunk(current, chunkID); chunk != nil {
			chunks = append(chunks, chunk)
		}
	}

	return chunks
}

// closeSentenceChunk joins the buffered sentences and returns a chunk if the
// text passes the quality filter, nil otherwise.
func (c *Chunker) closeSentenceChunk(sentences []string, chunkID int) *models.TextChunk {
	text := strings.TrimSpace(strings.Join(sentences, " "))
	if text == "" || !c.IsQualityChunk(text) {
		return nil
	}
	return &models.TextChunk{
		Content: text,
		ChunkID: chunkID,
		Metadata: map[string]interface{}{
			"chunk_size":        len(text),
			"chunking_strategy": metaStrategySentence,
			"sentence_count":    len(sentences),
			"quality_score":     c.QualityScore(text),
			"content_type":      string(Classify(text)),
		},
	}
}

// joinedLen is the length of strings.Join(sentences, " ") without building it.
func joinedLen(sentences []string) int {
	if len(sentences) == 0 {
		return 0
	}
	total := len(sentences) - 1
	for _, s := range sentences {
		total += len(s)
	}
	return total
}
