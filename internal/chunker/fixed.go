package chunker

import (
	"regexp"
	"strings"

	"github.com/hyperjump/kizami/internal/models"
)

var (
	// sentenceBoundaryRe matches a sentence terminator followed by whitespace.
	sentenceBoundaryRe = regexp.MustCompile(`[.!?]\s+`)
	// paragraphBreakRe matches a blank-line paragraph separator.
	paragraphBreakRe = regexp.MustCompile(`\n\s*\n`)
)

// chunkFixedSize scans content left to right taking chunkSize-character
// windows. Non-final windows are snapped backward to the last sentence
// boundary (when at least two exist), else the last paragraph break, else
// the last space beyond 60% of the window. Candidates are quality-filtered
// inline. The cursor is forced to the raw window end whenever the overlap
// step would not advance it past end-10, which guarantees forward progress
// (and, as a consequence, collapses any overlap of 10 or more).
func (c *Chunker) chunkFixedSize(content string) []*models.TextChunk {
	var chunks []*models.TextChunk
	chunkID := 0
	start := 0
	length := len(content)

	for start < length {
		end := start + c.chunkSize
		if end > length {
			end = length
		}

		window := strings.TrimSpace(content[start:end])
		if window == "" {
			break
		}

		if end < length {
			if breaks := sentenceBoundaryRe.FindAllStringIndex(window, -1); len(breaks) > 1 {
				last := breaks[len(breaks)-1]
				window = strings.TrimSpace(content[start : start+last[1]])
				end = start + last[1]
			} else if breaks := paragraphBreakRe.FindAllStringIndex(window, -1); len(breaks) > 0 {
				last := breaks[len(breaks)-1]
				window = strings.TrimSpace(content[start : start+last[1]])
				end = start + last[1]
			} else if lastSpace := strings.LastIndex(window, " "); float64(lastSpace) > float64(c.chunkSize)*0.6 {
				window = strings.TrimSpace(content[start : start+lastSpace])
				end = start + lastSpace
			}
		}

		if window != "" && c.IsQualityChunk(window) {
			chunks = append(chunks, &models.TextChunk{
				Content: window,
				ChunkID: chunkID,
				Metadata: map[string]interface{}{
					"chunk_size":        len(window),
					"chunking_strategy": metaStrategyFixedSize,
					"quality_score":     c.QualityScore(window),
					"content_type":      string(Classify(window)),
					"start_pos":         start,
					"end_pos":           end,
				},
			})
			chunkID++
		}

		if c.chunkOverlap > 0 {
			start = end - c.chunkOverlap
		} else {
			start = end
		}

		// Minimum progress check.
		if start <= end-10 {
			start = end
		}
	}

	return chunks
}
