package models

// TextChunk is one retrievable unit of document text. ChunkID is zero-based
// and contiguous within a single chunking run. Metadata always carries
// chunk_size, chunking_strategy, quality_score, and content_type; after
// enrichment it also carries source_file, file_type, and original_metadata.
type TextChunk struct {
	Content  string                 `json:"content"`
	ChunkID  int                    `json:"chunk_id"`
	Metadata map[string]interface{} `json:"metadata"`
}

// ChunkStats summarizes a chunking run, for logging and the status endpoint.
type ChunkStats struct {
	Count    int     `json:"count"`
	AvgSize  float64 `json:"avg_size"`
	MinSize  int     `json:"min_size"`
	MaxSize  int     `json:"max_size"`
	Filtered int     `json:"filtered"`
}

// NewChunkStats computes size statistics over chunks. filtered is the number
// of candidates dropped by the quality filter.
func NewChunkStats(chunks []*TextChunk, filtered int) ChunkStats {
	stats := ChunkStats{Count: len(chunks), Filtered: filtered}
	if len(chunks) == 0 {
		return stats
	}
	total := 0
	stats.MinSize = len(chunks[0].Content)
	for _, c := range chunks {
		size := len(c.Content)
		total += size
		if size < stats.MinSize {
			stats.MinSize = size
		}
		if size > stats.MaxSize {
			stats.MaxSize = size
		}
	}
	stats.AvgSize = float64(total) / float64(len(chunks))
	return stats
}
