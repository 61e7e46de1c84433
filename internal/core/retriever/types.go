package retriever

// Filters represents optional constraints applied during search. Currently
// supports restricting results to a set of document IDs.
type Filters struct {
	DocIDs []int64
}

// Hit is a single material search result with its metadata.
type Hit struct {
	ChunkID    int64   `json:"chunk_id"`
	Score      float32 `json:"score"`
	DocID      int64   `json:"doc_id"`
	PageIndex  int32   `json:"page_index"`
	ChunkIndex int32   `json:"chunk_index"`
	Content    string  `json:"content"`
}
