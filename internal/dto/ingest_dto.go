package dto

// PublishEmbedChunkMessage is the payload pushed on the ingest bus for each
// catalog chunk awaiting embedding.
type PublishEmbedChunkMessage struct {
	Source     string `json:"source"`
	ChunkIndex int    `json:"chunk_index"`
	Content    string `json:"content"`
}

type ReindexResponse struct {
	Source       string `json:"source"`
	ChunksQueued int    `json:"chunks_queued"`
}

type AdminLogsResponse struct {
	Logs  interface{} `json:"logs"`
	Total int         `json:"total"`
}
