package dto

type ChatRequest struct {
	Query     string `json:"query" validate:"required,min=1,max=1000"`
	SessionId string `json:"session_id,omitempty"`
}

type ChatResponse struct {
	Answer    string `json:"answer"`
	Category  string `json:"category"`
	RoutedTo  string `json:"routed_to"`
	SessionId string `json:"session_id"`
}

type HealthResponse struct {
	Status         string `json:"status"`
	ActiveSessions int    `json:"active_sessions"`
	RagReady       bool   `json:"rag_ready"`
}

type InfoResponse struct {
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	Products []string `json:"products"`
}
