package dto

// HealthResponse is returned by the health check endpoint
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}
