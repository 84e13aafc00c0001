package dto

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status string `json:"status"`
}

// TemplatesResponse lists the visual variants the renderer knows
type TemplatesResponse struct {
	Templates []string `json:"templates"`
	Default   string   `json:"default"`
}
