package dto

// ErrorResponse is the error body every endpoint returns
type ErrorResponse struct {
	Error   string   `json:"error" example:"User not found"`
	Details []string `json:"details,omitempty"`
}

// NewErrorResponse creates an error body with an optional list of field problems
func NewErrorResponse(message string, details ...string) ErrorResponse {
	return ErrorResponse{Error: message, Details: details}
}

// HealthResponse is returned by the liveness endpoints
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
