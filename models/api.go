package models

// APIResponse is the envelope for successful mutation responses
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"` // Human-readable message
	ID      string `json:"id,omitempty"`      // Identifier assigned at creation
}

// APIListResponse is the envelope for listing responses. Data and Count are
// always present, so an empty listing serializes as data:[] with count:0
// rather than dropping the keys.
type APIListResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Count   int         `json:"count"`
}

// APIErrorResponse is the envelope for failed API responses
type APIErrorResponse struct {
	Error   string `json:"error"`             // Human-readable error
	Message string `json:"message,omitempty"` // Detail, surfaced in development only
}
