// Package dto defines data transfer objects for API requests and responses.
package dto

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// DateLayout is the calendar date format used across the API.
const DateLayout = "2006-01-02"
