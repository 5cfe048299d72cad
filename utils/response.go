package utils

// ErrorResponse is the JSON body returned on handler failures.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// StatusResponse reports boolean outcomes, used by the config import.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
