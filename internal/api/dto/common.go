package dto

// ErrorResponse is the error body every endpoint returns on failure
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
