package dto

// ErrorResponse is the uniform error payload returned by every endpoint.
// Code carries the domain error code, not the HTTP status.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
