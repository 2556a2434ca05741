package dto

// ErrorResponse represents a generic error response body.
// Detail is usually a string but carries the upstream JSON body for provider errors.
type ErrorResponse struct {
	Detail interface{} `json:"detail" swaggertype:"string"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Detail string `json:"detail"`
}
