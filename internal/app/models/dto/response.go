package dto

// APIResponse is the uniform response envelope. Success is derived from the
// status code: everything below 400 counts as success.
type APIResponse struct {
	StatusCode int         `json:"statusCode" example:"200"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message" example:"Success"`
	Success    bool        `json:"success" example:"true"`
}

// NewAPIResponse creates a response envelope for the given status code
func NewAPIResponse(statusCode int, data interface{}, message string) APIResponse {
	if data == nil {
		data = struct{}{}
	}
	return APIResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}
