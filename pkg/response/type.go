package response

// Resp is the standard JSON response body.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

const (
	// MessageSuccess is the message attached to successful responses.
	MessageSuccess = "Success"

	// DefaultErrorMessage hides internal failure details from API clients.
	DefaultErrorMessage = "Something went wrong. Please try again later."

	// InternalServerErrorCode is the error_code for unexpected failures.
	InternalServerErrorCode = 500
)
