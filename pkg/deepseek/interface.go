package deepseek

import "context"

// IDeepSeek defines the interface for DeepSeek API client.
// Implementations are safe for concurrent use.
type IDeepSeek interface {
	// GenerateContent sends a generation request to DeepSeek API
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Model returns the model being used
	Model() string
}
