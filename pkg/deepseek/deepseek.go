package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client implements IDeepSeek interface
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// New creates a new DeepSeek client
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
	}, nil
}

// Model returns the model being used
func (c *Client) Model() string {
	return c.model
}

// GenerateContent sends a request to DeepSeek API
func (c *Client) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	wireReq, err := c.transformRequest(req)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(wireReq)
	if err != nil {
		return nil, fmt.Errorf("deepseek: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("deepseek: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("deepseek: failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("deepseek: API error %d: %s", resp.StatusCode, string(raw))
	}

	var wireResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&wireResp); err != nil {
		return nil, fmt.Errorf("deepseek: failed to decode response: %w", err)
	}

	return c.transformResponse(&wireResp)
}

// transformRequest flattens normalized content into OpenAI chat messages.
func (c *Client) transformRequest(req *Request) (chatRequest, error) {
	wireReq := chatRequest{
		Model:       c.model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	if req.SystemInstruction != nil {
		wireReq.Messages = append(wireReq.Messages, chatMessage{
			Role:    "system",
			Content: joinTextParts(req.SystemInstruction.Parts),
		})
	}

	for _, msg := range req.Messages {
		converted, err := convertMessage(msg)
		if err != nil {
			return chatRequest{}, err
		}
		wireReq.Messages = append(wireReq.Messages, converted...)
	}

	for _, tool := range req.Tools {
		wireReq.Tools = append(wireReq.Tools, chatTool{
			Type: "function",
			Function: chatFunction{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		})
	}

	if req.ForceJSON {
		wireReq.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	return wireReq, nil
}

// convertMessage maps one normalized message onto one or more chat messages.
// Function responses become role "tool" messages; function calls become
// assistant tool_calls entries.
func convertMessage(msg Content) ([]chatMessage, error) {
	var out []chatMessage

	role := msg.Role
	switch role {
	case "model":
		role = "assistant"
	case "function":
		role = "tool"
	}

	current := chatMessage{Role: role}

	for _, part := range msg.Parts {
		switch {
		case part.FunctionCall != nil:
			args, err := json.Marshal(part.FunctionCall.Args)
			if err != nil {
				return nil, fmt.Errorf("deepseek: failed to marshal tool args: %w", err)
			}
			current.Role = "assistant"
			current.ToolCalls = append(current.ToolCalls, chatToolCall{
				ID:   part.FunctionCall.Name,
				Type: "function",
				Function: chatToolCallFunc{
					Name:      part.FunctionCall.Name,
					Arguments: string(args),
				},
			})
		case part.FunctionResponse != nil:
			payload, err := json.Marshal(part.FunctionResponse.Response)
			if err != nil {
				return nil, fmt.Errorf("deepseek: failed to marshal tool response: %w", err)
			}
			out = append(out, chatMessage{
				Role:       "tool",
				Content:    string(payload),
				ToolCallID: part.FunctionResponse.Name,
			})
		default:
			current.Content += part.Text
		}
	}

	if current.Content != "" || len(current.ToolCalls) > 0 {
		out = append(out, current)
	}

	return out, nil
}

// transformResponse converts the OpenAI wire response to the normalized form.
func (c *Client) transformResponse(resp *chatResponse) (*Response, error) {
	usage := &Usage{}
	if resp.Usage != nil {
		usage.InputTokens = resp.Usage.PromptTokens
		usage.OutputTokens = resp.Usage.CompletionTokens
		usage.TotalTokens = resp.Usage.TotalTokens
	}

	if len(resp.Choices) == 0 {
		return &Response{Usage: usage}, nil
	}

	msg := resp.Choices[0].Message
	content := Content{Role: "model"}

	if msg.Content != "" {
		content.Parts = append(content.Parts, Part{Text: msg.Content})
	}

	for _, tc := range msg.ToolCalls {
		args := map[string]interface{}{}
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				return nil, fmt.Errorf("deepseek: malformed tool call arguments: %w", err)
			}
		}
		content.Parts = append(content.Parts, Part{
			FunctionCall: &FunctionCall{Name: tc.Function.Name, Args: args},
		})
	}

	return &Response{Content: content, Usage: usage}, nil
}

func joinTextParts(parts []Part) string {
	var text string
	for _, p := range parts {
		text += p.Text
	}
	return text
}
