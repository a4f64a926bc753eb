package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inventory-assistant/pkg/gemini"
)

func TestNewValidation(t *testing.T) {
	_, err := gemini.New(gemini.Config{})
	if err == nil {
		t.Error("expected error for missing API key")
	}

	client, err := gemini.New(gemini.Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Model() != gemini.DefaultModel {
		t.Errorf("expected default model, got %q", client.Model())
	}
}

func TestGenerateContent(t *testing.T) {
	var captured map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"candidates": [
				{"content": {"role": "model", "parts": [{"text": "Hello!"}]}}
			],
			"usageMetadata": {"promptTokenCount": 7, "candidatesTokenCount": 3, "totalTokenCount": 10}
		}`))
	}))
	defer ts.Close()

	client, err := gemini.New(gemini.Config{APIKey: "test-key", APIURL: ts.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := client.GenerateContent(context.Background(), &gemini.Request{
		Messages: []gemini.Content{
			{Role: "user", Parts: []gemini.Part{{Text: "hi"}}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Content.Parts) != 1 || resp.Content.Parts[0].Text != "Hello!" {
		t.Errorf("unexpected response content: %+v", resp.Content)
	}
	if resp.Usage.TotalTokens != 10 {
		t.Errorf("expected 10 total tokens, got %d", resp.Usage.TotalTokens)
	}
}

func TestGenerateContentStructuredOutput(t *testing.T) {
	var captured map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "{\"intent\":\"products\"}"}]}}]}`))
	}))
	defer ts.Close()

	client, _ := gemini.New(gemini.Config{APIKey: "test-key", APIURL: ts.URL})

	_, err := client.GenerateContent(context.Background(), &gemini.Request{
		Messages: []gemini.Content{
			{Role: "user", Parts: []gemini.Part{{Text: "classify this"}}},
		},
		ResponseSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"intent": map[string]interface{}{"type": "string"},
			},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	genCfg, ok := captured["generationConfig"].(map[string]interface{})
	if !ok {
		t.Fatal("generationConfig not sent")
	}
	if genCfg["responseMimeType"] != "application/json" {
		t.Errorf("expected JSON response mime type, got %v", genCfg["responseMimeType"])
	}
	if genCfg["responseSchema"] == nil {
		t.Error("response schema not forwarded")
	}
}

func TestGenerateContentFunctionCall(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"candidates": [
				{"content": {"role": "model", "parts": [
					{"functionCall": {"name": "get_sales", "args": {"date_scope": "today"}}}
				]}}
			]
		}`))
	}))
	defer ts.Close()

	client, _ := gemini.New(gemini.Config{APIKey: "test-key", APIURL: ts.URL})

	resp, err := client.GenerateContent(context.Background(), &gemini.Request{
		Messages: []gemini.Content{{Role: "user", Parts: []gemini.Part{{Text: "sales?"}}}},
		Tools: []gemini.Tool{
			{Name: "get_sales", Description: "fetch sales", Parameters: map[string]interface{}{"type": "object"}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fc := resp.Content.Parts[0].FunctionCall
	if fc == nil || fc.Name != "get_sales" {
		t.Fatalf("expected function call part, got %+v", resp.Content.Parts[0])
	}
	if fc.Args["date_scope"] != "today" {
		t.Errorf("unexpected args: %v", fc.Args)
	}
}

func TestGenerateContentAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	}))
	defer ts.Close()

	client, _ := gemini.New(gemini.Config{APIKey: "test-key", APIURL: ts.URL})

	_, err := client.GenerateContent(context.Background(), &gemini.Request{
		Messages: []gemini.Content{{Role: "user", Parts: []gemini.Part{{Text: "hi"}}}},
	})
	if err == nil {
		t.Error("expected API error")
	}
}
