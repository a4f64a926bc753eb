// Package mongodb is a JSON-over-HTTP client for the MongoDB Atlas Data API.
// Only the two read actions the assistant needs are implemented.
package mongodb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client is the Data API HTTP client.
type Client struct {
	baseURL    string
	apiKey     string
	dataSource string
	database   string
	httpClient *http.Client
}

// NewClient creates a new Data API client.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		dataSource: cfg.DataSource,
		database:   cfg.Database,
		httpClient: &http.Client{},
	}
}

// Find returns all documents in the collection matching the filter.
func (c *Client) Find(ctx context.Context, collection string, filter map[string]interface{}) ([]Document, error) {
	req := findRequest{
		DataSource: c.dataSource,
		Database:   c.database,
		Collection: collection,
		Filter:     filter,
	}

	var result documentsResponse
	if err := c.post(ctx, "/action/find", req, &result); err != nil {
		return nil, err
	}
	return result.Documents, nil
}

// Aggregate runs an aggregation pipeline against the collection.
func (c *Client) Aggregate(ctx context.Context, collection string, pipeline []map[string]interface{}) ([]Document, error) {
	req := aggregateRequest{
		DataSource: c.dataSource,
		Database:   c.database,
		Collection: collection,
		Pipeline:   pipeline,
	}

	var result documentsResponse
	if err := c.post(ctx, "/action/aggregate", req, &result); err != nil {
		return nil, err
	}
	return result.Documents, nil
}

// InsertMany writes documents to the collection and returns how many
// were inserted. Used by seeding tooling, not the request path.
func (c *Client) InsertMany(ctx context.Context, collection string, documents []Document) (int, error) {
	req := insertManyRequest{
		DataSource: c.dataSource,
		Database:   c.database,
		Collection: collection,
		Documents:  documents,
	}

	var result insertManyResponse
	if err := c.post(ctx, "/action/insertMany", req, &result); err != nil {
		return 0, err
	}
	return len(result.InsertedIDs), nil
}

func (c *Client) post(ctx context.Context, action string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("mongodb: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+action, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("mongodb: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("mongodb: failed to call Data API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mongodb: Data API error %d: %s", resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("mongodb: failed to decode response: %w", err)
	}

	return nil
}
