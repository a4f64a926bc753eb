package mongodb

// Config holds the Data API client configuration.
type Config struct {
	// BaseURL is the Data API endpoint, e.g.
	// https://data.mongodb-api.com/app/<app-id>/endpoint/data/v1
	BaseURL    string
	APIKey     string
	DataSource string
	Database   string
}

// Document is a single store record.
type Document = map[string]interface{}

// findRequest is the wire body for the find action.
type findRequest struct {
	DataSource string                 `json:"dataSource"`
	Database   string                 `json:"database"`
	Collection string                 `json:"collection"`
	Filter     map[string]interface{} `json:"filter"`
	Projection map[string]interface{} `json:"projection,omitempty"`
}

// aggregateRequest is the wire body for the aggregate action.
type aggregateRequest struct {
	DataSource string                   `json:"dataSource"`
	Database   string                   `json:"database"`
	Collection string                   `json:"collection"`
	Pipeline   []map[string]interface{} `json:"pipeline"`
}

// documentsResponse is the wire response for find and aggregate.
type documentsResponse struct {
	Documents []Document `json:"documents"`
}

// insertManyRequest is the wire body for the insertMany action.
type insertManyRequest struct {
	DataSource string     `json:"dataSource"`
	Database   string     `json:"database"`
	Collection string     `json:"collection"`
	Documents  []Document `json:"documents"`
}

// insertManyResponse is the wire response for insertMany.
type insertManyResponse struct {
	InsertedIDs []interface{} `json:"insertedIds"`
}
