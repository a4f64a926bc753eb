// Package store executes query filters against the document store with a
// fail-soft policy: store errors never surface to the user path, they
// degrade to an empty result set and a log line.
package store

import (
	"context"
	"fmt"

	"inventory-assistant/internal/model"
	pkgLog "inventory-assistant/pkg/log"
	"inventory-assistant/pkg/mongodb"
)

// DataAPI is the slice of the mongodb client the executor needs.
type DataAPI interface {
	Find(ctx context.Context, collection string, filter map[string]interface{}) ([]mongodb.Document, error)
	Aggregate(ctx context.Context, collection string, pipeline []map[string]interface{}) ([]mongodb.Document, error)
}

// Executor runs owner-scoped reads against the store.
type Executor interface {
	// Find returns matching records, or an empty slice on any store error.
	// The owner condition is re-forced onto the filter before execution.
	Find(ctx context.Context, collection string, filter model.Filter, ownerID string) []model.Record

	// Aggregate runs a pipeline with the same fail-soft policy. The caller
	// is responsible for owner scoping inside the pipeline's $match stage.
	Aggregate(ctx context.Context, collection string, pipeline []map[string]interface{}) []model.Record
}

type executor struct {
	api DataAPI
	l   pkgLog.Logger
}

// NewExecutor creates a fail-soft store executor.
func NewExecutor(api DataAPI, l pkgLog.Logger) Executor {
	return &executor{api: api, l: l}
}

func (e *executor) Find(ctx context.Context, collection string, filter model.Filter, ownerID string) []model.Record {
	if filter == nil {
		filter = model.Filter{}
	}
	filter[model.OwnerField] = ownerID

	docs, err := e.api.Find(ctx, collection, filter)
	if err != nil {
		// No-match and store failure look the same to the caller; the log
		// line is what tells them apart.
		e.l.Errorf(ctx, "store find failed on %s, degrading to empty: %v", collection, err)
		return []model.Record{}
	}

	return toRecords(docs)
}

func (e *executor) Aggregate(ctx context.Context, collection string, pipeline []map[string]interface{}) []model.Record {
	docs, err := e.api.Aggregate(ctx, collection, pipeline)
	if err != nil {
		e.l.Errorf(ctx, "store aggregate failed on %s, degrading to empty: %v", collection, err)
		return []model.Record{}
	}

	return toRecords(docs)
}

// toRecords converts store documents to records, flattening extended-JSON
// object ids to plain strings so downstream prompts stay readable.
func toRecords(docs []mongodb.Document) []model.Record {
	records := make([]model.Record, 0, len(docs))
	for _, doc := range docs {
		record := model.Record{}
		for k, v := range doc {
			if k == "_id" {
				record[k] = stringifyID(v)
				continue
			}
			record[k] = v
		}
		records = append(records, record)
	}
	return records
}

func stringifyID(v interface{}) string {
	switch id := v.(type) {
	case string:
		return id
	case map[string]interface{}:
		if oid, ok := id["$oid"].(string); ok {
			return oid
		}
	}
	return fmt.Sprintf("%v", v)
}
