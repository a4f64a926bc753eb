// Package query builds per-domain store filters from free-text user queries.
package query

import (
	"context"
	"time"

	"inventory-assistant/internal/model"
)

// Store collections served by the lookup path.
const (
	CollectionProducts  = "products"
	CollectionSuppliers = "suppliers"
	CollectionBills     = "bills"
	CollectionCustomers = "customers"
)

// Builder turns a user query into a filter for one collection.
// The returned filter always carries the owner scoping condition.
type Builder interface {
	Build(ctx context.Context, userQuery, ownerID string, now time.Time) (model.Filter, string, error)
}
