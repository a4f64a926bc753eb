package model

// Intent is the closed set of domains a user query can concern.
type Intent string

const (
	IntentProducts  Intent = "products"
	IntentSuppliers Intent = "suppliers"
	IntentBills     Intent = "bills"
	IntentCustomers Intent = "customers"
	IntentAnalytics Intent = "analytics"
	IntentChitchat  Intent = "chitchat"
)

// ParseIntent strictly parses a string into an Intent.
// Anything outside the closed set is rejected; there is no default.
func ParseIntent(s string) (Intent, bool) {
	switch Intent(s) {
	case IntentProducts, IntentSuppliers, IntentBills, IntentCustomers, IntentAnalytics, IntentChitchat:
		return Intent(s), true
	default:
		return "", false
	}
}

// Filter is a store query filter: field name → equality or range condition.
type Filter map[string]interface{}

// Record is a single matched store document.
type Record map[string]interface{}

// ToolExchange is one request/response pair from the analytics loop.
type ToolExchange struct {
	Name     string
	Args     map[string]interface{}
	Response interface{}
}

// TurnState is the unit of data threaded through the workflow for one
// user request. Nodes never mutate a shared instance: each node receives
// a TurnState value and returns an updated copy, so the state a previous
// node still references is never changed under it.
type TurnState struct {
	// OwnerID scopes every store access to the requesting tenant.
	// Required, never inferred.
	OwnerID string

	// UserQuery is the triggering input, immutable within a turn.
	UserQuery string

	// Intent is set once by the router and read by the graph's
	// conditional edge; it is never overwritten downstream.
	Intent Intent

	// Collection is the target store collection on the non-analytics path.
	Collection string

	// QueryFilter always contains the owner scoping condition before
	// execution; the executor re-forces it regardless.
	QueryFilter Filter

	// DBResults maps collection name to matched records. Empty means
	// "no match"; store errors also degrade to empty.
	DBResults map[string][]Record

	// ToolMessages accumulates analytics tool exchanges, append-only.
	ToolMessages []ToolExchange

	// PrevResponse and PrevDBResults carry the previous turn's outcome
	// for follow-up disambiguation. Supplied by session memory.
	PrevResponse  string
	PrevDBResults map[string][]Record

	// Response is the sole externally visible output of a turn.
	Response string
}

// TotalRecords counts matched records across all collections.
func (s TurnState) TotalRecords() int {
	total := 0
	for _, records := range s.DBResults {
		total += len(records)
	}
	return total
}
