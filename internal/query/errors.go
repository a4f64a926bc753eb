package query

import "fmt"

// BuildError reports which domain's builder failed, so workflow-level
// fallbacks can name the domain in logs.
type BuildError struct {
	Domain string
	Err    error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("query build failed for %s: %v", e.Domain, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
