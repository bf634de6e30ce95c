package resource

import "fmt"

// LimitError is returned for a request that can never be satisfied.
type LimitError struct {
	Resource  string
	Requested int64
	Limit     int64
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("resource: %s request of %d exceeds limit %d", e.Resource, e.Requested, e.Limit)
}
