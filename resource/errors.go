package resource

import "errors"

// ErrAllocation is returned when the native backend could not allocate
// memory for a resource.
var ErrAllocation = errors.New("resource: allocation failed")
