package analytics

import (
	"errors"
	"fmt"
)

// ErrRetrieval wraps every failure coming from the underlying store.
// There are no retries and no partial results.
var ErrRetrieval = errors.New("analytics retrieval failed")

func wrapRead(read string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrRetrieval, read, err)
}
