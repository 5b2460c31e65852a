package inventory

import (
	"errors"

	"github.com/wims/backend/internal/domain/shared"
)

// numberAllocationRetries bounds how often a create is retried after its
// generated document number lost a race to a concurrent insert.
const numberAllocationRetries = 3

// withNumberRetry runs fn, re-running it with a freshly allocated number
// whenever it fails with ErrDuplicateNumber. Any other outcome is
// returned as is.
func withNumberRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < numberAllocationRetries; attempt++ {
		err = fn()
		if !errors.Is(err, shared.ErrDuplicateNumber) {
			return err
		}
	}
	return err
}
