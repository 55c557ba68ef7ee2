// Package workers runs encrypted storage operations as independently
// cancellable asynchronous tasks.
//
// A [Task] wraps one blocking call. The caller can wait for it with a
// deadline of its own, cancel it, or select on its completion channel.
package workers

import (
	"context"

	"github.com/MKhiriev/tim-encrypted-storage/models"
)

// Awaiter is the consumer side of an asynchronous operation.
//
// Example:
//
//	task := workers.Go(ctx, func(ctx context.Context) ([]byte, error) {
//	    return storage.Get(ctx, secret, storageKey, keyID)
//	})
//	data, err := task.Await(ctx).Get()
type Awaiter[T any] interface {
	// Await blocks until the task finishes or ctx is done. A done ctx
	// abandons the wait but does not cancel the task.
	Await(ctx context.Context) models.Result[T]

	// Cancel cancels the context the task runs under.
	Cancel()

	// Done is closed once the task has finished.
	Done() <-chan struct{}
}
