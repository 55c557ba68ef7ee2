package workers

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/tim-encrypted-storage/models"
)

var ErrTaskPanicked = errors.New("task panicked")

// Task is a running call to fn started by Go.
type Task[T any] struct {
	cancel context.CancelFunc
	done   chan struct{}
	result models.Result[T]
}

var _ Awaiter[struct{}] = (*Task[struct{}])(nil)

// Go starts fn in a new goroutine under a child of ctx and returns
// immediately. A panic in fn becomes a failed result wrapping
// ErrTaskPanicked.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Task[T] {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task[T]{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(t.done)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				t.result = models.Failure[T](fmt.Errorf("%w: %v", ErrTaskPanicked, r))
			}
		}()

		t.result = models.ResultOf(fn(ctx))
	}()

	return t
}

func (t *Task[T]) Await(ctx context.Context) models.Result[T] {
	select {
	case <-t.done:
		return t.result
	case <-ctx.Done():
		return models.Failure[T](ctx.Err())
	}
}

func (t *Task[T]) Cancel() {
	t.cancel()
}

func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// AwaitAll waits for every task in order and returns their results in the
// same order.
func AwaitAll[T any](ctx context.Context, tasks ...*Task[T]) []models.Result[T] {
	results := make([]models.Result[T], 0, len(tasks))
	for _, t := range tasks {
		results = append(results, t.Await(ctx))
	}
	return results
}
