package models

// Result is a two-variant outcome: either a value or an error.
// Functions in this module return (T, error); Result carries the same pair
// through channels and asynchronous tasks.
type Result[T any] struct {
	value  T
	err    error
	failed bool
}

// Success wraps v in a successful Result.
func Success[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Failure wraps err in a failed Result.
func Failure[T any](err error) Result[T] {
	return Result[T]{err: err, failed: true}
}

// ResultOf builds a Result from a conventional (value, error) pair.
func ResultOf[T any](v T, err error) Result[T] {
	if err != nil {
		return Failure[T](err)
	}
	return Success(v)
}

func (r Result[T]) IsSuccess() bool { return !r.failed }

func (r Result[T]) IsFailure() bool { return r.failed }

// Value returns the success value, or the zero value of T on failure.
func (r Result[T]) Value() T { return r.value }

// Err returns the failure error, or nil on success.
func (r Result[T]) Err() error { return r.err }

// Get unpacks the Result into the conventional (value, error) pair.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}
