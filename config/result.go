package config

// Result is the outcome of a deserialization step: either a value (Ok) or an
// error (Fail). The zero Result is Ok with the zero value of T.
type Result[T any] struct {
	value T
	err   error
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail wraps an error. A nil err is treated as an Ok of the zero value.
func Fail[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// IsOk reports whether the result holds a value.
func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// Get unpacks the result into Go's usual (value, error) pair.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// Value returns the held value, or the zero value on Fail.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the failure, or nil on Ok.
func (r Result[T]) Err() error {
	return r.err
}

// FlatMap applies f to the value of an Ok result. A Fail short-circuits and
// f is never called.
func FlatMap[T, U any](r Result[T], f func(T) Result[U]) Result[U] {
	if r.err != nil {
		return Fail[U](r.err)
	}

	return f(r.value)
}

// Map transforms the value of an Ok result.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if r.err != nil {
		return Fail[U](r.err)
	}

	return Ok(f(r.value))
}

// Deref returns *p, or nil when p is nil. Generated String methods use it to
// print nullable scalars by value.
func Deref[T any](p *T) any {
	if p == nil {
		return nil
	}

	return *p
}
