package taskutil

import (
	"errors"
	"time"

	"github.com/primetalk/goio/io"
)

// Task runs one blocking step of the polling pass with optional timeout,
// recovery and error handling. The run stays strictly sequential: Run
// blocks until the step and its continuation are done.
type Task[T any] struct {
	fn        func() (*T, error)
	timeout   *time.Duration
	onError   func(error)
	recover   func(error) T
	onSuccess func(T)
}

func New[T any](fn func() (*T, error)) *Task[T] {
	return &Task[T]{fn: fn}
}

func (t *Task[T]) WithTimeout(timeout time.Duration) *Task[T] {
	t.timeout = &timeout
	return t
}

func (t *Task[T]) OnError(fn func(error)) *Task[T] {
	t.onError = fn
	return t
}

func (t *Task[T]) Recover(fn func(error) T) *Task[T] {
	t.recover = fn
	return t
}

func (t *Task[T]) OnSuccess(fn func(T)) *Task[T] {
	t.onSuccess = fn
	return t
}

func (t *Task[T]) Run() {
	bgFn := io.Eval(t.fn)
	bg := io.Map(bgFn, func(a *T) T {
		if a != nil {
			return *a
		}
		panic(errors.New("result is nil"))
	})
	if t.timeout != nil {
		bg = io.WithTimeout[T](*t.timeout)(bg)
	}
	result := io.RunSync(bg)
	var finalValue *T
	if result.Error != nil {
		if t.recover != nil {
			a := t.recover(result.Error)
			finalValue = &a
		} else {
			if t.onError != nil {
				t.onError(result.Error)
			}
			return
		}
	}
	if finalValue == nil {
		finalValue = &result.Value
	}

	if t.onSuccess != nil {
		t.onSuccess(*finalValue)
	}
}
