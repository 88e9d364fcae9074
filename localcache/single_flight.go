/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package localcache

import (
	"bytes"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
)

// ErrGoexit is returned to callers waiting on a computation whose goroutine called runtime.Goexit.
var ErrGoexit = errors.New("runtime.Goexit was called")

// PanicError wraps a value recovered from a panicking compute function together with its stack trace.
// Callers sharing the computation receive it as an error; the computing goroutine re-panics.
type PanicError struct {
	Value interface{}
	Stack []byte
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("%v\n\n%s", p.Value, p.Stack)
}

func (p *PanicError) Unwrap() error {
	err, ok := p.Value.(error)
	if !ok {
		return nil
	}
	return err
}

func newPanicError(v interface{}) *PanicError {
	stack := debug.Stack()
	// The first line is "goroutine N [status]:", which is stale by the time waiters see it.
	if line := bytes.IndexByte(stack, '\n'); line >= 0 {
		stack = stack[line+1:]
	}
	return &PanicError{Value: v, Stack: stack}
}

// call is a computation in flight. val and err may be read once done is closed.
type call[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// flightGroup shares one in-flight computation per cache key between concurrent callers.
type flightGroup[T any] struct {
	mu    sync.Mutex
	calls map[string]*call[T]
}

// do runs fn unless a computation for key is already in flight,
// in which case it waits for that one and returns its result.
// The shared flag reports whether the result came from another caller's computation.
func (g *flightGroup[T]) do(key string, fn func() (T, error)) (val T, shared bool, err error) {
	g.mu.Lock()
	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		<-c.done
		return c.val, true, c.err
	}
	if g.calls == nil {
		g.calls = make(map[string]*call[T])
	}
	c := &call[T]{done: make(chan struct{})}
	g.calls[key] = c
	g.mu.Unlock()

	g.run(key, c, fn)
	return c.val, false, c.err
}

// run calls fn and publishes its outcome to waiters.
// A panic in fn is published as *PanicError and then re-raised,
// an exit via runtime.Goexit is published as ErrGoexit.
func (g *flightGroup[T]) run(key string, c *call[T], fn func() (T, error)) {
	returned := false
	var panicErr *PanicError
	defer func() {
		if panicErr != nil {
			c.err = panicErr
		} else if !returned {
			c.err = ErrGoexit
		}

		g.mu.Lock()
		delete(g.calls, key)
		g.mu.Unlock()
		close(c.done)

		if panicErr != nil {
			panic(panicErr.Value)
		}
	}()

	// recover() returns nil during runtime.Goexit, so the two exits are told apart here.
	func() {
		defer func() {
			if returned {
				return
			}
			if v := recover(); v != nil {
				panicErr = newPanicError(v)
			}
		}()
		c.val, c.err = fn()
		returned = true
	}()
}
