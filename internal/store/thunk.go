package store

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/idilsaglam/todostore/internal/action"
)

// Thunk is an asynchronous action producer. It dispatches plain actions
// through api once its data is available.
type Thunk func(ctx context.Context, api API) error

// Run calls t on the current goroutine.
func (s *Store) Run(ctx context.Context, t Thunk) error {
	return t(ctx, s)
}

// Go runs t on its own goroutine. The channel yields t's result and is
// then closed. Ordering between thunks started this way is undefined.
func (s *Store) Go(ctx context.Context, t Thunk) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- t(ctx, s)
	}()
	return done
}

// Replay reads one JSON action per line from r and dispatches each as soon
// as it is decoded. Blank lines and lines starting with '#' are skipped.
// It stops at the first bad line or when ctx is done.
func Replay(r io.Reader) Thunk {
	return func(ctx context.Context, api API) error {
		sc := bufio.NewScanner(r)
		line := 0
		for sc.Scan() {
			line++
			if err := ctx.Err(); err != nil {
				return err
			}
			b := bytes.TrimSpace(sc.Bytes())
			if len(b) == 0 || b[0] == '#' {
				continue
			}
			a, err := action.Decode(b)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			api.Dispatch(a)
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("read: %w", err)
		}
		return nil
	}
}

// Sequence dispatches actions in order.
func Sequence(actions ...action.Action) Thunk {
	return func(ctx context.Context, api API) error {
		for _, a := range actions {
			if err := ctx.Err(); err != nil {
				return err
			}
			api.Dispatch(a)
		}
		return nil
	}
}
