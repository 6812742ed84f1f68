package store

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Logger logs every dispatch at debug level with the action and the
// counter before and after it. The values come from the commit itself, so
// nested or concurrent dispatches never leak into another action's line.
func Logger(l *slog.Logger) Middleware {
	return func(api API) func(next Dispatcher) Dispatcher {
		if l.Enabled(context.Background(), slog.LevelDebug) {
			api.Observe(func(c Commit) { logCommit(l, c) })
		}
		return func(next Dispatcher) Dispatcher { return next }
	}
}

func logCommit(l *slog.Logger, c Commit) {
	payload, err := json.Marshal(c.Action)
	if err != nil {
		payload = []byte(err.Error())
	}
	l.Debug("dispatch",
		"action", string(c.Action.Kind()),
		"payload", string(payload),
		"prev_counter", c.Prev.Counter,
		"next_counter", c.Next.Counter,
		"todos", len(c.Next.Todos),
		"took", c.Took,
	)
}
