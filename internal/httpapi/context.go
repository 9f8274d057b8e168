package httpapi

import (
	"context"
	"net/http"
)

// serverBaseCtx is canceled when the panel shuts down so handlers waiting on
// the event loop return promptly.
var serverBaseCtx = context.Background()

// SetBaseContext sets the process-level base context used by handlers. nil
// resets it to Background.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	serverBaseCtx = ctx
}

// requestContext is the context a handler hands to the Service: canceled by
// panel shutdown or a gone client, and bounded by the status timeout.
func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	joined, cancelJoin := joinContexts(serverBaseCtx, r.Context())
	if statusTimeout <= 0 {
		return joined, cancelJoin
	}
	ctx, cancel := context.WithTimeout(joined, statusTimeout)
	return ctx, func() {
		cancel()
		cancelJoin()
	}
}

// joinContexts returns a context canceled when either parent is done. cancel
// releases the watcher goroutine.
func joinContexts(a, b context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer cancel()
		select {
		case <-a.Done():
		case <-b.Done():
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
