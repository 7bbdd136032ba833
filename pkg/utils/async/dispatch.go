package async

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/roomlab/roomboard/pkg/utils/logging"
)

// Dispatch runs a handler in a new goroutine detached from the request
// lifetime. The handler gets a fresh background context carrying the
// request's logger, so a slow upstream call never blocks the caller and a
// cancelled request never aborts the task mid-flight.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logging.From(bgCtx).Error("async handler failed", "error", goerr.Unwrap(err))
		}
	}()
}
