// Package goroutine runs background work that must outlive the request that started it.
package goroutine

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"talentika/internal/shared/logger"
)

// Detach runs fn on its own goroutine with a context that keeps parent's values but not
// its cancellation, bounded by timeout. A panic in fn is logged and swallowed. The
// returned channel is closed when fn returns.
func Detach(parent context.Context, log logger.Interface, name string, timeout time.Duration, fn func(ctx context.Context)) <-chan struct{} {
	done := make(chan struct{})
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), timeout)

	go func() {
		defer close(done)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn(ctx)
	}()

	return done
}
