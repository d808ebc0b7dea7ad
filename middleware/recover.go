package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/spetersoncode/flux"
)

// ErrPanic is wrapped by errors returned from [Recover].
var ErrPanic = errors.New("middleware: panic during dispatch")

// Recover returns middleware that recovers from panics further down the
// chain, including panicking reducers and listeners. The panic is logged with
// a stack trace and returned as an error wrapping [ErrPanic].
func Recover[S any](logger *slog.Logger) flux.Middleware[S] {
	if logger == nil {
		logger = slog.Default()
	}
	return func(api flux.MiddlewareAPI[S]) flux.Link {
		return func(next flux.Dispatch) flux.Dispatch {
			return func(a flux.Action) (result any, retErr error) {
				defer func() {
					if r := recover(); r != nil {
						logger.Error("dispatch panicked",
							slog.String("action", a.Type()),
							slog.Any("panic", r),
							slog.String("stack", string(debug.Stack())),
						)
						result = nil
						retErr = fmt.Errorf("%w: action %s: %v", ErrPanic, a.Type(), r)
					}
				}()
				return next(a)
			}
		}
	}
}
