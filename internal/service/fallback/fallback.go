// Package fallback runs a preferred query strategy and, when it fails,
// a simpler one with the same result type. The preferred strategy is tried
// on every call; a failure is never remembered.
package fallback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/humanbelnik/cinegraph/internal/metrics"
	"github.com/humanbelnik/cinegraph/internal/model"
)

type Strategy[T any] struct {
	Method model.Method
	Run    func(ctx context.Context) (T, error)
}

func Of[T any](method model.Method, run func(ctx context.Context) (T, error)) Strategy[T] {
	return Strategy[T]{Method: method, Run: run}
}

// Run returns the result of primary, or of secondary when primary fails,
// together with the method of the strategy that produced it.
func Run[T any](ctx context.Context, logger *slog.Logger, op string, primary, secondary Strategy[T]) (T, model.Method, error) {
	res, err := primary.Run(ctx)
	if err == nil {
		metrics.RecordStrategy(op, string(primary.Method), false)
		return res, primary.Method, nil
	}

	var zero T
	if ctxErr := ctx.Err(); ctxErr != nil {
		return zero, primary.Method, fmt.Errorf("%s: %w", op, errors.Join(err, ctxErr))
	}

	logger.Warn("primary strategy failed, falling back",
		slog.String("operation", op),
		slog.String("primary", string(primary.Method)),
		slog.String("fallback", string(secondary.Method)),
		slog.String("error", err.Error()),
	)

	res, fbErr := secondary.Run(ctx)
	if fbErr != nil {
		return zero, secondary.Method, fmt.Errorf("%s: %w", op, errors.Join(err, fbErr))
	}
	metrics.RecordStrategy(op, string(secondary.Method), true)
	return res, secondary.Method, nil
}
