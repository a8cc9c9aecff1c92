package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// loadMonths runs load for every month with at most workers in flight and
// concatenates the results in the order months were given. The first error
// cancels the remaining loads.
func loadMonths[T any](ctx context.Context, log *zap.Logger, workers int, months []string,
	load func(month string) ([]T, error)) ([]T, error) {
	parts := make([][]T, len(months))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, month := range months {
		i, month := i, month
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows, err := load(month)
			if err != nil {
				return fmt.Errorf("month %s: %w", month, err)
			}
			log.Debug("loaded month", zap.String("month", month), zap.Int("rows", len(rows)))
			parts[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]T, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}
