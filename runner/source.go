package runner

import "context"

// ModelSource supplies fresh models when the safety layers escalate.
// Fetch may block until a new model is available; it must honor
// context cancellation.
type ModelSource[M any] interface {
	Fetch(ctx context.Context) (M, error)
}

// ModelSourceFunc adapts a function to the ModelSource interface.
type ModelSourceFunc[M any] func(ctx context.Context) (M, error)

// Fetch implements ModelSource.
func (f ModelSourceFunc[M]) Fetch(ctx context.Context) (M, error) {
	return f(ctx)
}

// StaticSource returns the same model on every fetch. Useful for tests
// and for runs whose model never changes.
func StaticSource[M any](model M) ModelSource[M] {
	return ModelSourceFunc[M](func(ctx context.Context) (M, error) {
		if err := ctx.Err(); err != nil {
			var zero M
			return zero, err
		}
		return model, nil
	})
}
