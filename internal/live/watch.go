package live

import "context"

// Result is one evaluation of a watched query.
type Result[T any] struct {
	Value T
	Err   error
}

// Watch evaluates query once, then again after every change to tables,
// delivering each result on the returned channel. The channel closes when
// ctx is done.
func Watch[T any](ctx context.Context, h *Hub, query func(ctx context.Context) (T, error), tables ...Table) <-chan Result[T] {
	sub := h.Subscribe(ctx, tables...)
	out := make(chan Result[T])

	go func() {
		defer close(out)
		defer sub.Close()

		emit := func() bool {
			v, err := query(ctx)
			select {
			case out <- Result[T]{Value: v, Err: err}:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-sub.C():
				if !ok {
					return
				}
				if !emit() {
					return
				}
			}
		}
	}()
	return out
}
