package eventbus

import "context"

// Payloads narrows an event stream to the payloads of type T. Events carrying
// any other payload type are skipped. The output closes when in closes or ctx
// is done.
func Payloads[T any](ctx context.Context, in <-chan Event) <-chan T {
	return stage(ctx, in, func(e Event) (T, bool) {
		v, ok := e.Payload.(T)
		return v, ok
	})
}

// Filter forwards the items of in for which keep returns true.
func Filter[T any](ctx context.Context, in <-chan T, keep func(T) bool) <-chan T {
	return stage(ctx, in, func(v T) (T, bool) {
		return v, keep(v)
	})
}

// Map transforms every item of in.
func Map[T, U any](ctx context.Context, in <-chan T, fn func(T) U) <-chan U {
	return stage(ctx, in, func(v T) (U, bool) {
		return fn(v), true
	})
}

func stage[T, U any](ctx context.Context, in <-chan T, fn func(T) (U, bool)) <-chan U {
	out := make(chan U)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-in:
				if !ok {
					return
				}
				u, keep := fn(v)
				if !keep {
					continue
				}
				select {
				case out <- u:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
