// Package resolve tries an ordered list of lookup keys and keeps the first
// one that produces a match. It knows nothing about what the keys are.
package resolve

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Func looks up a single key. found=false with a nil error means "no match".
// A non-nil error is recorded and treated as no match for that key.
type Func[K, V any] func(ctx context.Context, key K) (value V, found bool, err error)

// Result is the outcome of a first-match resolution.
type Result[K, V any] struct {
	Key   K
	Value V
	Found bool

	// Tried is the number of keys that were looked up.
	Tried int

	// Errs collects per-key lookup failures in key order.
	Errs []error
}

// FirstMatch looks up keys one at a time, in order, and stops at the first
// match. Lookup errors never abort the walk. A cancelled context stops it.
func FirstMatch[K, V any](ctx context.Context, keys []K, lookup Func[K, V]) Result[K, V] {
	var res Result[K, V]
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			res.Errs = append(res.Errs, err)
			return res
		}

		res.Tried++
		v, found, err := lookup(ctx, key)
		if err != nil {
			res.Errs = append(res.Errs, err)
			continue
		}
		if found {
			res.Key = key
			res.Value = v
			res.Found = true
			return res
		}
	}
	return res
}

type attempt[V any] struct {
	value V
	found bool
	err   error
}

// FirstMatchParallel looks up every key concurrently and returns the match
// with the lowest index, so the result is the same as FirstMatch's.
func FirstMatchParallel[K, V any](ctx context.Context, keys []K, lookup Func[K, V]) Result[K, V] {
	attempts := make([]attempt[V], len(keys))

	var g errgroup.Group
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			v, found, err := lookup(ctx, key)
			attempts[i] = attempt[V]{value: v, found: found, err: err}
			return nil
		})
	}
	_ = g.Wait()

	res := Result[K, V]{Tried: len(keys)}
	for i, a := range attempts {
		if a.err != nil {
			res.Errs = append(res.Errs, a.err)
			continue
		}
		if a.found {
			res.Key = keys[i]
			res.Value = a.value
			res.Found = true
			return res
		}
	}
	return res
}
