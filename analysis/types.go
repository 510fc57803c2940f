package analysis

import (
	"context"

	"github.com/katalvlaran/metavuln/core"
)

// Loader returns a freshly loaded Network on every call.
type Loader func(ctx context.Context) (*core.Network, error)

// CloneLoader returns a Loader that hands out deep copies of n.
func CloneLoader(n *core.Network) Loader {
	return func(ctx context.Context) (*core.Network, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return n.Clone(), nil
	}
}

// optional is a result slot that is either unset or holds a value.
type optional[T any] struct {
	val T
	ok  bool
}

func (o *optional[T]) set(v T) {
	o.val, o.ok = v, true
}

func (o optional[T]) get() (T, bool) {
	return o.val, o.ok
}
