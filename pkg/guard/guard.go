// Package guard provides the non-reentrant critical section used by value-moving
// bridge operations.
package guard

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrReentrantCall is returned when an operation is entered again on the same call chain.
var ErrReentrantCall = errors.New("reentrant call")

type chainKey struct{}

type callChain struct {
	guard  *Guard
	active map[string]struct{}
}

// Guard serializes mutating calls on one bridge instance and rejects re-entry of an
// operation that is already running on the current call chain.
type Guard struct {
	sem chan struct{}
}

// New returns an unlocked guard.
func New() *Guard {
	return &Guard{sem: make(chan struct{}, 1)}
}

// Enter marks op as in progress. The first entry of a call chain takes the instance
// lock; nested entries of other operations reuse it. The returned context must be
// passed to nested calls and release must run on every exit path.
//
// A nested call that drops the returned context is indistinguishable from another
// caller and waits for the lock. The wait ends with ctx.Err() when ctx is done.
func (g *Guard) Enter(ctx context.Context, op string) (context.Context, func(), error) {
	if chain, ok := ctx.Value(chainKey{}).(*callChain); ok && chain.guard == g {
		if _, busy := chain.active[op]; busy {
			return ctx, func() {}, fmt.Errorf("%w: %s", ErrReentrantCall, op)
		}
		chain.active[op] = struct{}{}
		return ctx, func() { delete(chain.active, op) }, nil
	}

	select {
	case g.sem <- struct{}{}:
	default:
		select {
		case g.sem <- struct{}{}:
		case <-ctx.Done():
			return ctx, func() {}, fmt.Errorf("guard %s: %w", op, ctx.Err())
		}
	}
	chain := &callChain{guard: g, active: map[string]struct{}{op: {}}}
	var once sync.Once
	release := func() {
		once.Do(func() {
			delete(chain.active, op)
			<-g.sem
		})
	}
	return context.WithValue(ctx, chainKey{}, chain), release, nil
}
