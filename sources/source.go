// Package sources loads the point-of-interest set from its backing store.
//
// Every Source is consumed through Fetch, which runs the load on its own
// goroutine so a slow or remote store can replace the embedded fixture without
// touching filtering or rendering code.
package sources

import (
	"context"

	"accessibuddy/models"
)

// Source loads the full POI set once.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]models.POI, error)
}

// Pending is the result of an in-flight Fetch.
type Pending struct {
	source string
	done   chan struct{}
	pois   []models.POI
	err    error
}

// Fetch starts loading src in the background. There is no retry.
func Fetch(ctx context.Context, src Source) *Pending {
	p := &Pending{source: src.Name(), done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.pois, p.err = src.Load(ctx)
	}()
	return p
}

// Source names the source being loaded.
func (p *Pending) Source() string {
	return p.source
}

// Done is closed once the load has finished.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the load finishes or ctx is done.
func (p *Pending) Wait(ctx context.Context) ([]models.POI, error) {
	select {
	case <-p.done:
		return p.pois, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
