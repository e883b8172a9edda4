package rest

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Sendable is one schedulable call, see Call.
type Sendable interface {
	SendOrErr(ctx context.Context) error
}

// Call adapts a plain function to the Sendable interface.
// A typical call captures the Client and per-call arguments:
//
//	g.Add(rest.Call(func(ctx context.Context) error {
//		_, _, err := rest.Get[User](ctx, c, "users/1", nil)
//		return err
//	}))
type Call func(ctx context.Context) error

func (f Call) SendOrErr(ctx context.Context) error {
	return f(ctx)
}

// RunGroupConcurrencyLimit is the maximum number of concurrent calls in one RunGroup.
const RunGroupConcurrencyLimit = 32

// RunGroup allows scheduling calls by the Add method
// and then sending them concurrently by the RunAndWait method.
//
// The sending will stop when the first error occurs.
// The first error will be returned from the RunAndWait method.
//
// If you need to send calls immediately,
// or if you want to wait and collect all errors, use WaitGroup instead.
type RunGroup struct {
	ctx   context.Context
	start chan struct{} // postpone sending until RunAndWait will be called
	group *errgroup.Group
	sem   *semaphore.Weighted // limit concurrency
}

// NewRunGroup creates a new RunGroup.
func NewRunGroup(ctx context.Context) *RunGroup {
	return RunGroupWithLimit(ctx, RunGroupConcurrencyLimit)
}

// RunGroupWithLimit creates a new RunGroup with the given concurrent calls limit.
func RunGroupWithLimit(ctx context.Context, limit int64) *RunGroup {
	group, ctx := errgroup.WithContext(ctx)
	return &RunGroup{
		ctx:   ctx,
		start: make(chan struct{}),
		group: group,
		sem:   semaphore.NewWeighted(limit),
	}
}

// Add a call for sending.
// The call will be sent on call of the RunAndWait method.
// Additional calls can be added, for example from a finished call,
// even if RunAndWait has already been called, but is not yet finished.
func (g *RunGroup) Add(call Sendable) {
	g.group.Go(func() error {
		// Postpone sending until RunAndWait will be called
		<-g.start

		// Limit number of concurrent calls
		if err := g.sem.Acquire(g.ctx, 1); err != nil {
			// Ctx is done, return
			return err
		}
		defer g.sem.Release(1)

		return call.SendOrErr(g.ctx)
	})
}

// RunAndWait starts sending calls and waits for the result.
// After the first error sending stops and the error is returned.
func (g *RunGroup) RunAndWait() error {
	close(g.start)
	return g.group.Wait()
}
