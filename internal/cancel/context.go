package cancel

import "context"

// ContextCanceler backs the abort signal with a cancelable context.
//
// Workers blocked in a context-aware acquire (such as
// semaphore.Weighted.Acquire) return as soon as the sweep is aborted.
type ContextCanceler struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewContext creates a ContextCanceler derived from parent.
func NewContext(parent context.Context) *ContextCanceler {
	ctx, cancel := context.WithCancel(parent)
	return &ContextCanceler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Done returns true if the sweep has been aborted.
//
// This performs a non-blocking select on ctx.Done().
func (c *ContextCanceler) Done() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

// Cancel aborts the sweep and releases the context's resources.
func (c *ContextCanceler) Cancel() {
	c.cancel()
}

// Context returns the context to hand to blocking acquire calls.
func (c *ContextCanceler) Context() context.Context {
	return c.ctx
}
