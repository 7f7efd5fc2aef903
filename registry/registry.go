// Package registry provides a serialized name registry for worker units:
// every name maps to at most one live worker, spawned on demand through a
// factory and forgotten automatically when it terminates. One goroutine
// serves all requests and termination events in arrival order, which is
// what keeps the name and subscription tables consistent without locks.
package registry

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hedisam/gobucket/internal/mailbox"
	"github.com/hedisam/gobucket/worker"
)

var (
	// ErrStopped is returned by calls made against a stopped registry.
	ErrStopped = errors.New("registry: stopped")
	// ErrTimeout is returned when a call outlives Options.CallTimeout.
	ErrTimeout = errors.New("registry: call timed out")
)

// Registry is the caller-side handle. All methods are safe for concurrent
// use; the state itself lives with the serving goroutine.
type Registry struct {
	inbox       mailbox.Inbox
	done        chan struct{}
	stop        sync.Once
	callTimeout time.Duration
	logger      zerolog.Logger
}

// Start launches a registry that serves lookups, creates and worker
// termination events in arrival order.
func Start(opts Options) (*Registry, error) {
	if err := opts.checkOptions(); err != nil {
		return nil, err
	}

	inbox := mailbox.NewRing(opts.InboxSize)
	r := &Registry{
		inbox:       inbox,
		done:        make(chan struct{}),
		callTimeout: opts.CallTimeout,
		logger:      opts.Logger,
	}
	go newServer(opts, inbox).serve()
	return r, nil
}

// Lookup returns the handle bound to name. ok reports whether the name is
// bound; an unknown name is a normal outcome, not an error. Lookup blocks
// until the registry serves it, bounded by Options.CallTimeout. A timed out
// lookup has not changed any state and its late reply is discarded.
func (r *Registry) Lookup(name string) (handle worker.Handle, ok bool, err error) {
	future := mailbox.NewFuture()
	if err := r.inbox.Put(lookupRequest{name: name, reply: future}); err != nil {
		return nil, false, ErrStopped
	}
	msg, err := future.RecvTimeout(r.done, r.callTimeout)
	if err != nil {
		return nil, false, r.recvError(err)
	}
	reply := msg.(lookupReply)
	return reply.handle, reply.ok, nil
}

// Create asks the registry to bind name to a fresh worker and returns
// immediately. Creating a name that is already bound is a no-op. Delivery
// is best effort: the request is dropped silently when the inbox is full or
// the registry is stopped, and spawn failures surface only in the log.
func (r *Registry) Create(name string) {
	ok, err := r.inbox.Offer(createRequest{name: name})
	if err != nil {
		r.logger.Debug().Str("name", name).Msg("create dropped, registry stopped")
		return
	}
	if !ok {
		r.logger.Debug().Str("name", name).Msg("create dropped, inbox full")
	}
}

// CreateSync is Create with the caller blocking for the outcome: the bound
// handle, existing or fresh, or the error that aborted the attempt.
func (r *Registry) CreateSync(name string) (worker.Handle, error) {
	future := mailbox.NewFuture()
	if err := r.inbox.Put(createRequest{name: name, reply: future}); err != nil {
		return nil, ErrStopped
	}
	msg, err := future.RecvTimeout(r.done, r.callTimeout)
	if err != nil {
		return nil, r.recvError(err)
	}
	reply := msg.(createReply)
	return reply.handle, reply.err
}

// Stop shuts the registry down: queued requests are dropped, pending and
// subsequent calls fail with ErrStopped, and fire-and-forget creates are
// ignored. Workers already bound keep running, the registry does not own
// their lifecycle. Stop is idempotent.
func (r *Registry) Stop() {
	r.stop.Do(func() {
		close(r.done)
		r.inbox.Dispose()
	})
}

func (r *Registry) recvError(err error) error {
	if errors.Is(err, mailbox.ErrTimeout) {
		return ErrTimeout
	}
	return ErrStopped
}
