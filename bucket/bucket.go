// Package bucket implements the default worker unit tracked by a registry:
// an in-memory key/value store served by a single goroutine.
package bucket

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/hedisam/gobucket/internal/mailbox"
	"github.com/hedisam/gobucket/worker"
)

var (
	// ErrStopped is returned by calls made after the bucket stopped.
	ErrStopped = errors.New("bucket: stopped")
	// ErrTimeout is returned when a call outlives the configured timeout.
	ErrTimeout = errors.New("bucket: call timed out")
)

type putRequest struct {
	key   string
	value interface{}
}

type deleteRequest struct {
	key string
}

type getRequest struct {
	key   string
	reply *mailbox.Future
}

type getReply struct {
	value interface{}
	ok    bool
}

type keysRequest struct {
	reply *mailbox.Future
}

type stopRequest struct{}

// Bucket is a key/value worker. Every operation goes through its inbox and
// is applied by the serving goroutine, so concurrent use needs no locking.
// Start buckets through Start or a Factory; the zero value is not usable.
type Bucket struct {
	id          string
	inbox       mailbox.Inbox
	done        chan struct{}
	notifier    *worker.Notifier
	stopping    int32
	callTimeout time.Duration
	logger      zerolog.Logger

	// owned by the serving goroutine
	data map[string]interface{}
}

// Start launches a bucket worker.
func Start(opts Options) *Bucket {
	b := &Bucket{
		id:          xid.New().String(),
		inbox:       mailbox.NewMPSC(),
		done:        make(chan struct{}),
		notifier:    worker.NewNotifier(),
		callTimeout: opts.CallTimeout,
		data:        make(map[string]interface{}),
	}
	b.logger = opts.Logger.With().Str("bucket", b.id).Logger()
	go b.run()
	return b
}

// ID implements worker.Handle.
func (b *Bucket) ID() string {
	return b.id
}

// Watch implements worker.Watchable.
func (b *Bucket) Watch(sub worker.Subscriber) worker.Token {
	return b.notifier.Watch(sub)
}

// Unwatch implements worker.Watchable.
func (b *Bucket) Unwatch(token worker.Token) {
	b.notifier.Unwatch(token)
}

// Put stores value under key. The write is applied in serve order; Put
// itself never blocks on a busy bucket.
func (b *Bucket) Put(key string, value interface{}) error {
	if err := b.inbox.Put(putRequest{key: key, value: value}); err != nil {
		return ErrStopped
	}
	return nil
}

// Delete removes key, if present.
func (b *Bucket) Delete(key string) error {
	if err := b.inbox.Put(deleteRequest{key: key}); err != nil {
		return ErrStopped
	}
	return nil
}

// Get returns the value stored under key. ok reports whether the key was
// present; a missing key is a normal outcome, not an error.
func (b *Bucket) Get(key string) (value interface{}, ok bool, err error) {
	future := mailbox.NewFuture()
	if err := b.inbox.Put(getRequest{key: key, reply: future}); err != nil {
		return nil, false, ErrStopped
	}
	msg, err := future.RecvTimeout(b.done, b.callTimeout)
	if err != nil {
		return nil, false, b.recvError(err)
	}
	reply := msg.(getReply)
	return reply.value, reply.ok, nil
}

// Keys returns a snapshot of the stored keys, in no particular order.
func (b *Bucket) Keys() ([]string, error) {
	future := mailbox.NewFuture()
	if err := b.inbox.Put(keysRequest{reply: future}); err != nil {
		return nil, ErrStopped
	}
	msg, err := future.RecvTimeout(b.done, b.callTimeout)
	if err != nil {
		return nil, b.recvError(err)
	}
	return msg.([]string), nil
}

// Stop terminates the bucket after the operations already queued are
// served. Repeated calls are no-ops.
func (b *Bucket) Stop() {
	if !atomic.CompareAndSwapInt32(&b.stopping, 0, 1) {
		return
	}
	// the error path means the inbox is already disposed, nothing to do
	_ = b.inbox.Put(stopRequest{})
}

func (b *Bucket) recvError(err error) error {
	if errors.Is(err, mailbox.ErrTimeout) {
		return ErrTimeout
	}
	return ErrStopped
}

func (b *Bucket) run() {
	defer b.handleTermination()
	for {
		msg, err := b.inbox.Get()
		if err != nil {
			return
		}
		if !b.handle(msg) {
			return
		}
	}
}

func (b *Bucket) handle(message interface{}) bool {
	switch msg := message.(type) {
	case putRequest:
		b.data[msg.key] = msg.value
	case deleteRequest:
		delete(b.data, msg.key)
	case getRequest:
		value, ok := b.data[msg.key]
		msg.reply.Send(getReply{value: value, ok: ok})
	case keysRequest:
		keys := make([]string, 0, len(b.data))
		for key := range b.data {
			keys = append(keys, key)
		}
		msg.reply.Send(keys)
	case stopRequest:
		return false
	default:
		b.logger.Debug().Str("type", fmt.Sprintf("%T", message)).Msg("dropping unrecognized message")
	}
	return true
}

// handleTermination runs deferred on the serving goroutine. It recovers a
// panicking handler, fails the callers still waiting, and fires the Down
// event for every watcher.
func (b *Bucket) handleTermination() {
	reason := worker.Reason{Type: worker.ReasonShutdown}
	if r := recover(); r != nil {
		reason = worker.Reason{Type: worker.ReasonPanic, Details: r}
		b.logger.Error().Interface("panic", r).Msg("bucket terminated on panic")
	}
	b.inbox.Dispose()
	close(b.done)
	b.notifier.Terminate(reason)
}
