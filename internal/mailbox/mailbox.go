// Package mailbox provides the serialized inboxes and reply futures backing
// the registry and bucket actors. An Inbox is consumed by a single goroutine,
// which is what makes the state owned by that goroutine race free.
package mailbox

import "errors"

// DefaultCap is the capacity bounded inboxes fall back to when the options
// leave it unset.
const DefaultCap = 1024

var (
	// ErrDisposed is returned once an inbox has been disposed, or by a
	// future whose owner went away before replying.
	ErrDisposed = errors.New("mailbox: disposed")
	// ErrTimeout is returned by a future receive that outlived its timeout.
	ErrTimeout = errors.New("mailbox: receive timed out")
)

// Inbox is an actor inbox. Producers may share it freely; Get must only be
// called from the single consuming goroutine. Messages must not be nil.
type Inbox interface {
	// Put enqueues message, blocking while a bounded inbox is full.
	Put(message interface{}) error
	// Offer enqueues message without ever blocking. It reports false when
	// the inbox is full and the message was dropped.
	Offer(message interface{}) (bool, error)
	// Get dequeues the next message, blocking while the inbox is empty.
	Get() (interface{}, error)
	// Len returns the number of queued messages.
	Len() int
	// Dispose shuts the inbox down: queued messages are dropped and all
	// pending and subsequent operations fail with ErrDisposed.
	Dispose()
}
