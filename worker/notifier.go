package worker

import (
	"sync"

	"github.com/rs/xid"
)

// Notifier tracks the liveness subscriptions of a single worker and fans
// the Down event out when it terminates. Embed one in a worker type and
// call Terminate from its termination handler; Watch and Unwatch are safe
// from any goroutine.
type Notifier struct {
	mu     sync.Mutex
	subs   map[Token]Subscriber
	dead   bool
	reason Reason
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[Token]Subscriber)}
}

// Watch subscribes sub to the worker's termination. Watching an already
// terminated worker still yields the Down event, delivered asynchronously,
// so a subscription cannot be lost to a spawn/death race.
func (n *Notifier) Watch(sub Subscriber) Token {
	token := Token(xid.New().String())
	n.mu.Lock()
	if n.dead {
		reason := n.reason
		n.mu.Unlock()
		go sub.Notify(Down{Token: token, Reason: reason})
		return token
	}
	n.subs[token] = sub
	n.mu.Unlock()
	return token
}

// Unwatch drops a subscription. Tokens that were already notified or never
// existed are ignored.
func (n *Notifier) Unwatch(token Token) {
	n.mu.Lock()
	delete(n.subs, token)
	n.mu.Unlock()
}

// Terminate marks the worker dead and notifies every subscriber once, on
// the calling goroutine. Only the first call's reason is reported; repeated
// calls are no-ops.
func (n *Notifier) Terminate(reason Reason) {
	n.mu.Lock()
	if n.dead {
		n.mu.Unlock()
		return
	}
	n.dead = true
	n.reason = reason
	subs := n.subs
	n.subs = nil
	n.mu.Unlock()

	for token, sub := range subs {
		sub.Notify(Down{Token: token, Reason: reason})
	}
}
