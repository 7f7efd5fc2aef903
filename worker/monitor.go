package worker

import "fmt"

// Subscriber receives Down events. Notify may be called from the
// terminating worker's goroutine, so it should hand the event off rather
// than process it in place.
type Subscriber interface {
	Notify(down Down)
}

// Monitor subscribes interested parties to worker terminations.
type Monitor interface {
	// Subscribe registers sub for exactly one Down event per returned
	// token, delivered at or after the moment h's worker terminates.
	Subscribe(h Handle, sub Subscriber) (Token, error)
}

// Watchable is the monitoring surface of workers built around a Notifier.
type Watchable interface {
	Watch(sub Subscriber) Token
	Unwatch(token Token)
}

// ProcMonitor watches in-process workers that expose a Notifier. It is the
// monitor a registry falls back to when its options leave it unset.
type ProcMonitor struct{}

func (ProcMonitor) Subscribe(h Handle, sub Subscriber) (Token, error) {
	w, ok := h.(Watchable)
	if !ok {
		return "", fmt.Errorf("worker: handle %q (%T) is not watchable", h.ID(), h)
	}
	return w.Watch(sub), nil
}
