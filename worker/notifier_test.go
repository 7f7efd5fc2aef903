package worker

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type downRecorder struct {
	mu    sync.Mutex
	downs []Down
}

func (r *downRecorder) Notify(down Down) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.downs = append(r.downs, down)
}

func (r *downRecorder) recorded() []Down {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Down(nil), r.downs...)
}

func TestNotifierDeliversDownOncePerToken(t *testing.T) {
	n := NewNotifier()
	first := &downRecorder{}
	second := &downRecorder{}

	t1 := n.Watch(first)
	t2 := n.Watch(second)
	require.NotEqual(t, t1, t2, "tokens must be unique per subscription")

	reason := Reason{Type: ReasonNormal}
	n.Terminate(reason)
	n.Terminate(Reason{Type: ReasonPanic, Details: "too late"})

	require.Len(t, first.recorded(), 1)
	require.Len(t, second.recorded(), 1)
	assert.Equal(t, Down{Token: t1, Reason: reason}, first.recorded()[0])
	assert.Equal(t, Down{Token: t2, Reason: reason}, second.recorded()[0])
}

func TestNotifierWatchAfterTerminationStillNotifies(t *testing.T) {
	n := NewNotifier()
	n.Terminate(Reason{Type: ReasonShutdown})

	rec := &downRecorder{}
	token := n.Watch(rec)

	require.Eventually(t, func() bool {
		return len(rec.recorded()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, Down{Token: token, Reason: Reason{Type: ReasonShutdown}}, rec.recorded()[0])
}

func TestNotifierUnwatchSuppressesDelivery(t *testing.T) {
	n := NewNotifier()
	rec := &downRecorder{}

	token := n.Watch(rec)
	n.Unwatch(token)
	n.Terminate(Reason{Type: ReasonNormal})

	assert.Empty(t, rec.recorded())
}

func TestNotifierConcurrentWatchAndTerminate(t *testing.T) {
	n := NewNotifier()
	const watchers = 32

	recs := make([]*downRecorder, watchers)
	var wg sync.WaitGroup
	for i := 0; i < watchers; i++ {
		recs[i] = &downRecorder{}
		wg.Add(1)
		go func(rec *downRecorder) {
			defer wg.Done()
			n.Watch(rec)
		}(recs[i])
	}
	n.Terminate(Reason{Type: ReasonNormal})
	wg.Wait()

	// every watcher ends up notified exactly once, no matter whether its
	// subscription raced ahead of the termination or behind it
	require.Eventually(t, func() bool {
		for _, rec := range recs {
			if len(rec.recorded()) != 1 {
				return false
			}
		}
		return true
	}, time.Second, 5*time.Millisecond)
}
