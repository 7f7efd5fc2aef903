package bucket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedisam/gobucket/worker"
)

var (
	_ worker.Handle    = (*Bucket)(nil)
	_ worker.Watchable = (*Bucket)(nil)
	_ worker.Stopper   = (*Bucket)(nil)
	_ worker.Factory   = (*Factory)(nil)
)

type subscriberFunc func(worker.Down)

func (f subscriberFunc) Notify(down worker.Down) { f(down) }

func TestBucketPutGetDelete(t *testing.T) {
	b := Start(NewOptions())
	defer b.Stop()

	require.NoError(t, b.Put("milk", 3))
	require.NoError(t, b.Put("eggs", "a dozen"))

	v, ok, err := b.Get("milk")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok, err = b.Get("bread")
	require.NoError(t, err)
	assert.False(t, ok, "a missing key must be ok=false, not an error")

	require.NoError(t, b.Delete("milk"))
	_, ok, err = b.Get("milk")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBucketPutOverwrites(t *testing.T) {
	b := Start(NewOptions())
	defer b.Stop()

	require.NoError(t, b.Put("count", 1))
	require.NoError(t, b.Put("count", 2))

	v, ok, err := b.Get("count")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestBucketKeys(t *testing.T) {
	b := Start(NewOptions())
	defer b.Stop()

	require.NoError(t, b.Put("a", 1))
	require.NoError(t, b.Put("b", 2))

	keys, err := b.Keys()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, keys)
}

func TestBucketStopFiresDownAndFailsCalls(t *testing.T) {
	b := Start(NewOptions())

	downs := make(chan worker.Down, 1)
	b.Watch(subscriberFunc(func(d worker.Down) { downs <- d }))

	b.Stop()
	b.Stop() // idempotent

	select {
	case down := <-downs:
		assert.Equal(t, worker.ReasonShutdown, down.Reason.Type)
	case <-time.After(time.Second):
		t.Fatal("no down event after stop")
	}

	// the down event fires after the inbox is disposed, so by now every
	// operation must fail fast
	_, _, err := b.Get("any")
	assert.ErrorIs(t, err, ErrStopped)
	assert.ErrorIs(t, b.Put("k", 1), ErrStopped)
	assert.ErrorIs(t, b.Delete("k"), ErrStopped)
	_, err = b.Keys()
	assert.ErrorIs(t, err, ErrStopped)
}

func TestBucketServesQueuedWritesBeforeStopping(t *testing.T) {
	b := Start(NewOptions())

	done := make(chan struct{})
	b.Watch(subscriberFunc(func(worker.Down) { close(done) }))

	require.NoError(t, b.Put("last", "word"))
	b.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("bucket did not stop")
	}
	// the write enqueued before Stop was applied, visible in the final map
	assert.Equal(t, "word", b.data["last"])
}

func TestBucketUnwatchSuppressesDown(t *testing.T) {
	b := Start(NewOptions())

	notified := make(chan worker.Down, 1)
	token := b.Watch(subscriberFunc(func(d worker.Down) { notified <- d }))
	b.Unwatch(token)

	b.Stop()

	select {
	case <-notified:
		t.Fatal("unwatched subscriber must not be notified")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFactorySpawnsDistinctBuckets(t *testing.T) {
	f := NewFactory(NewOptions())

	h1, err := f.Spawn()
	require.NoError(t, err)
	h2, err := f.Spawn()
	require.NoError(t, err)
	defer h1.(*Bucket).Stop()
	defer h2.(*Bucket).Stop()

	assert.NotEqual(t, h1.ID(), h2.ID())
}
