package mailbox

import (
	"sync/atomic"

	mpsc "github.com/t3rm1n4l/go-mpscqueue"
)

const (
	mailboxProcessing int32 = iota
	mailboxIdle
)

// mpscInbox is an unbounded inbox on top of a lock free multi-producer
// single-consumer queue. The queue itself has no blocking dequeue, so the
// consumer parks on a signal channel guarded by an idle/processing flag:
// only the producer that flips the flag sends the wakeup.
type mpscInbox struct {
	queue    *mpsc.MPSCQueue
	done     chan struct{}
	disposed int32
	status   int32
	signal   chan struct{}
}

// NewMPSC returns an unbounded inbox. Put never blocks and Offer never
// drops.
func NewMPSC() Inbox {
	return &mpscInbox{
		queue:  mpsc.New(),
		done:   make(chan struct{}),
		status: mailboxIdle,
		signal: make(chan struct{}, 1),
	}
}

func (m *mpscInbox) Put(message interface{}) error {
	select {
	case <-m.done:
		return ErrDisposed
	default:
	}
	m.queue.Push(message)
	if atomic.CompareAndSwapInt32(&m.status, mailboxIdle, mailboxProcessing) {
		select {
		case m.signal <- struct{}{}:
		default:
		}
	}
	return nil
}

func (m *mpscInbox) Offer(message interface{}) (bool, error) {
	if err := m.Put(message); err != nil {
		return false, err
	}
	return true, nil
}

func (m *mpscInbox) Get() (interface{}, error) {
	for {
		select {
		case <-m.done:
			return nil, ErrDisposed
		default:
		}
		if msg := m.queue.Pop(); msg != nil {
			return msg, nil
		}
		// a producer that pushed before seeing the idle status sends no
		// signal, so poll once more after going idle instead of parking
		// right away.
		atomic.StoreInt32(&m.status, mailboxIdle)
		if msg := m.queue.Pop(); msg != nil {
			atomic.StoreInt32(&m.status, mailboxProcessing)
			return msg, nil
		}
		select {
		case <-m.done:
			return nil, ErrDisposed
		case <-m.signal:
			atomic.StoreInt32(&m.status, mailboxProcessing)
		}
	}
}

func (m *mpscInbox) Len() int {
	return int(m.queue.Size())
}

func (m *mpscInbox) Dispose() {
	if atomic.CompareAndSwapInt32(&m.disposed, 0, 1) {
		close(m.done)
	}
}
