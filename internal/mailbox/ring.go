package mailbox

import (
	"github.com/Workiva/go-datastructures/queue"
)

// ringInbox is a bounded inbox on top of a ring buffer. The buffer does the
// heavy lifting: Put parks producers while it is full, Offer reports a full
// buffer instead, and Dispose wakes every parked producer and consumer.
type ringInbox struct {
	buf *queue.RingBuffer
}

// NewRing returns a bounded inbox with the given capacity. A capacity
// smaller than one falls back to DefaultCap.
func NewRing(cap int) Inbox {
	if cap < 1 {
		cap = DefaultCap
	}
	return &ringInbox{buf: queue.NewRingBuffer(uint64(cap))}
}

func (m *ringInbox) Put(message interface{}) error {
	if err := m.buf.Put(message); err != nil {
		return ErrDisposed
	}
	return nil
}

func (m *ringInbox) Offer(message interface{}) (bool, error) {
	ok, err := m.buf.Offer(message)
	if err != nil {
		return false, ErrDisposed
	}
	return ok, nil
}

func (m *ringInbox) Get() (interface{}, error) {
	msg, err := m.buf.Get()
	if err != nil {
		return nil, ErrDisposed
	}
	return msg, nil
}

func (m *ringInbox) Len() int {
	return int(m.buf.Len())
}

func (m *ringInbox) Dispose() {
	m.buf.Dispose()
}
