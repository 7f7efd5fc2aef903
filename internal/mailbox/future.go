package mailbox

import "time"

// Future is a one-slot reply mailbox shared between a caller and the actor
// serving its request. The first reply wins and later ones are dropped, so
// an actor replying to a caller that already gave up never blocks.
type Future struct {
	m chan interface{}
}

func NewFuture() *Future {
	return &Future{m: make(chan interface{}, 1)}
}

// Send delivers the reply without blocking.
func (f *Future) Send(message interface{}) {
	select {
	case f.m <- message:
	default:
	}
}

// Recv blocks until the reply arrives or cancel is closed. A nil cancel
// channel waits for the reply forever.
func (f *Future) Recv(cancel <-chan struct{}) (interface{}, error) {
	select {
	case msg := <-f.m:
		return msg, nil
	case <-cancel:
		return nil, ErrDisposed
	}
}

// RecvTimeout is Recv with a deadline. A timeout smaller than one waits
// forever.
func (f *Future) RecvTimeout(cancel <-chan struct{}, timeout time.Duration) (interface{}, error) {
	if timeout < 1 {
		return f.Recv(cancel)
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case msg := <-f.m:
		return msg, nil
	case <-cancel:
		return nil, ErrDisposed
	case <-timer.C:
		return nil, ErrTimeout
	}
}
