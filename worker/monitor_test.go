package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProc struct {
	id       string
	notifier *Notifier
}

func (p *fakeProc) ID() string { return p.id }

func (p *fakeProc) Watch(sub Subscriber) Token { return p.notifier.Watch(sub) }

func (p *fakeProc) Unwatch(token Token) { p.notifier.Unwatch(token) }

type plainHandle struct{ id string }

func (h plainHandle) ID() string { return h.id }

func TestProcMonitorSubscribesWatchableHandles(t *testing.T) {
	proc := &fakeProc{id: "w1", notifier: NewNotifier()}
	rec := &downRecorder{}

	token, err := ProcMonitor{}.Subscribe(proc, rec)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	proc.notifier.Terminate(Reason{Type: ReasonNormal})

	require.Len(t, rec.recorded(), 1)
	assert.Equal(t, token, rec.recorded()[0].Token)
}

func TestProcMonitorRejectsUnwatchableHandles(t *testing.T) {
	_, err := ProcMonitor{}.Subscribe(plainHandle{id: "w2"}, &downRecorder{})
	assert.Error(t, err)
}
