package registry

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hedisam/gobucket/internal/mailbox"
	"github.com/hedisam/gobucket/worker"
)

// server owns the registry state. Only the serve goroutine touches the two
// tables, so every request and termination event is applied atomically with
// respect to all the others. The tables mirror each other: one subscription
// entry per bound name, pointing back at it.
type server struct {
	names   map[string]worker.Handle
	subs    map[worker.Token]string
	factory worker.Factory
	monitor worker.Monitor
	inbox   mailbox.Inbox
	logger  zerolog.Logger
}

func newServer(opts Options, inbox mailbox.Inbox) *server {
	return &server{
		names:   make(map[string]worker.Handle),
		subs:    make(map[worker.Token]string),
		factory: opts.Factory,
		monitor: opts.Monitor,
		inbox:   inbox,
		logger:  opts.Logger,
	}
}

func (s *server) serve() {
	for {
		msg, err := s.inbox.Get()
		if err != nil {
			s.logger.Debug().Msg("registry stopped")
			return
		}
		s.handle(msg)
	}
}

func (s *server) handle(message interface{}) {
	switch msg := message.(type) {
	case lookupRequest:
		handle, ok := s.names[msg.name]
		msg.reply.Send(lookupReply{handle: handle, ok: ok})
	case createRequest:
		handle, err := s.create(msg.name)
		if msg.reply != nil {
			msg.reply.Send(createReply{handle: handle, err: err})
		}
	case worker.Down:
		s.cleanup(msg)
	default:
		s.logger.Warn().Str("type", fmt.Sprintf("%T", message)).Msg("dropping unrecognized message")
	}
}

// create binds name to a fresh worker, or returns the handle it is already
// bound to. The tables are only touched once both the spawn and the
// subscription succeeded, so a failure of either leaves no partial entry.
func (s *server) create(name string) (worker.Handle, error) {
	if handle, ok := s.names[name]; ok {
		return handle, nil
	}

	handle, token, err := s.spawn(name)
	if err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("create failed")
		return nil, err
	}

	s.names[name] = handle
	s.subs[token] = name
	s.logger.Debug().Str("name", name).Str("worker", handle.ID()).Msg("worker bound")
	return handle, nil
}

// spawn runs the factory and the monitor with panics contained, so a
// misbehaving collaborator aborts a single create instead of taking the
// registry down.
func (s *server) spawn(name string) (handle worker.Handle, token worker.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			handle, token = nil, ""
			err = fmt.Errorf("registry: spawn worker for %q: panic: %v", name, r)
		}
	}()

	handle, err = s.factory.Spawn()
	if err != nil {
		return nil, "", fmt.Errorf("registry: spawn worker for %q: %w", name, err)
	}

	token, err = s.monitor.Subscribe(handle, downSink{inbox: s.inbox, logger: s.logger})
	if err != nil {
		// the worker is up but nothing would ever clean it out of the
		// tables, so stop it instead of recording the binding
		if stopper, ok := handle.(worker.Stopper); ok {
			stopper.Stop()
		}
		return nil, "", fmt.Errorf("registry: subscribe to worker for %q: %w", name, err)
	}
	return handle, token, nil
}

func (s *server) cleanup(down worker.Down) {
	name, ok := s.subs[down.Token]
	if !ok {
		// late or duplicate delivery for a subscription already cleaned up
		s.logger.Debug().Str("token", string(down.Token)).Msg("down event for unknown token")
		return
	}
	delete(s.subs, down.Token)
	delete(s.names, name)
	s.logger.Debug().Str("name", name).Str("reason", down.Reason.Type).Msg("worker unbound")
}

// downSink forwards termination events into the registry inbox. It blocks
// on a full inbox rather than dropping: a lost Down event would leak the
// binding forever, while a dying worker can afford to wait.
type downSink struct {
	inbox  mailbox.Inbox
	logger zerolog.Logger
}

func (s downSink) Notify(down worker.Down) {
	if err := s.inbox.Put(down); err != nil {
		s.logger.Debug().Str("token", string(down.Token)).Msg("dropping down event, registry stopped")
	}
}
