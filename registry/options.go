package registry

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hedisam/gobucket/internal/mailbox"
	"github.com/hedisam/gobucket/logging"
	"github.com/hedisam/gobucket/worker"
)

// Options configure a registry instance. The zero value is not startable on
// its own since a Factory is required; use NewOptions.
type Options struct {
	// Factory spawns a worker for every created name. Required.
	Factory worker.Factory
	// Monitor subscribes the registry to worker terminations. Defaults to
	// worker.ProcMonitor.
	Monitor worker.Monitor
	// InboxSize bounds the registry inbox. Lookups block while it is full,
	// fire-and-forget creates are dropped. Defaults to mailbox.DefaultCap.
	InboxSize int
	// CallTimeout bounds Lookup and CreateSync. Zero waits forever.
	CallTimeout time.Duration
	// Logger overrides the default component logger.
	Logger zerolog.Logger
}

// NewOptions returns registry options with library defaults.
func NewOptions(factory worker.Factory) Options {
	return Options{
		Factory: factory,
		Monitor: worker.ProcMonitor{},
		Logger:  logging.GetLogger("registry"),
	}
}

func (opt Options) SetMonitor(m worker.Monitor) Options {
	opt.Monitor = m
	return opt
}

func (opt Options) SetInboxSize(size int) Options {
	opt.InboxSize = size
	return opt
}

func (opt Options) SetCallTimeout(d time.Duration) Options {
	opt.CallTimeout = d
	return opt
}

func (opt Options) SetLogger(logger zerolog.Logger) Options {
	opt.Logger = logger
	return opt
}

func (opt *Options) checkOptions() error {
	if opt.Factory == nil {
		return fmt.Errorf("registry: options need a worker factory")
	}
	if opt.CallTimeout < 0 {
		return fmt.Errorf("registry: negative call timeout: %s", opt.CallTimeout)
	}
	if opt.Monitor == nil {
		opt.Monitor = worker.ProcMonitor{}
	}
	if opt.InboxSize < 1 {
		opt.InboxSize = mailbox.DefaultCap
	}
	return nil
}
