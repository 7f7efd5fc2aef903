package bucket

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/hedisam/gobucket/logging"
)

// Options configure buckets. The zero value works but logs nowhere; use
// NewOptions for the library defaults.
type Options struct {
	// CallTimeout bounds Get and Keys. Zero waits forever.
	CallTimeout time.Duration
	// Logger is the base logger; every bucket tags it with its own id.
	Logger zerolog.Logger
}

// NewOptions returns bucket options with library defaults.
func NewOptions() Options {
	return Options{
		Logger: logging.GetLogger("bucket"),
	}
}

func (opt Options) SetCallTimeout(d time.Duration) Options {
	opt.CallTimeout = d
	return opt
}

func (opt Options) SetLogger(logger zerolog.Logger) Options {
	opt.Logger = logger
	return opt
}
