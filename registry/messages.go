package registry

import (
	"github.com/hedisam/gobucket/internal/mailbox"
	"github.com/hedisam/gobucket/worker"
)

type lookupRequest struct {
	name  string
	reply *mailbox.Future
}

type lookupReply struct {
	handle worker.Handle
	ok     bool
}

// createRequest with a nil reply is the fire-and-forget form.
type createRequest struct {
	name  string
	reply *mailbox.Future
}

type createReply struct {
	handle worker.Handle
	err    error
}
