// Package worker defines the contracts between a registry and the worker
// units it tracks: how workers are spawned, referenced, and watched for
// termination.
package worker

// Handle is an opaque reference to a live worker unit.
type Handle interface {
	ID() string
}

// Factory spawns worker units on demand. Spawn is called from the
// registry's serve loop, so implementations should return quickly and do
// their heavy lifting on the worker's own goroutine.
type Factory interface {
	Spawn() (Handle, error)
}

// Stopper is implemented by handles that can be told to shut down. The
// registry uses it to stop a worker it spawned but failed to subscribe to,
// since such a worker would otherwise run unwatched forever.
type Stopper interface {
	Stop()
}
