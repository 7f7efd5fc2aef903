package worker

// Token identifies a single liveness subscription. Tokens are unique across
// all workers and are carried back in the Down event, so a subscriber can
// correlate the event with the handle it watched.
type Token string

// Termination reason types. They are informational; subscribers must not
// branch on them for correctness.
const (
	ReasonNormal   = "normal"
	ReasonShutdown = "shutdown"
	ReasonPanic    = "panic"
)

// Reason describes why a worker terminated. Details carries the recovered
// value when Type is ReasonPanic.
type Reason struct {
	Type    string
	Details interface{}
}

// Down reports the termination of a watched worker. It is delivered exactly
// once per subscription token, at or after the moment the worker stops
// serving.
type Down struct {
	Token  Token
	Reason Reason
}
