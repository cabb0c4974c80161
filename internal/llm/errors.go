package llm

import "errors"

// Sentinel errors for the three failure classes a completion call can hit.
// Callers match them with errors.Is; wrapping adds per-layer context.
var (
	// ErrConnection means the model endpoint was unreachable or the
	// connection dropped mid-request.
	ErrConnection = errors.New("model endpoint unreachable")

	// ErrValidation means the request payload was malformed before any
	// network call was attempted (empty conversation, corrupt image data).
	ErrValidation = errors.New("invalid request payload")

	// ErrUpstream means the endpoint answered but refused or failed to
	// generate (non-2xx status, empty completion).
	ErrUpstream = errors.New("upstream generation failed")
)
