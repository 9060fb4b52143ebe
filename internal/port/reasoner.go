package port

import "context"

// Reasoner abstracts the external text-reasoning service. Complete sends
// one composed payload and returns the raw assistant text verbatim, with no
// interpretation of its content. Exactly one attempt per call: no retry,
// no backoff, no streaming. The credential is supplied per call because the
// caller owns it.
type Reasoner interface {
	Complete(ctx context.Context, payload, credential string) (string, error)
}
