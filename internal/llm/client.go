// Package llm defines the narrow contract the pipeline requires from a
// text-completion service.
package llm

import "context"

// Client performs one blocking, non-streamed completion call. The model and
// sampling parameters belong to the concrete implementation; the pipeline
// only supplies a prompt and receives text or an error. Implementations make
// no retry, backoff, or rate-limit guarantees.
type Client interface {
	Complete(ctx context.Context, promptText string) (string, error)
}
