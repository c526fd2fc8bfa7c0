package domain

import "context"

// Service gathers and normalizes analytic results into findings.
type Service interface {
	// Gather runs the four source reads concurrently and returns the
	// normalized findings. An empty result is not an error.
	Gather(ctx context.Context, filter Filter) ([]Finding, error)
}
