// Package bridge is a two-method surface over the legacy, single-threaded
// numeric calculator. The request is a canonical text document; the
// response is either a structured result or a single-line error string —
// the bridge never panics on a malformed response, and it never retries.
//
// Mutual exclusion is the scheduler's job, not the bridge's: nothing here
// is safe to call concurrently with itself.
package bridge

import (
	"context"

	"github.com/cquiroz/lucuma-itc/internal/itctypes"
)

// Bridge is the surface every transport implements: StdioBridge (default,
// a local subprocess over stdin/stdout) and GRPCBridge (a remote numeric
// service, for deployments that run the calculator elsewhere).
type Bridge interface {
	CalculateGraphs(ctx context.Context, req *itctypes.CalculationRequest) (*itctypes.GraphResult, error)
	CalculateExposureTime(ctx context.Context, req *itctypes.CalculationRequest) (*itctypes.ExposurePlan, error)
}

// unknownResultError is returned when a transport's response cannot be
// parsed as either a success payload or an error string — an unknown
// result becomes an error value rather than a crash.
func unknownResultError() error {
	return itctypes.NewUpstreamError("unknown result")
}
