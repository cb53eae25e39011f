package scheduler

import (
	"context"

	"github.com/cquiroz/lucuma-itc/internal/bridge"
	"github.com/cquiroz/lucuma-itc/internal/itctypes"
)

// BridgeRunner routes every bridge.Bridge call through a Scheduler so
// callers never need to remember the single-flight discipline
// themselves.
type BridgeRunner struct {
	bridge    bridge.Bridge
	scheduler *Scheduler
}

func NewBridgeRunner(b bridge.Bridge, s *Scheduler) *BridgeRunner {
	return &BridgeRunner{bridge: b, scheduler: s}
}

func (r *BridgeRunner) CalculateGraphs(ctx context.Context, req *itctypes.CalculationRequest) (*itctypes.GraphResult, error) {
	v, err := r.scheduler.Submit(ctx, func(ctx context.Context) (any, error) {
		return r.bridge.CalculateGraphs(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return v.(*itctypes.GraphResult), nil
}

func (r *BridgeRunner) CalculateExposureTime(ctx context.Context, req *itctypes.CalculationRequest) (*itctypes.ExposurePlan, error) {
	v, err := r.scheduler.Submit(ctx, func(ctx context.Context) (any, error) {
		return r.bridge.CalculateExposureTime(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return v.(*itctypes.ExposurePlan), nil
}
