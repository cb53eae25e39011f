// Package orchestrator implements C6: composing the cache, the scheduled
// bridge, the graph extractor, and the exposure-time solver behind three
// request entry points, applying significant-figures trimming and
// attaching version metadata to every response.
package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/cquiroz/lucuma-itc/internal/bridge"
	"github.com/cquiroz/lucuma-itc/internal/cache"
	"github.com/cquiroz/lucuma-itc/internal/itctypes"
	"github.com/cquiroz/lucuma-itc/internal/metrics"
	"github.com/cquiroz/lucuma-itc/internal/solver"
	"github.com/cquiroz/lucuma-itc/internal/telemetry"
)

// VersionInfo is attached to every response: the running build's own
// version plus the legacy calculator's current data version.
type VersionInfo struct {
	ServerVersion string
	DataVersion   string
}

// Orchestrator composes one strategy value per concern, mirroring the
// teacher's composition-over-inheritance structure: a bridge runner (C1
// behind C2's scheduler), a result cache (C3), and a solver (C5) built
// over the same bridge. The extractor (C4) is a pure function and needs
// no instance state.
type Orchestrator struct {
	br            bridge.Bridge
	cache         *cache.Cache
	solver        *solver.Solver
	serverVersion string
	logger        *slog.Logger
	metrics       *metrics.Metrics
}

func New(br bridge.Bridge, c *cache.Cache, serverVersion string, logger *slog.Logger, m *metrics.Metrics) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		br:            br,
		cache:         c,
		solver:        solver.New(br),
		serverVersion: serverVersion,
		logger:        logger,
		metrics:       m,
	}
}

func (o *Orchestrator) recordCacheOutcome(ns string, hit bool) {
	if o.metrics == nil {
		return
	}
	if hit {
		o.metrics.CacheHit(ns)
	} else {
		o.metrics.CacheMiss(ns)
	}
}

func (o *Orchestrator) recordBridgeCall(method string, start time.Time, err error) {
	if o.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	o.metrics.BridgeDuration.WithLabelValues(method, outcome).Observe(time.Since(start).Seconds())
}

// SpectroscopyIntegrationTime and ImagingIntegrationTime are both routed
// through the same cache-then-solve path; the request's ObservingMode
// already carries the Spectroscopy/Imaging discriminant the legacy
// calculator needs, so there is nothing instrument-specific left for the
// orchestrator itself to branch on.

func (o *Orchestrator) SpectroscopyIntegrationTime(ctx context.Context, req *itctypes.CalculationRequest, dataVersion string) (*itctypes.ExposurePlan, VersionInfo, error) {
	return o.integrationTime(ctx, req, dataVersion, cache.NamespaceSpecTime)
}

func (o *Orchestrator) ImagingIntegrationTime(ctx context.Context, req *itctypes.CalculationRequest, dataVersion string) (*itctypes.ExposurePlan, VersionInfo, error) {
	return o.integrationTime(ctx, req, dataVersion, cache.NamespaceImgTime)
}

func (o *Orchestrator) integrationTime(ctx context.Context, req *itctypes.CalculationRequest, dataVersion string, ns cache.Namespace) (*itctypes.ExposurePlan, VersionInfo, error) {
	ctx, span := telemetry.StartSpan(ctx, "orchestrator.integrationTime")
	defer span.End()

	vi := VersionInfo{ServerVersion: o.serverVersion, DataVersion: dataVersion}

	if err := o.cache.ObserveDataVersion(ctx, dataVersion); err != nil {
		o.logger.Warn("cache version observation failed", "error", err)
	}

	key := cache.RequestKey(ns, req)
	if cached, ok, err := o.cache.GetExposurePlan(ctx, key); err == nil && ok {
		o.recordCacheOutcome(string(ns), true)
		return cached, vi, nil
	}
	o.recordCacheOutcome(string(ns), false)

	start := time.Now()
	plan, err := o.solver.Solve(ctx, req)
	o.recordBridgeCall("CalculateExposureTime", start, err)
	if err != nil {
		return nil, vi, err
	}
	_ = o.cache.PutExposurePlan(ctx, key, plan)
	return plan, vi, nil
}

// SpectroscopyGraph computes (or fetches from cache) a full graph result
// for a fixed-exposure spectroscopy request, applying any requested
// significant-figures trimming before returning.
func (o *Orchestrator) SpectroscopyGraph(ctx context.Context, req *itctypes.CalculationRequest, dataVersion string) (*itctypes.GraphResult, VersionInfo, error) {
	ctx, span := telemetry.StartSpan(ctx, "orchestrator.spectroscopyGraph")
	defer span.End()

	vi := VersionInfo{ServerVersion: o.serverVersion, DataVersion: dataVersion}

	if err := o.cache.ObserveDataVersion(ctx, dataVersion); err != nil {
		o.logger.Warn("cache version observation failed", "error", err)
	}

	key := cache.RequestKey(cache.NamespaceSpecGraph, req)
	if cached, ok, err := o.cache.GetGraphResult(ctx, key); err == nil && ok {
		o.recordCacheOutcome(string(cache.NamespaceSpecGraph), true)
		return trimGraph(cached, req.SigFigs), vi, nil
	}
	o.recordCacheOutcome(string(cache.NamespaceSpecGraph), false)

	start := time.Now()
	graph, err := o.br.CalculateGraphs(ctx, req)
	o.recordBridgeCall("CalculateGraphs", start, err)
	if err != nil {
		return nil, vi, err
	}
	_ = o.cache.PutGraphResult(ctx, key, graph)

	trimmed := trimGraph(graph, req.SigFigs)
	return trimmed, vi, nil
}
