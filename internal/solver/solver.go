// Package solver implements C5: an iterative fixed-point search for the
// (exposure time, exposure count) pair that drives a target signal-to-noise
// ratio, bounded by a saturation guard and a hard iteration cap.
package solver

import (
	"context"
	"math"

	"github.com/cquiroz/lucuma-itc/internal/bridge"
	"github.com/cquiroz/lucuma-itc/internal/extractor"
	"github.com/cquiroz/lucuma-itc/internal/itctypes"
)

const (
	maxIterations     = 10
	initialProbeSecs  = 1200
	initialProbeCount = 1
)

// Solver drives exposure-time convergence through a bridge.Bridge. It
// holds no mutable state of its own — every call is independent, composed
// by value rather than by inheritance.
type Solver struct {
	br bridge.Bridge
}

func New(br bridge.Bridge) *Solver {
	return &Solver{br: br}
}

// Solve dispatches to the wavelength-delegated or iterative peak path
// depending on whether the request names a specific S/N wavelength.
func (s *Solver) Solve(ctx context.Context, req *itctypes.CalculationRequest) (*itctypes.ExposurePlan, error) {
	if req.Outcome.Kind != itctypes.OutcomeSignalToNoise {
		return nil, itctypes.NewCalculationError("solver requires a signal-to-noise outcome")
	}
	if req.SignalToNoiseWavelength != nil {
		return s.SolveAtWavelength(ctx, req)
	}
	return s.SolvePeak(ctx, req)
}

// SolveAtWavelength delegates to a single upstream call when the
// calculator itself supports "S/N at wavelength" directly — the
// wavelength-qualified mode never needs the iterative peak search.
func (s *Solver) SolveAtWavelength(ctx context.Context, req *itctypes.CalculationRequest) (*itctypes.ExposurePlan, error) {
	return s.br.CalculateExposureTime(ctx, req)
}

// SolvePeak runs the iterative fixed-point search against the peak
// final-S/N value of a graph probe. It is reachable only from the direct
// peak-mode path — the orchestrator only ever calls Solve, which routes
// wavelength-qualified requests elsewhere — and from this package's own
// tests.
func (s *Solver) SolvePeak(ctx context.Context, req *itctypes.CalculationRequest) (*itctypes.ExposurePlan, error) {
	targetSN := req.Outcome.SignalToNoise

	n := int64(initialProbeCount)
	t := int64(initialProbeSecs)

	graph, err := s.probe(ctx, req, t, n)
	if err != nil {
		return nil, err
	}

	wellDepth, peakFlux, err := firstCCDSaturationInputs(graph)
	if err != nil {
		return nil, err
	}
	// peakFlux is the peak-pixel-flux accumulated over the probe's
	// exposure time, so per-second flux divides out the probe duration.
	peakFluxPerSecond := peakFlux / float64(t)
	halfWellTime := wellDepth / (2 * peakFluxPerSecond)
	if halfWellTime < 1 {
		return nil, itctypes.NewSourceTooBright(halfWellTime)
	}
	tmax := math.Min(float64(initialProbeSecs), halfWellTime)

	sigma := extractor.Extract(graph.Groups, nil)
	if sigma.Kind != extractor.OutcomeSuccess {
		return nil, itctypes.NewCalculationError(sigma.Message)
	}
	observed := sigma.Value

	for iter := 0; ; iter++ {
		if observed == 0 {
			return nil, itctypes.NewCalculationError("S/N obtained is 0")
		}

		ratio := targetSN / observed
		totalTime := float64(n) * float64(t) * ratio * ratio

		nPrimeF := math.Ceil(totalTime / tmax)
		if nPrimeF < 1 {
			nPrimeF = 1
		}
		tPrimeF := math.Ceil(totalTime / nPrimeF)

		nPrime := int64(nPrimeF)
		converged := nPrime == n && math.Abs(tPrimeF-float64(t)) <= 1

		if converged {
			return &itctypes.ExposurePlan{
				ExposureTime:  itctypes.DurationFromSeconds(int64(tPrimeF)),
				ExposureCount: int(nPrime),
				TotalSN:       targetSN,
				SingleSN:      observed,
			}, nil
		}

		if iter+1 >= maxIterations || tPrimeF >= float64(math.MaxInt64) {
			return &itctypes.ExposurePlan{
				ExposureTime:  itctypes.DurationFromSeconds(int64(tPrimeF)),
				ExposureCount: int(nPrime),
				TotalSN:       targetSN,
				SingleSN:      observed,
			}, nil
		}

		if nPrimeF <= 0 || tPrimeF <= 0 {
			return nil, itctypes.NewIntegrationTimeError("negative-exposure")
		}

		tPrime := int64(tPrimeF)
		nextGraph, err := s.probe(ctx, req, tPrime, nPrime)
		if err != nil {
			return nil, err
		}
		next := extractor.Extract(nextGraph.Groups, nil)
		if next.Kind != extractor.OutcomeSuccess {
			return nil, itctypes.NewCalculationError(next.Message)
		}

		n, t = nPrime, tPrime
		observed = next.Value
	}
}

func (s *Solver) probe(ctx context.Context, req *itctypes.CalculationRequest, t, n int64) (*itctypes.GraphResult, error) {
	probeReq := *req
	probeReq.Outcome = itctypes.DesiredOutcome{
		Kind:          itctypes.OutcomeFixedExposure,
		ExposureTime:  itctypes.DurationFromSeconds(t),
		ExposureCount: int(n),
	}
	return s.br.CalculateGraphs(ctx, &probeReq)
}

func firstCCDSaturationInputs(graph *itctypes.GraphResult) (wellDepth, peakFlux float64, err error) {
	if len(graph.CCDs) == 0 {
		return 0, 0, itctypes.NewCalculationError("probe returned no CCD data")
	}
	ccd := graph.CCDs[0]
	if ccd.PeakPixelFlux <= 0 {
		return 0, 0, itctypes.NewCalculationError("probe returned non-positive peak pixel flux")
	}
	return ccd.WellDepth, ccd.PeakPixelFlux, nil
}
