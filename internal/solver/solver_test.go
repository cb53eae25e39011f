package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cquiroz/lucuma-itc/internal/itctypes"
)

// stubBridge returns a fixed GraphResult/ExposurePlan regardless of the
// probe parameters it is called with, or drives a caller-supplied
// sequence of responses when graphSequence is set.
type stubBridge struct {
	graph         *itctypes.GraphResult
	graphSequence []*itctypes.GraphResult
	calls         int

	plan    *itctypes.ExposurePlan
	planErr error
}

func (s *stubBridge) CalculateGraphs(_ context.Context, _ *itctypes.CalculationRequest) (*itctypes.GraphResult, error) {
	defer func() { s.calls++ }()
	if s.graphSequence != nil {
		idx := s.calls
		if idx >= len(s.graphSequence) {
			idx = len(s.graphSequence) - 1
		}
		return s.graphSequence[idx], nil
	}
	return s.graph, nil
}

func (s *stubBridge) CalculateExposureTime(_ context.Context, _ *itctypes.CalculationRequest) (*itctypes.ExposurePlan, error) {
	return s.plan, s.planErr
}

func peakGraph(wellDepth, peakFlux, peakSN float64) *itctypes.GraphResult {
	return &itctypes.GraphResult{
		CCDs: []itctypes.CCD{{Index: 0, WellDepth: wellDepth, PeakPixelFlux: peakFlux}},
		Groups: []itctypes.GraphGroup{{
			Name: "ccd0",
			Series: []itctypes.Series{{
				Type:    itctypes.SeriesFinalSN,
				Samples: []itctypes.Sample{{WavelengthNm: 500, Value: peakSN}},
			}},
		}},
	}
}

func peakRequest(targetSN float64) *itctypes.CalculationRequest {
	return &itctypes.CalculationRequest{
		Outcome: itctypes.DesiredOutcome{Kind: itctypes.OutcomeSignalToNoise, SignalToNoise: targetSN},
	}
}

func TestSolvePeak_ConvergesImmediately(t *testing.T) {
	// well-depth large enough that half-well-time exceeds the probe
	// window, and the probe's own peak S/N already equals the target,
	// so n'==n=1 and t'==t=1200 on the very first step.
	br := &stubBridge{graph: peakGraph(1e9, 100, 10)}
	s := New(br)

	plan, err := s.SolvePeak(context.Background(), peakRequest(10))
	require.NoError(t, err)
	assert.Equal(t, 1, plan.ExposureCount)
	assert.Equal(t, int64(1200), plan.ExposureTime.Seconds)
	assert.Equal(t, 10.0, plan.SingleSN)
}

func TestSolvePeak_SourceTooBright(t *testing.T) {
	// well-depth=1, peak-pixel-flux=1000 on the 1200 s probe => per-second
	// flux 1000/1200, half-well-time = 1/(2*1000/1200) = 0.6 s < 1 s.
	br := &stubBridge{graph: peakGraph(1, 1000, 5)}
	s := New(br)

	_, err := s.SolvePeak(context.Background(), peakRequest(10))
	require.Error(t, err)
	de, ok := err.(*itctypes.DomainError)
	require.True(t, ok)
	assert.Equal(t, itctypes.KindSourceTooBright, de.Kind)
}

func TestSolvePeak_ZeroObservedSNIsCalculationError(t *testing.T) {
	br := &stubBridge{graph: peakGraph(1e9, 100, 0)}
	s := New(br)

	_, err := s.SolvePeak(context.Background(), peakRequest(10))
	require.Error(t, err)
	de, ok := err.(*itctypes.DomainError)
	require.True(t, ok)
	assert.Equal(t, itctypes.KindCalculationError, de.Kind)
}

func TestSolvePeak_IterationsAreBoundedByTen(t *testing.T) {
	// A probe whose reported S/N never matches what the step function
	// expects forces repeated re-probing; the loop must still terminate
	// within the iteration cap rather than spin forever.
	sequence := make([]*itctypes.GraphResult, 0, 12)
	for i := 0; i < 12; i++ {
		// Each successive probe reports a slightly different S/N so n'
		// keeps moving and convergence is never reached, exercising the
		// iteration-cap termination path.
		sequence = append(sequence, peakGraph(1e9, 100, 1+float64(i)*0.37))
	}
	br := &stubBridge{graph: sequence[0], graphSequence: sequence}
	s := New(br)

	plan, err := s.SolvePeak(context.Background(), peakRequest(50))
	require.NoError(t, err)
	assert.NotNil(t, plan)
	assert.LessOrEqual(t, br.calls, 10) // 1 initial probe + at most 9 re-probes (the 10th step returns without probing)
}

func TestSolveAtWavelength_DelegatesToSingleBridgeCall(t *testing.T) {
	plan := &itctypes.ExposurePlan{ExposureTime: itctypes.DurationFromSeconds(1), ExposureCount: 10, TotalSN: 10, SingleSN: 10}
	br := &stubBridge{plan: plan}
	s := New(br)

	wl := itctypes.WavelengthFromNanometers(500)
	req := peakRequest(10)
	req.SignalToNoiseWavelength = &wl

	got, err := s.Solve(context.Background(), req)
	require.NoError(t, err)
	assert.Same(t, plan, got)
}
