package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cquiroz/lucuma-itc/internal/cache"
	"github.com/cquiroz/lucuma-itc/internal/itctypes"
)

type countingBridge struct {
	graphCalls int
	planCalls  int
	graph      *itctypes.GraphResult
	plan       *itctypes.ExposurePlan
}

func (b *countingBridge) CalculateGraphs(_ context.Context, _ *itctypes.CalculationRequest) (*itctypes.GraphResult, error) {
	b.graphCalls++
	return b.graph, nil
}

func (b *countingBridge) CalculateExposureTime(_ context.Context, _ *itctypes.CalculationRequest) (*itctypes.ExposurePlan, error) {
	b.planCalls++
	return b.plan, nil
}

func sampleGraph() *itctypes.GraphResult {
	return &itctypes.GraphResult{
		CCDs: []itctypes.CCD{{Index: 0, WellDepth: 123456, PeakPixelFlux: 98765}},
		Groups: []itctypes.GraphGroup{{
			Name: "ccd0",
			Series: []itctypes.Series{{
				Type:    itctypes.SeriesFinalSN,
				Samples: []itctypes.Sample{{WavelengthNm: 500.123, Value: 12.345}},
			}},
		}},
		PeakFinalSN:  12.345,
		PeakSingleSN: 6.789,
	}
}

func graphRequest() *itctypes.CalculationRequest {
	return &itctypes.CalculationRequest{
		Mode: itctypes.ObservingMode{Kind: itctypes.ModeSpectroscopy, Instrument: itctypes.InstrumentGmosNorth},
		Outcome: itctypes.DesiredOutcome{
			Kind:          itctypes.OutcomeFixedExposure,
			ExposureTime:  itctypes.DurationFromSeconds(10),
			ExposureCount: 4,
		},
	}
}

func TestSpectroscopyGraph_CacheTransparency(t *testing.T) {
	br := &countingBridge{graph: sampleGraph()}
	o := New(br, cache.New(cache.NewMemoryStore()), "test-build", nil, nil)
	req := graphRequest()

	first, v1, err := o.SpectroscopyGraph(context.Background(), req, "data-v1")
	require.NoError(t, err)
	second, v2, err := o.SpectroscopyGraph(context.Background(), req, "data-v1")
	require.NoError(t, err)

	assert.Equal(t, 1, br.graphCalls)
	assert.Equal(t, first, second)
	assert.Equal(t, "data-v1", v1.DataVersion)
	assert.Equal(t, v1, v2)
}

func TestSpectroscopyGraph_VersionChangeForcesRecompute(t *testing.T) {
	br := &countingBridge{graph: sampleGraph()}
	o := New(br, cache.New(cache.NewMemoryStore()), "test-build", nil, nil)
	req := graphRequest()

	_, _, err := o.SpectroscopyGraph(context.Background(), req, "data-v1")
	require.NoError(t, err)
	_, _, err = o.SpectroscopyGraph(context.Background(), req, "data-v2")
	require.NoError(t, err)

	assert.Equal(t, 2, br.graphCalls)
}

func TestSpectroscopyGraph_AppliesSignificantFigureTrimming(t *testing.T) {
	br := &countingBridge{graph: sampleGraph()}
	o := New(br, cache.New(cache.NewMemoryStore()), "test-build", nil, nil)
	req := graphRequest()
	two := 2
	req.SigFigs = &itctypes.SignificantFigures{YAxis: &two}

	result, _, err := o.SpectroscopyGraph(context.Background(), req, "data-v1")
	require.NoError(t, err)
	assert.Equal(t, 12.0, result.PeakFinalSN)
	assert.Equal(t, 6.8, result.PeakSingleSN)
}

func TestIntegrationTime_CacheTransparency(t *testing.T) {
	plan := &itctypes.ExposurePlan{ExposureTime: itctypes.DurationFromSeconds(1), ExposureCount: 10, TotalSN: 10, SingleSN: 10}
	br := &countingBridge{plan: plan}
	o := New(br, cache.New(cache.NewMemoryStore()), "test-build", nil, nil)

	wl := itctypes.WavelengthFromNanometers(500)
	req := &itctypes.CalculationRequest{
		Outcome:                 itctypes.DesiredOutcome{Kind: itctypes.OutcomeSignalToNoise, SignalToNoise: 10},
		SignalToNoiseWavelength: &wl,
	}

	first, _, err := o.SpectroscopyIntegrationTime(context.Background(), req, "data-v1")
	require.NoError(t, err)
	second, _, err := o.SpectroscopyIntegrationTime(context.Background(), req, "data-v1")
	require.NoError(t, err)

	assert.Equal(t, 1, br.planCalls)
	assert.Equal(t, first, second)
}
