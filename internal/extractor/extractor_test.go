package extractor

import (
	"testing"

	"github.com/cquiroz/lucuma-itc/internal/itctypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finalSNGroups(samples ...itctypes.Sample) []itctypes.GraphGroup {
	return []itctypes.GraphGroup{
		{
			Name: "ccd0",
			Series: []itctypes.Series{
				{Type: itctypes.SeriesFinalSN, Samples: samples},
			},
		},
	}
}

func wl(nm float64) *itctypes.Wavelength {
	w := itctypes.WavelengthFromNanometers(nm)
	return &w
}

// Scenario 1 — peak S/N query, no wavelength requested.
func TestExtract_Peak(t *testing.T) {
	groups := finalSNGroups(
		itctypes.Sample{WavelengthNm: 1.0, Value: 1000.0},
		itctypes.Sample{WavelengthNm: 2.0, Value: 1001.0},
	)
	out := Extract(groups, nil)
	require.Equal(t, OutcomeSuccess, out.Kind)
	assert.Equal(t, 1001.0, out.Value)
}

// Scenario 2 — interpolation strictly between two samples.
func TestExtract_Interpolation(t *testing.T) {
	groups := finalSNGroups(
		itctypes.Sample{WavelengthNm: 1.0, Value: 1000.0},
		itctypes.Sample{WavelengthNm: 2.0, Value: 1001.0},
	)
	out := Extract(groups, wl(1.5))
	require.Equal(t, OutcomeSuccess, out.Kind)
	assert.InDelta(t, 1000.5, out.Value, 1e-9)
}

// Scenario 3 — below range.
func TestExtract_BelowRange(t *testing.T) {
	groups := finalSNGroups(
		itctypes.Sample{WavelengthNm: 1.0, Value: 1000.0},
		itctypes.Sample{WavelengthNm: 2.0, Value: 1001.0},
	)
	out := Extract(groups, wl(0.1))
	require.Equal(t, OutcomeBelowRange, out.Kind)
	assert.InDelta(t, 0.1, out.Wavelength.Nanometers(), 1e-9)
}

// Scenario 4 — above range.
func TestExtract_AboveRange(t *testing.T) {
	groups := finalSNGroups(
		itctypes.Sample{WavelengthNm: 1.0, Value: 1000.0},
		itctypes.Sample{WavelengthNm: 2.0, Value: 1001.0},
	)
	out := Extract(groups, wl(5.1))
	require.Equal(t, OutcomeAboveRange, out.Kind)
	assert.InDelta(t, 5.1, out.Wavelength.Nanometers(), 1e-9)
}

func TestExtract_ExactSample_NoInterpolation(t *testing.T) {
	groups := finalSNGroups(
		itctypes.Sample{WavelengthNm: 1.0, Value: 1000.0},
		itctypes.Sample{WavelengthNm: 2.0, Value: 1001.0},
	)
	out := Extract(groups, wl(2.0))
	require.Equal(t, OutcomeSuccess, out.Kind)
	assert.Equal(t, 1001.0, out.Value)
}

func TestExtract_EmptySeries_NoData(t *testing.T) {
	groups := finalSNGroups()
	out := Extract(groups, nil)
	assert.Equal(t, OutcomeNoData, out.Kind)
}

func TestExtract_NoFinalSNSeries_NoData(t *testing.T) {
	groups := []itctypes.GraphGroup{
		{Name: "ccd0", Series: []itctypes.Series{{Type: itctypes.SeriesSingleSN, Samples: []itctypes.Sample{{WavelengthNm: 1, Value: 1}}}}},
	}
	out := Extract(groups, nil)
	assert.Equal(t, OutcomeNoData, out.Kind)
}

func TestExtract_InterpolationLiesBetweenSamples(t *testing.T) {
	groups := finalSNGroups(
		itctypes.Sample{WavelengthNm: 400, Value: 10},
		itctypes.Sample{WavelengthNm: 500, Value: 20},
	)
	out := Extract(groups, wl(450))
	require.Equal(t, OutcomeSuccess, out.Kind)
	assert.True(t, out.Value > 10 && out.Value < 20)
}

func TestExtract_UnsortedInputIsSortedBeforeExtraction(t *testing.T) {
	groups := finalSNGroups(
		itctypes.Sample{WavelengthNm: 2.0, Value: 1001.0},
		itctypes.Sample{WavelengthNm: 1.0, Value: 1000.0},
	)
	out := Extract(groups, wl(1.5))
	require.Equal(t, OutcomeSuccess, out.Kind)
	assert.InDelta(t, 1000.5, out.Value, 1e-9)
}
