package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cquiroz/lucuma-itc/internal/itctypes"
)

func sampleGraphResult() *itctypes.GraphResult {
	peakFinal := 12.5
	return &itctypes.GraphResult{
		CCDs: []itctypes.CCD{
			{Index: 0, WellDepth: 1e5, PeakPixelFlux: 5e4, PeakSingleSNTotal: 3.16, PeakFinalSNTotal: 10},
		},
		Groups: []itctypes.GraphGroup{
			{
				Name: "ccd0",
				Series: []itctypes.Series{
					{
						Type: itctypes.SeriesFinalSN,
						Samples: []itctypes.Sample{
							{WavelengthNm: 500, Value: 10},
							{WavelengthNm: 501, Value: 12},
						},
					},
				},
			},
		},
		PeakFinalSN:         12,
		PeakSingleSN:        4,
		AtWavelengthFinalSN: &peakFinal,
	}
}

func TestGraphResultCodec_RoundTrip(t *testing.T) {
	orig := sampleGraphResult()
	encoded := EncodeGraphResult(orig)
	decoded, err := DecodeGraphResult(encoded)
	require.NoError(t, err)

	assert.Equal(t, orig.CCDs, decoded.CCDs)
	assert.Equal(t, orig.Groups, decoded.Groups)
	assert.Equal(t, orig.PeakFinalSN, decoded.PeakFinalSN)
	assert.Equal(t, orig.PeakSingleSN, decoded.PeakSingleSN)
	require.NotNil(t, decoded.AtWavelengthFinalSN)
	assert.Equal(t, *orig.AtWavelengthFinalSN, *decoded.AtWavelengthFinalSN)
	assert.Nil(t, decoded.AtWavelengthSingleSN)
}

func TestGraphResultCodec_RejectsWrongVersion(t *testing.T) {
	encoded := EncodeGraphResult(sampleGraphResult())
	encoded[1] = byte(codecVersion + 1)
	_, err := DecodeGraphResult(encoded)
	assert.Error(t, err)
}

func TestGraphResultCodec_RejectsMissingVersion(t *testing.T) {
	_, err := DecodeGraphResult([]byte{})
	assert.Error(t, err)
}

func TestExposurePlanCodec_RoundTrip(t *testing.T) {
	orig := &itctypes.ExposurePlan{
		ExposureTime:  itctypes.DurationFromSeconds(1),
		ExposureCount: 10,
		TotalSN:       10,
		SingleSN:      3.16,
	}
	encoded := EncodeExposurePlan(orig)
	decoded, err := DecodeExposurePlan(encoded)
	require.NoError(t, err)
	assert.Equal(t, *orig, *decoded)
}
