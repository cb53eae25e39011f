package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse_ErrorStatus(t *testing.T) {
	doc := "status=ERROR\nerror=saturation exceeded\n"
	_, msg, ok := parseResponse(doc)
	require.False(t, ok)
	assert.Equal(t, "saturation exceeded", msg)
}

func TestParseResponse_MalformedIsUnknown(t *testing.T) {
	doc := "garbage without a status line\n"
	_, _, ok := parseResponse(doc)
	assert.False(t, ok)
}

func TestParseGraphResult_WellFormed(t *testing.T) {
	doc := "status=OK\n" +
		"ccd.count=1\n" +
		"ccd[0].well_depth=100000\n" +
		"ccd[0].peak_pixel_flux=500\n" +
		"group.count=1\n" +
		"group[0].name=ccd0\n" +
		"group[0].series.count=1\n" +
		"group[0].series[0].type=final-S/N\n" +
		"group[0].series[0].sample.count=2\n" +
		"group[0].series[0].sample[0].wavelength_nm=1.0\n" +
		"group[0].series[0].sample[0].value=1000.0\n" +
		"group[0].series[0].sample[1].wavelength_nm=2.0\n" +
		"group[0].series[0].sample[1].value=1001.0\n" +
		"peak.final_sn=1001.0\n"

	d, _, ok := parseResponse(doc)
	require.True(t, ok)
	result, err := parseGraphResult(d)
	require.NoError(t, err)
	assert.Len(t, result.CCDs, 1)
	assert.Len(t, result.Groups, 1)
	assert.Equal(t, 1001.0, result.PeakFinalSN)
}

func TestParseGraphResult_MissingCountsIsUnknownResult(t *testing.T) {
	doc := "status=OK\nccd.count=1\nccd[0].well_depth=1\nccd[0].peak_pixel_flux=1\n"
	d, _, ok := parseResponse(doc)
	require.True(t, ok)
	_, err := parseGraphResult(d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown result")
}

func TestParseExposurePlan_WellFormed(t *testing.T) {
	doc := "status=OK\nexposure_time_s=1\nexposure_count=10\ntotal_sn=10\nsingle_sn=3.16\n"
	d, _, ok := parseResponse(doc)
	require.True(t, ok)
	plan, err := parseExposurePlan(d)
	require.NoError(t, err)
	assert.Equal(t, int64(1), plan.ExposureTime.Seconds)
	assert.Equal(t, 10, plan.ExposureCount)
}
