package bridge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cquiroz/lucuma-itc/internal/itctypes"
)

// kvDocument is a parsed canonical text document: a key/value table
// (line order is not kept), mirroring the shape EncodeRequest produces. The legacy
// calculator's responses use the same key=value-per-line convention.
type kvDocument struct {
	values map[string]string
}

func parseKV(doc string) kvDocument {
	values := make(map[string]string)
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		idx := strings.IndexByte(line, '=')
		if idx < 0 {
			continue
		}
		values[line[:idx]] = line[idx+1:]
	}
	return kvDocument{values: values}
}

func (d kvDocument) str(key string) (string, bool) {
	v, ok := d.values[key]
	return v, ok
}

func (d kvDocument) float(key string) (float64, bool) {
	v, ok := d.values[key]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (d kvDocument) int(key string) (int, bool) {
	v, ok := d.values[key]
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

func (d kvDocument) int64(key string) (int64, bool) {
	v, ok := d.values[key]
	if !ok {
		return 0, false
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// parseResponse decides whether a raw response document is a success or
// an error string.
func parseResponse(doc string) (kvDocument, string, bool) {
	d := parseKV(doc)
	if status, ok := d.str("status"); ok {
		if status == "ERROR" {
			msg, _ := d.str("error")
			if msg == "" {
				msg = "calculation failed"
			}
			return kvDocument{}, msg, false
		}
		if status == "OK" {
			return d, "", true
		}
	}
	return kvDocument{}, "", false
}

// parseGraphResult parses a successful graph response document. Any
// structural inconsistency (missing counts, unparsable numbers) is
// treated as an unknown-result failure rather than a panic.
func parseGraphResult(d kvDocument) (*itctypes.GraphResult, error) {
	ccdCount, ok := d.int("ccd.count")
	if !ok {
		return nil, unknownResultError()
	}
	ccds := make([]itctypes.CCD, 0, ccdCount)
	for i := 0; i < ccdCount; i++ {
		prefix := fmt.Sprintf("ccd[%d]", i)
		wellDepth, ok1 := d.float(prefix + ".well_depth")
		peakFlux, ok2 := d.float(prefix + ".peak_pixel_flux")
		if !ok1 || !ok2 {
			return nil, unknownResultError()
		}
		peakSingle, _ := d.float(prefix + ".peak_single_sn")
		peakFinal, _ := d.float(prefix + ".peak_final_sn")
		ccds = append(ccds, itctypes.CCD{
			Index:             i,
			WellDepth:         wellDepth,
			PeakPixelFlux:     peakFlux,
			PeakSingleSNTotal: peakSingle,
			PeakFinalSNTotal:  peakFinal,
		})
	}
	if len(ccds) == 0 {
		return nil, unknownResultError()
	}

	groupCount, ok := d.int("group.count")
	if !ok {
		return nil, unknownResultError()
	}
	groups := make([]itctypes.GraphGroup, 0, groupCount)
	for i := 0; i < groupCount; i++ {
		gprefix := fmt.Sprintf("group[%d]", i)
		name, _ := d.str(gprefix + ".name")
		seriesCount, ok := d.int(gprefix + ".series.count")
		if !ok {
			return nil, unknownResultError()
		}
		series := make([]itctypes.Series, 0, seriesCount)
		for j := 0; j < seriesCount; j++ {
			sprefix := fmt.Sprintf("%s.series[%d]", gprefix, j)
			typeStr, _ := d.str(sprefix + ".type")
			sampleCount, ok := d.int(sprefix + ".sample.count")
			if !ok {
				return nil, unknownResultError()
			}
			samples := make([]itctypes.Sample, 0, sampleCount)
			for k := 0; k < sampleCount; k++ {
				kprefix := fmt.Sprintf("%s.sample[%d]", sprefix, k)
				wn, ok1 := d.float(kprefix + ".wavelength_nm")
				val, ok2 := d.float(kprefix + ".value")
				if !ok1 || !ok2 {
					return nil, unknownResultError()
				}
				samples = append(samples, itctypes.Sample{WavelengthNm: wn, Value: val})
			}
			series = append(series, itctypes.Series{Type: itctypes.SeriesType(typeStr), Samples: samples})
		}
		groups = append(groups, itctypes.GraphGroup{Name: name, Series: series})
	}
	if len(groups) == 0 {
		return nil, unknownResultError()
	}

	peakFinal, _ := d.float("peak.final_sn")
	peakSingle, _ := d.float("peak.single_sn")

	result := &itctypes.GraphResult{
		CCDs:         ccds,
		Groups:       groups,
		PeakFinalSN:  peakFinal,
		PeakSingleSN: peakSingle,
	}
	if v, ok := d.float("atwavelength.final_sn"); ok {
		result.AtWavelengthFinalSN = &v
	}
	if v, ok := d.float("atwavelength.single_sn"); ok {
		result.AtWavelengthSingleSN = &v
	}
	return result, nil
}

// parseExposurePlan parses a successful integration-time response.
func parseExposurePlan(d kvDocument) (*itctypes.ExposurePlan, error) {
	seconds, ok1 := d.int64("exposure_time_s")
	count, ok2 := d.int("exposure_count")
	totalSN, ok3 := d.float("total_sn")
	singleSN, ok4 := d.float("single_sn")
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, unknownResultError()
	}
	return &itctypes.ExposurePlan{
		ExposureTime:  itctypes.DurationFromSeconds(seconds),
		ExposureCount: count,
		TotalSN:       totalSN,
		SingleSN:      singleSN,
	}, nil
}
