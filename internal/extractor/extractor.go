// Package extractor implements C4: extracting a single signal-to-noise
// value (peak, or interpolated at a requested wavelength) out of a
// graph's final-S/N series.
package extractor

import (
	"math"
	"sort"

	"github.com/cquiroz/lucuma-itc/internal/itctypes"
)

// OutcomeKind tags the result of an Extract call.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeBelowRange
	OutcomeAboveRange
	OutcomeNoData
	OutcomeError
)

// Outcome is the tagged variant returned by Extract. Only the field
// matching Kind is meaningful.
type Outcome struct {
	Kind       OutcomeKind
	Value      float64
	Wavelength itctypes.Wavelength
	Message    string
}

func success(v float64) Outcome { return Outcome{Kind: OutcomeSuccess, Value: v} }

func belowRange(w itctypes.Wavelength) Outcome {
	return Outcome{Kind: OutcomeBelowRange, Wavelength: w}
}

func aboveRange(w itctypes.Wavelength) Outcome {
	return Outcome{Kind: OutcomeAboveRange, Wavelength: w}
}

func noData() Outcome { return Outcome{Kind: OutcomeNoData} }

func extractError(msg string) Outcome { return Outcome{Kind: OutcomeError, Message: msg} }

// Extract locates the final-S/N series in groups and reads off either
// its peak value or, when wavelength is given, a linearly interpolated
// value at that wavelength. Ties in wavelength are broken by a stable
// sort on the input encounter order — a deliberate, documented choice,
// not a silent default.
func Extract(groups []itctypes.GraphGroup, wavelength *itctypes.Wavelength) Outcome {
	series, found := findFinalSN(groups)
	if !found {
		return noData()
	}

	samples := append([]itctypes.Sample(nil), series.Samples...)
	if len(samples) == 0 {
		return noData()
	}
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].WavelengthNm < samples[j].WavelengthNm
	})

	if wavelength == nil {
		peak := samples[0]
		for _, s := range samples[1:] {
			if s.Value > peak.Value {
				peak = s
			}
		}
		if math.IsNaN(peak.Value) || math.IsInf(peak.Value, 0) || peak.Value < 0 {
			return extractError("peak S/N is not a representable non-negative value")
		}
		return success(peak.Value)
	}

	target := wavelength.Nanometers()
	first, last := samples[0], samples[len(samples)-1]

	if target < first.WavelengthNm {
		return belowRange(*wavelength)
	}
	if target > last.WavelengthNm {
		return aboveRange(*wavelength)
	}

	idx := sort.Search(len(samples), func(i int) bool {
		return samples[i].WavelengthNm >= target
	})

	var value float64
	if samples[idx].WavelengthNm == target {
		value = samples[idx].Value
	} else {
		lo, hi := samples[idx-1], samples[idx]
		value = interpolate(lo, hi, target)
	}

	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return extractError("interpolated S/N is not a representable non-negative value")
	}
	return success(value)
}

// interpolate applies linear interpolation between two bracketing samples.
func interpolate(lo, hi itctypes.Sample, target float64) float64 {
	lambda1, s1 := lo.WavelengthNm, lo.Value
	lambda2, s2 := hi.WavelengthNm, hi.Value
	return (s1*(lambda2-target) + s2*(target-lambda1)) / (lambda2 - lambda1)
}

func findFinalSN(groups []itctypes.GraphGroup) (itctypes.Series, bool) {
	for _, g := range groups {
		for _, s := range g.Series {
			if s.Type == itctypes.SeriesFinalSN {
				return s, true
			}
		}
	}
	return itctypes.Series{}, false
}
