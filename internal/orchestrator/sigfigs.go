package orchestrator

import (
	"math"

	"github.com/cquiroz/lucuma-itc/internal/itctypes"
)

// trimGraph applies per-axis/per-CCD significant-figures rounding to a
// computed graph. A nil SignificantFigures, or a nil field within it, leaves the
// corresponding values untouched. The input graph is never mutated.
func trimGraph(graph *itctypes.GraphResult, sigFigs *itctypes.SignificantFigures) *itctypes.GraphResult {
	if sigFigs == nil {
		return graph
	}

	out := *graph

	if sigFigs.CCD != nil {
		ccds := make([]itctypes.CCD, len(graph.CCDs))
		for i, c := range graph.CCDs {
			c.WellDepth = roundSigFig(c.WellDepth, *sigFigs.CCD)
			c.PeakPixelFlux = roundSigFig(c.PeakPixelFlux, *sigFigs.CCD)
			c.PeakSingleSNTotal = roundSigFig(c.PeakSingleSNTotal, *sigFigs.CCD)
			c.PeakFinalSNTotal = roundSigFig(c.PeakFinalSNTotal, *sigFigs.CCD)
			ccds[i] = c
		}
		out.CCDs = ccds
	}

	if sigFigs.XAxis != nil || sigFigs.YAxis != nil {
		groups := make([]itctypes.GraphGroup, len(graph.Groups))
		for gi, g := range graph.Groups {
			series := make([]itctypes.Series, len(g.Series))
			for si, s := range g.Series {
				samples := make([]itctypes.Sample, len(s.Samples))
				for pi, sample := range s.Samples {
					if sigFigs.XAxis != nil {
						sample.WavelengthNm = roundSigFig(sample.WavelengthNm, *sigFigs.XAxis)
					}
					if sigFigs.YAxis != nil {
						sample.Value = roundSigFig(sample.Value, *sigFigs.YAxis)
					}
					samples[pi] = sample
				}
				s.Samples = samples
				series[si] = s
			}
			g.Series = series
			groups[gi] = g
		}
		out.Groups = groups
	}

	if sigFigs.YAxis != nil {
		out.PeakFinalSN = roundSigFig(graph.PeakFinalSN, *sigFigs.YAxis)
		out.PeakSingleSN = roundSigFig(graph.PeakSingleSN, *sigFigs.YAxis)
		if graph.AtWavelengthFinalSN != nil {
			v := roundSigFig(*graph.AtWavelengthFinalSN, *sigFigs.YAxis)
			out.AtWavelengthFinalSN = &v
		}
		if graph.AtWavelengthSingleSN != nil {
			v := roundSigFig(*graph.AtWavelengthSingleSN, *sigFigs.YAxis)
			out.AtWavelengthSingleSN = &v
		}
	}

	return &out
}

// roundSigFig rounds v to sig significant decimal digits. Zero, NaN, and
// Inf pass through unchanged — there is no meaningful digit count to trim
// to.
func roundSigFig(v float64, sig int) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) || sig <= 0 {
		return v
	}
	mag := math.Floor(math.Log10(math.Abs(v))) + 1
	power := float64(sig) - mag
	factor := math.Pow(10, power)
	return math.Round(v*factor) / factor
}
