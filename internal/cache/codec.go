package cache

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/cquiroz/lucuma-itc/internal/itctypes"
)

// codecVersion is written as the first field of every encoded value so a
// decoder presented with a value from an older, incompatible encoding can
// fail fast rather than return garbage.
const codecVersion = 1

// Field numbers for the hand-rolled GraphResult wire layout. There is no
// .proto source for these messages — protowire's low-level primitives are
// used directly, the way a wire-compatible encoder would be built without
// running protoc against a .proto file.
const (
	fieldVersion   = 1
	fieldCCD       = 2
	fieldGroup     = 3
	fieldPeakFinal = 4
	fieldPeakSingl = 5
	fieldAtWaveF   = 6
	fieldAtWaveS   = 7

	ccdFieldIndex     = 1
	ccdFieldWellDepth = 2
	ccdFieldPeakFlux  = 3
	ccdFieldPeakSnTot = 4
	ccdFieldPeakFnTot = 5

	groupFieldName   = 1
	groupFieldSeries = 2

	seriesFieldType   = 1
	seriesFieldSample = 2

	sampleFieldWavelength = 1
	sampleFieldValue      = 2

	planFieldExposureSeconds = 2
	planFieldExposureCount   = 3
	planFieldTotalSN         = 4
	planFieldSingleSN        = 5
)

// EncodeGraphResult renders r as a deterministic, length-prefixed binary
// document suitable for storage as an opaque cache value.
func EncodeGraphResult(r *itctypes.GraphResult) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, codecVersion)

	for _, ccd := range r.CCDs {
		b = protowire.AppendTag(b, fieldCCD, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeCCD(ccd))
	}
	for _, g := range r.Groups {
		b = protowire.AppendTag(b, fieldGroup, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeGroup(g))
	}
	b = protowire.AppendTag(b, fieldPeakFinal, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, float64bits(r.PeakFinalSN))
	b = protowire.AppendTag(b, fieldPeakSingl, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, float64bits(r.PeakSingleSN))
	if r.AtWavelengthFinalSN != nil {
		b = protowire.AppendTag(b, fieldAtWaveF, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, float64bits(*r.AtWavelengthFinalSN))
	}
	if r.AtWavelengthSingleSN != nil {
		b = protowire.AppendTag(b, fieldAtWaveS, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, float64bits(*r.AtWavelengthSingleSN))
	}
	return b
}

func encodeCCD(c itctypes.CCD) []byte {
	var b []byte
	b = protowire.AppendTag(b, ccdFieldIndex, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(c.Index))
	b = protowire.AppendTag(b, ccdFieldWellDepth, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, float64bits(c.WellDepth))
	b = protowire.AppendTag(b, ccdFieldPeakFlux, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, float64bits(c.PeakPixelFlux))
	b = protowire.AppendTag(b, ccdFieldPeakSnTot, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, float64bits(c.PeakSingleSNTotal))
	b = protowire.AppendTag(b, ccdFieldPeakFnTot, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, float64bits(c.PeakFinalSNTotal))
	return b
}

func encodeGroup(g itctypes.GraphGroup) []byte {
	var b []byte
	b = protowire.AppendTag(b, groupFieldName, protowire.BytesType)
	b = protowire.AppendString(b, g.Name)
	for _, s := range g.Series {
		b = protowire.AppendTag(b, groupFieldSeries, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeSeries(s))
	}
	return b
}

func encodeSeries(s itctypes.Series) []byte {
	var b []byte
	b = protowire.AppendTag(b, seriesFieldType, protowire.BytesType)
	b = protowire.AppendString(b, string(s.Type))
	for _, sample := range s.Samples {
		b = protowire.AppendTag(b, seriesFieldSample, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeSample(sample))
	}
	return b
}

func encodeSample(s itctypes.Sample) []byte {
	var b []byte
	b = protowire.AppendTag(b, sampleFieldWavelength, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, float64bits(s.WavelengthNm))
	b = protowire.AppendTag(b, sampleFieldValue, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, float64bits(s.Value))
	return b
}

// DecodeGraphResult parses the bytes produced by EncodeGraphResult,
// returning a decode error on any structural or version mismatch.
func DecodeGraphResult(buf []byte) (*itctypes.GraphResult, error) {
	r := &itctypes.GraphResult{}
	sawVersion := false

	for len(buf) > 0 {
		num, typ, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return nil, fmt.Errorf("cache: decode: bad tag")
		}
		buf = buf[n:]

		switch num {
		case fieldVersion:
			v, n := protowire.ConsumeVarint(buf)
			if n < 0 {
				return nil, fmt.Errorf("cache: decode: bad version varint")
			}
			buf = buf[n:]
			if v != codecVersion {
				return nil, fmt.Errorf("cache: decode: unsupported codec version %d", v)
			}
			sawVersion = true
		case fieldCCD:
			raw, n := protowire.ConsumeBytes(buf)
			if n < 0 {
				return nil, fmt.Errorf("cache: decode: bad ccd bytes")
			}
			buf = buf[n:]
			ccd, err := decodeCCD(raw)
			if err != nil {
				return nil, err
			}
			r.CCDs = append(r.CCDs, ccd)
		case fieldGroup:
			raw, n := protowire.ConsumeBytes(buf)
			if n < 0 {
				return nil, fmt.Errorf("cache: decode: bad group bytes")
			}
			buf = buf[n:]
			g, err := decodeGroup(raw)
			if err != nil {
				return nil, err
			}
			r.Groups = append(r.Groups, g)
		case fieldPeakFinal:
			v, n := protowire.ConsumeFixed64(buf)
			if n < 0 {
				return nil, fmt.Errorf("cache: decode: bad peak_final")
			}
			buf = buf[n:]
			r.PeakFinalSN = float64frombits(v)
		case fieldPeakSingl:
			v, n := protowire.ConsumeFixed64(buf)
			if n < 0 {
				return nil, fmt.Errorf("cache: decode: bad peak_single")
			}
			buf = buf[n:]
			r.PeakSingleSN = float64frombits(v)
		case fieldAtWaveF:
			v, n := protowire.ConsumeFixed64(buf)
			if n < 0 {
				return nil, fmt.Errorf("cache: decode: bad at_wave_final")
			}
			buf = buf[n:]
			f := float64frombits(v)
			r.AtWavelengthFinalSN = &f
		case fieldAtWaveS:
			v, n := protowire.ConsumeFixed64(buf)
			if n < 0 {
				return nil, fmt.Errorf("cache: decode: bad at_wave_single")
			}
			buf = buf[n:]
			f := float64frombits(v)
			r.AtWavelengthSingleSN = &f
		default:
			n := protowire.ConsumeFieldValue(num, typ, buf)
			if n < 0 {
				return nil, fmt.Errorf("cache: decode: unknown field skip failed")
			}
			buf = buf[n:]
		}
	}

	if !sawVersion {
		return nil, fmt.Errorf("cache: decode: missing version field")
	}
	return r, nil
}

func decodeCCD(buf []byte) (itctypes.CCD, error) {
	var c itctypes.CCD
	for len(buf) > 0 {
		num, _, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return c, fmt.Errorf("cache: decode: bad ccd tag")
		}
		buf = buf[n:]
		switch num {
		case ccdFieldIndex:
			v, n := protowire.ConsumeVarint(buf)
			if n < 0 {
				return c, fmt.Errorf("cache: decode: bad ccd index")
			}
			buf = buf[n:]
			c.Index = int(v)
		case ccdFieldWellDepth:
			v, n := protowire.ConsumeFixed64(buf)
			if n < 0 {
				return c, fmt.Errorf("cache: decode: bad ccd well_depth")
			}
			buf = buf[n:]
			c.WellDepth = float64frombits(v)
		case ccdFieldPeakFlux:
			v, n := protowire.ConsumeFixed64(buf)
			if n < 0 {
				return c, fmt.Errorf("cache: decode: bad ccd peak_flux")
			}
			buf = buf[n:]
			c.PeakPixelFlux = float64frombits(v)
		case ccdFieldPeakSnTot:
			v, n := protowire.ConsumeFixed64(buf)
			if n < 0 {
				return c, fmt.Errorf("cache: decode: bad ccd peak_sn_total")
			}
			buf = buf[n:]
			c.PeakSingleSNTotal = float64frombits(v)
		case ccdFieldPeakFnTot:
			v, n := protowire.ConsumeFixed64(buf)
			if n < 0 {
				return c, fmt.Errorf("cache: decode: bad ccd peak_fn_total")
			}
			buf = buf[n:]
			c.PeakFinalSNTotal = float64frombits(v)
		default:
			return c, fmt.Errorf("cache: decode: unknown ccd field %d", num)
		}
	}
	return c, nil
}

func decodeGroup(buf []byte) (itctypes.GraphGroup, error) {
	var g itctypes.GraphGroup
	for len(buf) > 0 {
		num, _, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return g, fmt.Errorf("cache: decode: bad group tag")
		}
		buf = buf[n:]
		switch num {
		case groupFieldName:
			s, n := protowire.ConsumeBytes(buf)
			if n < 0 {
				return g, fmt.Errorf("cache: decode: bad group name")
			}
			buf = buf[n:]
			g.Name = string(s)
		case groupFieldSeries:
			raw, n := protowire.ConsumeBytes(buf)
			if n < 0 {
				return g, fmt.Errorf("cache: decode: bad series bytes")
			}
			buf = buf[n:]
			s, err := decodeSeries(raw)
			if err != nil {
				return g, err
			}
			g.Series = append(g.Series, s)
		default:
			return g, fmt.Errorf("cache: decode: unknown group field %d", num)
		}
	}
	return g, nil
}

func decodeSeries(buf []byte) (itctypes.Series, error) {
	var s itctypes.Series
	for len(buf) > 0 {
		num, _, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return s, fmt.Errorf("cache: decode: bad series tag")
		}
		buf = buf[n:]
		switch num {
		case seriesFieldType:
			v, n := protowire.ConsumeBytes(buf)
			if n < 0 {
				return s, fmt.Errorf("cache: decode: bad series type")
			}
			buf = buf[n:]
			s.Type = itctypes.SeriesType(v)
		case seriesFieldSample:
			raw, n := protowire.ConsumeBytes(buf)
			if n < 0 {
				return s, fmt.Errorf("cache: decode: bad sample bytes")
			}
			buf = buf[n:]
			sample, err := decodeSample(raw)
			if err != nil {
				return s, err
			}
			s.Samples = append(s.Samples, sample)
		default:
			return s, fmt.Errorf("cache: decode: unknown series field %d", num)
		}
	}
	return s, nil
}

func decodeSample(buf []byte) (itctypes.Sample, error) {
	var s itctypes.Sample
	for len(buf) > 0 {
		num, _, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return s, fmt.Errorf("cache: decode: bad sample tag")
		}
		buf = buf[n:]
		switch num {
		case sampleFieldWavelength:
			v, n := protowire.ConsumeFixed64(buf)
			if n < 0 {
				return s, fmt.Errorf("cache: decode: bad sample wavelength")
			}
			buf = buf[n:]
			s.WavelengthNm = float64frombits(v)
		case sampleFieldValue:
			v, n := protowire.ConsumeFixed64(buf)
			if n < 0 {
				return s, fmt.Errorf("cache: decode: bad sample value")
			}
			buf = buf[n:]
			s.Value = float64frombits(v)
		default:
			return s, fmt.Errorf("cache: decode: unknown sample field %d", num)
		}
	}
	return s, nil
}

// EncodeExposurePlan renders p as a deterministic, length-prefixed binary
// document.
func EncodeExposurePlan(p *itctypes.ExposurePlan) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, codecVersion)
	b = protowire.AppendTag(b, planFieldExposureSeconds, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(p.ExposureTime.Seconds))
	b = protowire.AppendTag(b, planFieldExposureCount, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(p.ExposureCount))
	b = protowire.AppendTag(b, planFieldTotalSN, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, float64bits(p.TotalSN))
	b = protowire.AppendTag(b, planFieldSingleSN, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, float64bits(p.SingleSN))
	return b
}

// DecodeExposurePlan parses the bytes produced by EncodeExposurePlan.
func DecodeExposurePlan(buf []byte) (*itctypes.ExposurePlan, error) {
	p := &itctypes.ExposurePlan{}
	sawVersion := false

	for len(buf) > 0 {
		num, typ, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return nil, fmt.Errorf("cache: decode: bad tag")
		}
		buf = buf[n:]
		switch num {
		case fieldVersion:
			v, n := protowire.ConsumeVarint(buf)
			if n < 0 {
				return nil, fmt.Errorf("cache: decode: bad version varint")
			}
			buf = buf[n:]
			if v != codecVersion {
				return nil, fmt.Errorf("cache: decode: unsupported codec version %d", v)
			}
			sawVersion = true
		case planFieldExposureSeconds:
			v, n := protowire.ConsumeVarint(buf)
			if n < 0 {
				return nil, fmt.Errorf("cache: decode: bad exposure_seconds")
			}
			buf = buf[n:]
			p.ExposureTime = itctypes.DurationFromSeconds(int64(v))
		case planFieldExposureCount:
			v, n := protowire.ConsumeVarint(buf)
			if n < 0 {
				return nil, fmt.Errorf("cache: decode: bad exposure_count")
			}
			buf = buf[n:]
			p.ExposureCount = int(v)
		case planFieldTotalSN:
			v, n := protowire.ConsumeFixed64(buf)
			if n < 0 {
				return nil, fmt.Errorf("cache: decode: bad total_sn")
			}
			buf = buf[n:]
			p.TotalSN = float64frombits(v)
		case planFieldSingleSN:
			v, n := protowire.ConsumeFixed64(buf)
			if n < 0 {
				return nil, fmt.Errorf("cache: decode: bad single_sn")
			}
			buf = buf[n:]
			p.SingleSN = float64frombits(v)
		default:
			n := protowire.ConsumeFieldValue(num, typ, buf)
			if n < 0 {
				return nil, fmt.Errorf("cache: decode: unknown field skip failed")
			}
			buf = buf[n:]
		}
	}

	if !sawVersion {
		return nil, fmt.Errorf("cache: decode: missing version field")
	}
	return p, nil
}
