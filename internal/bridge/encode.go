package bridge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cquiroz/lucuma-itc/internal/itctypes"
)

// telescope and wavefront-sensor defaults the legacy payload always
// carries alongside the caller-supplied fields.
const (
	defaultTelescope      = "GEMINI_SOUTH"
	defaultWavefrontSensor = "OIWFS"
	payloadSchemaVersion  = 1
)

// EncodeRequest renders req as the canonical text document the legacy
// bridge exchanges with the numeric calculator. Field order and numeric
// formatting are fixed: this function always writes fields in the same
// sequence, and every float is formatted with strconv.FormatFloat's 'g'
// verb at full (-1) precision so the same logical request always
// produces byte-identical output — required both by the legacy
// calculator's line parser and by the cache's request-hash invariant.
func EncodeRequest(req *itctypes.CalculationRequest) string {
	var b strings.Builder

	writeKV(&b, "schema.version", strconv.Itoa(payloadSchemaVersion))
	writeKV(&b, "telescope", defaultTelescope)
	writeKV(&b, "wavefront_sensor", defaultWavefrontSensor)

	encodeTarget(&b, req.Target)
	encodeMode(&b, req.Mode)
	encodeConditions(&b, req.Conditions)
	encodeOutcome(&b, req.Outcome)

	if req.SignalToNoiseWavelength != nil {
		writeKV(&b, "sn_wavelength_pm", strconv.FormatInt(req.SignalToNoiseWavelength.Picometers, 10))
	}

	return b.String()
}

func encodeTarget(b *strings.Builder, t itctypes.TargetProfile) {
	writeKV(b, "target.profile.kind", profileKindName(t.Profile.Kind))
	if t.Profile.Kind == itctypes.SourceProfileGaussian {
		writeKV(b, "target.profile.fwhm_arcsec", formatFloat(t.Profile.FWHMArcsec))
	}
	writeKV(b, "target.redshift", formatFloat(t.RedshiftZ))
	if t.RadialVelocity != nil {
		writeKV(b, "target.radial_velocity_cm_s", strconv.FormatInt(t.RadialVelocity.CentimetersPerSecond, 10))
	}

	if t.Spectral.SED != nil {
		sed := t.Spectral.SED
		writeKV(b, "target.sed.kind", sedKindName(sed.Kind))
		switch sed.Kind {
		case itctypes.SEDLibraryTemplate:
			writeKV(b, "target.sed.template", sed.LibraryTemplate)
		case itctypes.SEDBlackBody:
			writeKV(b, "target.sed.black_body_k", formatFloat(sed.BlackBodyKelvin))
		case itctypes.SEDPowerLaw:
			writeKV(b, "target.sed.power_law_index", formatFloat(sed.PowerLawIndex))
		}
	}
	for i, line := range t.Spectral.EmissionLines {
		prefix := fmt.Sprintf("target.emission_line[%d]", i)
		writeKV(b, prefix+".wavelength_pm", strconv.FormatInt(line.Wavelength.Picometers, 10))
		writeKV(b, prefix+".flux_w_m2", formatFloat(line.FluxWPerM2))
		writeKV(b, prefix+".width_km_s", formatFloat(line.WidthKmPerS))
	}
	for i, br := range t.Brightness {
		prefix := fmt.Sprintf("target.brightness[%d]", i)
		writeKV(b, prefix+".band", string(br.Band))
		writeKV(b, prefix+".value", formatFloat(br.Value))
		writeKV(b, prefix+".unit", string(br.Unit))
	}
}

func encodeMode(b *strings.Builder, m itctypes.ObservingMode) {
	writeKV(b, "mode.kind", modeKindName(m.Kind))
	writeKV(b, "mode.instrument", string(m.Instrument))
	writeKV(b, "mode.central_wavelength_pm", strconv.FormatInt(m.CentralWavelength.Picometers, 10))
	if m.Kind == itctypes.ModeSpectroscopy {
		writeKV(b, "mode.grating", string(m.Grating))
		if m.FPU.Kind == itctypes.FPUBuiltin {
			writeKV(b, "mode.fpu.kind", "BUILTIN")
			writeKV(b, "mode.fpu.name", m.FPU.BuiltinName)
		} else {
			writeKV(b, "mode.fpu.kind", "CUSTOM")
			writeKV(b, "mode.fpu.width_arcsec", formatFloat(m.FPU.CustomWidth))
		}
	}
	if m.Filter != nil {
		writeKV(b, "mode.filter", string(*m.Filter))
	}
}

func encodeConditions(b *strings.Builder, c itctypes.ObservingConditions) {
	writeKV(b, "conditions.image_quality", strconv.Itoa(int(c.ImageQuality)))
	writeKV(b, "conditions.cloud_extinction", strconv.Itoa(int(c.CloudExtinction)))
	writeKV(b, "conditions.sky_background", strconv.Itoa(int(c.SkyBackground)))
	writeKV(b, "conditions.water_vapor", strconv.Itoa(int(c.WaterVapor)))
	writeKV(b, "conditions.air_mass", formatFloat(float64(c.AirMass)))
}

func encodeOutcome(b *strings.Builder, o itctypes.DesiredOutcome) {
	switch o.Kind {
	case itctypes.OutcomeSignalToNoise:
		writeKV(b, "outcome.kind", "SIGNAL_TO_NOISE")
		writeKV(b, "outcome.signal_to_noise", formatFloat(o.SignalToNoise))
	case itctypes.OutcomeFixedExposure:
		writeKV(b, "outcome.kind", "FIXED_EXPOSURE")
		writeKV(b, "outcome.exposure_time_s", strconv.FormatInt(o.ExposureTime.Seconds, 10))
		writeKV(b, "outcome.exposure_count", strconv.Itoa(o.ExposureCount))
	}
}

func writeKV(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(value)
	b.WriteByte('\n')
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func profileKindName(k itctypes.SourceProfileKind) string {
	switch k {
	case itctypes.SourceProfilePoint:
		return "POINT"
	case itctypes.SourceProfileUniform:
		return "UNIFORM"
	case itctypes.SourceProfileGaussian:
		return "GAUSSIAN"
	default:
		return "UNKNOWN"
	}
}

func sedKindName(k itctypes.SEDKind) string {
	switch k {
	case itctypes.SEDLibraryTemplate:
		return "LIBRARY"
	case itctypes.SEDBlackBody:
		return "BLACK_BODY"
	case itctypes.SEDPowerLaw:
		return "POWER_LAW"
	default:
		return "UNKNOWN"
	}
}

func modeKindName(k itctypes.ObservingModeKind) string {
	switch k {
	case itctypes.ModeSpectroscopy:
		return "SPECTROSCOPY"
	case itctypes.ModeImaging:
		return "IMAGING"
	default:
		return "UNKNOWN"
	}
}
