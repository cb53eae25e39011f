package graphqlapi

import (
	"fmt"
	"math"

	"github.com/cquiroz/lucuma-itc/internal/itctypes"
)

// The *Input types below mirror the input{} blocks in schema.go field for
// field; graph-gophers/graphql-go binds incoming JSON variables onto
// these by name. Every pointer field is optional on the wire — coercion
// and the XOR/ordering checks happen in toWavelength, toConstraints, and
// friends, accumulating into one ValidationError rather than stopping at
// the first problem.

type wavelengthInput struct {
	Picometers  *float64
	Angstroms   *float64
	Nanometers  *float64
	Micrometers *float64
}

func toWavelength(in *wavelengthInput, field string, errs *itctypes.ValidationError) *itctypes.Wavelength {
	if in == nil {
		return nil
	}
	set := 0
	var w itctypes.Wavelength
	if in.Picometers != nil {
		w = itctypes.WavelengthFromPicometers(int64(*in.Picometers))
		set++
	}
	if in.Angstroms != nil {
		w = itctypes.WavelengthFromAngstroms(*in.Angstroms)
		set++
	}
	if in.Nanometers != nil {
		w = itctypes.WavelengthFromNanometers(*in.Nanometers)
		set++
	}
	if in.Micrometers != nil {
		w = itctypes.WavelengthFromMicrometers(*in.Micrometers)
		set++
	}
	if set != 1 {
		errs.Add(fmt.Sprintf("%s: exactly one unit field must be set (got %d)", field, set))
		return nil
	}
	return &w
}

type radialVelocityInput struct {
	CentimetersPerSecond *float64
	MetersPerSecond      *float64
	KilometersPerSecond  *float64
}

func toRadialVelocity(in *radialVelocityInput, field string, errs *itctypes.ValidationError) *itctypes.RadialVelocity {
	if in == nil {
		return nil
	}
	set := 0
	var v itctypes.RadialVelocity
	if in.CentimetersPerSecond != nil {
		v = itctypes.RadialVelocityFromCmPerSec(int64(*in.CentimetersPerSecond))
		set++
	}
	if in.MetersPerSecond != nil {
		v = itctypes.RadialVelocityFromMetersPerSec(*in.MetersPerSecond)
		set++
	}
	if in.KilometersPerSecond != nil {
		v = itctypes.RadialVelocityFromKilometersPerSec(*in.KilometersPerSecond)
		set++
	}
	if set != 1 {
		errs.Add(fmt.Sprintf("%s: exactly one unit field must be set (got %d)", field, set))
		return nil
	}
	return &v
}

type durationInput struct {
	Seconds      *float64
	Milliseconds *float64
}

func toDuration(in durationInput, field string, errs *itctypes.ValidationError) itctypes.Duration {
	set := 0
	var d itctypes.Duration
	if in.Seconds != nil {
		d = itctypes.DurationFromSeconds(int64(math.Ceil(*in.Seconds)))
		set++
	}
	if in.Milliseconds != nil {
		d = itctypes.DurationFromMillis(*in.Milliseconds)
		set++
	}
	if set != 1 {
		errs.Add(fmt.Sprintf("%s: exactly one unit field must be set (got %d)", field, set))
	}
	return d
}

type sourceProfileInput struct {
	Kind       string
	FwhmArcsec *float64
}

func toSourceProfile(in sourceProfileInput, errs *itctypes.ValidationError) itctypes.SourceProfile {
	var kind itctypes.SourceProfileKind
	switch in.Kind {
	case "POINT":
		kind = itctypes.SourceProfilePoint
	case "UNIFORM":
		kind = itctypes.SourceProfileUniform
	case "GAUSSIAN":
		kind = itctypes.SourceProfileGaussian
		if in.FwhmArcsec == nil {
			errs.Add("sourceProfile: fwhmArcsec is required when kind is GAUSSIAN")
		}
	default:
		errs.Add(fmt.Sprintf("sourceProfile.kind: unrecognized value %q", in.Kind))
	}
	sp := itctypes.SourceProfile{Kind: kind}
	if in.FwhmArcsec != nil {
		sp.FWHMArcsec = *in.FwhmArcsec
	}
	return sp
}

type sedInput struct {
	Kind            string
	LibraryTemplate *string
	BlackBodyKelvin *float64
	PowerLawIndex   *float64
}

func toSED(in *sedInput, errs *itctypes.ValidationError) *itctypes.SpectralEnergyDistribution {
	if in == nil {
		return nil
	}
	sed := &itctypes.SpectralEnergyDistribution{}
	switch in.Kind {
	case "LIBRARY_TEMPLATE":
		sed.Kind = itctypes.SEDLibraryTemplate
		if in.LibraryTemplate != nil {
			sed.LibraryTemplate = *in.LibraryTemplate
		} else {
			errs.Add("sed.libraryTemplate is required when kind is LIBRARY_TEMPLATE")
		}
	case "BLACK_BODY":
		sed.Kind = itctypes.SEDBlackBody
		if in.BlackBodyKelvin != nil {
			sed.BlackBodyKelvin = *in.BlackBodyKelvin
		} else {
			errs.Add("sed.blackBodyKelvin is required when kind is BLACK_BODY")
		}
	case "POWER_LAW":
		sed.Kind = itctypes.SEDPowerLaw
		if in.PowerLawIndex != nil {
			sed.PowerLawIndex = *in.PowerLawIndex
		} else {
			errs.Add("sed.powerLawIndex is required when kind is POWER_LAW")
		}
	default:
		errs.Add(fmt.Sprintf("sed.kind: unrecognized value %q", in.Kind))
	}
	return sed
}

type brightnessInput struct {
	Band  string
	Value float64
	Unit  string
}

func toBrightness(in brightnessInput, errs *itctypes.ValidationError) itctypes.Brightness {
	return itctypes.Brightness{
		Band:  itctypes.Band(in.Band),
		Value: in.Value,
		Unit:  itctypes.BrightnessUnit(in.Unit),
	}
}

type spectralDefinitionInput struct {
	Sed          *sedInput
	Brightnesses *[]brightnessInput
}

func toSpectralDefinition(in spectralDefinitionInput, errs *itctypes.ValidationError) itctypes.SpectralDefinition {
	if in.Sed == nil {
		errs.Add("spectral.sed is required")
	}
	return itctypes.SpectralDefinition{SED: toSED(in.Sed, errs)}
}

type targetInput struct {
	Profile        sourceProfileInput
	Spectral       spectralDefinitionInput
	RedshiftZ      *float64
	RadialVelocity *radialVelocityInput
}

func toTarget(in targetInput, errs *itctypes.ValidationError) itctypes.TargetProfile {
	t := itctypes.TargetProfile{
		Profile:        toSourceProfile(in.Profile, errs),
		Spectral:       toSpectralDefinition(in.Spectral, errs),
		RadialVelocity: toRadialVelocity(in.RadialVelocity, "target.radialVelocity", errs),
	}
	if in.RedshiftZ != nil {
		t.RedshiftZ = *in.RedshiftZ
	}
	if in.Spectral.Brightnesses != nil {
		for _, b := range *in.Spectral.Brightnesses {
			t.Brightness = append(t.Brightness, toBrightness(b, errs))
		}
	}
	return t
}

type airmassRangeInput struct {
	Min float64
	Max float64
}

type hourAngleRangeInput struct {
	MinHours float64
	MaxHours float64
}

type constraintsInput struct {
	ImageQuality    string
	CloudExtinction string
	SkyBackground   string
	WaterVapor      string
	AirmassRange    *airmassRangeInput
	HourAngleRange  *hourAngleRangeInput
}

func toConditions(in constraintsInput, errs *itctypes.ValidationError) itctypes.ObservingConditions {
	hasAirmass := in.AirmassRange != nil
	hasHourAngle := in.HourAngleRange != nil
	if hasAirmass == hasHourAngle {
		errs.Add("constraints: exactly one of airmassRange or hourAngleRange must be set")
	}

	// hourAngleRange constrains observing time rather than naming an air
	// mass directly; the legacy calculator only accepts a bucketed air
	// mass, so an hour-angle-qualified request is bucketed at the
	// nominal 1.2 value until a proper hour-angle-to-airmass conversion
	// is wired in.
	airMass := 1.2
	if hasAirmass {
		if in.AirmassRange.Max < in.AirmassRange.Min {
			errs.Add("constraints.airmassRange: max must not be less than min")
		}
		airMass = (in.AirmassRange.Min + in.AirmassRange.Max) / 2
	}
	if hasHourAngle && in.HourAngleRange.MaxHours < in.HourAngleRange.MinHours {
		errs.Add("constraints.hourAngleRange: maxHours must not be less than minHours")
	}

	bucket, err := itctypes.BucketAirMass(airMass)
	if err != nil {
		errs.Add(fmt.Sprintf("constraints.airmassRange: %v", err))
	}

	return itctypes.ObservingConditions{
		ImageQuality:    parseImageQuality(in.ImageQuality, errs),
		CloudExtinction: parseCloudExtinction(in.CloudExtinction, errs),
		SkyBackground:   parseSkyBackground(in.SkyBackground, errs),
		WaterVapor:      parseWaterVapor(in.WaterVapor, errs),
		AirMass:         bucket,
	}
}
