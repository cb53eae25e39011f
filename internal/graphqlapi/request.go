package graphqlapi

import (
	"github.com/cquiroz/lucuma-itc/internal/itctypes"
)

type focalPlaneUnitInput struct {
	BuiltinName       *string
	CustomWidthArcsec *float64
}

type modeInput struct {
	Instrument        string
	Spectroscopy      bool
	Grating           *string
	Filter            *string
	Fpu               *focalPlaneUnitInput
	CentralWavelength *wavelengthInput
}

func toMode(in modeInput, errs *itctypes.ValidationError) itctypes.ObservingMode {
	m := itctypes.ObservingMode{
		Instrument: itctypes.Instrument(in.Instrument),
	}
	if in.Spectroscopy {
		m.Kind = itctypes.ModeSpectroscopy
	} else {
		m.Kind = itctypes.ModeImaging
	}

	if wl := toWavelength(in.CentralWavelength, "mode.centralWavelength", errs); wl != nil {
		m.CentralWavelength = *wl
	}

	if m.Kind == itctypes.ModeSpectroscopy {
		if in.Grating != nil {
			m.Grating = itctypes.Grating(*in.Grating)
		} else {
			errs.Add("mode.grating is required for spectroscopy")
		}
		if in.Fpu != nil {
			if in.Fpu.BuiltinName != nil {
				m.FPU = itctypes.FocalPlaneUnit{Kind: itctypes.FPUBuiltin, BuiltinName: *in.Fpu.BuiltinName}
			} else if in.Fpu.CustomWidthArcsec != nil {
				m.FPU = itctypes.FocalPlaneUnit{Kind: itctypes.FPUCustom, CustomWidth: *in.Fpu.CustomWidthArcsec}
			} else {
				errs.Add("mode.fpu: exactly one of builtinName or customWidthArcsec must be set")
			}
		} else {
			errs.Add("mode.fpu is required for spectroscopy")
		}
	}
	if in.Filter != nil {
		f := itctypes.Filter(*in.Filter)
		m.Filter = &f
	}
	return m
}

type significantFiguresInput struct {
	XAxis *int32
	YAxis *int32
	Ccd   *int32
}

func toSignificantFigures(in *significantFiguresInput) *itctypes.SignificantFigures {
	if in == nil {
		return nil
	}
	sf := &itctypes.SignificantFigures{}
	if in.XAxis != nil {
		v := int(*in.XAxis)
		sf.XAxis = &v
	}
	if in.YAxis != nil {
		v := int(*in.YAxis)
		sf.YAxis = &v
	}
	if in.Ccd != nil {
		v := int(*in.Ccd)
		sf.CCD = &v
	}
	return sf
}

// integrationTimeInput mirrors the IntegrationTimeInput SDL block.
type integrationTimeInput struct {
	Target        targetInput
	Mode          modeInput
	Constraints   constraintsInput
	SignalToNoise float64
	AtWavelength  *wavelengthInput
}

func (in integrationTimeInput) toRequest() (*itctypes.CalculationRequest, *itctypes.ValidationError) {
	errs := &itctypes.ValidationError{}
	req := &itctypes.CalculationRequest{
		Target:     toTarget(in.Target, errs),
		Mode:       toMode(in.Mode, errs),
		Conditions: toConditions(in.Constraints, errs),
		Outcome: itctypes.DesiredOutcome{
			Kind:          itctypes.OutcomeSignalToNoise,
			SignalToNoise: in.SignalToNoise,
		},
		SignalToNoiseWavelength: toWavelength(in.AtWavelength, "atWavelength", errs),
	}
	if in.SignalToNoise <= 0 {
		errs.Add("signalToNoise must be positive")
	}
	if errs.HasProblems() {
		return nil, errs
	}
	return req, nil
}

// graphInput mirrors the GraphInput SDL block.
type graphInput struct {
	Target             targetInput
	Mode               modeInput
	Constraints        constraintsInput
	ExposureTime       durationInput
	Exposures          int32
	SignificantFigures *significantFiguresInput
}

func (in graphInput) toRequest() (*itctypes.CalculationRequest, *itctypes.ValidationError) {
	errs := &itctypes.ValidationError{}
	req := &itctypes.CalculationRequest{
		Target:     toTarget(in.Target, errs),
		Mode:       toMode(in.Mode, errs),
		Conditions: toConditions(in.Constraints, errs),
		Outcome: itctypes.DesiredOutcome{
			Kind:          itctypes.OutcomeFixedExposure,
			ExposureTime:  toDuration(in.ExposureTime, "exposureTime", errs),
			ExposureCount: int(in.Exposures),
		},
		SigFigs: toSignificantFigures(in.SignificantFigures),
	}
	if in.Exposures <= 0 {
		errs.Add("exposures must be positive")
	}
	if errs.HasProblems() {
		return nil, errs
	}
	return req, nil
}
