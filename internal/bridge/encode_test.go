package bridge

import (
	"testing"

	"github.com/cquiroz/lucuma-itc/internal/itctypes"
	"github.com/stretchr/testify/assert"
)

func sampleRequest() *itctypes.CalculationRequest {
	filter := itctypes.Filter("G_PRIME")
	return &itctypes.CalculationRequest{
		Target: itctypes.TargetProfile{
			Profile: itctypes.SourceProfile{Kind: itctypes.SourceProfilePoint},
			Spectral: itctypes.SpectralDefinition{
				SED: &itctypes.SpectralEnergyDistribution{Kind: itctypes.SEDBlackBody, BlackBodyKelvin: 5800},
			},
			Brightness: []itctypes.Brightness{{Band: itctypes.BandV, Value: 15.0, Unit: itctypes.UnitVegaMagnitude}},
		},
		Mode: itctypes.ObservingMode{
			Kind:              itctypes.ModeSpectroscopy,
			Instrument:        itctypes.InstrumentGmosNorth,
			Grating:           itctypes.Grating("B1200_G5301"),
			FPU:               itctypes.FocalPlaneUnit{Kind: itctypes.FPUBuiltin, BuiltinName: "LONG_SLIT_0_25"},
			Filter:            &filter,
			CentralWavelength: itctypes.WavelengthFromNanometers(60),
		},
		Conditions: itctypes.ObservingConditions{AirMass: itctypes.AirMass15},
		Outcome: itctypes.DesiredOutcome{
			Kind:          itctypes.OutcomeFixedExposure,
			ExposureTime:  itctypes.DurationFromMillis(2.5),
			ExposureCount: 10,
		},
	}
}

func TestEncodeRequest_Deterministic(t *testing.T) {
	req := sampleRequest()
	a := EncodeRequest(req)
	b := EncodeRequest(req)
	assert.Equal(t, a, b)
	assert.Contains(t, a, "mode.grating=B1200_G5301")
	assert.Contains(t, a, "mode.fpu.name=LONG_SLIT_0_25")
}

func TestEncodeRequest_EqualLogicalRequestsProduceEqualDocuments(t *testing.T) {
	a := EncodeRequest(sampleRequest())
	b := EncodeRequest(sampleRequest())
	assert.Equal(t, a, b)
}
