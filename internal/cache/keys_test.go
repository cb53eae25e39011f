package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cquiroz/lucuma-itc/internal/itctypes"
)

func sampleRequest() *itctypes.CalculationRequest {
	wl := itctypes.WavelengthFromNanometers(500)
	return &itctypes.CalculationRequest{
		Target: itctypes.TargetProfile{
			Profile: itctypes.SourceProfile{Kind: itctypes.SourceProfilePoint},
			Spectral: itctypes.SpectralDefinition{
				SED: &itctypes.SpectralEnergyDistribution{
					Kind:            itctypes.SEDBlackBody,
					BlackBodyKelvin: 5000,
				},
			},
			Brightness: []itctypes.Brightness{{Band: itctypes.BandV, Value: 15, Unit: itctypes.UnitVegaMagnitude}},
		},
		Mode: itctypes.ObservingMode{
			Kind:              itctypes.ModeSpectroscopy,
			Instrument:        itctypes.InstrumentGmosNorth,
			CentralWavelength: wl,
		},
		Conditions: itctypes.ObservingConditions{AirMass: 1.2},
		Outcome: itctypes.DesiredOutcome{
			Kind:          itctypes.OutcomeSignalToNoise,
			SignalToNoise: 10,
		},
	}
}

func TestRequestKey_Deterministic(t *testing.T) {
	k1 := RequestKey(NamespaceSpecGraph, sampleRequest())
	k2 := RequestKey(NamespaceSpecGraph, sampleRequest())
	assert.Equal(t, k1, k2)
}

func TestRequestKey_NamespacePrefixed(t *testing.T) {
	k := RequestKey(NamespaceSpecGraph, sampleRequest())
	assert.Contains(t, string(k), string(NamespaceSpecGraph)+":")
}

func TestRequestKey_DiffersAcrossNamespace(t *testing.T) {
	req := sampleRequest()
	k1 := RequestKey(NamespaceSpecGraph, req)
	k2 := RequestKey(NamespaceSpecTime, req)
	assert.NotEqual(t, k1, k2)
}

func TestRequestKey_DiffersOnLogicalChange(t *testing.T) {
	req1 := sampleRequest()
	req2 := sampleRequest()
	req2.Outcome.SignalToNoise = 20

	k1 := RequestKey(NamespaceSpecGraph, req1)
	k2 := RequestKey(NamespaceSpecGraph, req2)
	assert.NotEqual(t, k1, k2)
}
