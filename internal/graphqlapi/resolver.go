package graphqlapi

import (
	"context"
	"fmt"
	"log/slog"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/cquiroz/lucuma-itc/internal/itctypes"
	"github.com/cquiroz/lucuma-itc/internal/orchestrator"
)

// versionResolver backs the `versions` query.
type versionResolver struct {
	serverVersion string
	dataVersion   string
}

func (v *versionResolver) ServerVersion() string { return v.serverVersion }
func (v *versionResolver) DataVersion() *string {
	if v.dataVersion == "" {
		return nil
	}
	return &v.dataVersion
}

// integrationTimeResolver backs IntegrationTimeResult.
type integrationTimeResolver struct {
	vi   orchestrator.VersionInfo
	plan *itctypes.ExposurePlan
}

func (r *integrationTimeResolver) ServerVersion() string { return r.vi.ServerVersion }
func (r *integrationTimeResolver) DataVersion() *string {
	if r.vi.DataVersion == "" {
		return nil
	}
	return &r.vi.DataVersion
}
func (r *integrationTimeResolver) ExposureTimeSeconds() float64 { return float64(r.plan.ExposureTime.Seconds) }
func (r *integrationTimeResolver) Exposures() int32             { return int32(r.plan.ExposureCount) }
func (r *integrationTimeResolver) SignalToNoise() float64       { return r.plan.SingleSN }

// graphResolver and its nested resolvers back GraphResult.
type graphResolver struct {
	vi    orchestrator.VersionInfo
	graph *itctypes.GraphResult
}

func (r *graphResolver) ServerVersion() string { return r.vi.ServerVersion }
func (r *graphResolver) DataVersion() *string {
	if r.vi.DataVersion == "" {
		return nil
	}
	return &r.vi.DataVersion
}
func (r *graphResolver) PeakFinalSN() float64  { return r.graph.PeakFinalSN }
func (r *graphResolver) PeakSingleSN() float64 { return r.graph.PeakSingleSN }
func (r *graphResolver) AtWavelengthFinalSN() *float64  { return r.graph.AtWavelengthFinalSN }
func (r *graphResolver) AtWavelengthSingleSN() *float64 { return r.graph.AtWavelengthSingleSN }

func (r *graphResolver) Ccds() []*ccdResolver {
	out := make([]*ccdResolver, len(r.graph.CCDs))
	for i, c := range r.graph.CCDs {
		out[i] = &ccdResolver{c}
	}
	return out
}

func (r *graphResolver) Groups() []*groupResolver {
	out := make([]*groupResolver, len(r.graph.Groups))
	for i, g := range r.graph.Groups {
		out[i] = &groupResolver{g}
	}
	return out
}

type ccdResolver struct{ ccd itctypes.CCD }

func (r *ccdResolver) Index() int32               { return int32(r.ccd.Index) }
func (r *ccdResolver) WellDepth() float64          { return r.ccd.WellDepth }
func (r *ccdResolver) PeakPixelFlux() float64      { return r.ccd.PeakPixelFlux }
func (r *ccdResolver) PeakSingleSNTotal() float64  { return r.ccd.PeakSingleSNTotal }
func (r *ccdResolver) PeakFinalSNTotal() float64   { return r.ccd.PeakFinalSNTotal }

type groupResolver struct{ group itctypes.GraphGroup }

func (r *groupResolver) Name() string { return r.group.Name }
func (r *groupResolver) Series() []*seriesResolver {
	out := make([]*seriesResolver, len(r.group.Series))
	for i, s := range r.group.Series {
		out[i] = &seriesResolver{s}
	}
	return out
}

type seriesResolver struct{ series itctypes.Series }

func (r *seriesResolver) SeriesType() string { return string(r.series.Type) }
func (r *seriesResolver) Samples() []*sampleResolver {
	out := make([]*sampleResolver, len(r.series.Samples))
	for i, s := range r.series.Samples {
		out[i] = &sampleResolver{s}
	}
	return out
}

type sampleResolver struct{ sample itctypes.Sample }

func (r *sampleResolver) WavelengthNm() float64 { return r.sample.WavelengthNm }
func (r *sampleResolver) Value() float64        { return r.sample.Value }

// Resolver is the GraphQL root; every query field above has a matching
// method here, named to match the schema's camelCase field names
// title-cased per graph-gophers' binding convention.
type Resolver struct {
	orch          *orchestrator.Orchestrator
	serverVersion string
	dataVersion   func() string
	logger        *slog.Logger
}

// New builds the root resolver. dataVersion is a callback rather than a
// fixed string, so it is read afresh for every request, independent of
// the service's own build-time version. The bridge does not report a
// data version; the value comes only from this callback.
func New(orch *orchestrator.Orchestrator, serverVersion string, dataVersion func() string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	if dataVersion == nil {
		dataVersion = func() string { return "" }
	}
	return &Resolver{orch: orch, serverVersion: serverVersion, dataVersion: dataVersion, logger: logger}
}

func (r *Resolver) Versions() *versionResolver {
	return &versionResolver{serverVersion: r.serverVersion, dataVersion: r.dataVersion()}
}

type integrationTimeArgs struct {
	Input integrationTimeInput
}

func (r *Resolver) SpectroscopyIntegrationTime(ctx context.Context, args integrationTimeArgs) (*integrationTimeResolver, error) {
	req, verr := args.Input.toRequest()
	if verr != nil {
		return nil, verr
	}
	plan, vi, err := r.orch.SpectroscopyIntegrationTime(ctx, req, r.dataVersion())
	if err != nil {
		return nil, err
	}
	return &integrationTimeResolver{vi: vi, plan: plan}, nil
}

func (r *Resolver) ImagingIntegrationTime(ctx context.Context, args integrationTimeArgs) (*integrationTimeResolver, error) {
	req, verr := args.Input.toRequest()
	if verr != nil {
		return nil, verr
	}
	plan, vi, err := r.orch.ImagingIntegrationTime(ctx, req, r.dataVersion())
	if err != nil {
		return nil, err
	}
	return &integrationTimeResolver{vi: vi, plan: plan}, nil
}

type graphArgs struct {
	Input graphInput
}

func (r *Resolver) OptimizedSpectroscopyGraph(ctx context.Context, args graphArgs) (*graphResolver, error) {
	req, verr := args.Input.toRequest()
	if verr != nil {
		return nil, verr
	}
	graph, vi, err := r.orch.SpectroscopyGraph(ctx, req, r.dataVersion())
	if err != nil {
		return nil, err
	}
	return &graphResolver{vi: vi, graph: graph}, nil
}

// NewSchema parses schemaSDL against resolver, failing fast at startup if
// the SDL and resolver method set have drifted apart.
func NewSchema(resolver *Resolver) (*graphql.Schema, error) {
	schema, err := graphql.ParseSchema(schemaSDL, resolver)
	if err != nil {
		return nil, fmt.Errorf("graphqlapi: schema parse: %w", err)
	}
	return schema, nil
}
