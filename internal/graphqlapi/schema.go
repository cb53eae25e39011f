// Package graphqlapi is the external GraphQL surface: SDL schema, input
// coercion/validation, and resolvers delegating to the orchestrator.
package graphqlapi

// schemaSDL names the query fields the service exposes, plus the input
// shapes needed to carry a full CalculationRequest across the wire.
const schemaSDL = `
schema {
	query: Query
}

type Query {
	versions: Versions!
	spectroscopyIntegrationTime(input: IntegrationTimeInput!): IntegrationTimeResult!
	imagingIntegrationTime(input: IntegrationTimeInput!): IntegrationTimeResult!
	optimizedSpectroscopyGraph(input: GraphInput!): GraphResult!
}

type Versions {
	serverVersion: String!
	dataVersion: String
}

input WavelengthInput {
	picometers: Float
	angstroms: Float
	nanometers: Float
	micrometers: Float
}

input RadialVelocityInput {
	centimetersPerSecond: Float
	metersPerSecond: Float
	kilometersPerSecond: Float
}

input DurationInput {
	seconds: Float
	milliseconds: Float
}

enum SourceProfileKind {
	POINT
	UNIFORM
	GAUSSIAN
}

input SourceProfileInput {
	kind: SourceProfileKind!
	fwhmArcsec: Float
}

enum SEDKind {
	LIBRARY_TEMPLATE
	BLACK_BODY
	POWER_LAW
}

input SEDInput {
	kind: SEDKind!
	libraryTemplate: String
	blackBodyKelvin: Float
	powerLawIndex: Float
}

enum Band {
	U B G V R I Z Y J H K AP
}

enum BrightnessUnit {
	VEGA_MAGNITUDE
	AB_MAGNITUDE
	JANSKY
}

input BrightnessInput {
	band: Band!
	value: Float!
	unit: BrightnessUnit!
}

input SpectralDefinitionInput {
	sed: SEDInput
	brightnesses: [BrightnessInput!]
}

input TargetInput {
	profile: SourceProfileInput!
	spectral: SpectralDefinitionInput!
	redshiftZ: Float
	radialVelocity: RadialVelocityInput
}

enum ImageQuality { PERCENTILE_20 PERCENTILE_50 PERCENTILE_70 PERCENTILE_85 ANY }
enum CloudExtinction { PERCENTILE_50 PERCENTILE_70 PERCENTILE_80 PERCENTILE_90 ANY }
enum SkyBackground { PERCENTILE_20 PERCENTILE_50 PERCENTILE_80 ANY }
enum WaterVapor { PERCENTILE_20 PERCENTILE_50 PERCENTILE_80 ANY }

input AirmassRangeInput {
	min: Float!
	max: Float!
}

input HourAngleRangeInput {
	minHours: Float!
	maxHours: Float!
}

input ConstraintsInput {
	imageQuality: ImageQuality!
	cloudExtinction: CloudExtinction!
	skyBackground: SkyBackground!
	waterVapor: WaterVapor!
	airmassRange: AirmassRangeInput
	hourAngleRange: HourAngleRangeInput
}

enum Instrument { GMOS_NORTH GMOS_SOUTH }

input FocalPlaneUnitInput {
	builtinName: String
	customWidthArcsec: Float
}

input ModeInput {
	instrument: Instrument!
	spectroscopy: Boolean!
	grating: String
	filter: String
	fpu: FocalPlaneUnitInput
	centralWavelength: WavelengthInput
}

input SignificantFiguresInput {
	xAxis: Int
	yAxis: Int
	ccd: Int
}

input IntegrationTimeInput {
	target: TargetInput!
	mode: ModeInput!
	constraints: ConstraintsInput!
	signalToNoise: Float!
	atWavelength: WavelengthInput
}

input GraphInput {
	target: TargetInput!
	mode: ModeInput!
	constraints: ConstraintsInput!
	exposureTime: DurationInput!
	exposures: Int!
	significantFigures: SignificantFiguresInput
}

type IntegrationTimeResult {
	serverVersion: String!
	dataVersion: String
	exposureTimeSeconds: Float!
	exposures: Int!
	signalToNoise: Float!
}

type CCDResult {
	index: Int!
	wellDepth: Float!
	peakPixelFlux: Float!
	peakSingleSNTotal: Float!
	peakFinalSNTotal: Float!
}

type SampleResult {
	wavelengthNm: Float!
	value: Float!
}

type SeriesResult {
	seriesType: String!
	samples: [SampleResult!]!
}

type GroupResult {
	name: String!
	series: [SeriesResult!]!
}

type GraphResult {
	serverVersion: String!
	dataVersion: String
	ccds: [CCDResult!]!
	groups: [GroupResult!]!
	peakFinalSN: Float!
	peakSingleSN: Float!
	atWavelengthFinalSN: Float
	atWavelengthSingleSN: Float
}
`
