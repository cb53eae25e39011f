package graphqlapi

import (
	"fmt"

	"github.com/cquiroz/lucuma-itc/internal/itctypes"
)

func parseImageQuality(s string, errs *itctypes.ValidationError) itctypes.ImageQuality {
	switch s {
	case "PERCENTILE_20":
		return itctypes.ImageQualityPercent20
	case "PERCENTILE_50", "PERCENTILE_70":
		return itctypes.ImageQualityPercent70
	case "PERCENTILE_85":
		return itctypes.ImageQualityPercent85
	case "ANY":
		return itctypes.ImageQualityAny
	default:
		errs.Add(fmt.Sprintf("constraints.imageQuality: unrecognized value %q", s))
		return itctypes.ImageQualityAny
	}
}

func parseCloudExtinction(s string, errs *itctypes.ValidationError) itctypes.CloudExtinction {
	switch s {
	case "PERCENTILE_50":
		return itctypes.CloudExtinctionPercent50
	case "PERCENTILE_70":
		return itctypes.CloudExtinctionPercent70
	case "PERCENTILE_80":
		return itctypes.CloudExtinctionPercent80
	case "PERCENTILE_90":
		return itctypes.CloudExtinctionPercent90
	case "ANY":
		return itctypes.CloudExtinctionAny
	default:
		errs.Add(fmt.Sprintf("constraints.cloudExtinction: unrecognized value %q", s))
		return itctypes.CloudExtinctionAny
	}
}

func parseSkyBackground(s string, errs *itctypes.ValidationError) itctypes.SkyBackground {
	switch s {
	case "PERCENTILE_20":
		return itctypes.SkyBackgroundPercent20
	case "PERCENTILE_50":
		return itctypes.SkyBackgroundPercent50
	case "PERCENTILE_80":
		return itctypes.SkyBackgroundPercent80
	case "ANY":
		return itctypes.SkyBackgroundAny
	default:
		errs.Add(fmt.Sprintf("constraints.skyBackground: unrecognized value %q", s))
		return itctypes.SkyBackgroundAny
	}
}

func parseWaterVapor(s string, errs *itctypes.ValidationError) itctypes.WaterVapor {
	switch s {
	case "PERCENTILE_20":
		return itctypes.WaterVaporPercent20
	case "PERCENTILE_50":
		return itctypes.WaterVaporPercent50
	case "PERCENTILE_80":
		return itctypes.WaterVaporPercent80
	case "ANY":
		return itctypes.WaterVaporAny
	default:
		errs.Add(fmt.Sprintf("constraints.waterVapor: unrecognized value %q", s))
		return itctypes.WaterVaporAny
	}
}
