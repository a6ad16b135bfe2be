package ratings

import "time"

// The six fixed rating dimensions.
const (
	DimensionMarketDemand       = "market_demand"
	DimensionSolutionExecution  = "solution_execution"
	DimensionTeamFounders       = "team_founders"
	DimensionBusinessModel      = "business_model"
	DimensionValidationTraction = "validation_traction"
	DimensionEnvironmentRunway  = "environment_runway"
)

// Dimensions lists all six axes in their canonical order.
var Dimensions = []string{
	DimensionMarketDemand,
	DimensionSolutionExecution,
	DimensionTeamFounders,
	DimensionBusinessModel,
	DimensionValidationTraction,
	DimensionEnvironmentRunway,
}

const (
	VisibilityPublic      = "public"
	VisibilityPrivate     = "private"
	VisibilityInnerCircle = "inner_circle"
)

type Rating struct {
	ID         int64     `json:"id"`
	StartupID  int64     `json:"startup_id"`
	RaterUUID  string    `json:"rater_uuid"`
	Dimension  string    `json:"dimension"`
	Score      int       `json:"score"`
	Comment    string    `json:"comment"`
	Visibility string    `json:"visibility"`
	CreatedAt  time.Time `json:"created_at"`
}

func IsValidDimension(d string) bool {
	for _, dim := range Dimensions {
		if d == dim {
			return true
		}
	}
	return false
}

func IsValidVisibility(v string) bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityInnerCircle:
		return true
	default:
		return false
	}
}
