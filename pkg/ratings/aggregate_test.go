package ratings

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAggregate_Empty(t *testing.T) {
	result := Aggregate(nil)

	require.Equal(t, 0.0, result.Overall)
	require.Empty(t, result.Dimensions)

	result = Aggregate([]Rating{})
	require.Equal(t, 0.0, result.Overall)
	require.Empty(t, result.Dimensions)
}

func TestAggregate_OverallRoundsHalfUp(t *testing.T) {
	result := Aggregate([]Rating{
		{Dimension: DimensionMarketDemand, Score: 4},
		{Dimension: DimensionTeamFounders, Score: 5},
		{Dimension: DimensionBusinessModel, Score: 3},
	})
	require.Equal(t, 4.0, result.Overall)

	result = Aggregate([]Rating{
		{Dimension: DimensionMarketDemand, Score: 3},
		{Dimension: DimensionTeamFounders, Score: 3},
		{Dimension: DimensionBusinessModel, Score: 4},
	})
	require.Equal(t, 3.3, result.Overall)
}

func TestAggregate_OverallWithinBounds(t *testing.T) {
	cases := [][]Rating{
		{{Dimension: DimensionMarketDemand, Score: 1}},
		{{Dimension: DimensionMarketDemand, Score: 5}},
		{{Dimension: DimensionMarketDemand, Score: 1}, {Dimension: DimensionTeamFounders, Score: 5}},
	}
	for _, rs := range cases {
		result := Aggregate(rs)
		require.GreaterOrEqual(t, result.Overall, 0.0)
		require.LessOrEqual(t, result.Overall, 5.0)
	}
}

func TestAggregate_PerDimension(t *testing.T) {
	result := Aggregate([]Rating{
		{RaterUUID: "rater-1", Dimension: DimensionMarketDemand, Score: 4},
		{RaterUUID: "rater-2", Dimension: DimensionMarketDemand, Score: 2},
		{RaterUUID: "rater-1", Dimension: DimensionTeamFounders, Score: 5},
	})

	require.Equal(t, 3.0, result.Dimensions[DimensionMarketDemand].Average)
	require.Equal(t, 2, result.Dimensions[DimensionMarketDemand].Count)
	require.Equal(t, 5.0, result.Dimensions[DimensionTeamFounders].Average)
	require.Equal(t, 1, result.Dimensions[DimensionTeamFounders].Count)
	require.Len(t, result.Dimensions, 2)
}

func TestAggregate_PartialDimensionSet(t *testing.T) {
	// Ratings arrive one dimension at a time; a lone score still aggregates.
	result := Aggregate([]Rating{{Dimension: DimensionEnvironmentRunway, Score: 2}})

	require.Equal(t, 2.0, result.Overall)
	require.Len(t, result.Dimensions, 1)
}
