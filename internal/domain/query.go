// Package domain holds the shared types of the query analysis pipeline.
// Types here are pure data: no infrastructure dependencies.
package domain

// Classification labels a query by structural complexity.
type Classification string

const (
	// ClassificationSimple marks queries whose complexity score falls
	// below the configured threshold.
	ClassificationSimple Classification = "Simple"

	// ClassificationComplex marks queries at or above the threshold.
	ClassificationComplex Classification = "Complex"
)

// FeatureSet is the fixed-schema record of structural properties detected
// in a single SQL query. It is created once per query by the extractor and
// never mutated afterwards.
//
// QueryLength is reported for display only; it does not participate in the
// complexity score or the state vector.
type FeatureSet struct {
	HasJoin           bool `json:"has_join"`
	HasSubquery       bool `json:"has_subquery"`
	HasAggregation    bool `json:"has_aggregation"`
	HasGroupBy        bool `json:"has_group_by"`
	HasHaving         bool `json:"has_having"`
	HasWindowFunction bool `json:"has_window_function"`

	JoinCount        int `json:"join_count"`
	SubqueryCount    int `json:"subquery_count"`
	AggregationCount int `json:"aggregation_count"`
	QueryLength      int `json:"query_length"`

	ComplexityScore int            `json:"complexity_score"`
	Classification  Classification `json:"classification"`
}

// IsEmpty reports whether no structural feature was detected.
func (fs FeatureSet) IsEmpty() bool {
	return !fs.HasJoin &&
		!fs.HasSubquery &&
		!fs.HasAggregation &&
		!fs.HasGroupBy &&
		!fs.HasHaving &&
		!fs.HasWindowFunction
}
