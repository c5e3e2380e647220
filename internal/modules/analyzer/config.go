package analyzer

// Config holds the feature weights and the classification threshold used by
// the extractor. It is passed in explicitly so tests can override individual
// values without process-wide side effects.
type Config struct {
	JoinWeight          int `json:"join_weight"`
	SubqueryWeight      int `json:"subquery_weight"`
	AggregationWeight   int `json:"aggregation_weight"`
	GroupByWeight       int `json:"group_by_weight"`
	HavingWeight        int `json:"having_weight"`
	WindowWeight        int `json:"window_weight"`
	ComplexityThreshold int `json:"complexity_threshold"`
}

// DefaultConfig returns the documented weights: join=2, subquery=3,
// aggregation=1, group_by=1, having=1, window=2, with queries scoring 4 or
// more classified as Complex. Each detected feature contributes its weight
// once regardless of how many times it occurs.
func DefaultConfig() Config {
	return Config{
		JoinWeight:          2,
		SubqueryWeight:      3,
		AggregationWeight:   1,
		GroupByWeight:       1,
		HavingWeight:        1,
		WindowWeight:        2,
		ComplexityThreshold: 4,
	}
}
