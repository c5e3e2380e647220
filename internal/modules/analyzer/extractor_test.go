package analyzer

import (
	"testing"

	"github.com/V-Rytham/DBeyond/internal/domain"
)

func TestExtractFeatureDetection(t *testing.T) {
	extractor := NewExtractor(DefaultConfig())

	tests := []struct {
		name           string
		query          string
		wantJoins      int
		wantSubqueries int
		wantAggs       int
		wantGroupBy    bool
		wantHaving     bool
		wantWindow     bool
		wantScore      int
		wantClass      domain.Classification
	}{
		{
			name:      "plain select",
			query:     "SELECT * FROM orders",
			wantScore: 0,
			wantClass: domain.ClassificationSimple,
		},
		{
			name:        "aggregation with group by and having",
			query:       "SELECT customer_id, COUNT(*) FROM orders GROUP BY customer_id HAVING COUNT(*) > 5",
			wantAggs:    2,
			wantGroupBy: true,
			wantHaving:  true,
			wantScore:   3, // aggregation + group_by + having, each counted once
			wantClass:   domain.ClassificationSimple,
		},
		{
			name:           "join with subquery",
			query:          "SELECT a.id FROM a JOIN (SELECT id FROM b) sub ON a.id = sub.id",
			wantJoins:      1,
			wantSubqueries: 1,
			wantScore:      5,
			wantClass:      domain.ClassificationComplex,
		},
		{
			name:      "lower case join",
			query:     "select * from a join b on a.id = b.id",
			wantJoins: 1,
			wantScore: 2,
			wantClass: domain.ClassificationSimple,
		},
		{
			name:      "multiple joins still score once",
			query:     "SELECT * FROM a JOIN b ON a.x = b.x LEFT JOIN c ON b.y = c.y",
			wantJoins: 2,
			wantScore: 2,
			wantClass: domain.ClassificationSimple,
		},
		{
			name:       "window function via OVER",
			query:      "SELECT sum(amount) OVER (PARTITION BY region) FROM sales",
			wantAggs:   1,
			wantWindow: true,
			wantScore:  3,
			wantClass:  domain.ClassificationSimple,
		},
		{
			name:       "analytic function name without OVER fragment",
			query:      "SELECT ROW_NUMBER() AS rn FROM t",
			wantWindow: true,
			wantScore:  2,
			wantClass:  domain.ClassificationSimple,
		},
		{
			name:           "everything at once",
			query:          "SELECT r, COUNT(*) FROM a JOIN b ON a.x = b.x WHERE a.id IN (SELECT id FROM c) GROUP BY r HAVING COUNT(*) > 1",
			wantJoins:      1,
			wantSubqueries: 1,
			wantAggs:       2,
			wantGroupBy:    true,
			wantHaving:     true,
			wantScore:      8,
			wantClass:      domain.ClassificationComplex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := extractor.Extract(tt.query)

			if fs.JoinCount != tt.wantJoins {
				t.Errorf("JoinCount = %d, want %d", fs.JoinCount, tt.wantJoins)
			}
			if fs.SubqueryCount != tt.wantSubqueries {
				t.Errorf("SubqueryCount = %d, want %d", fs.SubqueryCount, tt.wantSubqueries)
			}
			if fs.AggregationCount != tt.wantAggs {
				t.Errorf("AggregationCount = %d, want %d", fs.AggregationCount, tt.wantAggs)
			}
			if fs.HasGroupBy != tt.wantGroupBy {
				t.Errorf("HasGroupBy = %v, want %v", fs.HasGroupBy, tt.wantGroupBy)
			}
			if fs.HasHaving != tt.wantHaving {
				t.Errorf("HasHaving = %v, want %v", fs.HasHaving, tt.wantHaving)
			}
			if fs.HasWindowFunction != tt.wantWindow {
				t.Errorf("HasWindowFunction = %v, want %v", fs.HasWindowFunction, tt.wantWindow)
			}
			if fs.ComplexityScore != tt.wantScore {
				t.Errorf("ComplexityScore = %d, want %d", fs.ComplexityScore, tt.wantScore)
			}
			if fs.Classification != tt.wantClass {
				t.Errorf("Classification = %q, want %q", fs.Classification, tt.wantClass)
			}
		})
	}
}

func TestExtractEmptyAndWhitespaceInput(t *testing.T) {
	extractor := NewExtractor(DefaultConfig())

	for _, query := range []string{"", "   ", "\n\t  \n"} {
		fs := extractor.Extract(query)

		if !fs.IsEmpty() {
			t.Errorf("Extract(%q) detected features: %+v", query, fs)
		}
		if fs.ComplexityScore != 0 {
			t.Errorf("Extract(%q) score = %d, want 0", query, fs.ComplexityScore)
		}
		if fs.Classification != domain.ClassificationSimple {
			t.Errorf("Extract(%q) classification = %q, want Simple", query, fs.Classification)
		}
		if fs.QueryLength != 0 {
			t.Errorf("Extract(%q) length = %d, want 0", query, fs.QueryLength)
		}
	}
}

func TestExtractFallsBackOnMalformedSQL(t *testing.T) {
	extractor := NewExtractor(DefaultConfig())

	// Unterminated string literal: the lexer fails, the extractor must
	// degrade to raw keyword scanning instead of erroring.
	fs := extractor.Extract("SELECT 'oops FROM orders JOIN customers ON orders.cid = customers.id GROUP BY x")

	if !fs.HasJoin {
		t.Error("fallback scan missed JOIN keyword")
	}
	if !fs.HasGroupBy {
		t.Error("fallback scan missed GROUP BY")
	}
	if fs.Classification != domain.ClassificationSimple && fs.Classification != domain.ClassificationComplex {
		t.Errorf("fallback produced invalid classification %q", fs.Classification)
	}
}

func TestExtractThresholdBoundary(t *testing.T) {
	cfg := DefaultConfig()
	extractor := NewExtractor(cfg)

	// join(2) + group_by(1) + having(1) = 4 = threshold → Complex
	fs := extractor.Extract("SELECT x FROM a JOIN b ON a.i = b.i GROUP BY x HAVING x > 1")
	if fs.ComplexityScore != cfg.ComplexityThreshold {
		t.Fatalf("score = %d, want %d", fs.ComplexityScore, cfg.ComplexityThreshold)
	}
	if fs.Classification != domain.ClassificationComplex {
		t.Errorf("score at threshold classified %q, want Complex", fs.Classification)
	}
}

func TestExtractConfigOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JoinWeight = 10
	cfg.ComplexityThreshold = 100
	extractor := NewExtractor(cfg)

	fs := extractor.Extract("SELECT * FROM a JOIN b ON a.i = b.i")

	if fs.ComplexityScore != 10 {
		t.Errorf("score with overridden join weight = %d, want 10", fs.ComplexityScore)
	}
	if fs.Classification != domain.ClassificationSimple {
		t.Errorf("classification = %q, want Simple under raised threshold", fs.Classification)
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	extractor := NewExtractor(DefaultConfig())
	query := "SELECT a, COUNT(*) FROM t JOIN u ON t.i = u.i GROUP BY a"

	first := extractor.Extract(query)
	for i := 0; i < 10; i++ {
		if got := extractor.Extract(query); got != first {
			t.Fatalf("Extract not deterministic: %+v vs %+v", got, first)
		}
	}
}
