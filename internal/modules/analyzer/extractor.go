// Package analyzer detects structural features in SQL query strings and
// classifies queries by complexity. Detection is purely lexical: queries are
// never executed or semantically validated.
package analyzer

import (
	"regexp"
	"strings"

	"github.com/V-Rytham/DBeyond/internal/domain"
	"github.com/V-Rytham/DBeyond/internal/sqllex"
)

// aggregateFuncs are the function names counted as aggregations when
// followed by an opening parenthesis.
var aggregateFuncs = map[string]bool{
	"COUNT": true,
	"SUM":   true,
	"AVG":   true,
	"MIN":   true,
	"MAX":   true,
}

// windowFuncs are analytic function names that imply window usage even
// without an explicit OVER clause in the scanned fragment.
var windowFuncs = map[string]bool{
	"RANK":       true,
	"DENSE_RANK": true,
	"ROW_NUMBER": true,
	"NTILE":      true,
	"LAG":        true,
	"LEAD":       true,
}

// Fallback patterns for inputs the lexer cannot fully tokenize.
var (
	joinPattern     = regexp.MustCompile(`(?i)\bJOIN\b`)
	subqueryPattern = regexp.MustCompile(`(?i)\(\s*SELECT\b`)
	aggPattern      = regexp.MustCompile(`(?i)\b(COUNT|SUM|AVG|MIN|MAX)\s*\(`)
	groupByPattern  = regexp.MustCompile(`(?i)\bGROUP\s+BY\b`)
	havingPattern   = regexp.MustCompile(`(?i)\bHAVING\b`)
	overPattern     = regexp.MustCompile(`(?i)\bOVER\s*\(`)
	analyticPattern = regexp.MustCompile(`(?i)\b(RANK|DENSE_RANK|ROW_NUMBER|NTILE|LAG|LEAD)\s*\(`)
)

// Extractor derives a FeatureSet from a SQL string. It is stateless and
// safe for concurrent use.
type Extractor struct {
	cfg Config
}

// NewExtractor creates an extractor with the given weights and threshold.
func NewExtractor(cfg Config) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract produces the FeatureSet for query. It is total: malformed SQL
// falls back to a best-effort keyword scan over the raw text, and empty or
// whitespace-only input yields an all-false FeatureSet classified Simple.
func (e *Extractor) Extract(query string) domain.FeatureSet {
	trimmed := strings.TrimSpace(query)

	var fs domain.FeatureSet
	fs.QueryLength = len(trimmed)

	if trimmed != "" {
		tokens, err := sqllex.Scan(trimmed)
		if err != nil {
			// Unterminated literal or comment. Degrade to raw-text
			// matching rather than failing the extraction.
			fs = e.scanRaw(trimmed)
		} else {
			fs = e.scanTokens(tokens)
		}
		fs.QueryLength = len(trimmed)
	}

	fs.ComplexityScore = e.score(fs)
	fs.Classification = domain.ClassificationSimple
	if fs.ComplexityScore >= e.cfg.ComplexityThreshold {
		fs.Classification = domain.ClassificationComplex
	}

	return fs
}

// scanTokens walks the token stream and records structural features.
func (e *Extractor) scanTokens(tokens []sqllex.Token) domain.FeatureSet {
	var fs domain.FeatureSet

	for i, tok := range tokens {
		switch tok.Kind {
		case sqllex.KindKeyword:
			switch tok.Text {
			case "JOIN":
				fs.JoinCount++
			case "GROUP":
				if next, ok := peek(tokens, i+1); ok && next.Kind == sqllex.KindKeyword && next.Text == "BY" {
					fs.HasGroupBy = true
				}
			case "HAVING":
				fs.HasHaving = true
			case "OVER":
				if next, ok := peek(tokens, i+1); ok && next.Kind == sqllex.KindLParen {
					fs.HasWindowFunction = true
				}
			}

		case sqllex.KindLParen:
			if next, ok := peek(tokens, i+1); ok && next.Kind == sqllex.KindKeyword && next.Text == "SELECT" {
				fs.SubqueryCount++
			}

		case sqllex.KindIdent:
			next, ok := peek(tokens, i+1)
			if !ok || next.Kind != sqllex.KindLParen {
				continue
			}
			name := strings.ToUpper(tok.Text)
			if aggregateFuncs[name] {
				fs.AggregationCount++
			} else if windowFuncs[name] {
				fs.HasWindowFunction = true
			}
		}
	}

	fs.HasJoin = fs.JoinCount > 0
	fs.HasSubquery = fs.SubqueryCount > 0
	fs.HasAggregation = fs.AggregationCount > 0
	return fs
}

// scanRaw is the degraded path for unparsable input: case-insensitive
// pattern matching over the raw query text.
func (e *Extractor) scanRaw(query string) domain.FeatureSet {
	var fs domain.FeatureSet

	fs.JoinCount = len(joinPattern.FindAllStringIndex(query, -1))
	fs.SubqueryCount = len(subqueryPattern.FindAllStringIndex(query, -1))
	fs.AggregationCount = len(aggPattern.FindAllStringIndex(query, -1))
	fs.HasGroupBy = groupByPattern.MatchString(query)
	fs.HasHaving = havingPattern.MatchString(query)
	fs.HasWindowFunction = overPattern.MatchString(query) || analyticPattern.MatchString(query)

	fs.HasJoin = fs.JoinCount > 0
	fs.HasSubquery = fs.SubqueryCount > 0
	fs.HasAggregation = fs.AggregationCount > 0
	return fs
}

// score computes the weighted complexity score. Contributions are
// presence-based: a feature's weight counts once no matter how often the
// feature occurs.
func (e *Extractor) score(fs domain.FeatureSet) int {
	score := 0
	if fs.HasJoin {
		score += e.cfg.JoinWeight
	}
	if fs.HasSubquery {
		score += e.cfg.SubqueryWeight
	}
	if fs.HasAggregation {
		score += e.cfg.AggregationWeight
	}
	if fs.HasGroupBy {
		score += e.cfg.GroupByWeight
	}
	if fs.HasHaving {
		score += e.cfg.HavingWeight
	}
	if fs.HasWindowFunction {
		score += e.cfg.WindowWeight
	}
	return score
}

func peek(tokens []sqllex.Token, i int) (sqllex.Token, bool) {
	if i < 0 || i >= len(tokens) {
		return sqllex.Token{}, false
	}
	return tokens[i], true
}
