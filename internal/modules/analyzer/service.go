package analyzer

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/V-Rytham/DBeyond/internal/domain"
	"github.com/V-Rytham/DBeyond/internal/modules/quantum"
)

// Report is the full output of one pipeline run over a single query.
type Report struct {
	ID         string            `json:"id"`
	Features   domain.FeatureSet `json:"features"`
	Quantum    quantum.StatePrep `json:"quantum"`
	AnalyzedAt time.Time         `json:"analyzed_at"`
}

// Service runs the extraction and quantum preparation pipeline. It holds no
// per-query state; requests never share mutable data.
type Service struct {
	extractor *Extractor
	preparer  *quantum.Preparer
	log       zerolog.Logger

	analyses atomic.Int64
}

// NewService creates the analysis service with the given extractor config.
func NewService(cfg Config, log zerolog.Logger) *Service {
	return &Service{
		extractor: NewExtractor(cfg),
		preparer:  quantum.NewPreparer(),
		log:       log.With().Str("module", "analyzer").Logger(),
	}
}

// Analyze runs the full pipeline over query and assembles a Report. It
// never fails: malformed SQL degrades to the extractor's raw-text scan.
func (s *Service) Analyze(query string) Report {
	features := s.extractor.Extract(query)
	prep := s.preparer.Prepare(features)

	report := Report{
		ID:         uuid.New().String(),
		Features:   features,
		Quantum:    prep,
		AnalyzedAt: time.Now().UTC(),
	}

	s.analyses.Add(1)
	s.log.Debug().
		Str("report_id", report.ID).
		Int("score", features.ComplexityScore).
		Str("classification", string(features.Classification)).
		Msg("Query analyzed")

	return report
}

// AnalysesServed returns the number of analyses run since startup.
// Operational counter only; carries no query data.
func (s *Service) AnalysesServed() int64 {
	return s.analyses.Load()
}
