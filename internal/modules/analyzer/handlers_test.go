package analyzer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandlers() *Handlers {
	svc := NewService(DefaultConfig(), zerolog.Nop())
	return NewHandlers(svc, zerolog.Nop())
}

func TestHandleAnalyze(t *testing.T) {
	h := newTestHandlers()

	body := `{"query": "SELECT customer_id, COUNT(*) FROM orders GROUP BY customer_id HAVING COUNT(*) > 5"}`
	req := httptest.NewRequest(http.MethodPost, "/api/queries/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleAnalyze(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Report)
	require.Nil(t, resp.Error)

	fs := resp.Report.Features
	assert.True(t, fs.HasAggregation)
	assert.True(t, fs.HasGroupBy)
	assert.True(t, fs.HasHaving)
	assert.Equal(t, 3, fs.ComplexityScore)
	assert.Len(t, resp.Report.Quantum.StateVector, 7)
}

func TestHandleAnalyzeEmptyQuery(t *testing.T) {
	h := newTestHandlers()

	// An empty SQL string is a valid input, not an error.
	req := httptest.NewRequest(http.MethodPost, "/api/queries/analyze", strings.NewReader(`{"query": ""}`))
	rec := httptest.NewRecorder()

	h.HandleAnalyze(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Report)
	assert.Equal(t, 0, resp.Report.Features.ComplexityScore)
}

func TestHandleAnalyzeMalformedSQLStillSucceeds(t *testing.T) {
	h := newTestHandlers()

	body := `{"query": "SELECT 'oops FROM t JOIN u"}`
	req := httptest.NewRequest(http.MethodPost, "/api/queries/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleAnalyze(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Report)
	assert.True(t, resp.Report.Features.HasJoin, "fallback scan should detect JOIN")
}

func TestHandleAnalyzeInvalidBody(t *testing.T) {
	h := newTestHandlers()

	req := httptest.NewRequest(http.MethodPost, "/api/queries/analyze", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.HandleAnalyze(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	assert.Nil(t, resp.Report)
}
