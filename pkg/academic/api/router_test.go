package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/athapong/academicworld-mcp/pkg/academic"
	"github.com/athapong/academicworld-mcp/pkg/academic/dashboard"
	"github.com/athapong/academicworld-mcp/pkg/academic/visualizer"
)

type fakeReporter struct {
	got    dashboard.ReportRequest
	report visualizer.Report
	err    error
}

func (f *fakeReporter) Report(_ context.Context, req dashboard.ReportRequest) (visualizer.Report, error) {
	f.got = req
	return f.report, f.err
}

func newTestServer(reporter Reporter) http.Handler {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewRouter(reporter, logger).Setup()
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(&fakeReporter{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
}

func TestMetrics(t *testing.T) {
	srv := newTestServer(&fakeReporter{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestReport(t *testing.T) {
	reporter := &fakeReporter{report: visualizer.Report{
		Ranking: &academic.RankingView{Keywords: []string{"data mining"}},
	}}
	srv := newTestServer(reporter)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/report?keyword=data+mining&keyword=robotics&min_year=2000&max_year=2010&university=MIT&faculty=Ada", nil)
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `id="uni-keyword-graph"`)
	assert.Equal(t, dashboard.ReportRequest{
		Keywords:     []string{"data mining", "robotics"},
		Years:        academic.YearRange{Min: 2000, Max: 2010},
		Universities: []string{"MIT"},
		Faculty:      "Ada",
	}, reporter.got)
}

func TestReport_BadYears(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "not a number", query: "?min_year=abc&max_year=2010"},
		{name: "missing max", query: "?min_year=2000"},
		{name: "inverted", query: "?min_year=2010&max_year=2000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&fakeReporter{})

			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report"+tt.query, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestReport_BackendError(t *testing.T) {
	srv := newTestServer(&fakeReporter{err: errors.New("neo4j unavailable")})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report?keyword=ai", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
