package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/athapong/academicworld-mcp/pkg/academic"
	"github.com/athapong/academicworld-mcp/pkg/academic/dashboard"
	"github.com/athapong/academicworld-mcp/pkg/academic/visualizer"
)

// Reporter assembles the views of a static report page
type Reporter interface {
	Report(ctx context.Context, req dashboard.ReportRequest) (visualizer.Report, error)
}

// Router serves health, metrics and the HTML report next to the MCP transport
type Router struct {
	reporter Reporter
	logger   *logrus.Logger
}

// NewRouter creates a new router instance
func NewRouter(reporter Reporter, logger *logrus.Logger) *Router {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return &Router{reporter: reporter, logger: logger}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(rt.requestLogger)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/healthz", rt.healthCheck)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/report", rt.report)

	return router
}

func (rt *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		rt.logger.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start).String(),
			"request_id": chimiddleware.GetReqID(r.Context()),
		}).Debug("HTTP request")
	})
}

func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

// report renders the dashboard for
// ?keyword=..&keyword=..&min_year=..&max_year=..&university=..&faculty=..
func (rt *Router) report(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()

	years, err := parseYears(q.Get("min_year"), q.Get("max_year"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := rt.reporter.Report(req.Context(), dashboard.ReportRequest{
		Keywords:     q["keyword"],
		Years:        years,
		Universities: q["university"],
		Faculty:      q.Get("faculty"),
	})
	if err != nil {
		rt.logger.WithError(err).Error("Failed to build report")
		http.Error(w, "failed to build report", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := visualizer.Render(w, report); err != nil {
		rt.logger.WithError(err).Error("Failed to render report")
	}
}

func parseYears(minRaw, maxRaw string) (academic.YearRange, error) {
	var years academic.YearRange
	if minRaw == "" && maxRaw == "" {
		return years, nil
	}
	minYear, err := strconv.Atoi(minRaw)
	if err != nil {
		return years, errors.New("min_year must be an integer")
	}
	maxYear, err := strconv.Atoi(maxRaw)
	if err != nil {
		return years, errors.New("max_year must be an integer")
	}
	if minYear > maxYear {
		return years, errors.New("min_year must not exceed max_year")
	}
	return academic.YearRange{Min: minYear, Max: maxYear}, nil
}
