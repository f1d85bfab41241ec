package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/athapong/academicworld-mcp/pkg/academic"
	"github.com/athapong/academicworld-mcp/pkg/academic/dashboard"
	"github.com/athapong/academicworld-mcp/pkg/academic/visualizer"
	"github.com/athapong/academicworld-mcp/services"
)

var (
	envFile      = flag.String("env", ".env", "Path to environment file")
	keywords     = flag.String("keywords", "", "Comma separated keywords for the ranking and impact charts")
	minYear      = flag.Int("min-year", 0, "First publication year (default: earliest known)")
	maxYear      = flag.Int("max-year", 0, "Last publication year (default: latest known)")
	universities = flag.String("universities", "", "Comma separated universities for the research volume chart (default: all)")
	faculty      = flag.String("faculty", "", "Faculty member for the most cited table")
	outputFile   = flag.String("output", "academicworld.html", "Output file for the HTML report")
	jsonOutput   = flag.String("json-output", "", "Also write the view models as JSON to this file")
	logLevel     = flag.String("log-level", "info", "Logging level (debug, info, warn, error)")
)

func main() {
	flag.Parse()

	// Configure logging
	logger := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatalf("Invalid log level: %v", err)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if err := godotenv.Load(*envFile); err != nil {
		logger.Warnf("Error loading env file %s: %v", *envFile, err)
	}

	cfg, err := services.LoadConfig()
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()
	backends, err := services.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to connect backends: %v", err)
	}
	defer backends.Close()

	dash := backends.Dashboard(logger)
	if _, err := dash.LoadCatalog(ctx); err != nil {
		logger.Warnf("Failed to load dashboard options: %v", err)
	}

	report, err := dash.Report(ctx, dashboard.ReportRequest{
		Keywords:     split(*keywords),
		Years:        academic.YearRange{Min: *minYear, Max: *maxYear},
		Universities: split(*universities),
		Faculty:      strings.TrimSpace(*faculty),
	})
	if err != nil {
		logger.Fatalf("Failed to build report: %v", err)
	}

	if err := visualizer.NewReportWriter(*outputFile).Write(report); err != nil {
		logger.Fatalf("Failed to write report: %v", err)
	}
	logger.Infof("Report saved to %s", *outputFile)

	if *jsonOutput != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			logger.Fatalf("Failed to encode views: %v", err)
		}
		if err := os.WriteFile(*jsonOutput, data, 0644); err != nil {
			logger.Fatalf("Failed to write %s: %v", *jsonOutput, err)
		}
		logger.Infof("Views saved to %s", *jsonOutput)
	}
}

func split(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
