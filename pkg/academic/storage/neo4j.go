package storage

import (
	"context"
	"time"

	"github.com/athapong/academicworld-mcp/pkg/academic/metrics"
	"github.com/athapong/academicworld-mcp/pkg/academic/query"
	"github.com/neo4j/neo4j-go-driver/v4/neo4j"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	backendNeo4j = "neo4j"

	// DefaultGraphDatabase is the logical database holding the academic graph
	DefaultGraphDatabase = "academicworld"

	constraintViolation = "Neo.ClientError.Schema.ConstraintValidationFailed"
)

// GraphResult is the outcome of one graph statement
type GraphResult struct {
	Records []map[string]interface{}
	Keys    []string
	Summary neo4j.ResultSummary
}

// Neo4jStore executes Cypher statements against a target logical database
type Neo4jStore struct {
	driver   neo4j.Driver
	uri      string
	database string
	logger   *logrus.Logger
}

// NewNeo4jStore creates the driver and verifies connectivity. An unreachable
// server is a construction error.
func NewNeo4jStore(uri, username, password, database string, logger *logrus.Logger) (*Neo4jStore, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if database == "" {
		database = DefaultGraphDatabase
	}

	auth := neo4j.BasicAuth(username, password, "")
	driver, err := neo4j.NewDriver(uri, auth)
	if err != nil {
		metrics.SetConnected(backendNeo4j, false)
		return nil, errors.Wrap(err, "failed to create Neo4j driver")
	}
	if err := driver.VerifyConnectivity(); err != nil {
		driver.Close()
		metrics.SetConnected(backendNeo4j, false)
		logger.WithError(err).WithField("uri", uri).Error("Neo4j is unreachable")
		return nil, errors.Wrap(err, "failed to verify Neo4j connectivity")
	}

	metrics.SetConnected(backendNeo4j, true)
	return &Neo4jStore{
		driver:   driver,
		uri:      uri,
		database: database,
		logger:   logger,
	}, nil
}

// Execute runs one statement in its own session and collects every record
func (s *Neo4jStore) Execute(ctx context.Context, stmt query.Cypher) (res *GraphResult, err error) {
	defer func(start time.Time) {
		metrics.ObserveQuery(backendNeo4j, string(stmt.Type), start, err)
	}(time.Now())

	database := stmt.Database
	if database == "" {
		database = s.database
	}
	mode := neo4j.AccessModeRead
	if stmt.Writes() {
		mode = neo4j.AccessModeWrite
	}

	session := s.driver.NewSession(neo4j.SessionConfig{AccessMode: mode, DatabaseName: database})
	defer session.Close()

	result, err := session.Run(stmt.Text, stmt.Params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to run statement")
	}
	records, err := result.Collect()
	if err != nil {
		return nil, errors.Wrap(err, "failed to collect records")
	}
	keys, err := result.Keys()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read keys")
	}
	summary, err := result.Consume()
	if err != nil {
		return nil, errors.Wrap(err, "failed to consume result")
	}

	return &GraphResult{
		Records: recordMaps(records),
		Keys:    keys,
		Summary: summary,
	}, nil
}

// Close closes the driver
func (s *Neo4jStore) Close() error {
	if s.driver != nil {
		return s.driver.Close()
	}
	return nil
}

// IsConstraintViolation reports whether err was raised by a schema constraint
func IsConstraintViolation(err error) bool {
	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) {
		return neoErr.Code == constraintViolation
	}
	return false
}

func recordMaps(records []*neo4j.Record) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(records))
	for _, record := range records {
		data := make(map[string]interface{}, len(record.Keys))
		for i, key := range record.Keys {
			data[key] = record.Values[i]
		}
		out = append(out, data)
	}
	return out
}
