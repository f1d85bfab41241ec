package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/athapong/academicworld-mcp/pkg/academic/metrics"
	"github.com/athapong/academicworld-mcp/pkg/academic/query"
	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const backendMySQL = "mysql"

// ErrNotConnected is returned by adapters whose connection failed at startup
var ErrNotConnected = errors.New("backend not connected")

// Row is one result tuple in projection order
type Row []interface{}

// MySQLStore executes statements against the relational store. One statement is
// prepared at connect time and kept for the lifetime of the store.
type MySQLStore struct {
	dsn      string
	db       *sql.DB
	prepared *sql.Stmt
	logger   *logrus.Logger
}

// NewMySQLStore creates an unconnected relational store
func NewMySQLStore(dsn string, logger *logrus.Logger) *MySQLStore {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return &MySQLStore{dsn: dsn, logger: logger}
}

// NewMySQLStoreFromDB wraps an already opened handle and prepares the most-cited statement
func NewMySQLStoreFromDB(ctx context.Context, db *sql.DB, logger *logrus.Logger) (*MySQLStore, error) {
	s := NewMySQLStore("", logger)
	s.db = db
	if err := s.prepare(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Connect opens and verifies the connection. A failure is logged and leaves the
// store unusable; it never aborts startup.
func (s *MySQLStore) Connect(ctx context.Context) bool {
	db, err := sql.Open("mysql", s.dsn)
	if err != nil {
		s.logger.WithError(err).Error("Failed to open MySQL connection")
		metrics.SetConnected(backendMySQL, false)
		return false
	}
	if err := db.PingContext(ctx); err != nil {
		s.logger.WithError(err).Error("Failed to connect to MySQL")
		db.Close()
		metrics.SetConnected(backendMySQL, false)
		return false
	}

	s.db = db
	if err := s.prepare(ctx); err != nil {
		s.logger.WithError(err).Error("Failed to prepare most-cited statement")
	}
	metrics.SetConnected(backendMySQL, true)
	return true
}

func (s *MySQLStore) prepare(ctx context.Context) error {
	stmt, err := s.db.PrepareContext(ctx, query.MostCited().Text)
	if err != nil {
		return errors.Wrap(err, "failed to prepare statement")
	}
	s.prepared = stmt
	return nil
}

// Query runs a statement and returns its rows
func (s *MySQLStore) Query(ctx context.Context, stmt query.Statement) (rows []Row, err error) {
	if s.db == nil {
		return nil, ErrNotConnected
	}
	defer func(start time.Time) { metrics.ObserveQuery(backendMySQL, "query", start, err) }(time.Now())

	result, err := s.db.QueryContext(ctx, stmt.Text, stmt.Args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	return collectRows(result)
}

// ExecutePrepared runs the prepared statement with one bound argument. Without a
// prepared statement it returns no rows and no error.
func (s *MySQLStore) ExecutePrepared(ctx context.Context, arg string) (rows []Row, err error) {
	if s.db == nil {
		return nil, ErrNotConnected
	}
	if s.prepared == nil {
		return nil, nil
	}
	defer func(start time.Time) { metrics.ObserveQuery(backendMySQL, "prepared", start, err) }(time.Now())

	result, err := s.prepared.QueryContext(ctx, arg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute prepared statement")
	}
	return collectRows(result)
}

// Close releases the prepared statement and the connection pool
func (s *MySQLStore) Close() error {
	if s.prepared != nil {
		s.prepared.Close()
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func collectRows(result *sql.Rows) ([]Row, error) {
	defer result.Close()

	columns, err := result.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read columns")
	}

	rows := make([]Row, 0)
	for result.Next() {
		values := make([]interface{}, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := result.Scan(dest...); err != nil {
			return nil, errors.Wrap(err, "failed to scan row")
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		rows = append(rows, Row(values))
	}
	if err := result.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate rows")
	}
	return rows, nil
}
