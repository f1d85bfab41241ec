// Package dashboard composes the AcademicWorld widgets. Each operation issues
// fixed, parameterized queries against one or more of the relational, document
// and graph stores and reshapes the rows into a view model from package academic.
//
// Operations return ErrNoUpdate when the interaction carries no usable input;
// callers keep whatever view they rendered before. Recoverable conditions
// (constraint violations, cross-store name mismatches, missing selections) come
// back as a Notice on the view model. Every other backend failure is returned
// as an error.
package dashboard

import (
	"context"
	"strconv"
	"strings"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/athapong/academicworld-mcp/pkg/academic"
	"github.com/athapong/academicworld-mcp/pkg/academic/metrics"
	"github.com/athapong/academicworld-mcp/pkg/academic/query"
	"github.com/athapong/academicworld-mcp/pkg/academic/session"
	"github.com/athapong/academicworld-mcp/pkg/academic/storage"
)

var (
	// ErrNoUpdate means the interaction had nothing to act on and the previous view stands
	ErrNoUpdate = errors.New("no update")

	// ErrInvalidInput wraps validation failures of user supplied values
	ErrInvalidInput = errors.New("invalid input")
)

// User-visible notices
const (
	NoticeFacultyDiscrepancy    = "There was an error finding this faculty member. This is likely due to a discrepancy between the data in each database."
	NoticeUniversityDiscrepancy = "There was an error finding this university. This is likely due to a discrepancy between the data in each database."
	NoticeConstraintViolated    = "Creation failed, constraint violated."
	NoticeCreated               = "Created"
	NoticeNoSelection           = "Select a faculty member first."
	NoticeNoReviews             = "No reviews!"
	NoticeDuplicateReview       = "This review was already submitted."
	NoticeUnknownUniversity     = "No university with this name exists; nothing was updated."
)

// RelationalStore executes SQL statements
type RelationalStore interface {
	Query(ctx context.Context, stmt query.Statement) ([]storage.Row, error)
	ExecutePrepared(ctx context.Context, arg string) ([]storage.Row, error)
}

// DocumentStore executes finds, aggregations and single-document updates
type DocumentStore interface {
	Find(ctx context.Context, collection string, filter interface{}) ([]bson.M, error)
	Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline) ([]bson.M, error)
	UpdateOne(ctx context.Context, collection string, filter, update interface{}) (storage.UpdateResult, error)
}

// GraphStore executes Cypher statements
type GraphStore interface {
	Execute(ctx context.Context, stmt query.Cypher) (*storage.GraphResult, error)
}

// Dashboard holds the three stores and the state shared by all widgets
type Dashboard struct {
	relational RelationalStore
	document   DocumentStore
	graph      GraphStore
	sessions   *session.Store
	validate   *validator.Validate
	logger     *logrus.Logger

	mu           sync.RWMutex
	catalog      academic.Catalog
	universities mapset.Set[string]
}

// New creates a dashboard over the given stores
func New(relational RelationalStore, document DocumentStore, graph GraphStore, sessions *session.Store, logger *logrus.Logger) *Dashboard {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if sessions == nil {
		sessions = session.New()
	}
	return &Dashboard{
		relational:   relational,
		document:     document,
		graph:        graph,
		sessions:     sessions,
		validate:     validator.New(),
		logger:       logger,
		universities: mapset.NewThreadUnsafeSet[string](),
	}
}

// Sessions exposes the per-session state store
func (d *Dashboard) Sessions() *session.Store {
	return d.sessions
}

func (d *Dashboard) record(view string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrNoUpdate):
		outcome = "no_update"
	case errors.Is(err, ErrInvalidInput):
		outcome = "invalid"
	default:
		outcome = "error"
		d.logger.WithError(err).WithField("view", view).Warn("View operation failed")
	}
	metrics.ViewRequests.WithLabelValues(view, outcome).Inc()
}

// years fills each missing bound from the catalog
func (d *Dashboard) years(r academic.YearRange) academic.YearRange {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if r.Min == 0 {
		r.Min = d.catalog.Years.Min
	}
	if r.Max == 0 {
		r.Max = d.catalog.Years.Max
	}
	return r
}

// normalizeNames trims, drops empties and removes duplicates, keeping first occurrence order
func normalizeNames(names []string) []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || !seen.Add(n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func decodeDocument(doc bson.M, out interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "failed to encode document")
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "failed to decode document")
	}
	return nil
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return toText(t)
	}
}

func toText(v interface{}) string {
	switch t := v.(type) {
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func asInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	case float32:
		return int64(t)
	case float64:
		return int64(t)
	case []byte:
		return asInt64(string(t))
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return int64(f)
		}
	}
	return 0
}

func asFloat64(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f
		}
	}
	return 0
}
