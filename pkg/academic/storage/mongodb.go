package storage

import (
	"context"
	"time"

	"github.com/athapong/academicworld-mcp/pkg/academic/metrics"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const backendMongo = "mongodb"

// UpdateResult reports how many documents an update matched and changed
type UpdateResult struct {
	Matched  int64
	Modified int64
}

// MongoStore executes finds, aggregations and single-document updates
type MongoStore struct {
	uri      string
	database string
	client   *mongo.Client
	db       *mongo.Database
	logger   *logrus.Logger
}

// NewMongoStore creates an unconnected document store
func NewMongoStore(uri, database string, logger *logrus.Logger) *MongoStore {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return &MongoStore{uri: uri, database: database, logger: logger}
}

// Connect creates the client and pings the server. Failures are logged and the
// store stays unusable.
func (s *MongoStore) Connect(ctx context.Context) bool {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.uri))
	if err != nil {
		s.logger.WithError(err).Error("Failed to create MongoDB client")
		metrics.SetConnected(backendMongo, false)
		return false
	}
	if err := client.Ping(ctx, nil); err != nil {
		s.logger.WithError(err).Error("Failed to connect to MongoDB")
		client.Disconnect(ctx)
		metrics.SetConnected(backendMongo, false)
		return false
	}

	s.client = client
	s.db = client.Database(s.database)
	metrics.SetConnected(backendMongo, true)
	return true
}

// Find returns all documents of collection matching filter
func (s *MongoStore) Find(ctx context.Context, collection string, filter interface{}) (docs []bson.M, err error) {
	if s.db == nil {
		return nil, ErrNotConnected
	}
	defer func(start time.Time) { metrics.ObserveQuery(backendMongo, "find", start, err) }(time.Now())

	cursor, err := s.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find in %s", collection)
	}
	docs = make([]bson.M, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s documents", collection)
	}
	return docs, nil
}

// Aggregate runs pipeline over collection
func (s *MongoStore) Aggregate(ctx context.Context, collection string, pipeline mongo.Pipeline) (docs []bson.M, err error) {
	if s.db == nil {
		return nil, ErrNotConnected
	}
	defer func(start time.Time) { metrics.ObserveQuery(backendMongo, "aggregate", start, err) }(time.Now())

	cursor, err := s.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to aggregate %s", collection)
	}
	docs = make([]bson.M, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s aggregation", collection)
	}
	return docs, nil
}

// UpdateOne applies update to the first document matching filter
func (s *MongoStore) UpdateOne(ctx context.Context, collection string, filter, update interface{}) (res UpdateResult, err error) {
	if s.db == nil {
		return UpdateResult{}, ErrNotConnected
	}
	defer func(start time.Time) { metrics.ObserveQuery(backendMongo, "update_one", start, err) }(time.Now())

	result, err := s.db.Collection(collection).UpdateOne(ctx, filter, update)
	if err != nil {
		return UpdateResult{}, errors.Wrapf(err, "failed to update %s", collection)
	}
	return UpdateResult{Matched: result.MatchedCount, Modified: result.ModifiedCount}, nil
}

// Close disconnects the client
func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
