package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/athapong/academicworld-mcp/pkg/academic/dashboard"
	"github.com/athapong/academicworld-mcp/pkg/academic/session"
	"github.com/athapong/academicworld-mcp/pkg/academic/storage"
)

const connectTimeout = 10 * time.Second

// Backends owns the three store connections
type Backends struct {
	MySQL *storage.MySQLStore
	Mongo *storage.MongoStore
	Neo4j *storage.Neo4jStore
}

// Connect opens every store. MySQL and MongoDB failures are logged and leave
// those widgets failing; an unreachable Neo4j server aborts startup.
func Connect(ctx context.Context, cfg *Config, logger *logrus.Logger) (*Backends, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	b := &Backends{
		MySQL: storage.NewMySQLStore(cfg.MySQLDSN, logger),
		Mongo: storage.NewMongoStore(cfg.MongoURI, cfg.MongoDatabase, logger),
	}

	if b.MySQL.Connect(ctx) {
		logger.Info("Connected to MySQL")
	}
	if b.Mongo.Connect(ctx) {
		logger.WithField("database", cfg.MongoDatabase).Info("Connected to MongoDB")
	}

	neo, err := storage.NewNeo4jStore(cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase, logger)
	if err != nil {
		b.Close()
		return nil, errors.Wrap(err, "failed to connect to Neo4j")
	}
	b.Neo4j = neo
	logger.WithField("database", cfg.Neo4jDatabase).Info("Connected to Neo4j")

	return b, nil
}

// Dashboard builds the widget layer over the connected stores
func (b *Backends) Dashboard(logger *logrus.Logger) *dashboard.Dashboard {
	return dashboard.New(b.MySQL, b.Mongo, b.Neo4j, session.New(), logger)
}

// Close releases every connection
func (b *Backends) Close() {
	if b.MySQL != nil {
		b.MySQL.Close()
	}
	if b.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		b.Mongo.Close(ctx)
	}
	if b.Neo4j != nil {
		b.Neo4j.Close()
	}
}
