package services

import (
	"os"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Config holds the backend and transport settings read from the environment
type Config struct {
	// Relational store
	MySQLDSN string

	// Document store
	MongoURI      string
	MongoDatabase string

	// Graph store
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jDatabase string

	// Transport
	EnableTools []string
	EnableSSE   bool
	HTTPAddr    string

	LogLevel logrus.Level
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid LOG_LEVEL")
	}

	cfg := &Config{
		MySQLDSN: getEnv("MYSQL_DSN", mysqlDSN(
			getEnv("MYSQL_USER", "root"),
			os.Getenv("MYSQL_PASSWORD"),
			getEnv("MYSQL_HOST", "localhost:3306"),
			getEnv("MYSQL_DATABASE", "academicworld"),
		)),

		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "academicworld"),

		Neo4jURI:      getEnv("NEO4J_URI", "neo4j://localhost"),
		Neo4jUser:     getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword: getEnv("NEO4J_PASSWORD", "password"),
		Neo4jDatabase: getEnv("NEO4J_DATABASE", "academicworld"),

		EnableTools: splitList(os.Getenv("ENABLE_TOOLS")),
		EnableSSE:   getEnvBool("ENABLE_SSE", false),
		HTTPAddr:    os.Getenv("HTTP_ADDR"),

		LogLevel: level,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every DSN parses
func (c *Config) Validate() error {
	if _, err := mysql.ParseDSN(c.MySQLDSN); err != nil {
		return errors.Wrap(err, "invalid MYSQL_DSN")
	}
	if !strings.HasPrefix(c.MongoURI, "mongodb://") && !strings.HasPrefix(c.MongoURI, "mongodb+srv://") {
		return errors.Errorf("invalid MONGO_URI %q", c.MongoURI)
	}
	if c.Neo4jURI == "" {
		return errors.New("NEO4J_URI is required")
	}
	return nil
}

// ToolEnabled reports whether a tool group is enabled; an empty ENABLE_TOOLS enables everything
func (c *Config) ToolEnabled(name string) bool {
	if len(c.EnableTools) == 0 {
		return true
	}
	for _, t := range c.EnableTools {
		if t == name {
			return true
		}
	}
	return false
}

func mysqlDSN(user, password, addr, database string) string {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = addr
	cfg.DBName = database
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return value == "yes"
	}
	return b
}
