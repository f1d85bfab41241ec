package services

import (
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MYSQL_DSN", "MYSQL_USER", "MYSQL_PASSWORD", "MYSQL_HOST", "MYSQL_DATABASE",
		"MONGO_URI", "MONGO_DATABASE",
		"NEO4J_URI", "NEO4J_USER", "NEO4J_PASSWORD", "NEO4J_DATABASE",
		"ENABLE_TOOLS", "ENABLE_SSE", "HTTP_ADDR", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()

	require.NoError(t, err)
	dsn, err := mysql.ParseDSN(cfg.MySQLDSN)
	require.NoError(t, err)
	assert.Equal(t, "root", dsn.User)
	assert.Equal(t, "localhost:3306", dsn.Addr)
	assert.Equal(t, "academicworld", dsn.DBName)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "academicworld", cfg.Neo4jDatabase)
	assert.False(t, cfg.EnableSSE)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.True(t, cfg.ToolEnabled("dashboard"))
}

func TestLoadConfig_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MYSQL_USER", "shane")
	t.Setenv("MYSQL_HOST", "db:3307")
	t.Setenv("MONGO_URI", "mongodb+srv://cluster.example.com")
	t.Setenv("ENABLE_TOOLS", "dashboard, reviews")
	t.Setenv("ENABLE_SSE", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	dsn, err := mysql.ParseDSN(cfg.MySQLDSN)
	require.NoError(t, err)
	assert.Equal(t, "shane", dsn.User)
	assert.Equal(t, "db:3307", dsn.Addr)
	assert.True(t, cfg.EnableSSE)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, []string{"dashboard", "reviews"}, cfg.EnableTools)
	assert.True(t, cfg.ToolEnabled("reviews"))
	assert.False(t, cfg.ToolEnabled("universities"))
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "log level", key: "LOG_LEVEL", val: "chatty"},
		{name: "mongo uri", key: "MONGO_URI", val: "http://localhost"},
		{name: "mysql dsn", key: "MYSQL_DSN", val: "not a dsn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := LoadConfig()

			assert.Error(t, err)
		})
	}
}
