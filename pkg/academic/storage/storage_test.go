package storage

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/athapong/academicworld-mcp/pkg/academic/query"
	"github.com/neo4j/neo4j-go-driver/v4/neo4j"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*MySQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectPrepare(query.MostCited().Text)
	store, err := NewMySQLStoreFromDB(context.Background(), db, logrus.New())
	require.NoError(t, err)
	return store, mock
}

func TestMySQLStore_Query(t *testing.T) {
	store, mock := newMockStore(t)
	stmt := query.UniversityKeywordRanking([]string{"machine learning"}, 2010, 2020)

	mock.ExpectQuery(stmt.Text).
		WithArgs("machine learning", int64(2010), int64(2020)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "c"}).
			AddRow([]byte("MIT"), int64(12)).
			AddRow([]byte("CMU"), int64(7)))

	rows, err := store.Query(context.Background(), stmt)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{"MIT", int64(12)}, rows[0])
	assert.Equal(t, Row{"CMU", int64(7)}, rows[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStore_QueryEmpty(t *testing.T) {
	store, mock := newMockStore(t)
	stmt := query.Names("keyword")

	mock.ExpectQuery(stmt.Text).WillReturnRows(sqlmock.NewRows([]string{"name"}))

	rows, err := store.Query(context.Background(), stmt)

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestMySQLStore_QueryError(t *testing.T) {
	store, mock := newMockStore(t)
	stmt := query.Names("faculty")

	mock.ExpectQuery(stmt.Text).WillReturnError(errors.New("table missing"))

	_, err := store.Query(context.Background(), stmt)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "table missing")
}

func TestMySQLStore_ExecutePrepared(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(query.MostCited().Text).
		WithArgs("Jane Doe").
		WillReturnRows(sqlmock.NewRows([]string{"title", "num_citations"}).
			AddRow("Deep Nets", int64(300)))

	rows, err := store.ExecutePrepared(context.Background(), "Jane Doe")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Deep Nets", rows[0][0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStore_NotConnected(t *testing.T) {
	store := NewMySQLStore("", nil)

	_, err := store.Query(context.Background(), query.Names("keyword"))
	assert.True(t, errors.Is(err, ErrNotConnected))

	_, err = store.ExecutePrepared(context.Background(), "x")
	assert.True(t, errors.Is(err, ErrNotConnected))
}

func TestMySQLStore_NothingPrepared(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := &MySQLStore{db: db, logger: logrus.New()}
	rows, err := store.ExecutePrepared(context.Background(), "Jane Doe")

	assert.NoError(t, err)
	assert.Nil(t, rows)
}

func TestMongoStore_NotConnected(t *testing.T) {
	store := NewMongoStore("mongodb://localhost:27017", "academicworld", nil)

	_, err := store.Find(context.Background(), query.FacultyCollection, query.FacultyByName("x"))
	assert.True(t, errors.Is(err, ErrNotConnected))

	_, err = store.Aggregate(context.Background(), query.FacultyCollection, query.ResearchVolume(nil))
	assert.True(t, errors.Is(err, ErrNotConnected))

	_, err = store.UpdateOne(context.Background(), query.FacultyCollection, query.FacultyByID(1), nil)
	assert.True(t, errors.Is(err, ErrNotConnected))
}

func TestIsConstraintViolation(t *testing.T) {
	violation := &neo4j.Neo4jError{Code: "Neo.ClientError.Schema.ConstraintValidationFailed", Msg: "already exists"}
	other := &neo4j.Neo4jError{Code: "Neo.ClientError.Statement.SyntaxError"}

	assert.True(t, IsConstraintViolation(violation))
	assert.True(t, IsConstraintViolation(errors.Wrap(violation, "failed to run statement")))
	assert.False(t, IsConstraintViolation(other))
	assert.False(t, IsConstraintViolation(errors.New("boom")))
	assert.False(t, IsConstraintViolation(nil))
}

func TestRecordMaps(t *testing.T) {
	records := []*neo4j.Record{
		{Keys: []string{"name", "krc"}, Values: []interface{}{"Ada", 12.5}},
		{Keys: []string{"name", "krc"}, Values: []interface{}{"Alan", int64(3)}},
	}

	maps := recordMaps(records)

	require.Len(t, maps, 2)
	assert.Equal(t, "Ada", maps[0]["name"])
	assert.Equal(t, int64(3), maps[1]["krc"])
}
