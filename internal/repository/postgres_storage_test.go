package repository_test

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

type postgresStorageSuite struct {
	suite.Suite

	storage   port.CartStorage
	pool      *pgxpool.Pool
	container *postgres.PostgresContainer
}

func TestPostgresStorageSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a postgres container")
	}

	suite.Run(t, new(postgresStorageSuite))
}

func (suite *postgresStorageSuite) SetupSuite() {
	ctx := suite.T().Context()

	container, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)
	suite.container = container

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.storage = repository.NewPostgresStorage(suite.pool)
}

func (suite *postgresStorageSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if err := testcontainers.TerminateContainer(suite.container); err != nil {
		suite.T().Logf("testcontainers.TerminateContainer: %v", err)
	}
}

func (suite *postgresStorageSuite) TestContract() {
	defer suite.deleteAll()

	testStorageContract(suite.T(), suite.storage)
}

func (suite *postgresStorageSuite) TestSaveInvalidJSON() {
	err := suite.storage.Save(suite.T().Context(), randomKey(), []byte("{not json"))
	suite.EqualError(err, "payload is not valid JSON")
}

func (suite *postgresStorageSuite) TestWithTx() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	key := randomKey()
	payload := randomPayload()

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)

	txStorage := repository.NewPostgresStorageWithTx(tx)
	require.NoError(t, txStorage.Save(ctx, key, payload))

	// not visible outside the transaction until commit
	_, err = suite.storage.Load(ctx, key)
	require.ErrorIs(t, err, port.ErrKeyNotFound)

	require.NoError(t, tx.Commit(ctx))

	loaded, err := suite.storage.Load(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(loaded))
}

func (suite *postgresStorageSuite) TestWithTxRollback() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	key := randomKey()

	require.NoError(t, suite.storage.Save(ctx, key, randomPayload()))

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)

	txStorage := repository.NewPostgresStorageWithTx(tx)

	deleted, err := txStorage.Delete(ctx, key)
	require.NoError(t, err)
	assert.True(t, deleted)

	require.NoError(t, txStorage.Save(ctx, randomKey(), randomPayload()))
	require.NoError(t, tx.Rollback(ctx))

	_, err = suite.storage.Load(ctx, key)
	require.NoError(t, err, "delete rolled back with the caller's transaction")

	var rows int
	require.NoError(t, suite.pool.QueryRow(ctx, "SELECT count(*) FROM cart_storage").Scan(&rows))
	assert.Equal(t, 1, rows)
}

func (suite *postgresStorageSuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE cart_storage")
	suite.NoError(err)
}
