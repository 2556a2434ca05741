package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"stock-portfolio-service/internal/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var positionColumns = []string{"id", "user_id", "symbol", "shares", "avg_price", "last_price", "price_updated_at"}

func TestPortfolioRepositoryFindByUserID(t *testing.T) {
	db, sqlMock := newMockDB(t)
	repo := NewPortfolioRepository(db)

	sqlMock.ExpectQuery(`SELECT \* FROM "portfolio" WHERE user_id = \$1 ORDER BY id ASC`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(positionColumns).
			AddRow(1, 1, "AAPL", 10, 150.0, 190.5, time.Now()).
			AddRow(3, 1, "MSFT", 2, 400.0, nil, nil))
	sqlMock.ExpectQuery(`SELECT \* FROM "portfolio" WHERE user_id = \$1`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(positionColumns))

	positions, err := repo.FindByUserID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, positions, 2)
	assert.Equal(t, "AAPL", positions[0].Symbol)
	require.NotNil(t, positions[0].LastPrice)
	assert.Equal(t, 190.5, *positions[0].LastPrice)
	assert.Nil(t, positions[1].LastPrice)
	assert.Nil(t, positions[1].PriceUpdatedAt)

	positions, err = repo.FindByUserID(context.Background(), 2)
	require.NoError(t, err)
	assert.NotNil(t, positions)
	assert.Empty(t, positions)
}

func TestPortfolioRepositoryFindForUpdateLocksRow(t *testing.T) {
	db, sqlMock := newMockDB(t)
	repo := NewPortfolioRepository(db)

	sqlMock.ExpectQuery(`SELECT \* FROM "portfolio" WHERE user_id = \$1 AND symbol = \$2 .*FOR UPDATE$`).
		WillReturnRows(sqlmock.NewRows(positionColumns).AddRow(4, 1, "AAPL", 10, 150.0, nil, nil))
	sqlMock.ExpectQuery(`SELECT \* FROM "portfolio" WHERE user_id = \$1 AND symbol = \$2 .*FOR UPDATE$`).
		WillReturnRows(sqlmock.NewRows(positionColumns))

	position, err := repo.FindForUpdate(context.Background(), 1, "AAPL")
	require.NoError(t, err)
	require.NotNil(t, position)
	assert.Equal(t, uint(4), position.ID)
	assert.Equal(t, int64(10), position.Shares)

	position, err = repo.FindForUpdate(context.Background(), 1, "TSLA")
	require.NoError(t, err)
	assert.Nil(t, position)
}

func TestPortfolioRepositoryCreateIfAbsent(t *testing.T) {
	db, sqlMock := newMockDB(t)
	repo := NewPortfolioRepository(db)
	const insert = `INSERT INTO "portfolio" .* ON CONFLICT \("user_id","symbol"\) DO NOTHING RETURNING "id"`

	sqlMock.ExpectQuery(insert).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	// A conflicting row suppresses the insert, so nothing comes back.
	sqlMock.ExpectQuery(insert).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	position := &entity.Position{UserID: 1, Symbol: "AAPL", Shares: 10, AvgPrice: 150}
	inserted, err := repo.CreateIfAbsent(context.Background(), position)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, uint(5), position.ID)

	inserted, err = repo.CreateIfAbsent(context.Background(), &entity.Position{UserID: 1, Symbol: "AAPL", Shares: 1, AvgPrice: 1})
	require.NoError(t, err)
	assert.False(t, inserted)
}

func TestPortfolioRepositoryUpdateHoldingAndDelete(t *testing.T) {
	db, sqlMock := newMockDB(t)
	repo := NewPortfolioRepository(db)

	sqlMock.ExpectExec(`UPDATE "portfolio" SET "avg_price"=\$1,"shares"=\$2 WHERE id = \$3`).
		WithArgs(175.0, 20, 4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectExec(`DELETE FROM "portfolio" WHERE "portfolio"."id" = \$1`).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateHolding(context.Background(), 4, 20, 175))
	require.NoError(t, repo.Delete(context.Background(), 4))
}

func TestPortfolioRepositoryDistinctSymbols(t *testing.T) {
	db, sqlMock := newMockDB(t)
	repo := NewPortfolioRepository(db)

	sqlMock.ExpectQuery(`SELECT DISTINCT "symbol" FROM "portfolio" ORDER BY symbol ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"symbol"}).AddRow("AAPL").AddRow("MSFT"))

	symbols, err := repo.DistinctSymbols(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, symbols)
}

func TestPortfolioRepositoryUpdatePriceBySymbol(t *testing.T) {
	db, sqlMock := newMockDB(t)
	repo := NewPortfolioRepository(db)
	at := time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)

	sqlMock.ExpectExec(`UPDATE "portfolio" SET "last_price"=\$1,"price_updated_at"=\$2 WHERE symbol = \$3`).
		WithArgs(190.5, at, "AAPL").
		WillReturnResult(sqlmock.NewResult(0, 3))
	sqlMock.ExpectExec(`UPDATE "portfolio" SET "avg_price"=\$1,"last_price"=\$2,"price_updated_at"=\$3 WHERE symbol = \$4`).
		WithArgs(190.5, 190.5, at, "AAPL").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.UpdatePriceBySymbol(context.Background(), "AAPL", 190.5, at, false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = repo.UpdatePriceBySymbol(context.Background(), "AAPL", 190.5, at, true)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestPortfolioRepositoryTransactionCommits(t *testing.T) {
	db, sqlMock := newMockDB(t)
	repo := NewPortfolioRepository(db)

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery(`SELECT \* FROM "portfolio" WHERE user_id = \$1 AND symbol = \$2 .*FOR UPDATE$`).
		WillReturnRows(sqlmock.NewRows(positionColumns).AddRow(4, 1, "AAPL", 10, 100.0, nil, nil))
	sqlMock.ExpectExec(`UPDATE "portfolio" SET "avg_price"=\$1,"shares"=\$2 WHERE id = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectCommit()

	err := repo.Transaction(context.Background(), func(tx PortfolioRepository) error {
		position, err := tx.FindForUpdate(context.Background(), 1, "AAPL")
		if err != nil {
			return err
		}
		return tx.UpdateHolding(context.Background(), position.ID, 20, 150)
	})
	require.NoError(t, err)
}

func TestPortfolioRepositoryTransactionRollsBackOnError(t *testing.T) {
	db, sqlMock := newMockDB(t)
	repo := NewPortfolioRepository(db)
	failed := errors.New("not enough shares")

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery(`SELECT \* FROM "portfolio" WHERE user_id = \$1 AND symbol = \$2 .*FOR UPDATE$`).
		WillReturnRows(sqlmock.NewRows(positionColumns).AddRow(4, 1, "AAPL", 1, 100.0, nil, nil))
	sqlMock.ExpectRollback()

	err := repo.Transaction(context.Background(), func(tx PortfolioRepository) error {
		if _, err := tx.FindForUpdate(context.Background(), 1, "AAPL"); err != nil {
			return err
		}
		return failed
	})
	assert.ErrorIs(t, err, failed)
}
