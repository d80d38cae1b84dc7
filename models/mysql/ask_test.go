package mysql

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"

	"github.com/heart-network/marketplace/models/repo"
	"github.com/heart-network/marketplace/types"
)

func prepareAskTest(t *testing.T) (repo.Repo, sqlmock.Sqlmock, *types.Ask, func()) {
	r, mock, sqlDB := setup(t)

	ask := &types.Ask{
		SaleType:   types.Auction,
		Collection: getTestAddress(),
		TokenID:    "42",
		Seller:     getTestAddress(),
		Price:      abi.NewTokenAmount(100),
		ExpiresAt:  1000,
		MaxBidder:  getTestAddress(),
		MaxBid:     abi.NewTokenAmount(10),
	}

	return r, mock, ask, func() {
		assert.NoError(t, closeDB(mock, sqlDB))
	}
}

func askRows(t *testing.T, ask *types.Ask) *sqlmock.Rows {
	price, err := NewDBAmount(ask.Price)
	require.NoError(t, err)
	maxBid, err := NewDBAmount(ask.MaxBid)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{
		"id", "sale_type", "collection", "token_id", "seller", "price",
		"funds_recipient", "expires_at", "max_bidder", "max_bid",
	})
	rows.AddRow(1, string(ask.SaleType), NewDBAddress(ask.Collection), ask.TokenID,
		NewDBAddress(ask.Seller), price, "", ask.ExpiresAt, NewDBAddress(ask.MaxBidder), maxBid)
	return rows
}

func TestMysqlGetAsk(t *testing.T) {
	r, mock, ask, done := prepareAskTest(t)
	defer done()

	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `marketplace_asks` WHERE collection = ? AND token_id = ? LIMIT 1")).
		WithArgs(NewDBAddress(ask.Collection).String(), ask.TokenID).
		WillReturnRows(askRows(t, ask))

	got, err := r.AskRepo().GetAsk(ctx, ask.Key())
	assert.NoError(t, err)
	assert.Equal(t, ask, got)
}

func TestMysqlGetAskNotFound(t *testing.T) {
	r, mock, ask, done := prepareAskTest(t)
	defer done()

	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `marketplace_asks` WHERE collection = ? AND token_id = ? LIMIT 1")).
		WithArgs(NewDBAddress(ask.Collection).String(), ask.TokenID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := r.AskRepo().GetAsk(ctx, ask.Key())
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestMysqlSaveAsk(t *testing.T) {
	r, mock, ask, done := prepareAskTest(t)
	defer done()

	ctx := context.Background()

	db, err := getMysqlDryrunDB()
	require.NoError(t, err)
	m, err := fromAsk(ask)
	require.NoError(t, err)

	sql, vars, err := getSQL(db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "token_id"}},
		UpdateAll: true,
	}).Create(m))
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(sql)).WithArgs(vars...).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	assert.NoError(t, r.AskRepo().SaveAsk(ctx, ask))
}

func TestMysqlRemoveAsk(t *testing.T) {
	r, mock, ask, done := prepareAskTest(t)
	defer done()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `marketplace_asks` WHERE collection = ? AND token_id = ?")).
		WithArgs(NewDBAddress(ask.Collection).String(), ask.TokenID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, r.AskRepo().RemoveAsk(ctx, ask.Key()))
}

func TestMysqlRemoveAskNotFound(t *testing.T) {
	r, mock, ask, done := prepareAskTest(t)
	defer done()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `marketplace_asks` WHERE collection = ? AND token_id = ?")).
		WithArgs(NewDBAddress(ask.Collection).String(), ask.TokenID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := r.AskRepo().RemoveAsk(ctx, ask.Key())
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestMysqlListAsksDescending(t *testing.T) {
	r, mock, ask, done := prepareAskTest(t)
	defer done()

	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `marketplace_asks` WHERE collection = ? AND token_id < ? ORDER BY token_id DESC LIMIT 5")).
		WithArgs(NewDBAddress(ask.Collection).String(), "9").
		WillReturnRows(askRows(t, ask))

	asks, err := r.AskRepo().ListAsksByCollection(ctx, ask.Collection, true, "9", 5)
	assert.NoError(t, err)
	require.Len(t, asks, 1)
	assert.Equal(t, ask.TokenID, asks[0].TokenID)
}

func TestMysqlListCollections(t *testing.T) {
	r, mock, ask, done := prepareAskTest(t)
	defer done()

	ctx := context.Background()

	after := getTestAddress()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT `collection` FROM `marketplace_asks` WHERE collection > ? ORDER BY collection LIMIT 10")).
		WithArgs(NewDBAddress(after).String()).
		WillReturnRows(sqlmock.NewRows([]string{"collection"}).
			AddRow(NewDBAddress(ask.Collection).String()))

	collections, err := r.AskRepo().ListCollections(ctx, after, 10)
	assert.NoError(t, err)
	require.Len(t, collections, 1)
	assert.Equal(t, ask.Collection, collections[0])
}

func TestMysqlCountAsks(t *testing.T) {
	r, mock, ask, done := prepareAskTest(t)
	defer done()

	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `marketplace_asks` WHERE collection = ?")).
		WithArgs(NewDBAddress(ask.Collection).String()).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(3))

	count, err := r.AskRepo().CountAsksByCollection(ctx, ask.Collection)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
