package mysql

import (
	"context"
	"errors"

	"github.com/filecoin-project/go-address"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/heart-network/marketplace/models/repo"
	"github.com/heart-network/marketplace/types"
)

const askTableName = "marketplace_asks"

type marketplaceAsk struct {
	ID             uint      `gorm:"primary_key"`
	SaleType       string    `gorm:"column:sale_type;type:varchar(32);NOT NULL"`
	Collection     DBAddress `gorm:"column:collection;type:varchar(256);uniqueIndex:uidx_collection_token;index:idx_collection_price;NOT NULL"`
	TokenID        string    `gorm:"column:token_id;type:varchar(256);uniqueIndex:uidx_collection_token;NOT NULL"`
	Seller         DBAddress `gorm:"column:seller;type:varchar(256);index:idx_seller;NOT NULL"`
	Price          DBAmount  `gorm:"column:price;type:varchar(256);index:idx_collection_price;NOT NULL"`
	FundsRecipient DBAddress `gorm:"column:funds_recipient;type:varchar(256);default:''"`
	ExpiresAt      uint64    `gorm:"column:expires_at;type:bigint unsigned;NOT NULL"`
	MaxBidder      DBAddress `gorm:"column:max_bidder;type:varchar(256);NOT NULL"`
	MaxBid         DBAmount  `gorm:"column:max_bid;type:varchar(256);NOT NULL"`
}

func (a *marketplaceAsk) TableName() string {
	return askTableName
}

func fromAsk(ask *types.Ask) (*marketplaceAsk, error) {
	price, err := NewDBAmount(ask.Price)
	if err != nil {
		return nil, err
	}
	maxBid, err := NewDBAmount(ask.MaxBid)
	if err != nil {
		return nil, err
	}
	m := &marketplaceAsk{
		SaleType:   string(ask.SaleType),
		Collection: NewDBAddress(ask.Collection),
		TokenID:    ask.TokenID,
		Seller:     NewDBAddress(ask.Seller),
		Price:      price,
		ExpiresAt:  ask.ExpiresAt,
		MaxBidder:  NewDBAddress(ask.MaxBidder),
		MaxBid:     maxBid,
	}
	if ask.FundsRecipient != nil {
		m.FundsRecipient = NewDBAddress(*ask.FundsRecipient)
	}
	return m, nil
}

func toAsk(m *marketplaceAsk) (*types.Ask, error) {
	collection, err := m.Collection.addr()
	if err != nil {
		return nil, err
	}
	seller, err := m.Seller.addr()
	if err != nil {
		return nil, err
	}
	maxBidder, err := m.MaxBidder.addr()
	if err != nil {
		return nil, err
	}
	price, err := m.Price.amount()
	if err != nil {
		return nil, err
	}
	maxBid, err := m.MaxBid.amount()
	if err != nil {
		return nil, err
	}
	ask := &types.Ask{
		SaleType:   types.SaleType(m.SaleType),
		Collection: collection,
		TokenID:    m.TokenID,
		Seller:     seller,
		Price:      price,
		ExpiresAt:  m.ExpiresAt,
		MaxBidder:  maxBidder,
		MaxBid:     maxBid,
	}
	if m.FundsRecipient != emptyAddress {
		recipient, err := m.FundsRecipient.addr()
		if err != nil {
			return nil, err
		}
		ask.FundsRecipient = &recipient
	}
	return ask, nil
}

type askRepo struct {
	*gorm.DB
}

var _ repo.AskRepo = (*askRepo)(nil)

func NewAskRepo(db *gorm.DB) repo.AskRepo {
	return &askRepo{db}
}

func (r *askRepo) CreateAsk(ctx context.Context, ask *types.Ask) error {
	m, err := fromAsk(ask)
	if err != nil {
		return err
	}
	var count int64
	if err := r.WithContext(ctx).Table(askTableName).
		Where("collection = ? AND token_id = ?", m.Collection, m.TokenID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return repo.ErrAskExists
	}
	return r.WithContext(ctx).Create(m).Error
}

func (r *askRepo) SaveAsk(ctx context.Context, ask *types.Ask) error {
	m, err := fromAsk(ask)
	if err != nil {
		return err
	}
	return r.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "token_id"}},
		UpdateAll: true,
	}).Create(m).Error
}

func (r *askRepo) GetAsk(ctx context.Context, key types.AskKey) (*types.Ask, error) {
	var m marketplaceAsk
	if err := r.WithContext(ctx).Take(&m, "collection = ? AND token_id = ?",
		NewDBAddress(key.Collection), key.TokenID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	return toAsk(&m)
}

func (r *askRepo) HasAsk(ctx context.Context, key types.AskKey) (bool, error) {
	var count int64
	err := r.WithContext(ctx).Table(askTableName).
		Where("collection = ? AND token_id = ?", NewDBAddress(key.Collection), key.TokenID).
		Count(&count).Error
	return count > 0, err
}

func (r *askRepo) RemoveAsk(ctx context.Context, key types.AskKey) error {
	tx := r.WithContext(ctx).
		Where("collection = ? AND token_id = ?", NewDBAddress(key.Collection), key.TokenID).
		Delete(&marketplaceAsk{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *askRepo) ListAsksByCollection(ctx context.Context, collection address.Address, descending bool, startAfter types.TokenID, limit int) ([]*types.Ask, error) {
	q := r.WithContext(ctx).Where("collection = ?", NewDBAddress(collection))
	if startAfter != "" {
		if descending {
			q = q.Where("token_id < ?", startAfter)
		} else {
			q = q.Where("token_id > ?", startAfter)
		}
	}
	if descending {
		q = q.Order("token_id DESC")
	} else {
		q = q.Order("token_id")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var ms []marketplaceAsk
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	return toAsks(ms)
}

func (r *askRepo) ListAsksByCollectionPrice(ctx context.Context, collection address.Address, descending bool, startAfter *repo.PricePoint, limit int) ([]*types.Ask, error) {
	q := r.WithContext(ctx).Where("collection = ?", NewDBAddress(collection))
	if startAfter != nil {
		bound, err := NewDBAmount(startAfter.Price)
		if err != nil {
			return nil, err
		}
		if descending {
			q = q.Where("price < ? OR (price = ? AND token_id < ?)", bound, bound, startAfter.TokenID)
		} else {
			q = q.Where("price > ? OR (price = ? AND token_id > ?)", bound, bound, startAfter.TokenID)
		}
	}
	if descending {
		q = q.Order("price DESC").Order("token_id DESC")
	} else {
		q = q.Order("price").Order("token_id")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var ms []marketplaceAsk
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	return toAsks(ms)
}

func (r *askRepo) ListAsksBySeller(ctx context.Context, seller address.Address, startAfter *types.AskKey, limit int) ([]*types.Ask, error) {
	q := r.WithContext(ctx).Where("seller = ?", NewDBAddress(seller))
	if startAfter != nil {
		bound := NewDBAddress(startAfter.Collection)
		q = q.Where("collection > ? OR (collection = ? AND token_id > ?)", bound, bound, startAfter.TokenID)
	}
	q = q.Order("collection").Order("token_id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var ms []marketplaceAsk
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	return toAsks(ms)
}

func (r *askRepo) CountAsksByCollection(ctx context.Context, collection address.Address) (int64, error) {
	var count int64
	err := r.WithContext(ctx).Table(askTableName).
		Where("collection = ?", NewDBAddress(collection)).
		Count(&count).Error
	return count, err
}

func (r *askRepo) ListCollections(ctx context.Context, startAfter address.Address, limit int) ([]address.Address, error) {
	q := r.WithContext(ctx).Table(askTableName).Distinct()
	if startAfter != address.Undef {
		q = q.Where("collection > ?", NewDBAddress(startAfter))
	}
	q = q.Order("collection")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []DBAddress
	if err := q.Pluck("collection", &rows).Error; err != nil {
		return nil, err
	}
	collections := make([]address.Address, 0, len(rows))
	for _, row := range rows {
		collection, err := row.addr()
		if err != nil {
			return nil, err
		}
		collections = append(collections, collection)
	}
	return collections, nil
}

func toAsks(ms []marketplaceAsk) ([]*types.Ask, error) {
	asks := make([]*types.Ask, 0, len(ms))
	for i := range ms {
		ask, err := toAsk(&ms[i])
		if err != nil {
			return nil, err
		}
		asks = append(asks, ask)
	}
	return asks, nil
}
