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

const bidTableName = "marketplace_bids"

type marketplaceBid struct {
	ID         uint      `gorm:"primary_key"`
	Collection DBAddress `gorm:"column:collection;type:varchar(256);uniqueIndex:uidx_bid_key;NOT NULL"`
	TokenID    string    `gorm:"column:token_id;type:varchar(256);uniqueIndex:uidx_bid_key;NOT NULL"`
	Bidder     DBAddress `gorm:"column:bidder;type:varchar(256);uniqueIndex:uidx_bid_key;index:idx_bidder;NOT NULL"`
	Price      DBAmount  `gorm:"column:price;type:varchar(256);NOT NULL"`
	CreatedAt  uint64    `gorm:"column:created_at;type:bigint unsigned;NOT NULL"`
}

func (b *marketplaceBid) TableName() string {
	return bidTableName
}

func fromBid(bid *types.Bid) (*marketplaceBid, error) {
	price, err := NewDBAmount(bid.Price)
	if err != nil {
		return nil, err
	}
	return &marketplaceBid{
		Collection: NewDBAddress(bid.Collection),
		TokenID:    bid.TokenID,
		Bidder:     NewDBAddress(bid.Bidder),
		Price:      price,
		CreatedAt:  bid.CreatedAt,
	}, nil
}

func toBid(m *marketplaceBid) (*types.Bid, error) {
	collection, err := m.Collection.addr()
	if err != nil {
		return nil, err
	}
	bidder, err := m.Bidder.addr()
	if err != nil {
		return nil, err
	}
	price, err := m.Price.amount()
	if err != nil {
		return nil, err
	}
	return &types.Bid{
		Collection: collection,
		TokenID:    m.TokenID,
		Bidder:     bidder,
		Price:      price,
		CreatedAt:  m.CreatedAt,
	}, nil
}

type bidRepo struct {
	*gorm.DB
}

var _ repo.BidRepo = (*bidRepo)(nil)

func NewBidRepo(db *gorm.DB) repo.BidRepo {
	return &bidRepo{db}
}

func (r *bidRepo) SaveBid(ctx context.Context, bid *types.Bid) error {
	m, err := fromBid(bid)
	if err != nil {
		return err
	}
	return r.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "token_id"}, {Name: "bidder"}},
		UpdateAll: true,
	}).Create(m).Error
}

func (r *bidRepo) GetBid(ctx context.Context, key types.BidKey) (*types.Bid, error) {
	var m marketplaceBid
	if err := r.WithContext(ctx).Take(&m, "collection = ? AND token_id = ? AND bidder = ?",
		NewDBAddress(key.Collection), key.TokenID, NewDBAddress(key.Bidder)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}
	return toBid(&m)
}

func (r *bidRepo) ListBidsByToken(ctx context.Context, key types.AskKey) ([]*types.Bid, error) {
	var ms []marketplaceBid
	if err := r.WithContext(ctx).
		Where("collection = ? AND token_id = ?", NewDBAddress(key.Collection), key.TokenID).
		Order("bidder").Find(&ms).Error; err != nil {
		return nil, err
	}
	return toBids(ms)
}

func (r *bidRepo) ListBidsByBidder(ctx context.Context, bidder address.Address) ([]*types.Bid, error) {
	var ms []marketplaceBid
	if err := r.WithContext(ctx).
		Where("bidder = ?", NewDBAddress(bidder)).
		Order("collection").Order("token_id").Find(&ms).Error; err != nil {
		return nil, err
	}
	return toBids(ms)
}

func toBids(ms []marketplaceBid) ([]*types.Bid, error) {
	bids := make([]*types.Bid, 0, len(ms))
	for i := range ms {
		bid, err := toBid(&ms[i])
		if err != nil {
			return nil, err
		}
		bids = append(bids, bid)
	}
	return bids, nil
}
