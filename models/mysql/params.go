package mysql

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/filecoin-project/go-address"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/heart-network/marketplace/models/repo"
	"github.com/heart-network/marketplace/types"
)

const paramsTableName = "marketplace_params"

// marketplaceParams is the parameter singleton pinned to id 1.
type marketplaceParams struct {
	ID           uint     `gorm:"primary_key"`
	AskExpiryMin uint64   `gorm:"column:ask_expiry_min;type:bigint unsigned;NOT NULL"`
	AskExpiryMax uint64   `gorm:"column:ask_expiry_max;type:bigint unsigned;NOT NULL"`
	BidExpiryMin uint64   `gorm:"column:bid_expiry_min;type:bigint unsigned;NOT NULL"`
	BidExpiryMax uint64   `gorm:"column:bid_expiry_max;type:bigint unsigned;NOT NULL"`
	Operators    []byte   `gorm:"column:operators;type:text"`
	MinPrice     DBAmount `gorm:"column:min_price;type:varchar(256);NOT NULL"`
	ListingFee   DBAmount `gorm:"column:listing_fee;type:varchar(256);NOT NULL"`
}

func (p *marketplaceParams) TableName() string {
	return paramsTableName
}

type paramsRepo struct {
	*gorm.DB
}

var _ repo.ParamsRepo = (*paramsRepo)(nil)

func NewParamsRepo(db *gorm.DB) repo.ParamsRepo {
	return &paramsRepo{db}
}

func (r *paramsRepo) GetParams(ctx context.Context) (*types.Params, error) {
	var m marketplaceParams
	if err := r.WithContext(ctx).Take(&m, "id = ?", 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrNotFound
		}
		return nil, err
	}

	var raw []string
	if len(m.Operators) > 0 {
		if err := json.Unmarshal(m.Operators, &raw); err != nil {
			return nil, err
		}
	}
	operators := make([]address.Address, 0, len(raw))
	for _, s := range raw {
		addr, err := address.NewFromString(s)
		if err != nil {
			return nil, err
		}
		operators = append(operators, addr)
	}

	minPrice, err := m.MinPrice.amount()
	if err != nil {
		return nil, err
	}
	listingFee, err := m.ListingFee.amount()
	if err != nil {
		return nil, err
	}

	return &types.Params{
		AskExpiry:  types.ExpiryRange{Min: m.AskExpiryMin, Max: m.AskExpiryMax},
		BidExpiry:  types.ExpiryRange{Min: m.BidExpiryMin, Max: m.BidExpiryMax},
		Operators:  operators,
		MinPrice:   minPrice,
		ListingFee: listingFee,
	}, nil
}

func (r *paramsRepo) SetParams(ctx context.Context, params *types.Params) error {
	raw := make([]string, 0, len(params.Operators))
	for _, addr := range params.Operators {
		raw = append(raw, addr.String())
	}
	operators, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	minPrice, err := NewDBAmount(params.MinPrice)
	if err != nil {
		return err
	}
	listingFee, err := NewDBAmount(params.ListingFee)
	if err != nil {
		return err
	}

	return r.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&marketplaceParams{
		ID:           1,
		AskExpiryMin: params.AskExpiry.Min,
		AskExpiryMax: params.AskExpiry.Max,
		BidExpiryMin: params.BidExpiry.Min,
		BidExpiryMax: params.BidExpiry.Max,
		Operators:    operators,
		MinPrice:     minPrice,
		ListingFee:   listingFee,
	}).Error
}
