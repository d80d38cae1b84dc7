package mysql

import (
	"context"

	"github.com/filecoin-project/go-address"
	"gorm.io/gorm"

	"github.com/heart-network/marketplace/models/repo"
	"github.com/heart-network/marketplace/types"
)

const hookTableName = "marketplace_hooks"

// marketplaceHook rows keep insertion order through the auto-increment id,
// which is the notification fan-out order.
type marketplaceHook struct {
	ID      uint      `gorm:"primary_key"`
	Class   string    `gorm:"column:class;type:varchar(32);uniqueIndex:uidx_class_address;NOT NULL"`
	Address DBAddress `gorm:"column:address;type:varchar(256);uniqueIndex:uidx_class_address;NOT NULL"`
}

func (h *marketplaceHook) TableName() string {
	return hookTableName
}

type hookRepo struct {
	*gorm.DB
}

var _ repo.HookRepo = (*hookRepo)(nil)

func NewHookRepo(db *gorm.DB) repo.HookRepo {
	return &hookRepo{db}
}

func (r *hookRepo) AddHook(ctx context.Context, class types.HookClass, addr address.Address) error {
	var count int64
	if err := r.WithContext(ctx).Table(hookTableName).
		Where("class = ? AND address = ?", string(class), NewDBAddress(addr)).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return repo.ErrHookExists
	}
	return r.WithContext(ctx).Create(&marketplaceHook{
		Class:   string(class),
		Address: NewDBAddress(addr),
	}).Error
}

func (r *hookRepo) RemoveHook(ctx context.Context, class types.HookClass, addr address.Address) error {
	tx := r.WithContext(ctx).
		Where("class = ? AND address = ?", string(class), NewDBAddress(addr)).
		Delete(&marketplaceHook{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return repo.ErrHookNotFound
	}
	return nil
}

func (r *hookRepo) ListHooks(ctx context.Context, class types.HookClass) ([]address.Address, error) {
	var ms []marketplaceHook
	if err := r.WithContext(ctx).
		Where("class = ?", string(class)).
		Order("id").Find(&ms).Error; err != nil {
		return nil, err
	}
	addrs := make([]address.Address, 0, len(ms))
	for _, m := range ms {
		addr, err := m.Address.addr()
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}
