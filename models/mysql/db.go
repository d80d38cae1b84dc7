package mysql

import (
	"time"

	"golang.org/x/xerrors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/heart-network/marketplace/models/repo"
)

type MysqlConfig struct {
	ConnectionString string
	MaxOpenConn      int
	MaxIdleConn      int
	ConnMaxLifeTime  time.Duration
	Debug            bool
}

type MysqlRepo struct {
	*gorm.DB
}

var _ repo.Repo = (*MysqlRepo)(nil)

func OpenMysql(cfg *MysqlConfig) (repo.Repo, error) {
	db, err := gorm.Open(mysql.Open(cfg.ConnectionString), &gorm.Config{})
	if err != nil {
		return nil, xerrors.Errorf("db connection failed: %w", err)
	}

	db.Set("gorm:table_options", "CHARSET=utf8mb4")
	if cfg.Debug {
		db = db.Debug()
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifeTime)

	return &MysqlRepo{db}, nil
}

func (r MysqlRepo) AskRepo() repo.AskRepo {
	return NewAskRepo(r.DB)
}

func (r MysqlRepo) BidRepo() repo.BidRepo {
	return NewBidRepo(r.DB)
}

func (r MysqlRepo) ParamsRepo() repo.ParamsRepo {
	return NewParamsRepo(r.DB)
}

func (r MysqlRepo) HookRepo() repo.HookRepo {
	return NewHookRepo(r.DB)
}

func (r MysqlRepo) Migrate() error {
	return r.DB.AutoMigrate(marketplaceAsk{}, marketplaceBid{}, marketplaceParams{}, marketplaceHook{})
}

func (r MysqlRepo) Close() error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
