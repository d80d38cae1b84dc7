package mysql

import (
	"database/sql"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/filecoin-project/go-address"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/heart-network/marketplace/models/repo"
)

var getTestAddress = address.NewForTestGetter()

func setup(t *testing.T) (repo.Repo, sqlmock.Sqlmock, *sql.DB) {
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)

	mock.ExpectQuery("SELECT VERSION()").WithArgs().
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(""))

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn: sqlDB,
	}))
	assert.NoError(t, err)

	return MysqlRepo{DB: gormDB}, mock, sqlDB
}

func closeDB(mock sqlmock.Sqlmock, sqlDB *sql.DB) error {
	mock.ExpectClose()
	return sqlDB.Close()
}

func getMysqlDryrunDB() (*gorm.DB, error) {
	sqlDB, _, err := sqlmock.New()
	if err != nil {
		return nil, err
	}
	return gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true})
}

// getSQL renders the statement a dry-run query would execute.
func getSQL(db *gorm.DB) (string, []driver.Value, error) {
	if db.Error != nil {
		return "", nil, db.Error
	}
	vars := make([]driver.Value, 0, len(db.Statement.Vars))
	for _, v := range db.Statement.Vars {
		vars = append(vars, driver.Value(v))
	}
	return db.Statement.SQL.String(), vars, nil
}
