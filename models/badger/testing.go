package badger

import (
	"testing"

	badger "github.com/ipfs/go-ds-badger2"
	"github.com/stretchr/testify/assert"

	"github.com/heart-network/marketplace/models/repo"
)

func setup(t *testing.T) repo.Repo {
	r, err := NewMemRepo()
	assert.Nil(t, err)
	t.Cleanup(func() {
		assert.NoError(t, r.Close())
	})
	return r
}

func NewMemRepo() (repo.Repo, error) {
	opts := badger.DefaultOptions
	opts.InMemory = true
	db, err := badger.NewDatastore("", &opts)
	if err != nil {
		return nil, err
	}
	return NewBadgerRepo(db), nil
}
