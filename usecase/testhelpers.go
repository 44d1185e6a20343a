package usecase

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/openxroad/adminapi/fixtures"
	"github.com/openxroad/adminapi/globalconf"
	"github.com/openxroad/adminapi/memstore"
	"github.com/openxroad/adminapi/model"
	"github.com/openxroad/adminapi/repo"
)

func RunFixtures(t *testing.T, fixtureFuncs ...func(t *testing.T, store *memstore.MemoryStore)) *memstore.MemoryStore {
	schema, err := repo.GetSchema()
	require.NoError(t, err)
	store, err := memstore.NewMemoryStore(schema, hclog.NewNullLogger())
	require.NoError(t, err)
	for _, fixture := range fixtureFuncs {
		fixture(t, store)
	}
	return store
}

func ClientFixture(t *testing.T, store *memstore.MemoryStore) {
	tx := store.Txn(true)
	repository := repo.NewClientRepository(tx)
	for _, client := range fixtures.Clients() {
		tmp := client
		require.NoError(t, repository.Create(&tmp))
	}
	require.NoError(t, tx.Commit())
}

func EndpointFixture(t *testing.T, store *memstore.MemoryStore) {
	tx := store.Txn(true)
	repository := repo.NewEndpointRepository(tx)
	for _, endpoint := range fixtures.Endpoints() {
		tmp := endpoint
		require.NoError(t, repository.Create(&tmp))
	}
	require.NoError(t, tx.Commit())
}

func LocalGroupFixture(t *testing.T, store *memstore.MemoryStore) {
	tx := store.Txn(true)
	repository := repo.NewLocalGroupRepository(tx)
	for _, group := range fixtures.LocalGroups() {
		tmp := group
		require.NoError(t, repository.Create(&tmp))
	}
	require.NoError(t, tx.Commit())
}

// TestDirectory returns a directory store filled with the fixture snapshot.
func TestDirectory() *globalconf.Store {
	store := globalconf.NewStore()
	store.Replace(fixtures.DirectorySnapshot())
	return store
}

// EmptyDirectory returns a directory store with no snapshot installed: every
// query fails with ErrDirectoryUnavailable.
func EmptyDirectory() *globalconf.Store {
	return globalconf.NewStore()
}

func endpointACL(t *testing.T, store *memstore.MemoryStore, endpointUUID string) []*model.AccessRight {
	tx := store.Txn(false)
	defer tx.Abort()
	rights, err := repo.NewAccessRightRepository(tx).ListByEndpoint(endpointUUID)
	require.NoError(t, err)
	return rights
}
