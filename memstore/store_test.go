package memstore

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-memdb"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID string
}

func testSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			"row": {
				Name: "row",
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
				},
			},
		},
	}
}

func Test_TxnCommitAndAbort(t *testing.T) {
	store, err := NewMemoryStore(testSchema(), hclog.NewNullLogger())
	require.NoError(t, err)

	tx := store.Txn(true)
	require.NoError(t, tx.Insert("row", &row{ID: "committed"}))
	require.NoError(t, tx.Commit())

	tx = store.Txn(true)
	require.NoError(t, tx.Insert("row", &row{ID: "aborted"}))
	tx.Abort()

	read := store.Txn(false)
	defer read.Abort()

	raw, err := read.First("row", "id", "committed")
	require.NoError(t, err)
	require.NotNil(t, raw)

	raw, err = read.First("row", "id", "aborted")
	require.NoError(t, err)
	require.Nil(t, raw)
}
