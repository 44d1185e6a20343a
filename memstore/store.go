// Package memstore wraps hashicorp/go-memdb with the transaction discipline
// the repositories rely on: one write transaction per mutating operation,
// committed once or aborted whole. Write transactions are exclusive, so
// invariant checks performed inside a transaction stay valid until commit.
package memstore

import (
	log "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-memdb"
)

type MemoryStorableObject interface {
	ObjType() string
	ObjId() string
}

type MemoryStore struct {
	*memdb.MemDB

	logger log.Logger
}

type MemoryStoreTxn struct {
	*memdb.Txn

	memstore *MemoryStore // crosslink
}

func NewMemoryStore(schema *memdb.DBSchema, logger log.Logger) (*MemoryStore, error) {
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{
		MemDB:  db,
		logger: logger,
	}, nil
}

func (ms *MemoryStore) Txn(write bool) *MemoryStoreTxn {
	return &MemoryStoreTxn{ms.MemDB.Txn(write), ms}
}

func (mst *MemoryStoreTxn) Commit() error {
	mst.Txn.Commit()
	return nil
}

func (mst *MemoryStoreTxn) Abort() {
	mst.Txn.Abort()
}
