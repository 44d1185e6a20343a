package repo

import (
	"github.com/hashicorp/go-memdb"

	"github.com/openxroad/adminapi/memstore"
	"github.com/openxroad/adminapi/model"
	"github.com/openxroad/adminapi/uuid"
)

const StructuralKeyIndex = "key"

func IdentifierSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			model.IdentifierType: {
				Name: model.IdentifierType,
				Indexes: map[string]*memdb.IndexSchema{
					PK: {
						Name:   PK,
						Unique: true,
						Indexer: &memdb.UUIDFieldIndex{
							Field: "UUID",
						},
					},
					StructuralKeyIndex: {
						Name:   StructuralKeyIndex,
						Unique: true,
						Indexer: &memdb.StringFieldIndex{
							Field: "Key",
						},
					},
				},
			},
		},
	}
}

type IdentifierRepository struct {
	db *memstore.MemoryStoreTxn
}

func NewIdentifierRepository(tx *memstore.MemoryStoreTxn) *IdentifierRepository {
	return &IdentifierRepository{db: tx}
}

// GetByID returns the persisted row for the identity, or nil when the
// identity has never been persisted.
func (r *IdentifierRepository) GetByID(id model.XRoadID) (*model.Identifier, error) {
	raw, err := r.db.First(model.IdentifierType, StructuralKeyIndex, id.Key())
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return raw.(*model.Identifier), nil
}

// GetOrCreate returns the existing row matched by structural key, creating
// one when absent. Repeated calls with the same identity never produce a
// second row.
func (r *IdentifierRepository) GetOrCreate(id model.XRoadID) (*model.Identifier, error) {
	existing, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	row := &model.Identifier{
		UUID: uuid.New(),
		ID:   id,
		Key:  id.Key(),
	}
	if err := r.db.Insert(model.IdentifierType, row); err != nil {
		return nil, err
	}
	return row, nil
}
