package repo

import (
	"fmt"

	"github.com/hashicorp/go-memdb"

	"github.com/openxroad/adminapi/memstore"
	"github.com/openxroad/adminapi/model"
	"github.com/openxroad/adminapi/uuid"
)

const IdentityKeyIndex = "identity_key"

func ClientSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			model.ClientType: {
				Name: model.ClientType,
				Indexes: map[string]*memdb.IndexSchema{
					PK: {
						Name:   PK,
						Unique: true,
						Indexer: &memdb.UUIDFieldIndex{
							Field: "UUID",
						},
					},
					IdentityKeyIndex: {
						Name:   IdentityKeyIndex,
						Unique: true,
						Indexer: &memdb.StringFieldIndex{
							Field: "IdentityKey",
						},
					},
				},
			},
		},
	}
}

type ClientRepository struct {
	db *memstore.MemoryStoreTxn // called "db" not to provoke transaction semantics
}

func NewClientRepository(tx *memstore.MemoryStoreTxn) *ClientRepository {
	return &ClientRepository{db: tx}
}

func (r *ClientRepository) save(client *model.Client) error {
	return r.db.Insert(model.ClientType, client)
}

func (r *ClientRepository) Create(client *model.Client) error {
	if client.UUID == "" {
		client.UUID = uuid.New()
	}
	client.IdentityKey = client.ID().Key()

	existing, err := r.db.First(model.ClientType, IdentityKeyIndex, client.IdentityKey)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("client %s: %w", client.ID().ShortString(), errAlreadyExists)
	}
	return r.save(client)
}

func (r *ClientRepository) GetByUUID(id string) (*model.Client, error) {
	raw, err := r.db.First(model.ClientType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrClientNotFound
	}
	return raw.(*model.Client), nil
}

// GetByID resolves a client by its X-Road identity.
func (r *ClientRepository) GetByID(id model.XRoadID) (*model.Client, error) {
	raw, err := r.db.First(model.ClientType, IdentityKeyIndex, id.Key())
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrClientNotFound
	}
	return raw.(*model.Client), nil
}

// GetByEndpointUUID resolves the client owning the given endpoint.
func (r *ClientRepository) GetByEndpointUUID(endpointUUID string) (*model.Client, error) {
	endpoint, err := NewEndpointRepository(r.db).GetByUUID(endpointUUID)
	if err != nil {
		return nil, err
	}
	return r.GetByUUID(endpoint.ClientUUID)
}

func (r *ClientRepository) List() ([]*model.Client, error) {
	iter, err := r.db.Get(model.ClientType, PK)
	if err != nil {
		return nil, err
	}

	list := []*model.Client{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		list = append(list, raw.(*model.Client))
	}
	return list, nil
}
