package repo

import (
	"fmt"

	"github.com/hashicorp/go-memdb"

	"github.com/openxroad/adminapi/memstore"
	"github.com/openxroad/adminapi/model"
	"github.com/openxroad/adminapi/uuid"
)

const (
	ClientServiceIndex         = "client_service"
	ClientServiceEndpointIndex = "client_service_method_path"
)

func EndpointSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			model.EndpointType: {
				Name: model.EndpointType,
				Indexes: map[string]*memdb.IndexSchema{
					PK: {
						Name:   PK,
						Unique: true,
						Indexer: &memdb.UUIDFieldIndex{
							Field: "UUID",
						},
					},
					ClientForeignPK: {
						Name: ClientForeignPK,
						Indexer: &memdb.StringFieldIndex{
							Field: "ClientUUID",
						},
					},
					ClientServiceIndex: {
						Name: ClientServiceIndex,
						Indexer: &memdb.CompoundIndex{
							Indexes: []memdb.Indexer{
								&memdb.StringFieldIndex{Field: "ClientUUID"},
								&memdb.StringFieldIndex{Field: "ServiceCode"},
							},
						},
					},
					ClientServiceEndpointIndex: {
						Name:   ClientServiceEndpointIndex,
						Unique: true,
						Indexer: &memdb.CompoundIndex{
							Indexes: []memdb.Indexer{
								&memdb.StringFieldIndex{Field: "ClientUUID"},
								&memdb.StringFieldIndex{Field: "ServiceCode"},
								&memdb.StringFieldIndex{Field: "Method"},
								&memdb.StringFieldIndex{Field: "Path"},
							},
						},
					},
				},
			},
		},
	}
}

type EndpointRepository struct {
	db *memstore.MemoryStoreTxn
}

func NewEndpointRepository(tx *memstore.MemoryStoreTxn) *EndpointRepository {
	return &EndpointRepository{db: tx}
}

func (r *EndpointRepository) save(endpoint *model.Endpoint) error {
	return r.db.Insert(model.EndpointType, endpoint)
}

func (r *EndpointRepository) Create(endpoint *model.Endpoint) error {
	if endpoint.UUID == "" {
		endpoint.UUID = uuid.New()
	}
	existing, err := r.db.First(model.EndpointType, ClientServiceEndpointIndex,
		endpoint.ClientUUID, endpoint.ServiceCode, endpoint.Method, endpoint.Path)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("endpoint %s %s %s: %w",
			endpoint.ServiceCode, endpoint.Method, endpoint.Path, errAlreadyExists)
	}
	return r.save(endpoint)
}

func (r *EndpointRepository) GetByUUID(id string) (*model.Endpoint, error) {
	raw, err := r.db.First(model.EndpointType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrEndpointNotFound
	}
	return raw.(*model.Endpoint), nil
}

// GetServiceBaseEndpoint returns the synthetic whole-service endpoint of the
// given service on the given client.
func (r *EndpointRepository) GetServiceBaseEndpoint(clientUUID, serviceCode string) (*model.Endpoint, error) {
	raw, err := r.db.First(model.EndpointType, ClientServiceEndpointIndex,
		clientUUID, serviceCode, model.BaseEndpointMethod, model.BaseEndpointPath)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrEndpointNotFound
	}
	return raw.(*model.Endpoint), nil
}

// HasService reports whether the client has any endpoint for the service code.
func (r *EndpointRepository) HasService(clientUUID, serviceCode string) (bool, error) {
	raw, err := r.db.First(model.EndpointType, ClientServiceIndex, clientUUID, serviceCode)
	if err != nil {
		return false, err
	}
	return raw != nil, nil
}

func (r *EndpointRepository) ListByClient(clientUUID string) ([]*model.Endpoint, error) {
	iter, err := r.db.Get(model.EndpointType, ClientForeignPK, clientUUID)
	if err != nil {
		return nil, err
	}

	list := []*model.Endpoint{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		list = append(list, raw.(*model.Endpoint))
	}
	return list, nil
}
