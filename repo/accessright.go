package repo

import (
	"fmt"

	"github.com/hashicorp/go-memdb"

	"github.com/openxroad/adminapi/memstore"
	"github.com/openxroad/adminapi/model"
	"github.com/openxroad/adminapi/uuid"
)

const (
	EndpointForeignPK    = "endpoint_uuid"
	EndpointSubjectIndex = "endpoint_subject"
)

func AccessRightSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			model.AccessRightType: {
				Name: model.AccessRightType,
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
					EndpointForeignPK: {
						Name: EndpointForeignPK,
						Indexer: &memdb.StringFieldIndex{
							Field: "EndpointUUID",
						},
					},
					EndpointSubjectIndex: {
						Name:   EndpointSubjectIndex,
						Unique: true,
						Indexer: &memdb.CompoundIndex{
							Indexes: []memdb.Indexer{
								&memdb.StringFieldIndex{Field: "EndpointUUID"},
								&memdb.StringFieldIndex{Field: "SubjectKey"},
							},
						},
					},
				},
			},
		},
	}
}

type AccessRightRepository struct {
	db *memstore.MemoryStoreTxn
}

func NewAccessRightRepository(tx *memstore.MemoryStoreTxn) *AccessRightRepository {
	return &AccessRightRepository{db: tx}
}

// Create inserts the entry, refusing a second row for the same
// (endpoint, subject) pair.
func (r *AccessRightRepository) Create(right *model.AccessRight) error {
	if right.UUID == "" {
		right.UUID = uuid.New()
	}
	right.SubjectKey = right.Subject.Key()

	existing, err := r.GetByEndpointAndSubject(right.EndpointUUID, right.Subject)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("subject %s already has an access right for endpoint %s: %w",
			right.Subject.ShortString(), right.EndpointUUID, model.ErrDuplicateAccessRight)
	}
	return r.db.Insert(model.AccessRightType, right)
}

// GetByEndpointAndSubject returns the entry for the pair, or nil when the
// subject holds no right on the endpoint.
func (r *AccessRightRepository) GetByEndpointAndSubject(endpointUUID string, subject model.XRoadID) (*model.AccessRight, error) {
	raw, err := r.db.First(model.AccessRightType, EndpointSubjectIndex, endpointUUID, subject.Key())
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	return raw.(*model.AccessRight), nil
}

func (r *AccessRightRepository) Delete(right *model.AccessRight) error {
	return r.db.Delete(model.AccessRightType, right)
}

func (r *AccessRightRepository) ListByEndpoint(endpointUUID string) ([]*model.AccessRight, error) {
	iter, err := r.db.Get(model.AccessRightType, EndpointForeignPK, endpointUUID)
	if err != nil {
		return nil, err
	}
	return collectAccessRights(iter), nil
}

func (r *AccessRightRepository) ListByClient(clientUUID string) ([]*model.AccessRight, error) {
	iter, err := r.db.Get(model.AccessRightType, ClientForeignPK, clientUUID)
	if err != nil {
		return nil, err
	}
	return collectAccessRights(iter), nil
}

func collectAccessRights(iter memdb.ResultIterator) []*model.AccessRight {
	list := []*model.AccessRight{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		list = append(list, raw.(*model.AccessRight))
	}
	return list
}
