package repo

import (
	"fmt"

	"github.com/hashicorp/go-memdb"

	"github.com/openxroad/adminapi/memstore"
	"github.com/openxroad/adminapi/model"
	"github.com/openxroad/adminapi/uuid"
)

const (
	ClientGroupCodeIndex = "client_group_code"
	GroupMemberIndex     = "member_key"
)

func LocalGroupSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			model.LocalGroupType: {
				Name: model.LocalGroupType,
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
					ClientGroupCodeIndex: {
						Name:   ClientGroupCodeIndex,
						Unique: true,
						Indexer: &memdb.CompoundIndex{
							Indexes: []memdb.Indexer{
								&memdb.StringFieldIndex{Field: "ClientUUID"},
								&memdb.StringFieldIndex{Field: "GroupCode"},
							},
						},
					},
					GroupMemberIndex: {
						Name:         GroupMemberIndex,
						AllowMissing: true,
						Indexer: &memdb.StringSliceFieldIndex{
							Field: "MemberKeys",
						},
					},
				},
			},
		},
	}
}

type LocalGroupRepository struct {
	db *memstore.MemoryStoreTxn
}

func NewLocalGroupRepository(tx *memstore.MemoryStoreTxn) *LocalGroupRepository {
	return &LocalGroupRepository{db: tx}
}

func (r *LocalGroupRepository) save(group *model.LocalGroupModel) error {
	group.MemberKeys = make([]string, 0, len(group.Members))
	for _, m := range group.Members {
		group.MemberKeys = append(group.MemberKeys, m.Key())
	}
	return r.db.Insert(model.LocalGroupType, group)
}

func (r *LocalGroupRepository) Create(group *model.LocalGroupModel) error {
	if group.UUID == "" {
		group.UUID = uuid.New()
	}
	existing, err := r.db.First(model.LocalGroupType, ClientGroupCodeIndex,
		group.ClientUUID, group.GroupCode)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("local group %q: %w", group.GroupCode, model.ErrDuplicateLocalGroup)
	}
	return r.save(group)
}

func (r *LocalGroupRepository) GetByUUID(id string) (*model.LocalGroupModel, error) {
	raw, err := r.db.First(model.LocalGroupType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrLocalGroupNotFound
	}
	return raw.(*model.LocalGroupModel), nil
}

func (r *LocalGroupRepository) GetByClientAndCode(clientUUID, groupCode string) (*model.LocalGroupModel, error) {
	raw, err := r.db.First(model.LocalGroupType, ClientGroupCodeIndex, clientUUID, groupCode)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, model.ErrLocalGroupNotFound
	}
	return raw.(*model.LocalGroupModel), nil
}

func (r *LocalGroupRepository) Update(group *model.LocalGroupModel) error {
	if _, err := r.GetByUUID(group.UUID); err != nil {
		return err
	}
	return r.save(group)
}

func (r *LocalGroupRepository) Delete(id string) error {
	group, err := r.GetByUUID(id)
	if err != nil {
		return err
	}
	return r.db.Delete(model.LocalGroupType, group)
}

func (r *LocalGroupRepository) ListByClient(clientUUID string) ([]*model.LocalGroupModel, error) {
	iter, err := r.db.Get(model.LocalGroupType, ClientForeignPK, clientUUID)
	if err != nil {
		return nil, err
	}

	list := []*model.LocalGroupModel{}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		list = append(list, raw.(*model.LocalGroupModel))
	}
	return list, nil
}
