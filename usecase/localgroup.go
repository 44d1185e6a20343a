package usecase

import (
	"fmt"
	"time"

	"github.com/openxroad/adminapi/memstore"
	"github.com/openxroad/adminapi/model"
	"github.com/openxroad/adminapi/repo"
)

// LocalGroupService manages the groups a client defines for itself. Group
// members are Member-variant identities; they are verified against the
// directory and persisted to the identifier table before the membership is
// stored.
type LocalGroupService struct {
	db          *memstore.MemoryStoreTxn
	repo        *repo.LocalGroupRepository
	identifiers *IdentifierService
	dir         Directory
}

func LocalGroups(tx *memstore.MemoryStoreTxn, dir Directory) *LocalGroupService {
	return &LocalGroupService{
		db:          tx,
		repo:        repo.NewLocalGroupRepository(tx),
		identifiers: Identifiers(tx),
		dir:         dir,
	}
}

func (s *LocalGroupService) Create(clientUUID, groupCode, description string) (*model.LocalGroupModel, error) {
	group := &model.LocalGroupModel{
		ClientUUID:  clientUUID,
		GroupCode:   groupCode,
		Description: description,
		Members:     []model.XRoadID{},
		UpdatedAt:   time.Now(),
	}
	if err := s.repo.Create(group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *LocalGroupService) GetByUUID(id string) (*model.LocalGroupModel, error) {
	return s.repo.GetByUUID(id)
}

func (s *LocalGroupService) ListByClient(clientUUID string) ([]*model.LocalGroupModel, error) {
	return s.repo.ListByClient(clientUUID)
}

func (s *LocalGroupService) UpdateDescription(id, description string) (*model.LocalGroupModel, error) {
	stored, err := s.repo.GetByUUID(id)
	if err != nil {
		return nil, err
	}
	group := *stored
	group.Description = description
	group.UpdatedAt = time.Now()
	if err := s.repo.Update(&group); err != nil {
		return nil, err
	}
	return &group, nil
}

// Delete removes the group and revokes every access right held through it:
// a deleted group must not keep granting access.
func (s *LocalGroupService) Delete(id string) error {
	group, err := s.repo.GetByUUID(id)
	if err != nil {
		return err
	}
	rights := repo.NewAccessRightRepository(s.db)
	held, err := rights.ListByClient(group.ClientUUID)
	if err != nil {
		return err
	}
	subjectKey := group.ID().Key()
	for _, right := range held {
		if right.SubjectKey != subjectKey {
			continue
		}
		if err := rights.Delete(right); err != nil {
			return err
		}
	}
	return s.repo.Delete(id)
}

// AddMembers verifies the identities exist in the directory, persists them
// to the identifier table and appends them to the group. An identity already
// in the group fails the whole call.
func (s *LocalGroupService) AddMembers(id string, members []model.XRoadID) (*model.LocalGroupModel, error) {
	stored, err := s.repo.GetByUUID(id)
	if err != nil {
		return nil, err
	}

	for _, m := range members {
		if !m.IsClient() {
			return nil, fmt.Errorf("%s is not a member identity: %w",
				m.ShortString(), model.ErrIdentifierNotFound)
		}
	}
	exist, err := s.dir.MembersExist(members)
	if err != nil {
		return nil, err
	}
	if !exist {
		return nil, model.ErrIdentifierNotFound
	}
	persisted, err := s.identifiers.GetOrPersist(members)
	if err != nil {
		return nil, err
	}

	group := *stored
	group.Members = append([]model.XRoadID{}, stored.Members...)
	for _, m := range persisted {
		if group.HasMember(m) {
			return nil, fmt.Errorf("%s is already a member of local group %q: %w",
				m.ShortString(), group.GroupCode, model.ErrDuplicateLocalGroupMember)
		}
		group.Members = append(group.Members, m)
	}
	group.UpdatedAt = time.Now()

	if err := s.repo.Update(&group); err != nil {
		return nil, err
	}
	return &group, nil
}

// RemoveMembers removes the identities from the group. Every requested
// identity must currently be a member, otherwise nothing is removed.
func (s *LocalGroupService) RemoveMembers(id string, members []model.XRoadID) (*model.LocalGroupModel, error) {
	stored, err := s.repo.GetByUUID(id)
	if err != nil {
		return nil, err
	}

	remove := make(map[model.XRoadID]struct{}, len(members))
	for _, m := range members {
		if !stored.HasMember(m) {
			return nil, fmt.Errorf("%s is not a member of local group %q: %w",
				m.ShortString(), stored.GroupCode, model.ErrLocalGroupMemberNotFound)
		}
		remove[m] = struct{}{}
	}

	group := *stored
	group.Members = []model.XRoadID{}
	for _, m := range stored.Members {
		if _, ok := remove[m]; !ok {
			group.Members = append(group.Members, m)
		}
	}
	group.UpdatedAt = time.Now()

	if err := s.repo.Update(&group); err != nil {
		return nil, err
	}
	return &group, nil
}

// GetLocalGroupIdsAsXRoadIds maps local-group surrogate ids to their
// LocalGroup identities. Any unresolved id fails with ErrLocalGroupNotFound.
func (s *LocalGroupService) GetLocalGroupIdsAsXRoadIds(ids []string) ([]model.XRoadID, error) {
	result := make([]model.XRoadID, 0, len(ids))
	for _, id := range ids {
		group, err := s.repo.GetByUUID(id)
		if err != nil {
			return nil, err
		}
		result = append(result, group.ID())
	}
	return result, nil
}
