package usecase

import (
	"fmt"

	"github.com/openxroad/adminapi/memstore"
	"github.com/openxroad/adminapi/model"
	"github.com/openxroad/adminapi/repo"
)

type ClientService struct {
	db   *memstore.MemoryStoreTxn
	repo *repo.ClientRepository
}

func Clients(tx *memstore.MemoryStoreTxn) *ClientService {
	return &ClientService{
		db:   tx,
		repo: repo.NewClientRepository(tx),
	}
}

// Create registers a member or subsystem as a client of this security server.
func (s *ClientService) Create(id model.XRoadID) (*model.Client, error) {
	if !id.IsClient() {
		return nil, fmt.Errorf("%s cannot be registered as a client: %w",
			id.ShortString(), model.ErrIdentifierNotFound)
	}
	client := &model.Client{
		XRoadInstance: id.XRoadInstance,
		MemberClass:   id.MemberClass,
		MemberCode:    id.MemberCode,
		SubsystemCode: id.SubsystemCode,
	}
	if err := s.repo.Create(client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) GetByID(id model.XRoadID) (*model.Client, error) {
	return s.repo.GetByID(id)
}

func (s *ClientService) List() ([]*model.Client, error) {
	return s.repo.List()
}
