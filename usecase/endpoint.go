package usecase

import (
	"github.com/openxroad/adminapi/memstore"
	"github.com/openxroad/adminapi/model"
	"github.com/openxroad/adminapi/repo"
)

type EndpointService struct {
	db   *memstore.MemoryStoreTxn
	repo *repo.EndpointRepository
}

func Endpoints(tx *memstore.MemoryStoreTxn) *EndpointService {
	return &EndpointService{
		db:   tx,
		repo: repo.NewEndpointRepository(tx),
	}
}

func (s *EndpointService) GetByUUID(id string) (*model.Endpoint, error) {
	return s.repo.GetByUUID(id)
}

// CreateService registers a service on the client by creating its synthetic
// base endpoint, the endpoint whole-service access rights attach to.
func (s *EndpointService) CreateService(client *model.Client, serviceCode string) (*model.Endpoint, error) {
	endpoint := &model.Endpoint{
		ClientUUID:  client.UUID,
		ServiceCode: serviceCode,
		Method:      model.BaseEndpointMethod,
		Path:        model.BaseEndpointPath,
	}
	if err := s.repo.Create(endpoint); err != nil {
		return nil, err
	}
	return endpoint, nil
}

// CreateEndpoint adds a method/path endpoint under an already registered
// service of the client.
func (s *EndpointService) CreateEndpoint(client *model.Client, serviceCode, method, path string) (*model.Endpoint, error) {
	has, err := s.repo.HasService(client.UUID, serviceCode)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, model.ErrServiceNotFound
	}
	endpoint := &model.Endpoint{
		ClientUUID:  client.UUID,
		ServiceCode: serviceCode,
		Method:      method,
		Path:        path,
	}
	if err := s.repo.Create(endpoint); err != nil {
		return nil, err
	}
	return endpoint, nil
}

// GetServiceBaseEndpoint resolves the whole-service endpoint of serviceCode
// on the client. A client without the service fails with ErrServiceNotFound;
// a service without a base endpoint fails with ErrEndpointNotFound.
func (s *EndpointService) GetServiceBaseEndpoint(client *model.Client, serviceCode string) (*model.Endpoint, error) {
	has, err := s.repo.HasService(client.UUID, serviceCode)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, model.ErrServiceNotFound
	}
	return s.repo.GetServiceBaseEndpoint(client.UUID, serviceCode)
}

func (s *EndpointService) ListByClient(clientUUID string) ([]*model.Endpoint, error) {
	return s.repo.ListByClient(clientUUID)
}
