package fixtures

import "github.com/openxroad/adminapi/model"

const (
	EndpointUUID1 = "00000000-0000-0001-0000-000000000000" // base endpoint of testService on client 1
	EndpointUUID2 = "00000000-0000-0002-0000-000000000000" // GET /pets on testService
	EndpointUUID3 = "00000000-0000-0003-0000-000000000000" // base endpoint of otherService on client 2
)

func Endpoints() []model.Endpoint {
	return []model.Endpoint{
		{
			UUID:        EndpointUUID1,
			ClientUUID:  ClientUUID1,
			ServiceCode: "testService",
			Method:      model.BaseEndpointMethod,
			Path:        model.BaseEndpointPath,
		},
		{
			UUID:        EndpointUUID2,
			ClientUUID:  ClientUUID1,
			ServiceCode: "testService",
			Method:      "GET",
			Path:        "/pets",
		},
		{
			UUID:        EndpointUUID3,
			ClientUUID:  ClientUUID2,
			ServiceCode: "otherService",
			Method:      model.BaseEndpointMethod,
			Path:        model.BaseEndpointPath,
		},
	}
}
