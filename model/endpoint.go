package model

const EndpointType = "endpoint" // also, memdb table name

// The synthetic whole-service base endpoint is stored with these values.
const (
	BaseEndpointMethod = "*"
	BaseEndpointPath   = "**"
)

// Endpoint is one callable method+path of a service, or the synthetic base
// endpoint standing for the whole service. Identity is immutable once created.
type Endpoint struct {
	UUID       string `json:"uuid"` // PK
	ClientUUID string `json:"client_uuid"`

	ServiceCode string `json:"service_code"`
	Method      string `json:"method"`
	Path        string `json:"path"`
}

func (e *Endpoint) ObjType() string {
	return EndpointType
}

func (e *Endpoint) ObjId() string {
	return e.UUID
}

func (e *Endpoint) IsBaseEndpoint() bool {
	return e.Method == BaseEndpointMethod && e.Path == BaseEndpointPath
}
