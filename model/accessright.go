package model

import "time"

const AccessRightType = "access_right" // also, memdb table name

// AccessRight grants one subject identity invocation permission on one
// endpoint. At most one row may exist per (endpoint, subject) pair; the
// repository refuses duplicates.
type AccessRight struct {
	UUID         string `json:"uuid"` // PK
	ClientUUID   string `json:"client_uuid"`
	EndpointUUID string `json:"endpoint_uuid"`

	Subject XRoadID `json:"subject_id"`
	// SubjectKey mirrors Subject.Key() for the unique (endpoint, subject) index.
	SubjectKey string `json:"-"`

	RightsGiven time.Time `json:"rights_given"`
}

func (a *AccessRight) ObjType() string {
	return AccessRightType
}

func (a *AccessRight) ObjId() string {
	return a.UUID
}
