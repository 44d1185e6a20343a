package model

const IdentifierType = "identifier" // also, memdb table name

// Identifier is a locally persisted copy of a foreign X-Road identity
// (subsystem, global group or local group) that relations such as access
// rights may reference. Rows are shared across clients and are matched by the
// identity's structural key, never by the surrogate UUID.
type Identifier struct {
	UUID string  `json:"uuid"` // PK
	ID   XRoadID `json:"id"`
	// Key mirrors ID.Key() for the unique structural index.
	Key string `json:"key"`
}

func (i *Identifier) ObjType() string {
	return IdentifierType
}

func (i *Identifier) ObjId() string {
	return i.UUID
}
