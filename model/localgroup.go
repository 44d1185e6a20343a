package model

import "time"

const LocalGroupType = "local_group" // also, memdb table name

// LocalGroupModel is a group defined by and scoped to one client. It never
// appears in the global directory; its identity form is LocalGroupID(GroupCode).
// Members are always Member-variant identities.
type LocalGroupModel struct {
	UUID       string `json:"uuid"` // PK
	ClientUUID string `json:"client_uuid"`

	GroupCode   string `json:"group_code"` // unique within the client
	Description string `json:"description"`

	Members []XRoadID `json:"members"`
	// MemberKeys mirrors Members' structural keys for the memdb slice index.
	MemberKeys []string  `json:"-"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (g *LocalGroupModel) ObjType() string {
	return LocalGroupType
}

func (g *LocalGroupModel) ObjId() string {
	return g.UUID
}

func (g *LocalGroupModel) ID() XRoadID {
	return LocalGroupID(g.GroupCode)
}

func (g *LocalGroupModel) HasMember(id XRoadID) bool {
	for _, m := range g.Members {
		if m == id {
			return true
		}
	}
	return false
}
