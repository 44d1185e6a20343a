package model

const ClientType = "client" // also, memdb table name

// Client is a locally configured member or subsystem. It is the aggregate
// root for its endpoints, local groups and access-control list: all three are
// mutated only inside one store transaction.
type Client struct {
	UUID string `json:"uuid"` // PK

	XRoadInstance string `json:"xroad_instance"`
	MemberClass   string `json:"member_class"`
	MemberCode    string `json:"member_code"`
	SubsystemCode string `json:"subsystem_code,omitempty"`

	// IdentityKey is the structural key of ID(), kept as a field for the
	// unique memdb index.
	IdentityKey string `json:"identity_key"`
}

func (c *Client) ObjType() string {
	return ClientType
}

func (c *Client) ObjId() string {
	return c.UUID
}

// ID returns the client's X-Road identity: a subsystem when SubsystemCode is
// set, a plain member otherwise.
func (c *Client) ID() XRoadID {
	if c.SubsystemCode != "" {
		return SubsystemID(c.XRoadInstance, c.MemberClass, c.MemberCode, c.SubsystemCode)
	}
	return MemberID(c.XRoadInstance, c.MemberClass, c.MemberCode)
}
