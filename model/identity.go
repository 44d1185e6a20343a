package model

import (
	"fmt"
	"strings"
)

// XRoadObjectType tags the variant of an XRoadID.
type XRoadObjectType string

const (
	Member      XRoadObjectType = "MEMBER"
	Subsystem   XRoadObjectType = "SUBSYSTEM"
	GlobalGroup XRoadObjectType = "GLOBALGROUP"
	LocalGroup  XRoadObjectType = "LOCALGROUP"
)

// XRoadID is a closed sum over the four X-Road identity variants. ObjectType
// selects the variant; only the fields of that variant are set. Equality is
// structural, two ids naming the same identity compare equal.
type XRoadID struct {
	ObjectType    XRoadObjectType `json:"object_type"`
	XRoadInstance string          `json:"xroad_instance,omitempty"`
	MemberClass   string          `json:"member_class,omitempty"`
	MemberCode    string          `json:"member_code,omitempty"`
	SubsystemCode string          `json:"subsystem_code,omitempty"`
	GroupCode     string          `json:"group_code,omitempty"`
}

func MemberID(instance, memberClass, memberCode string) XRoadID {
	return XRoadID{
		ObjectType:    Member,
		XRoadInstance: instance,
		MemberClass:   memberClass,
		MemberCode:    memberCode,
	}
}

func SubsystemID(instance, memberClass, memberCode, subsystemCode string) XRoadID {
	return XRoadID{
		ObjectType:    Subsystem,
		XRoadInstance: instance,
		MemberClass:   memberClass,
		MemberCode:    memberCode,
		SubsystemCode: subsystemCode,
	}
}

func GlobalGroupID(instance, groupCode string) XRoadID {
	return XRoadID{
		ObjectType:    GlobalGroup,
		XRoadInstance: instance,
		GroupCode:     groupCode,
	}
}

func LocalGroupID(groupCode string) XRoadID {
	return XRoadID{
		ObjectType: LocalGroup,
		GroupCode:  groupCode,
	}
}

// IsClient reports whether the id names a member or a subsystem, the two
// variants carrying member class and member code.
func (id XRoadID) IsClient() bool {
	return id.ObjectType == Member || id.ObjectType == Subsystem
}

// Key is the structural key of the identity. It is what identifier rows and
// access-right subjects are matched by, never a surrogate id.
func (id XRoadID) Key() string {
	return strings.Join([]string{
		string(id.ObjectType),
		id.XRoadInstance,
		id.MemberClass,
		id.MemberCode,
		id.SubsystemCode,
		id.GroupCode,
	}, "\x1f")
}

// ShortString renders the identity in the short form used in API payloads
// and log lines:
//
//	member       INST:CLASS/CODE
//	subsystem    INST:CLASS/CODE:SUB
//	global group INST:GROUP
//	local group  GROUP
func (id XRoadID) ShortString() string {
	switch id.ObjectType {
	case Member:
		return fmt.Sprintf("%s:%s/%s", id.XRoadInstance, id.MemberClass, id.MemberCode)
	case Subsystem:
		return fmt.Sprintf("%s:%s/%s:%s", id.XRoadInstance, id.MemberClass, id.MemberCode, id.SubsystemCode)
	case GlobalGroup:
		return fmt.Sprintf("%s:%s", id.XRoadInstance, id.GroupCode)
	case LocalGroup:
		return id.GroupCode
	}
	return ""
}

// ParseXRoadID is the inverse of ShortString. The variant is recovered from
// the shape: a "/" means member or subsystem, a lone ":" a global group and a
// bare token a local group.
func ParseXRoadID(s string) (XRoadID, error) {
	if s == "" {
		return XRoadID{}, fmt.Errorf("empty identity")
	}
	if strings.Contains(s, "/") {
		instRest := strings.SplitN(s, ":", 3)
		if len(instRest) < 2 {
			return XRoadID{}, fmt.Errorf("malformed client identity %q", s)
		}
		classCode := strings.SplitN(instRest[1], "/", 2)
		if len(classCode) != 2 || classCode[0] == "" || classCode[1] == "" {
			return XRoadID{}, fmt.Errorf("malformed client identity %q", s)
		}
		if len(instRest) == 3 {
			if instRest[2] == "" {
				return XRoadID{}, fmt.Errorf("malformed subsystem identity %q", s)
			}
			return SubsystemID(instRest[0], classCode[0], classCode[1], instRest[2]), nil
		}
		return MemberID(instRest[0], classCode[0], classCode[1]), nil
	}
	if parts := strings.SplitN(s, ":", 2); len(parts) == 2 {
		if parts[0] == "" || parts[1] == "" {
			return XRoadID{}, fmt.Errorf("malformed global group identity %q", s)
		}
		return GlobalGroupID(parts[0], parts[1]), nil
	}
	return LocalGroupID(s), nil
}
