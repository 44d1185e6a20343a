package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/openxroad/adminapi/model"
)

// Request bodies. Subject identities travel in their short encoded form
// (see model.XRoadID.ShortString): INST:CLASS/CODE:SUB for subsystems,
// INST:GROUP for global groups. Local groups are referenced by surrogate id.

type accessRightsRequest struct {
	SubjectIDs    []string `json:"subject_ids"`
	LocalGroupIDs []string `json:"local_group_ids"`
}

type clientCreateRequest struct {
	ClientID string `json:"client_id"`
}

type serviceCreateRequest struct {
	ServiceCode string `json:"service_code"`
}

type endpointCreateRequest struct {
	ServiceCode string `json:"service_code"`
	Method      string `json:"method"`
	Path        string `json:"path"`
}

type localGroupCreateRequest struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type localGroupPatchRequest struct {
	Description string `json:"description"`
}

type localGroupMembersRequest struct {
	MemberIDs []string `json:"member_ids"`
}

// ServiceClientView is the transfer shape for access-right holders and
// candidate search results.
type ServiceClientView struct {
	SubjectID             string     `json:"subject_id"`
	SubjectType           string     `json:"subject_type"`
	MemberName            string     `json:"member_name,omitempty"`
	Description           string     `json:"description,omitempty"`
	LocalGroupID          string     `json:"local_group_id,omitempty"`
	LocalGroupCode        string     `json:"local_group_code,omitempty"`
	LocalGroupDescription string     `json:"local_group_description,omitempty"`
	RightsGiven           *time.Time `json:"rights_given,omitempty"`
}

type ClientView struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
}

type EndpointView struct {
	ID          string `json:"id"`
	ServiceCode string `json:"service_code"`
	Method      string `json:"method"`
	Path        string `json:"path"`
}

type LocalGroupView struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Members     []string  `json:"members"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toServiceClientView(sc model.ServiceClient) ServiceClientView {
	return ServiceClientView{
		SubjectID:             sc.Subject.ShortString(),
		SubjectType:           string(sc.Subject.ObjectType),
		MemberName:            sc.MemberName,
		Description:           sc.Description,
		LocalGroupID:          sc.LocalGroupUUID,
		LocalGroupCode:        sc.LocalGroupCode,
		LocalGroupDescription: sc.LocalGroupDescription,
		RightsGiven:           sc.RightsGiven,
	}
}

func toServiceClientViews(list []model.ServiceClient) []ServiceClientView {
	views := make([]ServiceClientView, 0, len(list))
	for _, sc := range list {
		views = append(views, toServiceClientView(sc))
	}
	return views
}

func toClientView(c *model.Client) ClientView {
	return ClientView{ID: c.UUID, ClientID: c.ID().ShortString()}
}

func toEndpointView(e *model.Endpoint) EndpointView {
	return EndpointView{
		ID:          e.UUID,
		ServiceCode: e.ServiceCode,
		Method:      e.Method,
		Path:        e.Path,
	}
}

func toLocalGroupView(g *model.LocalGroupModel) LocalGroupView {
	members := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		members = append(members, m.ShortString())
	}
	return LocalGroupView{
		ID:          g.UUID,
		Code:        g.GroupCode,
		Description: g.Description,
		Members:     members,
		UpdatedAt:   g.UpdatedAt,
	}
}

func parseSubjectIDs(encoded []string) ([]model.XRoadID, error) {
	ids := make([]model.XRoadID, 0, len(encoded))
	for _, s := range encoded {
		id, err := model.ParseXRoadID(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseAccessRightSubjects parses subject_ids for the access-right routes.
// Only subsystems and global groups may be granted rights directly: members
// act through their subsystems, local groups travel in local_group_ids.
func parseAccessRightSubjects(encoded []string) ([]model.XRoadID, error) {
	ids, err := parseSubjectIDs(encoded)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if id.ObjectType != model.Subsystem && id.ObjectType != model.GlobalGroup {
			return nil, fmt.Errorf("subject %q: only subsystems and global groups can hold access rights",
				id.ShortString())
		}
	}
	return ids, nil
}

// parseClientPathID decodes a client path segment of the form
// instance:class:code or instance:class:code:subsystem.
func parseClientPathID(s string) (model.XRoadID, error) {
	parts := strings.Split(s, ":")
	for _, p := range parts {
		if p == "" {
			return model.XRoadID{}, fmt.Errorf("malformed client id %q", s)
		}
	}
	switch len(parts) {
	case 3:
		return model.MemberID(parts[0], parts[1], parts[2]), nil
	case 4:
		return model.SubsystemID(parts[0], parts[1], parts[2], parts[3]), nil
	}
	return model.XRoadID{}, fmt.Errorf("malformed client id %q", s)
}
