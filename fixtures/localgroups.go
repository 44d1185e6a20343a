package fixtures

import "github.com/openxroad/adminapi/model"

const (
	LocalGroupUUID1 = "00000000-0000-0000-0001-000000000000" // owned by client 1
	LocalGroupUUID2 = "00000000-0000-0000-0002-000000000000" // owned by client 2
)

func LocalGroups() []model.LocalGroupModel {
	return []model.LocalGroupModel{
		{
			UUID:        LocalGroupUUID1,
			ClientUUID:  ClientUUID1,
			GroupCode:   "G7",
			Description: "internal consumers",
			Members:     []model.XRoadID{model.MemberID("FI", "GOV", "M2")},
		},
		{
			UUID:        LocalGroupUUID2,
			ClientUUID:  ClientUUID2,
			GroupCode:   "G9",
			Description: "partners",
			Members:     []model.XRoadID{},
		},
	}
}
