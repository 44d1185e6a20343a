package fixtures

import "github.com/openxroad/adminapi/model"

const (
	ClientUUID1 = "00000000-0001-0000-0000-000000000000"
	ClientUUID2 = "00000000-0002-0000-0000-000000000000"
)

func Clients() []model.Client {
	return []model.Client{
		{
			UUID:          ClientUUID1,
			XRoadInstance: "FI",
			MemberClass:   "GOV",
			MemberCode:    "M1",
			SubsystemCode: "SS1",
		},
		{
			UUID:          ClientUUID2,
			XRoadInstance: "FI",
			MemberClass:   "GOV",
			MemberCode:    "M2",
			SubsystemCode: "SS2",
		},
	}
}
