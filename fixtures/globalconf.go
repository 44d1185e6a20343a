package fixtures

import (
	"github.com/openxroad/adminapi/globalconf"
	"github.com/openxroad/adminapi/model"
)

// DirectorySnapshot is the directory view the fixture clients live in.
func DirectorySnapshot() *globalconf.Snapshot {
	snapshot := &globalconf.Snapshot{
		Instances: []string{"FI", "EE"},
		Members: []globalconf.MemberInfo{
			{ID: model.MemberID("FI", "GOV", "M1"), Name: "Member One"},
			{ID: model.SubsystemID("FI", "GOV", "M1", "SS1"), Name: "Member One"},
			{ID: model.MemberID("FI", "GOV", "M2"), Name: "Member Two"},
			{ID: model.SubsystemID("FI", "GOV", "M2", "SS2"), Name: "Member Two"},
			{ID: model.MemberID("EE", "COM", "M3"), Name: "Kolmas Liige"},
			{ID: model.SubsystemID("EE", "COM", "M3", "SS3"), Name: "Kolmas Liige"},
		},
		Groups: []globalconf.GlobalGroupInfo{
			{ID: model.GlobalGroupID("FI", "security-server-owners"), Description: "Security server owners"},
			{ID: model.GlobalGroupID("EE", "readers"), Description: "Read-only consumers"},
		},
	}
	snapshot.Build()
	return snapshot
}
