package usecase

import (
	"github.com/openxroad/adminapi/globalconf"
	"github.com/openxroad/adminapi/model"
)

// Directory is the read side of the global configuration consumed by the
// services. Existence checks are batch preconditions: true only when every
// identity in the set is present. Implemented by globalconf.Store.
type Directory interface {
	MembersExist(ids []model.XRoadID) (bool, error)
	GlobalGroupsExist(ids []model.XRoadID) (bool, error)
	Members() ([]globalconf.MemberInfo, error)
	GlobalGroups(instances ...string) ([]globalconf.GlobalGroupInfo, error)
	InstanceIdentifiers() ([]string, error)
}
