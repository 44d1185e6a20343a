// Package globalconf gives read-only access to the periodically refreshed
// global configuration: the directory of all members, subsystems and global
// groups known to the X-Road instance federation.
package globalconf

import "github.com/openxroad/adminapi/model"

// MemberInfo is a directory entry for a member or subsystem.
type MemberInfo struct {
	ID   model.XRoadID
	Name string
}

// GlobalGroupInfo is a directory entry for a global group.
type GlobalGroupInfo struct {
	ID          model.XRoadID
	Description string
}

// Snapshot is one immutable parse of the global configuration. Lookups are
// answered from the key sets built at load time; a Snapshot is never mutated
// after Build.
type Snapshot struct {
	Instances []string
	Members   []MemberInfo
	Groups    []GlobalGroupInfo

	memberKeys map[string]struct{}
	groupKeys  map[string]struct{}
}

// Build finalizes the lookup sets. Loaders call it once, after filling the
// listing slices.
func (s *Snapshot) Build() {
	s.memberKeys = make(map[string]struct{}, len(s.Members))
	for _, m := range s.Members {
		s.memberKeys[m.ID.Key()] = struct{}{}
	}
	s.groupKeys = make(map[string]struct{}, len(s.Groups))
	for _, g := range s.Groups {
		s.groupKeys[g.ID.Key()] = struct{}{}
	}
}

func (s *Snapshot) containsMember(id model.XRoadID) bool {
	_, ok := s.memberKeys[id.Key()]
	return ok
}

func (s *Snapshot) containsGroup(id model.XRoadID) bool {
	_, ok := s.groupKeys[id.Key()]
	return ok
}

func (s *Snapshot) hasInstance(instance string) bool {
	for _, i := range s.Instances {
		if i == instance {
			return true
		}
	}
	return false
}
