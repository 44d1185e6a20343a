package globalconf

import (
	"sync"

	"github.com/openxroad/adminapi/model"
)

// Store holds the current directory snapshot. Readers get the snapshot
// pointer under a read lock and then work on the immutable snapshot, so a
// concurrent Replace never blocks or corrupts an in-flight query. Until the
// first Replace every query fails with ErrDirectoryUnavailable.
type Store struct {
	mu       sync.RWMutex
	snapshot *Snapshot
}

func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a freshly loaded snapshot.
func (s *Store) Replace(snapshot *Snapshot) {
	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()
}

func (s *Store) current() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, model.ErrDirectoryUnavailable
	}
	return s.snapshot, nil
}

// MembersExist reports whether every identity in ids is a member or
// subsystem present in the directory. An empty set exists trivially.
func (s *Store) MembersExist(ids []model.XRoadID) (bool, error) {
	snapshot, err := s.current()
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if !snapshot.containsMember(id) {
			return false, nil
		}
	}
	return true, nil
}

// GlobalGroupsExist reports whether every identity in ids is a global group
// present in the directory.
func (s *Store) GlobalGroupsExist(ids []model.XRoadID) (bool, error) {
	snapshot, err := s.current()
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if !snapshot.containsGroup(id) {
			return false, nil
		}
	}
	return true, nil
}

// Members lists all members and subsystems with their display names.
func (s *Store) Members() ([]MemberInfo, error) {
	snapshot, err := s.current()
	if err != nil {
		return nil, err
	}
	return snapshot.Members, nil
}

// GlobalGroups lists global groups. Without arguments it lists every group;
// with instance arguments it lists the groups of those instances and fails
// with ErrDirectoryUnavailable when an instance is not covered by the
// snapshot, mirroring the directory's behavior for unknown instances.
func (s *Store) GlobalGroups(instances ...string) ([]GlobalGroupInfo, error) {
	snapshot, err := s.current()
	if err != nil {
		return nil, err
	}
	if len(instances) == 0 {
		return snapshot.Groups, nil
	}

	wanted := make(map[string]struct{}, len(instances))
	for _, instance := range instances {
		if !snapshot.hasInstance(instance) {
			return nil, model.ErrDirectoryUnavailable
		}
		wanted[instance] = struct{}{}
	}

	groups := []GlobalGroupInfo{}
	for _, g := range snapshot.Groups {
		if _, ok := wanted[g.ID.XRoadInstance]; ok {
			groups = append(groups, g)
		}
	}
	return groups, nil
}

// InstanceIdentifiers lists the instance identifiers of the federation.
func (s *Store) InstanceIdentifiers() ([]string, error) {
	snapshot, err := s.current()
	if err != nil {
		return nil, err
	}
	return snapshot.Instances, nil
}
