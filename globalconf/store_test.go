package globalconf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openxroad/adminapi/model"
)

func testStore(t *testing.T) *Store {
	snapshot, err := Parse([]byte(snapshotDoc))
	require.NoError(t, err)
	store := NewStore()
	store.Replace(snapshot)
	return store
}

func Test_Store_UnavailableBeforeFirstSnapshot(t *testing.T) {
	store := NewStore()

	_, err := store.Members()
	require.ErrorIs(t, err, model.ErrDirectoryUnavailable)
	_, err = store.MembersExist([]model.XRoadID{model.MemberID("FI", "GOV", "M1")})
	require.ErrorIs(t, err, model.ErrDirectoryUnavailable)
}

func Test_Store_MembersExist(t *testing.T) {
	store := testStore(t)

	ok, err := store.MembersExist([]model.XRoadID{
		model.SubsystemID("FI", "GOV", "M1", "SS1"),
		model.MemberID("EE", "COM", "M3"),
	})
	require.NoError(t, err)
	require.True(t, ok)

	// One unknown identity fails the whole set.
	ok, err = store.MembersExist([]model.XRoadID{
		model.SubsystemID("FI", "GOV", "M1", "SS1"),
		model.SubsystemID("FI", "GOV", "M1", "GHOST"),
	})
	require.NoError(t, err)
	require.False(t, ok)

	// The empty set exists trivially.
	ok, err = store.MembersExist(nil)
	require.NoError(t, err)
	require.True(t, ok)
}

func Test_Store_GlobalGroupsByInstance(t *testing.T) {
	store := testStore(t)

	all, err := store.GlobalGroups()
	require.NoError(t, err)
	require.Len(t, all, 2)

	fi, err := store.GlobalGroups("FI")
	require.NoError(t, err)
	require.Len(t, fi, 1)
	require.Equal(t, model.GlobalGroupID("FI", "security-server-owners"), fi[0].ID)

	_, err = store.GlobalGroups("XX")
	require.ErrorIs(t, err, model.ErrDirectoryUnavailable)
}
