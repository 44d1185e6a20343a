package globalconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openxroad/adminapi/model"
)

const snapshotDoc = `{
  "instance_identifiers": ["FI", "EE"],
  "members": [
    {"xroad_instance": "FI", "member_class": "GOV", "member_code": "M1",
     "name": "Member One", "subsystems": ["SS1", "SS9"]},
    {"xroad_instance": "EE", "member_class": "COM", "member_code": "M3",
     "name": "Kolmas Liige"}
  ],
  "global_groups": [
    {"xroad_instance": "FI", "group_code": "security-server-owners",
     "description": "Security server owners"},
    {"xroad_instance": "EE", "group_code": "readers", "description": "Read-only"}
  ]
}`

func Test_Parse(t *testing.T) {
	snapshot, err := Parse([]byte(snapshotDoc))
	require.NoError(t, err)

	require.Equal(t, []string{"FI", "EE"}, snapshot.Instances)
	// One entry per member plus one per subsystem.
	require.Len(t, snapshot.Members, 4)
	require.Len(t, snapshot.Groups, 2)

	require.True(t, snapshot.containsMember(model.SubsystemID("FI", "GOV", "M1", "SS9")))
	require.True(t, snapshot.containsMember(model.MemberID("EE", "COM", "M3")))
	require.False(t, snapshot.containsMember(model.SubsystemID("EE", "COM", "M3", "SS1")))
	require.True(t, snapshot.containsGroup(model.GlobalGroupID("EE", "readers")))
}

func Test_Parse_RejectsInvalidEntries(t *testing.T) {
	_, err := Parse([]byte(`{"members": [{"xroad_instance": "FI", "name": "no codes"}]}`))
	require.ErrorIs(t, err, model.ErrDirectoryUnavailable)

	_, err = Parse([]byte(`{"global_groups": [{"group_code": "g"}]}`))
	require.ErrorIs(t, err, model.ErrDirectoryUnavailable)

	_, err = Parse([]byte(`not json`))
	require.ErrorIs(t, err, model.ErrDirectoryUnavailable)
}

func Test_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(snapshotDoc), 0o644))

	snapshot, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, snapshot.Groups, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, model.ErrDirectoryUnavailable)
}
