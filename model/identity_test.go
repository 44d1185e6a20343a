package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_ShortStringRoundTrip(t *testing.T) {
	ids := []XRoadID{
		MemberID("FI", "GOV", "M1"),
		SubsystemID("FI", "GOV", "M1", "SS1"),
		GlobalGroupID("FI", "security-server-owners"),
		LocalGroupID("G7"),
	}
	for _, id := range ids {
		parsed, err := ParseXRoadID(id.ShortString())
		require.NoError(t, err, id.ShortString())
		require.Equal(t, id, parsed)
	}
}

func Test_ParseXRoadID_Malformed(t *testing.T) {
	for _, s := range []string{
		"",
		"FI:GOV/",
		"FI:/M1",
		"FI:GOV/M1:",
		":group",
		"FI:",
	} {
		_, err := ParseXRoadID(s)
		require.Error(t, err, s)
	}
}

func Test_KeyIsStructural(t *testing.T) {
	require.Equal(t,
		SubsystemID("FI", "GOV", "M1", "SS1").Key(),
		SubsystemID("FI", "GOV", "M1", "SS1").Key())
	// The member and its subsystem are different identities.
	require.NotEqual(t,
		MemberID("FI", "GOV", "M1").Key(),
		SubsystemID("FI", "GOV", "M1", "SS1").Key())
	// A global and a local group sharing a code do not collide.
	require.NotEqual(t,
		GlobalGroupID("FI", "G7").Key(),
		LocalGroupID("G7").Key())
}

func Test_IsClient(t *testing.T) {
	require.True(t, MemberID("FI", "GOV", "M1").IsClient())
	require.True(t, SubsystemID("FI", "GOV", "M1", "SS1").IsClient())
	require.False(t, GlobalGroupID("FI", "g").IsClient())
	require.False(t, LocalGroupID("g").IsClient())
}
