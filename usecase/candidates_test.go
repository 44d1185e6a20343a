package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openxroad/adminapi/model"
)

var candidateClient = model.SubsystemID("FI", "GOV", "M1", "SS1")

func findCandidates(t *testing.T, filters ServiceClientFilters) []model.ServiceClient {
	store := RunFixtures(t, ClientFixture, EndpointFixture, LocalGroupFixture)
	tx := store.Txn(false)
	defer tx.Abort()

	result, err := AccessRights(tx, TestDirectory()).FindServiceClientCandidates(candidateClient, filters)
	require.NoError(t, err)
	return result
}

func Test_FindCandidates_NeverReturnsMembers(t *testing.T) {
	result := findCandidates(t, ServiceClientFilters{})

	require.NotEmpty(t, result)
	for _, c := range result {
		require.NotEqual(t, model.Member, c.Subject.ObjectType)
	}
	// 3 subsystems + 2 global groups + 1 own local group.
	require.Len(t, result, 6)
}

func Test_FindCandidates_SubjectType(t *testing.T) {
	result := findCandidates(t, ServiceClientFilters{SubjectType: model.GlobalGroup})

	require.Len(t, result, 2)
	for _, c := range result {
		require.Equal(t, model.GlobalGroup, c.Subject.ObjectType)
	}
}

func Test_FindCandidates_InstanceWithoutGroups(t *testing.T) {
	// No directory instance matches "XX": zero results, not an error.
	result := findCandidates(t, ServiceClientFilters{
		SubjectType: model.GlobalGroup,
		Instance:    "XX",
	})
	require.Empty(t, result)
}

func Test_FindCandidates_InstancePassesLocalGroups(t *testing.T) {
	// Local groups carry no instance and pass the instance stage.
	result := findCandidates(t, ServiceClientFilters{Instance: "EE"})

	subjects := []model.XRoadID{}
	for _, c := range result {
		subjects = append(subjects, c.Subject)
	}
	require.ElementsMatch(t, []model.XRoadID{
		model.SubsystemID("EE", "COM", "M3", "SS3"),
		model.GlobalGroupID("EE", "readers"),
		model.LocalGroupID("G7"),
	}, subjects)
}

func Test_FindCandidates_NameOrDescription(t *testing.T) {
	// Case-insensitive, matches member names and local-group descriptions
	// but not global-group descriptions.
	result := findCandidates(t, ServiceClientFilters{NameOrDescription: "conSUMers"})

	require.Len(t, result, 1)
	require.Equal(t, model.LocalGroupID("G7"), result[0].Subject)
}

func Test_FindCandidates_MemberGroupCode(t *testing.T) {
	result := findCandidates(t, ServiceClientFilters{MemberGroupCode: "owners"})

	require.Len(t, result, 1)
	require.Equal(t, model.GlobalGroupID("FI", "security-server-owners"), result[0].Subject)
	// Global-group descriptions carry their own field, not the local-group one.
	require.Equal(t, "Security server owners", result[0].Description)
	require.Empty(t, result[0].LocalGroupDescription)
}

func Test_FindCandidates_MemberClassAndSubsystem(t *testing.T) {
	result := findCandidates(t, ServiceClientFilters{
		MemberClass:   "com",
		SubsystemCode: "SS3",
	})

	require.Len(t, result, 1)
	require.Equal(t, model.SubsystemID("EE", "COM", "M3", "SS3"), result[0].Subject)
}

func Test_FindCandidates_UnknownClient(t *testing.T) {
	store := RunFixtures(t, ClientFixture, EndpointFixture, LocalGroupFixture)
	tx := store.Txn(false)
	defer tx.Abort()

	_, err := AccessRights(tx, TestDirectory()).FindServiceClientCandidates(
		model.SubsystemID("FI", "GOV", "NOBODY", "SS1"), ServiceClientFilters{})
	require.ErrorIs(t, err, model.ErrClientNotFound)
}

func Test_FindCandidates_DirectoryUnavailable(t *testing.T) {
	store := RunFixtures(t, ClientFixture, EndpointFixture, LocalGroupFixture)
	tx := store.Txn(false)
	defer tx.Abort()

	// Listing degrades to local data only.
	result, err := AccessRights(tx, EmptyDirectory()).FindServiceClientCandidates(
		candidateClient, ServiceClientFilters{})
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, model.LocalGroupID("G7"), result[0].Subject)
}
