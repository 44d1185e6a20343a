package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openxroad/adminapi/fixtures"
	"github.com/openxroad/adminapi/model"
)

func Test_AddEndpointAccessRights_Subsystem(t *testing.T) {
	store := RunFixtures(t, ClientFixture, EndpointFixture, LocalGroupFixture)
	dir := TestDirectory()

	tx := store.Txn(true)
	acl, err := AccessRights(tx, dir).AddEndpointAccessRights(fixtures.EndpointUUID1,
		[]model.XRoadID{model.SubsystemID("EE", "COM", "M3", "SS3")}, nil)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.Len(t, acl, 1)
	require.Equal(t, model.SubsystemID("EE", "COM", "M3", "SS3"), acl[0].Subject)
	require.Equal(t, "Kolmas Liige", acl[0].MemberName)
	require.NotNil(t, acl[0].RightsGiven)

	// Granting the same right again must fail and leave the ACL unchanged.
	tx = store.Txn(true)
	_, err = AccessRights(tx, dir).AddEndpointAccessRights(fixtures.EndpointUUID1,
		[]model.XRoadID{model.SubsystemID("EE", "COM", "M3", "SS3")}, nil)
	require.ErrorIs(t, err, model.ErrDuplicateAccessRight)
	tx.Abort()

	require.Len(t, endpointACL(t, store, fixtures.EndpointUUID1), 1)
}

func Test_AddEndpointAccessRights_UnknownGlobalGroup(t *testing.T) {
	store := RunFixtures(t, ClientFixture, EndpointFixture, LocalGroupFixture)

	tx := store.Txn(true)
	_, err := AccessRights(tx, TestDirectory()).AddEndpointAccessRights(fixtures.EndpointUUID1,
		[]model.XRoadID{model.GlobalGroupID("FI", "no-such-group")}, nil)
	require.ErrorIs(t, err, model.ErrIdentifierNotFound)
	tx.Abort()

	require.Empty(t, endpointACL(t, store, fixtures.EndpointUUID1))
}

func Test_AddEndpointAccessRights_DirectoryUnavailable(t *testing.T) {
	store := RunFixtures(t, ClientFixture, EndpointFixture, LocalGroupFixture)

	tx := store.Txn(true)
	defer tx.Abort()
	_, err := AccessRights(tx, EmptyDirectory()).AddEndpointAccessRights(fixtures.EndpointUUID1,
		[]model.XRoadID{model.SubsystemID("EE", "COM", "M3", "SS3")}, nil)

	// An unreachable directory must not masquerade as a missing identifier.
	require.ErrorIs(t, err, model.ErrDirectoryUnavailable)
	require.NotErrorIs(t, err, model.ErrIdentifierNotFound)
}

func Test_AddAndDeleteLocalGroupAccessRight(t *testing.T) {
	store := RunFixtures(t, ClientFixture, EndpointFixture, LocalGroupFixture)
	dir := TestDirectory()

	tx := store.Txn(true)
	acl, err := AccessRights(tx, dir).AddEndpointAccessRights(fixtures.EndpointUUID1,
		nil, []string{fixtures.LocalGroupUUID1})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.Len(t, acl, 1)
	require.Equal(t, model.LocalGroupID("G7"), acl[0].Subject)
	require.Equal(t, fixtures.LocalGroupUUID1, acl[0].LocalGroupUUID)
	require.Equal(t, "G7", acl[0].LocalGroupCode)
	require.Equal(t, "internal consumers", acl[0].LocalGroupDescription)

	tx = store.Txn(true)
	err = AccessRights(tx, dir).DeleteEndpointAccessRights(fixtures.EndpointUUID1,
		nil, []string{fixtures.LocalGroupUUID1})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.Empty(t, endpointACL(t, store, fixtures.EndpointUUID1))
}

func Test_AddAccessRights_ForeignLocalGroup(t *testing.T) {
	store := RunFixtures(t, ClientFixture, EndpointFixture, LocalGroupFixture)

	// Local group 2 belongs to client 2, endpoint 1 to client 1.
	tx := store.Txn(true)
	defer tx.Abort()
	_, err := AccessRights(tx, TestDirectory()).AddEndpointAccessRights(fixtures.EndpointUUID1,
		nil, []string{fixtures.LocalGroupUUID2})
	require.ErrorIs(t, err, model.ErrLocalGroupNotFound)
}

func Test_DeleteAccessRights_ForeignLocalGroup(t *testing.T) {
	store := RunFixtures(t, ClientFixture, EndpointFixture, LocalGroupFixture)
	dir := TestDirectory()

	tx := store.Txn(true)
	_, err := AccessRights(tx, dir).AddEndpointAccessRights(fixtures.EndpointUUID1,
		nil, []string{fixtures.LocalGroupUUID1})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	// Local group 2 belongs to client 2, endpoint 1 to client 1.
	tx = store.Txn(true)
	err = AccessRights(tx, dir).DeleteEndpointAccessRights(fixtures.EndpointUUID1,
		nil, []string{fixtures.LocalGroupUUID2})
	require.ErrorIs(t, err, model.ErrLocalGroupNotFound)
	tx.Abort()

	require.Len(t, endpointACL(t, store, fixtures.EndpointUUID1), 1)
}

func Test_DeleteAccessRights_GroupCodeCollision(t *testing.T) {
	store := RunFixtures(t, ClientFixture, EndpointFixture, LocalGroupFixture)
	dir := TestDirectory()

	// Client 2 defines its own group coded "G7", colliding with client 1's.
	tx := store.Txn(true)
	foreign, err := LocalGroups(tx, dir).Create(fixtures.ClientUUID2, "G7", "client two's G7")
	require.NoError(t, err)
	_, err = AccessRights(tx, dir).AddEndpointAccessRights(fixtures.EndpointUUID1,
		nil, []string{fixtures.LocalGroupUUID1})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	// The foreign group's id must not revoke client 1's entry through the
	// shared code.
	tx = store.Txn(true)
	err = AccessRights(tx, dir).DeleteEndpointAccessRights(fixtures.EndpointUUID1,
		nil, []string{foreign.UUID})
	require.ErrorIs(t, err, model.ErrLocalGroupNotFound)
	tx.Abort()

	require.Len(t, endpointACL(t, store, fixtures.EndpointUUID1), 1)
}

func Test_AddAccessRights_AllOrNothing(t *testing.T) {
	store := RunFixtures(t, ClientFixture, EndpointFixture, LocalGroupFixture)
	dir := TestDirectory()

	tx := store.Txn(true)
	_, err := AccessRights(tx, dir).AddEndpointAccessRights(fixtures.EndpointUUID1,
		[]model.XRoadID{model.SubsystemID("FI", "GOV", "M2", "SS2")}, nil)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	// One valid new subject, one already granted: no entry may survive.
	tx = store.Txn(true)
	_, err = AccessRights(tx, dir).AddEndpointAccessRights(fixtures.EndpointUUID1,
		[]model.XRoadID{
			model.SubsystemID("EE", "COM", "M3", "SS3"),
			model.SubsystemID("FI", "GOV", "M2", "SS2"),
		}, nil)
	require.ErrorIs(t, err, model.ErrDuplicateAccessRight)
	tx.Abort()

	acl := endpointACL(t, store, fixtures.EndpointUUID1)
	require.Len(t, acl, 1)
	require.Equal(t, model.SubsystemID("FI", "GOV", "M2", "SS2"), acl[0].Subject)
}

func Test_DeleteAccessRights_AllOrNothing(t *testing.T) {
	store := RunFixtures(t, ClientFixture, EndpointFixture, LocalGroupFixture)
	dir := TestDirectory()

	tx := store.Txn(true)
	_, err := AccessRights(tx, dir).AddEndpointAccessRights(fixtures.EndpointUUID1,
		[]model.XRoadID{model.SubsystemID("FI", "GOV", "M2", "SS2")}, nil)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	tx = store.Txn(true)
	err = AccessRights(tx, dir).DeleteEndpointAccessRights(fixtures.EndpointUUID1,
		[]model.XRoadID{
			model.SubsystemID("FI", "GOV", "M2", "SS2"),
			model.SubsystemID("EE", "COM", "M3", "SS3"), // holds no right
		}, nil)
	require.ErrorIs(t, err, model.ErrAccessRightNotFound)
	tx.Abort()

	require.Len(t, endpointACL(t, store, fixtures.EndpointUUID1), 1)
}

func Test_DuplicateFreedomIsPerEndpoint(t *testing.T) {
	store := RunFixtures(t, ClientFixture, EndpointFixture, LocalGroupFixture)
	dir := TestDirectory()
	subject := model.SubsystemID("EE", "COM", "M3", "SS3")

	// The same subject may hold rights on two different endpoints of the
	// same client.
	tx := store.Txn(true)
	_, err := AccessRights(tx, dir).AddEndpointAccessRights(fixtures.EndpointUUID1,
		[]model.XRoadID{subject}, nil)
	require.NoError(t, err)
	_, err = AccessRights(tx, dir).AddEndpointAccessRights(fixtures.EndpointUUID2,
		[]model.XRoadID{subject}, nil)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.Len(t, endpointACL(t, store, fixtures.EndpointUUID1), 1)
	require.Len(t, endpointACL(t, store, fixtures.EndpointUUID2), 1)
}

func Test_AddServiceAccessRights(t *testing.T) {
	store := RunFixtures(t, ClientFixture, EndpointFixture, LocalGroupFixture)
	dir := TestDirectory()
	clientID := model.SubsystemID("FI", "GOV", "M1", "SS1")

	tx := store.Txn(true)
	acl, err := AccessRights(tx, dir).AddServiceAccessRights(clientID, "testService",
		[]model.XRoadID{model.SubsystemID("EE", "COM", "M3", "SS3")}, nil)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	require.Len(t, acl, 1)

	// Rights land on the base endpoint, not on the sub-endpoints.
	require.Len(t, endpointACL(t, store, fixtures.EndpointUUID1), 1)
	require.Empty(t, endpointACL(t, store, fixtures.EndpointUUID2))

	tx = store.Txn(true)
	err = AccessRights(tx, dir).DeleteServiceAccessRights(clientID, "testService",
		[]model.XRoadID{model.SubsystemID("EE", "COM", "M3", "SS3")}, nil)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	require.Empty(t, endpointACL(t, store, fixtures.EndpointUUID1))
}

func Test_AddServiceAccessRights_UnknownService(t *testing.T) {
	store := RunFixtures(t, ClientFixture, EndpointFixture, LocalGroupFixture)

	tx := store.Txn(true)
	defer tx.Abort()
	_, err := AccessRights(tx, TestDirectory()).AddServiceAccessRights(
		model.SubsystemID("FI", "GOV", "M1", "SS1"), "noSuchService",
		[]model.XRoadID{model.SubsystemID("EE", "COM", "M3", "SS3")}, nil)
	require.ErrorIs(t, err, model.ErrServiceNotFound)
}

func Test_AddAccessRights_UnknownEndpoint(t *testing.T) {
	store := RunFixtures(t, ClientFixture, EndpointFixture, LocalGroupFixture)

	tx := store.Txn(true)
	defer tx.Abort()
	_, err := AccessRights(tx, TestDirectory()).AddEndpointAccessRights(
		"11111111-1111-1111-1111-111111111111",
		[]model.XRoadID{model.SubsystemID("EE", "COM", "M3", "SS3")}, nil)
	require.ErrorIs(t, err, model.ErrEndpointNotFound)
}

func Test_BatchSharesOneTimestamp(t *testing.T) {
	store := RunFixtures(t, ClientFixture, EndpointFixture, LocalGroupFixture)

	tx := store.Txn(true)
	acl, err := AccessRights(tx, TestDirectory()).AddEndpointAccessRights(fixtures.EndpointUUID1,
		[]model.XRoadID{
			model.SubsystemID("EE", "COM", "M3", "SS3"),
			model.SubsystemID("FI", "GOV", "M2", "SS2"),
		}, []string{fixtures.LocalGroupUUID1})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.Len(t, acl, 3)
	for _, sc := range acl {
		require.Equal(t, *acl[0].RightsGiven, *sc.RightsGiven)
	}
}
