package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openxroad/adminapi/fixtures"
	"github.com/openxroad/adminapi/model"
	"github.com/openxroad/adminapi/repo"
)

func Test_CreateLocalGroup_DuplicateCode(t *testing.T) {
	store := RunFixtures(t, ClientFixture, LocalGroupFixture)

	tx := store.Txn(true)
	defer tx.Abort()
	service := LocalGroups(tx, TestDirectory())

	_, err := service.Create(fixtures.ClientUUID1, "G7", "another description")
	require.ErrorIs(t, err, model.ErrDuplicateLocalGroup)

	// The same code under another client is fine.
	group, err := service.Create(fixtures.ClientUUID2, "G7", "client two's G7")
	require.NoError(t, err)
	require.NotEmpty(t, group.UUID)

	stored, err := repo.NewLocalGroupRepository(tx).GetByClientAndCode(fixtures.ClientUUID2, "G7")
	require.NoError(t, err)
	require.Equal(t, group.UUID, stored.UUID)
}

func Test_LocalGroupMembers(t *testing.T) {
	store := RunFixtures(t, ClientFixture, LocalGroupFixture)
	dir := TestDirectory()

	tx := store.Txn(true)
	service := LocalGroups(tx, dir)

	group, err := service.AddMembers(fixtures.LocalGroupUUID1,
		[]model.XRoadID{model.MemberID("EE", "COM", "M3")})
	require.NoError(t, err)
	require.Len(t, group.Members, 2)

	// Already a member.
	_, err = service.AddMembers(fixtures.LocalGroupUUID1,
		[]model.XRoadID{model.MemberID("EE", "COM", "M3")})
	require.ErrorIs(t, err, model.ErrDuplicateLocalGroupMember)

	// Unknown in the directory.
	_, err = service.AddMembers(fixtures.LocalGroupUUID1,
		[]model.XRoadID{model.MemberID("FI", "GOV", "GHOST")})
	require.ErrorIs(t, err, model.ErrIdentifierNotFound)

	group, err = service.RemoveMembers(fixtures.LocalGroupUUID1,
		[]model.XRoadID{model.MemberID("EE", "COM", "M3")})
	require.NoError(t, err)
	require.Len(t, group.Members, 1)

	// Not a member: nothing is removed.
	_, err = service.RemoveMembers(fixtures.LocalGroupUUID1,
		[]model.XRoadID{model.MemberID("EE", "COM", "M3")})
	require.ErrorIs(t, err, model.ErrLocalGroupMemberNotFound)

	require.NoError(t, tx.Commit())
}

func Test_GetLocalGroupIdsAsXRoadIds(t *testing.T) {
	store := RunFixtures(t, ClientFixture, LocalGroupFixture)

	tx := store.Txn(false)
	defer tx.Abort()
	service := LocalGroups(tx, TestDirectory())

	ids, err := service.GetLocalGroupIdsAsXRoadIds([]string{fixtures.LocalGroupUUID1, fixtures.LocalGroupUUID2})
	require.NoError(t, err)
	require.ElementsMatch(t, []model.XRoadID{model.LocalGroupID("G7"), model.LocalGroupID("G9")}, ids)

	_, err = service.GetLocalGroupIdsAsXRoadIds([]string{"22222222-2222-2222-2222-222222222222"})
	require.ErrorIs(t, err, model.ErrLocalGroupNotFound)
}

func Test_UpdateLocalGroupDescription(t *testing.T) {
	store := RunFixtures(t, ClientFixture, LocalGroupFixture)

	tx := store.Txn(true)
	service := LocalGroups(tx, TestDirectory())

	group, err := service.UpdateDescription(fixtures.LocalGroupUUID1, "renamed")
	require.NoError(t, err)
	require.Equal(t, "renamed", group.Description)
	require.NoError(t, tx.Commit())

	tx = store.Txn(false)
	defer tx.Abort()
	stored, err := LocalGroups(tx, TestDirectory()).GetByUUID(fixtures.LocalGroupUUID1)
	require.NoError(t, err)
	require.Equal(t, "renamed", stored.Description)
	require.Len(t, stored.Members, 1)
}
