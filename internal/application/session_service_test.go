package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyworldradio/workspace7/internal/domain/entity"
	"github.com/easyworldradio/workspace7/internal/infrastructure/records"
)

func TestLogoutClearsSessionAndSharedView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.register(t, "owner", "1234")
	w, err := f.workspace.Create(ctx, owner.ID)
	require.NoError(t, err)

	token, err := f.workspace.Share(ctx, owner.ID, w.ID)
	require.NoError(t, err)
	require.NotNil(t, f.sessions.OpenSharedView(token))
	require.True(t, f.sessions.ReadOnly())

	require.NoError(t, f.sessions.Logout(ctx))

	current, err := f.sessions.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
	assert.False(t, f.sessions.ReadOnly())
	assert.Nil(t, f.sessions.SharedView())
}

func TestOpenSharedViewSwallowsBadTokens(t *testing.T) {
	f := newFixture(t)

	assert.Nil(t, f.sessions.OpenSharedView("share:garbage"))
	assert.Nil(t, f.sessions.OpenSharedView(""))
	assert.False(t, f.sessions.ReadOnly())
}

func TestUpdateCurrentUserResyncsBothCopies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := f.register(t, "ayse", "1234")

	updated := &entity.User{ID: u.ID, Username: "ayse", Password: "yeni"}
	require.NoError(t, f.sessions.UpdateCurrentUser(ctx, updated))

	slot, err := f.sessions.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "yeni", slot.Password)

	stored, err := f.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "yeni", stored.Password)
}

// A session slot can outlive its list entry; updating then still
// rewrites the slot and tolerates the missing list row.
func TestUpdateCurrentUserToleratesMissingListEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := f.register(t, "ayse", "1234")
	require.NoError(t, f.users.Delete(ctx, u.ID))

	updated := &entity.User{ID: u.ID, Username: "ayse", Password: "yeni"}
	require.NoError(t, f.sessions.UpdateCurrentUser(ctx, updated))

	slot, err := f.sessions.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "yeni", slot.Password)
}

func TestDeleteAccountCascadesOwnedWorkspacesOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other := f.register(t, "other", "1234")
	otherWS, err := f.workspace.Create(ctx, other.ID)
	require.NoError(t, err)

	victim := f.register(t, "victim", "1234")
	_, err = f.workspace.Create(ctx, victim.ID)
	require.NoError(t, err)
	_, err = f.invites.Join(ctx, victim.ID, otherWS.InviteCode)
	require.NoError(t, err)

	require.NoError(t, f.sessions.DeleteAccount(ctx))

	_, err = f.users.GetByID(ctx, victim.ID)
	assert.ErrorIs(t, err, records.ErrNotFound)

	list, err := f.workspaces.ListForUser(ctx, victim.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, otherWS.ID, list[0].ID)

	// the deleted id stays in the collaborator list; nothing scrubs it
	got, err := f.workspaces.GetByID(ctx, otherWS.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{victim.ID}, got.Collaborators)

	current, err := f.sessions.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestDeleteAccountWithoutSession(t *testing.T) {
	f := newFixture(t)

	err := f.sessions.DeleteAccount(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}
