package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyworldradio/workspace7/internal/domain/entity"
	"github.com/easyworldradio/workspace7/internal/infrastructure/records"
)

func TestCreateWorkspaceDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.register(t, "owner", "1234")
	w, err := f.workspace.Create(ctx, owner.ID)
	require.NoError(t, err)

	assert.NotEmpty(t, w.ID)
	assert.Equal(t, owner.ID, w.UserID)
	assert.Equal(t, "Yeni proje", w.Title)
	assert.Empty(t, w.Summary)
	assert.NotNil(t, w.ProgressSteps)
	assert.Empty(t, w.ProgressSteps)
	assert.NotNil(t, w.Resources)
	assert.Empty(t, w.Resources)
	assert.NotNil(t, w.Collaborators)
	assert.Len(t, w.InviteCode, 6)
	assert.Equal(t, w.CreatedAt, w.LastModified)
}

func TestListForUserFiltersByTitle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.register(t, "owner", "1234")
	w1, err := f.workspace.Create(ctx, owner.ID)
	require.NoError(t, err)
	w1.Title = "Mobil uygulama"
	_, err = f.workspace.Update(ctx, owner.ID, w1)
	require.NoError(t, err)

	w2, err := f.workspace.Create(ctx, owner.ID)
	require.NoError(t, err)
	w2.Title = "Web sitesi"
	_, err = f.workspace.Update(ctx, owner.ID, w2)
	require.NoError(t, err)

	list, err := f.workspace.ListForUser(ctx, owner.ID, "mobil")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, w1.ID, list[0].ID)

	list, err = f.workspace.ListForUser(ctx, owner.ID, "")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestGetDeniesOutsiders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.register(t, "owner", "1234")
	w, err := f.workspace.Create(ctx, owner.ID)
	require.NoError(t, err)

	stranger := f.register(t, "stranger", "1234")
	_, err = f.workspace.Get(ctx, stranger.ID, w.ID)
	assert.ErrorIs(t, err, records.ErrNotFound)
}

func TestCollaboratorHasEqualWriteAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.register(t, "owner", "1234")
	w, err := f.workspace.Create(ctx, owner.ID)
	require.NoError(t, err)

	guest := f.register(t, "guest", "1234")
	_, err = f.invites.Join(ctx, guest.ID, w.InviteCode)
	require.NoError(t, err)

	got, err := f.workspace.Get(ctx, guest.ID, w.ID)
	require.NoError(t, err)
	got.Title = "guest edit"
	updated, err := f.workspace.Update(ctx, guest.ID, got)
	require.NoError(t, err)
	assert.Equal(t, "guest edit", updated.Title)

	// deletion stays owner-only
	err = f.workspace.Delete(ctx, guest.ID, w.ID)
	assert.ErrorIs(t, err, records.ErrNotFound)
	require.NoError(t, f.workspace.Delete(ctx, owner.ID, w.ID))
}

func TestUpdateCarriesImmutableFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.register(t, "owner", "1234")
	w, err := f.workspace.Create(ctx, owner.ID)
	require.NoError(t, err)

	tampered := &entity.Workspace{
		ID:            w.ID,
		UserID:        "someone-else",
		Collaborators: []string{"x", "y"},
		InviteCode:    "HACKED",
		Title:         "renamed",
		CreatedAt:     42,
	}
	updated, err := f.workspace.Update(ctx, owner.ID, tampered)
	require.NoError(t, err)

	assert.Equal(t, owner.ID, updated.UserID)
	assert.Empty(t, updated.Collaborators)
	assert.Equal(t, w.InviteCode, updated.InviteCode)
	assert.Equal(t, w.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "renamed", updated.Title)
	assert.GreaterOrEqual(t, updated.LastModified, w.LastModified)
}

func TestDeleteRemovesForEveryMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.register(t, "owner", "1234")
	w, err := f.workspace.Create(ctx, owner.ID)
	require.NoError(t, err)

	guest := f.register(t, "guest", "1234")
	_, err = f.invites.Join(ctx, guest.ID, w.InviteCode)
	require.NoError(t, err)

	require.NoError(t, f.workspace.Delete(ctx, owner.ID, w.ID))

	for _, uid := range []string{owner.ID, guest.ID} {
		list, err := f.workspace.ListForUser(ctx, uid, "")
		require.NoError(t, err)
		assert.Empty(t, list)
	}
}

func TestStepStatusKeepsCompletionInSync(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.register(t, "owner", "1234")
	w, err := f.workspace.Create(ctx, owner.ID)
	require.NoError(t, err)

	w, err = f.workspace.AddStep(ctx, owner.ID, w.ID, entity.ProgressStep{Text: "Pazar araştırması", Status: entity.StatusTodo})
	require.NoError(t, err)
	require.Len(t, w.ProgressSteps, 1)
	step := w.ProgressSteps[0]
	assert.NotEmpty(t, step.ID)
	assert.False(t, step.IsCompleted)

	w, err = f.workspace.SetStepStatus(ctx, owner.ID, w.ID, step.ID, entity.StatusDone)
	require.NoError(t, err)
	assert.True(t, w.ProgressSteps[0].IsCompleted)

	w, err = f.workspace.SetStepStatus(ctx, owner.ID, w.ID, step.ID, entity.StatusInProgress)
	require.NoError(t, err)
	assert.False(t, w.ProgressSteps[0].IsCompleted)

	// toggle from in-progress lands on done, toggle again on todo
	w, err = f.workspace.ToggleStep(ctx, owner.ID, w.ID, step.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDone, w.ProgressSteps[0].Status)
	assert.True(t, w.ProgressSteps[0].IsCompleted)

	w, err = f.workspace.ToggleStep(ctx, owner.ID, w.ID, step.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusTodo, w.ProgressSteps[0].Status)
	assert.False(t, w.ProgressSteps[0].IsCompleted)
}

func TestStepMutationsOnMissingStep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.register(t, "owner", "1234")
	w, err := f.workspace.Create(ctx, owner.ID)
	require.NoError(t, err)

	_, err = f.workspace.SetStepStatus(ctx, owner.ID, w.ID, "ghost", entity.StatusDone)
	assert.ErrorIs(t, err, records.ErrNotFound)

	_, err = f.workspace.ToggleStep(ctx, owner.ID, w.ID, "ghost")
	assert.ErrorIs(t, err, records.ErrNotFound)
}

func TestResourceLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.register(t, "owner", "1234")
	w, err := f.workspace.Create(ctx, owner.ID)
	require.NoError(t, err)

	w, err = f.workspace.AddResource(ctx, owner.ID, w.ID, entity.Resource{Name: "Tasarımcı", Price: "5000 TL"})
	require.NoError(t, err)
	require.Len(t, w.Resources, 1)
	res := w.Resources[0]
	assert.NotEmpty(t, res.ID)
	assert.NotNil(t, res.Links)

	res.Note = "haftalık"
	res.Links = []string{"https://example.com", ""}
	w, err = f.workspace.UpdateResource(ctx, owner.ID, w.ID, res)
	require.NoError(t, err)
	assert.Equal(t, "haftalık", w.Resources[0].Note)
	// blank links are stored verbatim
	assert.Equal(t, []string{"https://example.com", ""}, w.Resources[0].Links)

	_, err = f.workspace.UpdateResource(ctx, owner.ID, w.ID, entity.Resource{ID: "ghost"})
	assert.ErrorIs(t, err, records.ErrNotFound)

	w, err = f.workspace.RemoveResource(ctx, owner.ID, w.ID, res.ID)
	require.NoError(t, err)
	assert.Empty(t, w.Resources)
}

func TestMutationsBlockedInReadOnlyView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.register(t, "owner", "1234")
	w, err := f.workspace.Create(ctx, owner.ID)
	require.NoError(t, err)

	token, err := f.workspace.Share(ctx, owner.ID, w.ID)
	require.NoError(t, err)
	require.NotNil(t, f.sessions.OpenSharedView(token))

	_, err = f.workspace.Create(ctx, owner.ID)
	assert.ErrorIs(t, err, ErrReadOnlyView)
	_, err = f.workspace.Update(ctx, owner.ID, w)
	assert.ErrorIs(t, err, ErrReadOnlyView)
	assert.ErrorIs(t, f.workspace.Delete(ctx, owner.ID, w.ID), ErrReadOnlyView)
	_, err = f.workspace.AddStep(ctx, owner.ID, w.ID, entity.ProgressStep{Text: "x"})
	assert.ErrorIs(t, err, ErrReadOnlyView)
	_, err = f.workspace.AddResource(ctx, owner.ID, w.ID, entity.Resource{Name: "x"})
	assert.ErrorIs(t, err, ErrReadOnlyView)

	// reads keep working
	_, err = f.workspace.Get(ctx, owner.ID, w.ID)
	assert.NoError(t, err)

	// nothing was persisted while the view was open
	list, err := f.workspace.ListForUser(ctx, owner.ID, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].ProgressSteps)
}

func TestShareTokenIsASnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.register(t, "owner", "1234")
	w, err := f.workspace.Create(ctx, owner.ID)
	require.NoError(t, err)
	w.Title = "önce"
	_, err = f.workspace.Update(ctx, owner.ID, w)
	require.NoError(t, err)

	token, err := f.workspace.Share(ctx, owner.ID, w.ID)
	require.NoError(t, err)

	w.Title = "sonra"
	_, err = f.workspace.Update(ctx, owner.ID, w)
	require.NoError(t, err)

	shared := f.sessions.OpenSharedView(token)
	require.NotNil(t, shared)
	assert.Equal(t, "önce", shared.Title)
}

func TestSearchWithoutIndexReturnsEmpty(t *testing.T) {
	f := newFixture(t)

	hits, err := f.workspace.Search(context.Background(), "u1", "anything", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestExportUnconfigured(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.register(t, "owner", "1234")
	w, err := f.workspace.Create(ctx, owner.ID)
	require.NoError(t, err)

	_, err = f.workspace.Export(ctx, owner.ID, w.ID)
	assert.Error(t, err)
}
