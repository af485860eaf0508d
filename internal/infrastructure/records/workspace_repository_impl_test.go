package records

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyworldradio/workspace7/internal/domain/entity"
	"github.com/easyworldradio/workspace7/internal/domain/repository"
	"github.com/easyworldradio/workspace7/internal/infrastructure/kvstore"
)

func newWorkspace(id, owner, invite string) *entity.Workspace {
	return &entity.Workspace{
		ID:            id,
		UserID:        owner,
		Collaborators: []string{},
		InviteCode:    invite,
		Title:         "t-" + id,
		ProgressSteps: []entity.ProgressStep{},
		Resources:     []entity.Resource{},
		CreatedAt:     1,
		LastModified:  1,
	}
}

func TestWorkspaceCreatePrepends(t *testing.T) {
	repo := NewWorkspaceRepository(kvstore.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newWorkspace("w1", "u1", "AAAAAA")))
	require.NoError(t, repo.Create(ctx, newWorkspace("w2", "u1", "BBBBBB")))

	list, err := repo.ListForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "w2", list[0].ID)
	assert.Equal(t, "w1", list[1].ID)
}

func TestWorkspaceListForUserIncludesCollaborations(t *testing.T) {
	repo := NewWorkspaceRepository(kvstore.NewMemoryStore())
	ctx := context.Background()

	mine := newWorkspace("w1", "u1", "AAAAAA")
	theirs := newWorkspace("w2", "u2", "BBBBBB")
	theirs.Collaborators = []string{"u1"}
	other := newWorkspace("w3", "u3", "CCCCCC")

	require.NoError(t, repo.Create(ctx, mine))
	require.NoError(t, repo.Create(ctx, theirs))
	require.NoError(t, repo.Create(ctx, other))

	list, err := repo.ListForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	ids := []string{list[0].ID, list[1].ID}
	assert.ElementsMatch(t, []string{"w1", "w2"}, ids)
}

func TestWorkspaceGetByInviteCodeIsCaseInsensitive(t *testing.T) {
	repo := NewWorkspaceRepository(kvstore.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newWorkspace("w1", "u1", "K3J9QZ")))

	w, err := repo.GetByInviteCode(ctx, "k3j9qz")
	require.NoError(t, err)
	assert.Equal(t, "w1", w.ID)

	_, err = repo.GetByInviteCode(ctx, "ZZZZZZ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkspaceDuplicateInviteCodeFirstMatchWins(t *testing.T) {
	repo := NewWorkspaceRepository(kvstore.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newWorkspace("older", "u1", "SAMECO")))
	require.NoError(t, repo.Create(ctx, newWorkspace("newer", "u2", "SAMECO")))

	// newer was prepended, so it is first in store order
	w, err := repo.GetByInviteCode(ctx, "SAMECO")
	require.NoError(t, err)
	assert.Equal(t, "newer", w.ID)
}

func TestWorkspaceUpdateStampsLastModified(t *testing.T) {
	fixed := time.UnixMilli(1700000009999)
	repo := NewWorkspaceRepository(kvstore.NewMemoryStore()).WithClock(func() time.Time { return fixed })
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newWorkspace("w1", "u1", "AAAAAA")))

	w := newWorkspace("w1", "u1", "AAAAAA")
	w.Title = "renamed"
	require.NoError(t, repo.Update(ctx, w))

	got, err := repo.GetByID(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, int64(1700000009999), got.LastModified)
}

func TestWorkspaceReplaceKeepsLastModified(t *testing.T) {
	repo := NewWorkspaceRepository(kvstore.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newWorkspace("w1", "u1", "AAAAAA")))

	w := newWorkspace("w1", "u1", "AAAAAA")
	w.Collaborators = []string{"u2"}
	require.NoError(t, repo.Replace(ctx, w))

	got, err := repo.GetByID(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, got.Collaborators)
	assert.Equal(t, int64(1), got.LastModified)
}

func TestWorkspaceDeleteOwnedBy(t *testing.T) {
	repo := NewWorkspaceRepository(kvstore.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newWorkspace("w1", "u1", "AAAAAA")))
	require.NoError(t, repo.Create(ctx, newWorkspace("w2", "u2", "BBBBBB")))
	require.NoError(t, repo.Create(ctx, newWorkspace("w3", "u1", "CCCCCC")))

	require.NoError(t, repo.DeleteOwnedBy(ctx, "u1"))

	list, err := repo.ListForUser(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "w2", list[0].ID)

	_, err = repo.GetByID(ctx, "w1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkspaceLastWriteWinsOnSharedStore(t *testing.T) {
	store := kvstore.NewMemoryStore()
	repoA := NewWorkspaceRepository(store)
	repoB := NewWorkspaceRepository(store)
	ctx := context.Background()

	require.NoError(t, repoA.Create(ctx, newWorkspace("w1", "u1", "AAAAAA")))

	// both writers load the same snapshot
	a, err := repoA.GetByID(ctx, "w1")
	require.NoError(t, err)
	b, err := repoB.GetByID(ctx, "w1")
	require.NoError(t, err)

	a.Title = "from A"
	require.NoError(t, repoA.Replace(ctx, a))
	b.Title = "from B"
	require.NoError(t, repoB.Replace(ctx, b))

	got, err := repoA.GetByID(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "from B", got.Title)
}

// A stored workspaces document that is valid JSON but the wrong shape
// must read as an empty list, with no ghost records surviving into the
// next whole-list write.
func TestWorkspaceListShapeCorruptDocReadsEmpty(t *testing.T) {
	store := kvstore.NewMemoryStore()
	store.SaveRaw(repository.WorkspacesKey, []byte(`[{"id":"ws-keep","title":"ok"},{"id":123}]`))
	repo := NewWorkspaceRepository(store)
	ctx := context.Background()

	list, err := repo.ListForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = repo.GetByID(ctx, "ws-keep")
	assert.ErrorIs(t, err, ErrNotFound)

	// the next write starts from the empty default, not from debris
	require.NoError(t, repo.Create(ctx, newWorkspace("w1", "u1", "AAAAAA")))
	var all []entity.Workspace
	found, err := store.Load(ctx, repository.WorkspacesKey, &all)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, all, 1)
	assert.Equal(t, "w1", all[0].ID)
}

func TestWorkspaceKeysStayStable(t *testing.T) {
	assert.Equal(t, "workspace7_all_data_v2", repository.WorkspacesKey)
	assert.Equal(t, "workspace7_users", repository.UsersKey)
	assert.Equal(t, "workspace7_active_user", repository.SessionKey)
}
