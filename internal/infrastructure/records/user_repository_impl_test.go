package records

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyworldradio/workspace7/internal/domain/entity"
	"github.com/easyworldradio/workspace7/internal/infrastructure/kvstore"
)

func TestUserRepositoryCRUD(t *testing.T) {
	repo := NewUserRepository(kvstore.NewMemoryStore())
	ctx := context.Background()

	u := &entity.User{ID: "u1", Username: "ayse", Password: "1234"}
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "ayse", got.Username)

	got, err = repo.GetByUsername(ctx, "ayse")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	u.Password = "5678"
	require.NoError(t, repo.Update(ctx, u))
	got, err = repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "5678", got.Password)

	require.NoError(t, repo.Delete(ctx, "u1"))
	_, err = repo.GetByID(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepositoryUsernameIsCaseSensitive(t *testing.T) {
	repo := NewUserRepository(kvstore.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u1", Username: "Ayse", Password: "1234"}))

	_, err := repo.GetByUsername(ctx, "ayse")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepositoryUpdateMissing(t *testing.T) {
	repo := NewUserRepository(kvstore.NewMemoryStore())

	err := repo.Update(context.Background(), &entity.User{ID: "ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepositoryDeleteMissingIsNoop(t *testing.T) {
	repo := NewUserRepository(kvstore.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u1", Username: "ayse", Password: "1234"}))
	require.NoError(t, repo.Delete(ctx, "ghost"))

	_, err := repo.GetByID(ctx, "u1")
	assert.NoError(t, err)
}

func TestSessionStoreRoundTrip(t *testing.T) {
	s := NewSessionStore(kvstore.NewMemoryStore())
	ctx := context.Background()

	u, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)

	require.NoError(t, s.Set(ctx, &entity.User{ID: "u1", Username: "ayse", Password: "1234"}))
	u, err = s.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)

	require.NoError(t, s.Clear(ctx))
	u, err = s.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
}

// The session slot is a copy, not a reference: list edits do not reach
// it until the slot is explicitly rewritten.
func TestSessionSlotIsDenormalized(t *testing.T) {
	store := kvstore.NewMemoryStore()
	users := NewUserRepository(store)
	sessions := NewSessionStore(store)
	ctx := context.Background()

	u := &entity.User{ID: "u1", Username: "ayse", Password: "1234"}
	require.NoError(t, users.Create(ctx, u))
	require.NoError(t, sessions.Set(ctx, u))

	u.Username = "ayse2"
	require.NoError(t, users.Update(ctx, u))

	slot, err := sessions.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ayse", slot.Username)
}
