package records

import (
	"context"

	"github.com/easyworldradio/workspace7/internal/domain/entity"
	"github.com/easyworldradio/workspace7/internal/domain/repository"
)

// SessionStore holds the single current-user slot under
// repository.SessionKey. The slot stores a full copy of the User, not a
// reference; it is only resynchronized by an explicit profile update.
type SessionStore struct {
	store repository.RecordStore
}

func NewSessionStore(store repository.RecordStore) *SessionStore {
	return &SessionStore{store: store}
}

func (s *SessionStore) Current(ctx context.Context) (*entity.User, error) {
	var u entity.User
	found, err := s.store.Load(ctx, repository.SessionKey, &u)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &u, nil
}

func (s *SessionStore) Set(ctx context.Context, u *entity.User) error {
	return s.store.Save(ctx, repository.SessionKey, u)
}

func (s *SessionStore) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, repository.SessionKey)
}

var _ repository.SessionStore = (*SessionStore)(nil)
