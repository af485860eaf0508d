package records

import (
	"context"
	"errors"

	"github.com/easyworldradio/workspace7/internal/domain/entity"
	"github.com/easyworldradio/workspace7/internal/domain/repository"
)

// ErrNotFound is returned when a record is absent from its list.
var ErrNotFound = errors.New("not found")

// UserRepository keeps the users list as one JSON array under
// repository.UsersKey. Every mutation reads the whole list, changes it
// in memory and writes the whole list back.
type UserRepository struct {
	store repository.RecordStore
}

func NewUserRepository(store repository.RecordStore) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) loadAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if _, err := r.store.Load(ctx, repository.UsersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) saveAll(ctx context.Context, users []entity.User) error {
	return r.store.Save(ctx, repository.UsersKey, users)
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	users, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	users = append(users, *u)
	return r.saveAll(ctx, users)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	users, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	users, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			u := users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	users, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == u.ID {
			users[i] = *u
			return r.saveAll(ctx, users)
		}
	}
	return ErrNotFound
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	users, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	kept := users[:0]
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	return r.saveAll(ctx, kept)
}

var _ repository.UserRepository = (*UserRepository)(nil)
