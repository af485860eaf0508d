package repository

import (
	"context"

	"github.com/easyworldradio/workspace7/internal/domain/entity"
)

// UserRepository defines the operations over the users list.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
}
