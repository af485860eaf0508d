package repository

import (
	"context"

	"github.com/easyworldradio/workspace7/internal/domain/entity"
)

// WorkspaceRepository defines the operations over the global workspaces
// list. Every mutation is a whole-list read-modify-write.
type WorkspaceRepository interface {
	// ListForUser returns every workspace the user owns or collaborates
	// on, preserving global store order (creation prepends, so the list
	// is most-recently-created first).
	ListForUser(ctx context.Context, userID string) ([]entity.Workspace, error)

	GetByID(ctx context.Context, id string) (*entity.Workspace, error)

	// GetByInviteCode matches codes case-insensitively. Codes are not
	// guaranteed unique; the first match in store order wins.
	GetByInviteCode(ctx context.Context, code string) (*entity.Workspace, error)

	// Create prepends the workspace to the global list.
	Create(ctx context.Context, w *entity.Workspace) error

	// Update replaces the stored workspace wholesale and stamps
	// LastModified.
	Update(ctx context.Context, w *entity.Workspace) error

	// Replace is Update without the LastModified stamp. Invite joins use
	// it; joining deliberately does not bump LastModified.
	Replace(ctx context.Context, w *entity.Workspace) error

	Delete(ctx context.Context, id string) error

	// DeleteOwnedBy removes every workspace the user owns. Workspaces
	// the user merely collaborates on are left untouched, including
	// their collaborator lists.
	DeleteOwnedBy(ctx context.Context, userID string) error
}

// SessionStore holds the single current-user slot. The stored record is
// a full denormalized copy of the User, so it can go stale relative to
// the users list until an explicit profile update resynchronizes it.
type SessionStore interface {
	Current(ctx context.Context) (*entity.User, error)
	Set(ctx context.Context, u *entity.User) error
	Clear(ctx context.Context) error
}
