package records

import (
	"context"
	"strings"
	"time"

	"github.com/easyworldradio/workspace7/internal/domain/entity"
	"github.com/easyworldradio/workspace7/internal/domain/repository"
)

// WorkspaceRepository keeps the global workspaces list as one JSON array
// under repository.WorkspacesKey. All users' records are interleaved in
// the same list; concurrent writers clobber each other at whole-list
// granularity (last write wins).
type WorkspaceRepository struct {
	store repository.RecordStore
	now   func() time.Time
}

func NewWorkspaceRepository(store repository.RecordStore) *WorkspaceRepository {
	return &WorkspaceRepository{store: store, now: time.Now}
}

// WithClock overrides the LastModified clock. Tests use it.
func (r *WorkspaceRepository) WithClock(now func() time.Time) *WorkspaceRepository {
	r.now = now
	return r
}

func (r *WorkspaceRepository) loadAll(ctx context.Context) ([]entity.Workspace, error) {
	var all []entity.Workspace
	if _, err := r.store.Load(ctx, repository.WorkspacesKey, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func (r *WorkspaceRepository) saveAll(ctx context.Context, all []entity.Workspace) error {
	return r.store.Save(ctx, repository.WorkspacesKey, all)
}

func (r *WorkspaceRepository) ListForUser(ctx context.Context, userID string) ([]entity.Workspace, error) {
	all, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Workspace, 0, len(all))
	for _, w := range all {
		if w.AccessibleBy(userID) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *WorkspaceRepository) GetByID(ctx context.Context, id string) (*entity.Workspace, error) {
	all, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			w := all[i]
			return &w, nil
		}
	}
	return nil, ErrNotFound
}

func (r *WorkspaceRepository) GetByInviteCode(ctx context.Context, code string) (*entity.Workspace, error) {
	all, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	code = strings.ToUpper(code)
	// codes are not unique; first match in store order wins
	for i := range all {
		if all[i].InviteCode == code {
			w := all[i]
			return &w, nil
		}
	}
	return nil, ErrNotFound
}

func (r *WorkspaceRepository) Create(ctx context.Context, w *entity.Workspace) error {
	all, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	all = append([]entity.Workspace{*w}, all...)
	return r.saveAll(ctx, all)
}

func (r *WorkspaceRepository) Update(ctx context.Context, w *entity.Workspace) error {
	w.LastModified = r.now().UnixMilli()
	return r.Replace(ctx, w)
}

func (r *WorkspaceRepository) Replace(ctx context.Context, w *entity.Workspace) error {
	all, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == w.ID {
			all[i] = *w
			return r.saveAll(ctx, all)
		}
	}
	return ErrNotFound
}

func (r *WorkspaceRepository) Delete(ctx context.Context, id string) error {
	all, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, w := range all {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	return r.saveAll(ctx, kept)
}

func (r *WorkspaceRepository) DeleteOwnedBy(ctx context.Context, userID string) error {
	all, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, w := range all {
		if w.UserID != userID {
			kept = append(kept, w)
		}
	}
	return r.saveAll(ctx, kept)
}

var _ repository.WorkspaceRepository = (*WorkspaceRepository)(nil)
