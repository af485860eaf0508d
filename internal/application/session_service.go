package application

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/easyworldradio/workspace7/internal/domain/entity"
	"github.com/easyworldradio/workspace7/internal/domain/repository"
	"github.com/easyworldradio/workspace7/internal/infrastructure/records"
	"github.com/easyworldradio/workspace7/pkg/sharecode"
)

// SessionService tracks the single current user and the transient
// shared-view state. The session slot holds a full denormalized copy of
// the User record; edits to the users list made elsewhere do not reach
// it until UpdateCurrentUser resynchronizes both.
type SessionService struct {
	Users      repository.UserRepository
	Workspaces repository.WorkspaceRepository
	Sessions   repository.SessionStore
	Logger     *logrus.Logger

	mu         sync.RWMutex
	sharedView *entity.Workspace
}

func NewSessionService(users repository.UserRepository, workspaces repository.WorkspaceRepository, sessions repository.SessionStore, logger *logrus.Logger) *SessionService {
	return &SessionService{Users: users, Workspaces: workspaces, Sessions: sessions, Logger: logger}
}

// Login sets the session slot to the given user and persists it.
func (s *SessionService) Login(ctx context.Context, u *entity.User) error {
	return s.Sessions.Set(ctx, u)
}

// Current returns the session slot, or nil when nobody is logged in.
func (s *SessionService) Current(ctx context.Context) (*entity.User, error) {
	return s.Sessions.Current(ctx)
}

// Logout clears the session slot and any open shared view.
func (s *SessionService) Logout(ctx context.Context) error {
	s.CloseSharedView()
	return s.Sessions.Clear(ctx)
}

// UpdateCurrentUser overwrites the session slot with the updated record
// and replaces the matching entry in the users list. Workspace records
// are untouched; display always joins users live by id.
func (s *SessionService) UpdateCurrentUser(ctx context.Context, updated *entity.User) error {
	if err := s.Sessions.Set(ctx, updated); err != nil {
		return err
	}
	if err := s.Users.Update(ctx, updated); err != nil && !errors.Is(err, records.ErrNotFound) {
		return err
	}
	return nil
}

// DeleteAccount removes the current user from the users list and every
// workspace they own, then logs out. Collaborator memberships on other
// owners' workspaces are left as-is: the deleted id stays in those
// collaborator lists.
func (s *SessionService) DeleteAccount(ctx context.Context) error {
	u, err := s.Sessions.Current(ctx)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrNotLoggedIn
	}
	if err := s.Users.Delete(ctx, u.ID); err != nil {
		return err
	}
	if err := s.Workspaces.DeleteOwnedBy(ctx, u.ID); err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("account deleted")
	}
	return s.Logout(ctx)
}

// OpenSharedView decodes a share fragment and pins the result as the
// active read-only workspace. A failed decode is swallowed: the view
// stays empty and no error detail escapes.
func (s *SessionService) OpenSharedView(fragment string) *entity.Workspace {
	w, err := sharecode.Decode(fragment)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Debug("share token rejected")
		}
		return nil
	}
	s.mu.Lock()
	s.sharedView = w
	s.mu.Unlock()
	return w
}

func (s *SessionService) CloseSharedView() {
	s.mu.Lock()
	s.sharedView = nil
	s.mu.Unlock()
}

// SharedView returns the pinned shared workspace, or nil.
func (s *SessionService) SharedView() *entity.Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sharedView
}

// ReadOnly reports whether a shared workspace is currently open. While
// true, no write path may run.
func (s *SessionService) ReadOnly() bool {
	return s.SharedView() != nil
}
