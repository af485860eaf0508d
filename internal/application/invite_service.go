package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/easyworldradio/workspace7/internal/domain/entity"
	"github.com/easyworldradio/workspace7/internal/domain/repository"
	"github.com/easyworldradio/workspace7/internal/infrastructure/records"
	"github.com/easyworldradio/workspace7/pkg/helpers"
	"github.com/easyworldradio/workspace7/pkg/mailer"
)

// InviteService runs the join-by-code flow. Membership is append-only:
// there is no leave or remove operation.
//
// Publisher is optional; when nil the invite email endpoint is disabled
// and joining by code is unaffected.
type InviteService struct {
	Workspaces repository.WorkspaceRepository
	Users      repository.UserRepository
	Sessions   *SessionService
	Logger     *logrus.Logger
	Publisher  *helpers.RabbitPublisher
}

func NewInviteService(workspaces repository.WorkspaceRepository, users repository.UserRepository, sessions *SessionService, logger *logrus.Logger, pub *helpers.RabbitPublisher) *InviteService {
	return &InviteService{Workspaces: workspaces, Users: users, Sessions: sessions, Logger: logger, Publisher: pub}
}

// Join adds the user to the workspace matching the invite code. The
// code is upper-cased before comparison, so input case never matters.
// The membership write bypasses the LastModified stamp: joining does
// not count as a content edit.
func (s *InviteService) Join(ctx context.Context, userID, code string) (*entity.Workspace, error) {
	if s.Sessions.ReadOnly() {
		return nil, ErrReadOnlyView
	}
	w, err := s.Workspaces.GetByInviteCode(ctx, strings.ToUpper(code))
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, err
	}
	if w.UserID == userID {
		return nil, ErrAlreadyOwner
	}
	if w.HasCollaborator(userID) {
		return nil, ErrAlreadyMember
	}
	if len(w.Collaborators) >= entity.MaxCollaborators {
		return nil, ErrCapacityExceeded
	}
	w.Collaborators = append(w.Collaborators, userID)
	if err := s.Workspaces.Replace(ctx, w); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"workspace_id": w.ID, "user_id": userID}).Info("collaborator joined")
	}
	return w, nil
}

// EmailInvite queues an invite-code email for the workspace. The caller
// must have access to the workspace; the message is delivered by the
// invite worker.
func (s *InviteService) EmailInvite(ctx context.Context, userID, workspaceID, to string) error {
	if s.Publisher == nil {
		return errors.New("invite mail not configured")
	}
	w, err := s.Workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return err
	}
	if !w.AccessibleBy(userID) {
		return records.ErrNotFound
	}
	sender, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	job := mailer.InviteJob{
		To:         to,
		InviteCode: w.InviteCode,
		Workspace:  w.Title,
		Sender:     sender.Username,
	}
	return s.Publisher.PublishJSON(ctx, job)
}
