package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/easyworldradio/workspace7/internal/domain/entity"
	"github.com/easyworldradio/workspace7/internal/domain/repository"
	"github.com/easyworldradio/workspace7/internal/infrastructure/records"
	"github.com/easyworldradio/workspace7/pkg/helpers"
	"github.com/easyworldradio/workspace7/pkg/sharecode"
)

const defaultWorkspaceTitle = "Yeni proje"

// WorkspaceService is the write path over the global workspaces list.
// Owners and collaborators have identical write permission; only
// deletion is restricted to the owner. While a shared (read-only)
// workspace is open, every mutating operation fails with
// ErrReadOnlyView and changes nothing.
//
// ES and GCS are optional: nil clients disable indexing, search and
// snapshot export without affecting anything else.
type WorkspaceService struct {
	Workspaces repository.WorkspaceRepository
	Sessions   *SessionService
	Logger     *logrus.Logger

	ES        *elasticsearch.Client
	ESIndex   string
	GCS       *storage.Client
	GCSBucket string
}

func NewWorkspaceService(workspaces repository.WorkspaceRepository, sessions *SessionService, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, gcs *storage.Client, gcsBucket string) *WorkspaceService {
	return &WorkspaceService{
		Workspaces: workspaces,
		Sessions:   sessions,
		Logger:     logger,
		ES:         es,
		ESIndex:    esIndex,
		GCS:        gcs,
		GCSBucket:  gcsBucket,
	}
}

// ListForUser returns the user's owned and collaborated workspaces in
// store order, optionally filtered by a case-insensitive title
// substring.
func (s *WorkspaceService) ListForUser(ctx context.Context, userID, titleQuery string) ([]entity.Workspace, error) {
	list, err := s.Workspaces.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if titleQuery == "" {
		return list, nil
	}
	q := strings.ToLower(titleQuery)
	out := make([]entity.Workspace, 0, len(list))
	for _, w := range list {
		if strings.Contains(strings.ToLower(w.Title), q) {
			out = append(out, w)
		}
	}
	return out, nil
}

// Get returns one workspace the user can access.
func (s *WorkspaceService) Get(ctx context.Context, userID, id string) (*entity.Workspace, error) {
	w, err := s.Workspaces.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !w.AccessibleBy(userID) {
		return nil, records.ErrNotFound
	}
	return w, nil
}

// Create builds a workspace with an empty board and resource table, a
// fresh id and a freshly generated invite code, and prepends it to the
// global list.
func (s *WorkspaceService) Create(ctx context.Context, ownerID string) (*entity.Workspace, error) {
	if s.Sessions.ReadOnly() {
		return nil, ErrReadOnlyView
	}
	now := time.Now().UnixMilli()
	w := &entity.Workspace{
		ID:            uuid.NewString(),
		UserID:        ownerID,
		Collaborators: []string{},
		InviteCode:    helpers.NewInviteCode(),
		Title:         defaultWorkspaceTitle,
		Summary:       "",
		ProgressSteps: []entity.ProgressStep{},
		Resources:     []entity.Resource{},
		CreatedAt:     now,
		LastModified:  now,
	}
	if err := s.Workspaces.Create(ctx, w); err != nil {
		return nil, err
	}
	s.index(ctx, w)
	return w, nil
}

// Update replaces the stored workspace wholesale; there is no
// field-level patching. Immutable fields (owner, collaborators, invite
// code, creation time) are carried over from the stored record.
func (s *WorkspaceService) Update(ctx context.Context, userID string, w *entity.Workspace) (*entity.Workspace, error) {
	if s.Sessions.ReadOnly() {
		return nil, ErrReadOnlyView
	}
	stored, err := s.Get(ctx, userID, w.ID)
	if err != nil {
		return nil, err
	}
	w.UserID = stored.UserID
	w.Collaborators = stored.Collaborators
	w.InviteCode = stored.InviteCode
	w.CreatedAt = stored.CreatedAt
	if err := s.Workspaces.Update(ctx, w); err != nil {
		return nil, err
	}
	s.index(ctx, w)
	return w, nil
}

// Delete removes the workspace. Only the owner may delete; the
// collaborators simply lose access, nothing else cascades.
func (s *WorkspaceService) Delete(ctx context.Context, userID, id string) error {
	if s.Sessions.ReadOnly() {
		return ErrReadOnlyView
	}
	w, err := s.Workspaces.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if w.UserID != userID {
		return records.ErrNotFound
	}
	if err := s.Workspaces.Delete(ctx, id); err != nil {
		return err
	}
	s.deindex(ctx, id)
	return nil
}

// mutate loads an accessible workspace, applies fn and saves it with a
// fresh LastModified stamp.
func (s *WorkspaceService) mutate(ctx context.Context, userID, id string, fn func(*entity.Workspace) error) (*entity.Workspace, error) {
	if s.Sessions.ReadOnly() {
		return nil, ErrReadOnlyView
	}
	w, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := fn(w); err != nil {
		return nil, err
	}
	if err := s.Workspaces.Update(ctx, w); err != nil {
		return nil, err
	}
	s.index(ctx, w)
	return w, nil
}

// AddStep appends a card to the given column. The completion flag is
// derived from the column at creation, like every other step mutator.
func (s *WorkspaceService) AddStep(ctx context.Context, userID, id string, step entity.ProgressStep) (*entity.Workspace, error) {
	return s.mutate(ctx, userID, id, func(w *entity.Workspace) error {
		step.ID = uuid.NewString()
		step.SetStatus(step.Status)
		w.ProgressSteps = append(w.ProgressSteps, step)
		return nil
	})
}

// SetStepStatus moves a card to another column.
func (s *WorkspaceService) SetStepStatus(ctx context.Context, userID, id, stepID string, status entity.ProgressStatus) (*entity.Workspace, error) {
	return s.mutate(ctx, userID, id, func(w *entity.Workspace) error {
		step := w.FindStep(stepID)
		if step == nil {
			return records.ErrNotFound
		}
		step.SetStatus(status)
		return nil
	})
}

// ToggleStep flips a card between done and todo.
func (s *WorkspaceService) ToggleStep(ctx context.Context, userID, id, stepID string) (*entity.Workspace, error) {
	return s.mutate(ctx, userID, id, func(w *entity.Workspace) error {
		step := w.FindStep(stepID)
		if step == nil {
			return records.ErrNotFound
		}
		step.Toggle()
		return nil
	})
}

// AddResource appends a row to the resource table. Links are stored
// as-is, blanks included.
func (s *WorkspaceService) AddResource(ctx context.Context, userID, id string, res entity.Resource) (*entity.Workspace, error) {
	return s.mutate(ctx, userID, id, func(w *entity.Workspace) error {
		res.ID = uuid.NewString()
		if res.Links == nil {
			res.Links = []string{}
		}
		w.Resources = append(w.Resources, res)
		return nil
	})
}

// UpdateResource replaces a row wholesale.
func (s *WorkspaceService) UpdateResource(ctx context.Context, userID, id string, res entity.Resource) (*entity.Workspace, error) {
	return s.mutate(ctx, userID, id, func(w *entity.Workspace) error {
		stored := w.FindResource(res.ID)
		if stored == nil {
			return records.ErrNotFound
		}
		if res.Links == nil {
			res.Links = []string{}
		}
		*stored = res
		return nil
	})
}

// RemoveResource deletes a row.
func (s *WorkspaceService) RemoveResource(ctx context.Context, userID, id, resourceID string) (*entity.Workspace, error) {
	return s.mutate(ctx, userID, id, func(w *entity.Workspace) error {
		kept := w.Resources[:0]
		for _, r := range w.Resources {
			if r.ID != resourceID {
				kept = append(kept, r)
			}
		}
		w.Resources = kept
		return nil
	})
}

// Share encodes the workspace into a stateless read-only token. The
// token is a snapshot; later edits never reach recipients.
func (s *WorkspaceService) Share(ctx context.Context, userID, id string) (string, error) {
	w, err := s.Get(ctx, userID, id)
	if err != nil {
		return "", err
	}
	return sharecode.Encode(w)
}

// Export writes the workspace's JSON snapshot to the configured GCS
// bucket and returns the object URL.
func (s *WorkspaceService) Export(ctx context.Context, userID, id string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", fmt.Errorf("export not configured")
	}
	w, err := s.Get(ctx, userID, id)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(w)
	if err != nil {
		return "", err
	}
	object := fmt.Sprintf("exports/%s/%s-%d.json", userID, w.ID, time.Now().UnixMilli())
	return helpers.UploadObject(ctx, s.GCS, s.GCSBucket, object, "application/json", strings.NewReader(string(b)))
}

func (s *WorkspaceService) index(ctx context.Context, w *entity.Workspace) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":            w.ID,
		"user_id":       w.UserID,
		"collaborators": w.Collaborators,
		"title":         w.Title,
		"summary":       w.Summary,
		"last_modified": w.LastModified,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: w.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("workspace_id", w.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("workspace_id", w.ID).Warn("es index response error")
	}
}

func (s *WorkspaceService) deindex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if res, err := req.Do(c, s.ES); err == nil {
		_ = res.Body.Close()
	}
}

// Search queries the workspace index by title and summary, restricted
// to workspaces the user can access. Returns an empty result when no
// client is configured.
func (s *WorkspaceService) Search(ctx context.Context, userID, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "summary"},
					},
				},
				"filter": map[string]any{
					"bool": map[string]any{
						"should": []map[string]any{
							{"term": map[string]any{"user_id": userID}},
							{"term": map[string]any{"collaborators": userID}},
						},
					},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
