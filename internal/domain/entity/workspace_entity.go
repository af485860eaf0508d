package entity

// ProgressStatus is the single source of truth for a step's kanban column.
type ProgressStatus string

const (
	StatusTodo       ProgressStatus = "todo"
	StatusInProgress ProgressStatus = "in-progress"
	StatusDone       ProgressStatus = "done"
)

// ProgressStep is one card on a workspace's kanban board.
//
// IsCompleted is denormalized: every mutator keeps
// IsCompleted == (Status == StatusDone), it is never computed lazily.
type ProgressStep struct {
	ID          string         `json:"id"`
	Text        string         `json:"text"`
	Note        string         `json:"note"`
	IsCompleted bool           `json:"isCompleted"`
	Status      ProgressStatus `json:"status"`
	StartDate   string         `json:"startDate,omitempty"`
	DueDate     string         `json:"dueDate,omitempty"`
}

// SetStatus moves the step to a column and resyncs the completion flag.
func (s *ProgressStep) SetStatus(status ProgressStatus) {
	s.Status = status
	s.IsCompleted = status == StatusDone
}

// Toggle flips the step between done and todo.
func (s *ProgressStep) Toggle() {
	if s.Status == StatusDone {
		s.SetStatus(StatusTodo)
	} else {
		s.SetStatus(StatusDone)
	}
}

// Resource is one row of a workspace's resource/budget table. Price is
// free text, not a number. Links may contain blank entries; they are
// filtered at display time, never at storage time.
type Resource struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Note  string   `json:"note"`
	Price string   `json:"price"`
	Links []string `json:"links"`
}

// Workspace is a project record: a manifesto (Title/Summary), a kanban
// board and a resource table. UserID is the owner and is never
// reassigned; Collaborators holds at most MaxCollaborators distinct
// non-owner user ids, appended via invite code.
type Workspace struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId"`
	Collaborators []string       `json:"collaborators"`
	InviteCode    string         `json:"inviteCode,omitempty"`
	Title         string         `json:"title"`
	Summary       string         `json:"summary"`
	ProgressSteps []ProgressStep `json:"progressSteps"`
	Resources     []Resource     `json:"resources"`
	CreatedAt     int64          `json:"createdAt"`
	LastModified  int64          `json:"lastModified"`
}

// MaxCollaborators caps collaborator membership per workspace.
const MaxCollaborators = 3

// HasCollaborator reports whether userID is a current collaborator.
func (w *Workspace) HasCollaborator(userID string) bool {
	for _, id := range w.Collaborators {
		if id == userID {
			return true
		}
	}
	return false
}

// AccessibleBy reports whether userID is the owner or a collaborator.
func (w *Workspace) AccessibleBy(userID string) bool {
	return w.UserID == userID || w.HasCollaborator(userID)
}

// FindStep returns a pointer into ProgressSteps, or nil.
func (w *Workspace) FindStep(stepID string) *ProgressStep {
	for i := range w.ProgressSteps {
		if w.ProgressSteps[i].ID == stepID {
			return &w.ProgressSteps[i]
		}
	}
	return nil
}

// FindResource returns a pointer into Resources, or nil.
func (w *Workspace) FindResource(resourceID string) *Resource {
	for i := range w.Resources {
		if w.Resources[i].ID == resourceID {
			return &w.Resources[i]
		}
	}
	return nil
}
