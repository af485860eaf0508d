package application

import "errors"

// Failure taxonomy. Every error here leaves stored state unchanged; no
// failure in this system is fatal to the process.
var (
	// ErrValidation covers input shape violations: username shorter
	// than 3 characters or password shorter than 4.
	ErrValidation = errors.New("username min 3, password min 4 characters")

	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Invite-flow failures. The join operation aborts with no state
	// change on any of these.
	ErrInvalidInviteCode = errors.New("invalid invite code")
	ErrAlreadyOwner      = errors.New("workspace already belongs to you")
	ErrAlreadyMember     = errors.New("already a member of this workspace")
	ErrCapacityExceeded  = errors.New("workspace reached the collaborator limit")

	// ErrReadOnlyView is returned by every mutating workspace or invite
	// operation while a shared (read-only) workspace is open. The
	// operation mutates nothing.
	ErrReadOnlyView = errors.New("shared workspaces are read-only")

	ErrNotLoggedIn = errors.New("no active session")
)
