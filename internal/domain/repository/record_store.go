package repository

import "context"

// Storage keys. The workspaces key holds a single global list with every
// user's records interleaved; it is not partitioned per user.
const (
	UsersKey      = "workspace7_users"
	SessionKey    = "workspace7_active_user"
	WorkspacesKey = "workspace7_all_data_v2"
)

// RecordStore is the flat key-value persistence layer under the
// repositories. Values are JSON documents stored whole; there is no
// partial update and no isolation between concurrent writers (last
// write wins on the whole value).
//
// Load reports found=false when the key is absent. Implementations must
// treat a malformed stored document as absent rather than failing, so a
// corrupt entry degrades to the empty default.
type RecordStore interface {
	Load(ctx context.Context, key string, dest any) (found bool, err error)
	Save(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}
