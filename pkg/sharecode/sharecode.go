// Package sharecode converts a workspace into a self-contained bearer
// token for the URL fragment, and back. The token is a point-in-time
// snapshot: it embeds the entire workspace state at encode time and is
// never refreshed.
package sharecode

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/easyworldradio/workspace7/internal/domain/entity"
)

// Prefix marks a share token inside a URL fragment: #share:<token>.
const Prefix = "share:"

// ErrDecode covers every decode failure: bad prefix, malformed base64,
// invalid JSON, wrong shape. Callers surface it as "no shared
// workspace" and never propagate detail.
var ErrDecode = errors.New("sharecode: invalid share token")

// Encode serializes the workspace to JSON and wraps the UTF-8 bytes in
// base64, yielding the full fragment including the prefix.
func Encode(w *entity.Workspace) (string, error) {
	b, err := json.Marshal(w)
	if err != nil {
		return "", err
	}
	return Prefix + base64.StdEncoding.EncodeToString(b), nil
}

// Decode reverses Encode. It accepts the raw fragment with or without a
// leading "#".
func Decode(fragment string) (*entity.Workspace, error) {
	fragment = strings.TrimPrefix(fragment, "#")
	if !strings.HasPrefix(fragment, Prefix) {
		return nil, ErrDecode
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(fragment, Prefix))
	if err != nil {
		return nil, ErrDecode
	}
	var w entity.Workspace
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, ErrDecode
	}
	if w.ID == "" {
		return nil, ErrDecode
	}
	return &w, nil
}
