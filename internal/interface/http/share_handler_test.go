package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyworldradio/workspace7/internal/application"
	"github.com/easyworldradio/workspace7/internal/domain/entity"
	"github.com/easyworldradio/workspace7/internal/infrastructure/kvstore"
	"github.com/easyworldradio/workspace7/internal/infrastructure/records"
	"github.com/easyworldradio/workspace7/pkg/sharecode"
)

func newShareRouter(t *testing.T) (*gin.Engine, *application.SessionService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := kvstore.NewMemoryStore()
	users := records.NewUserRepository(store)
	workspaces := records.NewWorkspaceRepository(store)
	sessions := application.NewSessionService(users, workspaces, records.NewSessionStore(store), nil)
	workspaceSvc := application.NewWorkspaceService(workspaces, sessions, nil, nil, "", nil, "")
	h := NewShareHandler(workspaceSvc, sessions, nil)

	r := gin.New()
	r.GET("/api/share/:token", h.Resolve)
	return r, sessions
}

func TestResolveValidToken(t *testing.T) {
	r, _ := newShareRouter(t)

	token, err := sharecode.Encode(&entity.Workspace{ID: "ws-1", Title: "Paylaşılan"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/share/"+token, nil)
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool             `json:"success"`
		Data    entity.Workspace `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "ws-1", body.Data.ID)
	assert.Equal(t, "Paylaşılan", body.Data.Title)
}

// A bad token is not an error at the HTTP level; the response is an
// empty success the client renders as "no shared workspace".
func TestResolveBadTokenIsEmptySuccess(t *testing.T) {
	r, _ := newShareRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/share/share:garbage", nil)
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "no shared workspace", body.Message)
	assert.Empty(t, body.Data)
}
