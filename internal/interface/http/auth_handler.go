package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/easyworldradio/workspace7/internal/application"
	"github.com/easyworldradio/workspace7/internal/domain/entity"
	"github.com/easyworldradio/workspace7/pkg/helpers"
	"github.com/easyworldradio/workspace7/pkg/response"
	"github.com/easyworldradio/workspace7/pkg/validation"
)

// AuthHandler serves registration, login and the account endpoints.
type AuthHandler struct {
	Auth     *application.AuthService
	Sessions *application.SessionService
	JWT      *helpers.JWTManager
	Logger   *logrus.Logger
	Cookies  *helpers.CookieManager
}

func NewAuthHandler(auth *application.AuthService, sessions *application.SessionService, jwt *helpers.JWTManager, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Auth: auth, Sessions: sessions, JWT: jwt, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required,uname"`
	Password string `json:"password" binding:"required,pwd"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username}
}

func (h *AuthHandler) issueCookies(c *gin.Context, userID string) error {
	access, aexp, err := h.JWT.GenerateAccessToken(userID)
	if err != nil {
		return err
	}
	refresh, rexp, err := h.JWT.GenerateRefreshToken(userID)
	if err != nil {
		return err
	}
	h.Cookies.SetPair(c, access, aexp, refresh, rexp)
	return nil
}

// Register POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error[any](c, statusFor(err), err.Error(), nil)
		return
	}
	if err := h.issueCookies(c, u.ID); err != nil {
		response.Error[any](c, http.StatusInternalServerError, "token generation failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, toUserResponse(u), "registered", nil)
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error[any](c, statusFor(err), err.Error(), nil)
		return
	}
	if err := h.issueCookies(c, u.ID); err != nil {
		response.Error[any](c, http.StatusInternalServerError, "token generation failed", nil)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u), "login successful", nil)
}

// Logout POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Sessions.Logout(c.Request.Context()); err != nil && h.Logger != nil {
		h.Logger.WithError(err).Warn("session clear failed")
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"logged_out": true}, "logged out", nil)
}

// GetProfile GET /api/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	u, err := h.Sessions.Current(c.Request.Context())
	if err != nil || u == nil {
		response.Error[any](c, http.StatusUnauthorized, "no active session", nil)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u), "profile", nil)
}

// UpdateProfile PUT /api/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString("userID")
	updated := &entity.User{ID: uid, Username: req.Username, Password: req.Password}
	if err := h.Sessions.UpdateCurrentUser(c.Request.Context(), updated); err != nil {
		response.Error[any](c, statusFor(err), "failed to update profile", nil)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(updated), "profile updated", nil)
}

// DeleteAccount DELETE /api/account
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	if err := h.Sessions.DeleteAccount(c.Request.Context()); err != nil {
		response.Error[any](c, statusFor(err), "failed to delete account", nil)
		return
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "account deleted", nil)
}
