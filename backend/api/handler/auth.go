package handler

import (
	"errors"
	"net/http"
	"strings"

	"cadvault/backend/api/middleware"
	"cadvault/backend/common"
	"cadvault/backend/model"
	"cadvault/backend/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler owns the registration, login, logout and identity endpoints.
type AuthHandler struct {
	tokens *service.TokenService
	cfg    *common.Config
}

func NewAuthHandler(tokens *service.TokenService, cfg *common.Config) *AuthHandler {
	return &AuthHandler{tokens: tokens, cfg: cfg}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	TeamName string `json:"teamName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles user registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespMessage(c, http.StatusBadRequest, "Missing fields")
		return
	}

	username := strings.TrimSpace(req.Username)
	teamName := strings.TrimSpace(req.TeamName)
	if username == "" || teamName == "" {
		common.RespMessage(c, http.StatusBadRequest, "Missing fields")
		return
	}
	if err := common.Validate.Var(username, "max=80"); err != nil {
		common.RespMessage(c, http.StatusBadRequest, "Username too long")
		return
	}
	if err := common.Validate.Var(teamName, "max=120"); err != nil {
		common.RespMessage(c, http.StatusBadRequest, "Team name too long")
		return
	}

	if !common.ValidatePasswordStrength(req.Password) {
		common.RespMessage(c, http.StatusBadRequest,
			"Password weak. Must be 8+ chars, include upper, lower, number, and special char.")
		return
	}

	hashedPassword, err := common.Password2Hash(req.Password)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "Error creating user", err)
		return
	}

	if _, err := model.CreateUser(username, teamName, hashedPassword); err != nil {
		if errors.Is(err, model.ErrUsernameTaken) {
			common.RespMessage(c, http.StatusConflict, "Username already exists")
			return
		}
		common.RespError(c, http.StatusInternalServerError, "Error creating user", err)
		return
	}

	common.RespMessage(c, http.StatusCreated, "User registered successfully")
}

// Login verifies credentials and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespMessage(c, http.StatusBadRequest, "Missing data")
		return
	}

	user, err := model.GetUserByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, model.ErrRecordNotFound) {
			common.RespMessage(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		common.RespError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	if !common.ValidatePasswordAndHash(req.Password, user.Password) {
		common.RespMessage(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.GenerateToken(user.ID)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	h.setSessionCookie(c, token, int(h.cfg.TokenExpiry.Seconds()))

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user": gin.H{
			"username": user.Username,
			"teamName": user.TeamName,
		},
	})
}

// Logout clears the session cookie unconditionally. Tokens are stateless, so
// an already-issued token stays verifiable until it expires; clearing the
// cookie is all logout does.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	common.RespMessage(c, http.StatusOK, "Logged out")
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		common.RespMessage(c, http.StatusUnauthorized, "User invalid!")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"teamName":   user.TeamName,
		"created_at": common.FormatTime(user.CreatedAt),
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     common.AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   h.cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
