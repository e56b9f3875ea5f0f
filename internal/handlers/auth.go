package handlers

import (
	"net/http"
	"strings"

	"vendor-tracker/internal/database"
	"vendor-tracker/internal/middleware"
	"vendor-tracker/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler issues tokens and manages the cookie session.
type AuthHandler struct {
	Tokens *middleware.Tokens
}

type loginForm struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func unauthorized(message string) *APIError {
	return &APIError{Type: "auth", Code: "UNAUTHORIZED", Message: message, HTTPStatus: http.StatusUnauthorized}
}

// ObtainToken checks credentials, returns an access/refresh pair and also
// logs the session in.
func (h *AuthHandler) ObtainToken(c *gin.Context) {
	var form loginForm
	if !bindJSON(c, &form) {
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", strings.TrimSpace(form.Username)).First(&user).Error; err != nil {
		respondError(c, unauthorized("No active account found with the given credentials"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
		respondError(c, unauthorized("No active account found with the given credentials"))
		return
	}

	access, err := h.Tokens.Issue(user, middleware.AccessToken)
	if err != nil {
		respondError(c, err)
		return
	}
	refresh, err := h.Tokens.Issue(user, middleware.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	sess := sessions.Default(c)
	sess.Set("user_id", user.ID)
	sess.Set("role", string(user.Role))
	_ = sess.Save()

	database.CreateAuditLog(user.ID, "user", user.ID, "login", "User logged in: "+user.Username)
	c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var body struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if !bindJSON(c, &body) {
		return
	}

	claims, err := h.Tokens.Parse(body.Refresh, middleware.RefreshToken)
	if err != nil {
		respondError(c, unauthorized("Token is invalid or expired"))
		return
	}

	var user models.User
	if err := database.DB.First(&user, claims.UserID).Error; err != nil {
		respondError(c, unauthorized("Token is invalid or expired"))
		return
	}

	access, err := h.Tokens.Issue(user, middleware.AccessToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	respondMessage(c, http.StatusOK, "Logged out")
}

type registerForm struct {
	Username string          `json:"username" binding:"required,min=3,max=150"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"required,oneof=admin marketer recruiter viewer"`
}

// Register creates an API user. Admin only.
func (h *AuthHandler) Register(c *gin.Context) {
	var form registerForm
	if !bindJSON(c, &form) {
		return
	}
	form.Username = strings.TrimSpace(form.Username)

	var count int64
	if err := database.DB.Model(&models.User{}).Where("username = ?", form.Username).Count(&count).Error; err != nil {
		respondError(c, internalError("check username", err))
		return
	}
	if count > 0 {
		respondError(c, conflict("User already exists"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}
	user := models.User{Username: form.Username, PasswordHash: string(hash), Role: form.Role}
	if err := database.DB.Create(&user).Error; err != nil {
		respondError(c, internalError("create user", err))
		return
	}

	audit(c, "user", user.ID, "create", "User created: "+user.Username)
	respondData(c, http.StatusCreated, "User created successfully", user)
}

// Me reports who the caller is authenticated as.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, unauthorized("Authentication credentials were not provided"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username, "role": user.Role})
}
