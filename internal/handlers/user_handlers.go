package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/01moynul/vrshop-golang/internal/auth"
	"github.com/01moynul/vrshop-golang/internal/middleware"
	"github.com/01moynul/vrshop-golang/internal/models"
	"github.com/01moynul/vrshop-golang/internal/store"
	"github.com/gin-gonic/gin"
)

// --- User Registration ---

// RegisterUserInput is separate from models.User because
// we don't want to accept an 'id' or 'role' from the user.
type RegisterUserInput struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"` // bcrypt ignores bytes past 72
}

// Register is the handler for POST /register. New accounts get the user role.
func (h *Handlers) Register(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input RegisterUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	// 2. --- Hash the Password ---
	var password models.Password
	if err := password.Set(input.Password); err != nil {
		respondInternal(c, "Failed to hash password")
		return
	}

	// 3. --- Save ---
	user := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: password.Hash,
		Role:         models.RoleUser,
	}
	if err := h.Users.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
			return
		}
		log.Printf("register %s: %v", user.Email, err)
		respondInternal(c, "Failed to create account")
		return
	}

	// 4. --- Send Success Response ---
	// PasswordHash carries json:"-" so it never leaves the server.
	c.JSON(http.StatusCreated, user)
}

// --- Session ---

// LoginInput is the body of POST /login.
type LoginInput struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	CaptchaToken string `json:"captchaToken"`
}

// Login is the handler for POST /login. On success the session token is
// set as an HttpOnly cookie and the user is returned.
func (h *Handlers) Login(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	// 2. --- Verify the CAPTCHA ---
	human, err := h.Captcha.Verify(c.Request.Context(), input.CaptchaToken, c.ClientIP())
	if err != nil {
		log.Printf("captcha verification failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Captcha verification unavailable"})
		return
	}
	if !human {
		respondValidation(c, FieldErrors{"captchaToken": "captcha verification failed"})
		return
	}

	// 3. --- Check Credentials ---
	user, err := h.Users.GetUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		log.Printf("login lookup: %v", err)
		respondInternal(c, "Failed to log in")
		return
	}

	password := models.Password{Hash: user.PasswordHash}
	match, err := password.Matches(input.Password)
	if err != nil {
		log.Printf("password check for user %d: %v", user.ID, err)
		respondInternal(c, "Failed to log in")
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	// 4. --- Issue the Session ---
	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		respondInternal(c, "Failed to create session")
		return
	}
	h.setSessionCookie(c, token, int(auth.SessionTTL().Seconds()))

	c.JSON(http.StatusOK, user)
}

// Logout is the handler for POST /logout. It expires the session cookie.
func (h *Handlers) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handlers) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookieName, value, maxAge, "/", "", h.Settings.CookieSecure, true)
}

// Me is the handler for GET /api/me.
func (h *Handlers) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	user, err := h.Users.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
			return
		}
		log.Printf("load user %d: %v", userID, err)
		respondInternal(c, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// PublicConfig is the handler for GET /api/config: values a front end may know.
func (h *Handlers) PublicConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"recaptchaSiteKey": h.Settings.RecaptchaSiteKey,
	})
}
