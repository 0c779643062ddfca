package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gamehub/auth"
	"gamehub/models"
	"gamehub/monitoring"
	"gamehub/utils"
)

func (h *Handler) Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	session, err := h.Auth.SignIn(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		monitoring.AuthenticationAttempts.WithLabelValues("failure").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.Translate(err)})
		return
	}

	monitoring.AuthenticationAttempts.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, session)
}

// FederatedLogin completes a popup sign-in. The gateway has already verified
// the provider assertion; the handler only exchanges it for a session.
func (h *Handler) FederatedLogin(c *gin.Context) {
	var input struct {
		Provider string `json:"provider"`
		Email    string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.Auth.SignInFederated(c.Request.Context(), input.Provider, input.Email)
	if err != nil {
		monitoring.AuthenticationAttempts.WithLabelValues("failure").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.Translate(err)})
		return
	}

	monitoring.AuthenticationAttempts.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, session)
}

func (h *Handler) Register(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	session, err := h.Auth.SignUp(c.Request.Context(), input)
	if err != nil {
		if _, ok := err.(*auth.Error); ok {
			c.JSON(http.StatusConflict, gin.H{"error": auth.Translate(err)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	monitoring.TotalProfiles.Inc()
	c.JSON(http.StatusOK, session)
}

func (h *Handler) PasswordReset(c *gin.Context) {
	var input struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	if err := h.Auth.SendPasswordReset(c.Request.Context(), input.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": auth.Translate(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset email sent"})
}

// AuthMiddleware resolves the bearer token into a session and stores it in
// the request context for downstream handlers.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		session, err := h.Auth.CurrentSession(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": auth.Translate(err)})
			c.Abort()
			return
		}

		c.Set("session", session)
		c.Next()
	}
}

// sessionFrom returns the authenticated session, or nil when the request is
// anonymous.
func sessionFrom(c *gin.Context) *auth.Session {
	if s, exists := c.Get("session"); exists {
		if session, ok := s.(*auth.Session); ok {
			return session
		}
	}
	return nil
}
