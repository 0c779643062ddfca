package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gamehub/auth"
	"gamehub/models"
	"gamehub/monitoring"
	"gamehub/utils"
)

func (h *Handler) GetProfile(c *gin.Context) {
	session := sessionFrom(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profile, err := h.Store.GetProfile(c.Request.Context(), session.UID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	session := sessionFrom(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input models.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	profile, err := h.Store.GetProfile(c.Request.Context(), session.UID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	if input.FullName != nil {
		profile.FullName = *input.FullName
	}
	if input.PhotoURL != nil {
		profile.PhotoURL = *input.PhotoURL
	}

	if err := h.Store.SaveProfile(c.Request.Context(), profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DeleteAccount reauthenticates the caller, then removes the identity.
// Reviews the user posted stay behind; the roster miss renders them under
// the deleted-user placeholder.
func (h *Handler) DeleteAccount(c *gin.Context) {
	session := sessionFrom(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input models.DeleteAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Auth.Reauthenticate(c.Request.Context(), session, input.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.Translate(err)})
		return
	}

	if err := h.Auth.DeleteIdentity(c.Request.Context(), session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}

	monitoring.TotalProfiles.Dec()
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
