package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gamehub/models"
	"gamehub/monitoring"
	"gamehub/reviews"
	"gamehub/store"
	"gamehub/utils"
)

// SubmitRating appends a user review to a game. Validation happens inside
// the review service, in order, before the store is touched; the client
// keeps its form state on any failure response.
func (h *Handler) SubmitRating(c *gin.Context) {
	gameID := c.Param("id")

	var input models.SubmitRatingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	err := h.Reviews.SubmitRating(c.Request.Context(), sessionFrom(c), gameID, input)
	if err != nil {
		monitoring.ReviewsSubmitted.WithLabelValues("user", "rejected").Inc()
		status, body := submissionResponse(err)
		c.JSON(status, body)
		return
	}

	monitoring.ReviewsSubmitted.WithLabelValues("user", "accepted").Inc()
	// Invalidate before responding: the append is awaited and the stale
	// payloads are gone, so the client's immediate refresh observes the
	// new review.
	h.Cache.InvalidateGame(c.Request.Context(), gameID)
	c.JSON(http.StatusOK, gin.H{"message": "Review submitted"})
}

// SubmitScore appends a critic score to a game.
func (h *Handler) SubmitScore(c *gin.Context) {
	gameID := c.Param("id")

	var input models.SubmitScoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	err := h.Reviews.SubmitScore(c.Request.Context(), sessionFrom(c), gameID, input)
	if err != nil {
		monitoring.ReviewsSubmitted.WithLabelValues("critic", "rejected").Inc()
		status, body := submissionResponse(err)
		c.JSON(status, body)
		return
	}

	monitoring.ReviewsSubmitted.WithLabelValues("critic", "accepted").Inc()
	h.Cache.InvalidateGame(c.Request.Context(), gameID)
	c.JSON(http.StatusOK, gin.H{"message": "Score submitted"})
}

// GetReviews returns a game's resolved review list on its own, for views
// that refresh the review tab without reloading the whole detail page.
// Served from the same cached detail payload as GetGameByID.
func (h *Handler) GetReviews(c *gin.Context) {
	gameID := c.Query("gameId")
	if gameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gameId is required"})
		return
	}
	ctx := c.Request.Context()

	var cached reviews.GameDetail
	if h.Cache.GetGameDetail(ctx, gameID, &cached) {
		c.JSON(http.StatusOK, reviewsPayload(&cached))
		return
	}

	detail, err := reviews.FetchGameDetail(ctx, h.Store, gameID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	h.Cache.SetGameDetail(ctx, gameID, detail)
	c.JSON(http.StatusOK, reviewsPayload(detail))
}

func reviewsPayload(detail *reviews.GameDetail) gin.H {
	return gin.H{
		"reviews":       detail.Reviews,
		"averageRating": detail.AverageRating,
		"averageScore":  detail.AverageScore,
	}
}

// submissionResponse maps a submission error kind onto a status and body.
// A signed-out caller is redirected to the sign-in flow instead of getting
// a toast message.
func submissionResponse(err error) (int, gin.H) {
	switch {
	case errors.Is(err, reviews.ErrNotAuthenticated):
		return http.StatusUnauthorized, gin.H{"error": err.Error(), "redirect": "/login"}
	case errors.Is(err, reviews.ErrPersistence):
		return http.StatusInternalServerError, gin.H{"error": "Failed to save review. Please try again."}
	default:
		return http.StatusBadRequest, gin.H{"error": err.Error()}
	}
}
