package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gamehub/catalog"
	"gamehub/models"
	"gamehub/monitoring"
	"gamehub/reviews"
	"gamehub/store"
	"gamehub/utils"
)

// GetGames returns the visible catalog for the caller's query. Aggregates
// come from the summaries (cached when Redis is up), then the query engine
// filters and orders them in memory.
func (h *Handler) GetGames(c *gin.Context) {
	ctx := c.Request.Context()

	summaries := h.Cache.GetSummaries(ctx)
	if summaries == nil {
		var err error
		summaries, err = reviews.Summaries(ctx, h.Store)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch games"})
			return
		}
		h.Cache.SetSummaries(ctx, summaries)
	}

	query := queryFromRequest(c)
	visible := catalog.VisibleGames(summaries, query)

	monitoring.TotalGames.Set(float64(len(summaries)))
	c.JSON(http.StatusOK, gin.H{
		"games":       visible,
		"total_found": len(visible),
	})
}

// queryFromRequest binds the catalog query state from the query string.
// Years arrive as a comma-separated list of enabled toggles.
func queryFromRequest(c *gin.Context) catalog.QueryState {
	years := make(map[string]bool)
	if raw := c.Query("years"); raw != "" {
		for _, y := range strings.Split(raw, ",") {
			if y = strings.TrimSpace(y); y != "" {
				years[y] = true
			}
		}
	}
	return catalog.QueryState{
		SearchText:   c.Query("q"),
		Platform:     c.Query("platform"),
		Sort:         catalog.ParseSortMode(c.Query("sort")),
		ReleaseYears: years,
	}
}

// GetGameByID returns the detail view: the game, both recomputed aggregates,
// and every review resolved against the roster.
func (h *Handler) GetGameByID(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	var cached reviews.GameDetail
	if h.Cache.GetGameDetail(ctx, id, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	detail, err := reviews.FetchGameDetail(ctx, h.Store, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch game"})
		return
	}

	h.Cache.SetGameDetail(ctx, id, detail)
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) CreateGame(c *gin.Context) {
	var input models.CreateGameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	game := models.Game{
		ID:           uuid.NewString(),
		Name:         input.Name,
		ThumbnailURL: input.ThumbnailURL,
		Platforms:    input.Platforms,
		Genres:       input.Genres,
		ReleaseDate:  input.ReleaseDate,
	}
	if err := h.Store.SaveGame(c.Request.Context(), &game); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game"})
		return
	}

	h.Cache.InvalidateGame(c.Request.Context(), game.ID)
	c.JSON(http.StatusOK, game)
}

func (h *Handler) DeleteGame(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if _, err := h.Store.GetGame(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch game"})
		return
	}

	if err := h.Store.DeleteGame(ctx, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete game"})
		return
	}

	h.Cache.InvalidateGame(ctx, id)
	c.JSON(http.StatusOK, gin.H{"message": "Game deleted"})
}
