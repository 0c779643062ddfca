package reviews

import (
	"context"
	"sync"

	"gamehub/models"
)

// Reader is the read-only slice of the document store the assembly helpers
// need.
type Reader interface {
	GetGame(ctx context.Context, id string) (*models.Game, error)
	ListGames(ctx context.Context) ([]models.Game, error)
	ListRatings(ctx context.Context, gameID string) ([]models.UserRating, error)
	ListScores(ctx context.Context, gameID string) ([]models.CriticScore, error)
	ListProfiles(ctx context.Context) ([]models.UserProfile, error)
}

// Summaries loads the whole catalog and recomputes both aggregates for every
// game from the current rating/score rows.
func Summaries(ctx context.Context, r Reader) ([]models.GameSummary, error) {
	games, err := r.ListGames(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.GameSummary, 0, len(games))
	for _, g := range games {
		ratings, err := r.ListRatings(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		scores, err := r.ListScores(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, models.GameSummary{
			Game:          g,
			AverageRating: AverageRating(ratings),
			AverageScore:  AverageScore(scores),
		})
	}
	return out, nil
}

// GameDetail is everything one game's detail view needs.
type GameDetail struct {
	Game          models.Game `json:"game"`
	AverageRating float64     `json:"averageRating"`
	AverageScore  float64     `json:"averageScore"`
	Reviews       []Display   `json:"reviews"`
}

// FetchGameDetail loads the game, its two review collections, and the roster
// in parallel. The four reads are independent, so they run as one goroutine
// each behind a WaitGroup.
func FetchGameDetail(ctx context.Context, r Reader, gameID string) (*GameDetail, error) {
	var (
		wg      sync.WaitGroup
		game    *models.Game
		ratings []models.UserRating
		scores  []models.CriticScore
		roster  []models.UserProfile
		errs    [4]error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		game, errs[0] = r.GetGame(ctx, gameID)
	}()
	go func() {
		defer wg.Done()
		ratings, errs[1] = r.ListRatings(ctx, gameID)
	}()
	go func() {
		defer wg.Done()
		scores, errs[2] = r.ListScores(ctx, gameID)
	}()
	go func() {
		defer wg.Done()
		roster, errs[3] = r.ListProfiles(ctx)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	displays := make([]Display, 0, len(ratings)+len(scores))
	for _, rating := range ratings {
		displays = append(displays, FromRating(rating).Display(roster))
	}
	for _, score := range scores {
		displays = append(displays, FromScore(score).Display(roster))
	}

	return &GameDetail{
		Game:          *game,
		AverageRating: AverageRating(ratings),
		AverageScore:  AverageScore(scores),
		Reviews:       displays,
	}, nil
}
