package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamehub/auth"
	"gamehub/models"
	"gamehub/reviews"
	"gamehub/store"
)

// fakeStore is an in-memory document store for handler tests.
type fakeStore struct {
	games    []models.Game
	ratings  []models.UserRating
	scores   []models.CriticScore
	profiles map[string]*models.UserProfile
}

func newFakeStore() *fakeStore {
	return &fakeStore{profiles: make(map[string]*models.UserProfile)}
}

func (f *fakeStore) GetGame(ctx context.Context, id string) (*models.Game, error) {
	for _, g := range f.games {
		if g.ID == id {
			cp := g
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) ListGames(ctx context.Context) ([]models.Game, error) {
	return f.games, nil
}

func (f *fakeStore) SaveGame(ctx context.Context, g *models.Game) error {
	f.games = append(f.games, *g)
	return nil
}

func (f *fakeStore) DeleteGame(ctx context.Context, id string) error {
	out := f.games[:0]
	for _, g := range f.games {
		if g.ID != id {
			out = append(out, g)
		}
	}
	f.games = out
	return nil
}

func (f *fakeStore) ListRatings(ctx context.Context, gameID string) ([]models.UserRating, error) {
	var out []models.UserRating
	for _, r := range f.ratings {
		if r.GameID == gameID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListScores(ctx context.Context, gameID string) ([]models.CriticScore, error) {
	var out []models.CriticScore
	for _, s := range f.scores {
		if s.GameID == gameID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) AppendRating(ctx context.Context, r models.UserRating) error {
	f.ratings = append(f.ratings, r)
	return nil
}

func (f *fakeStore) AppendScore(ctx context.Context, s models.CriticScore) error {
	f.scores = append(f.scores, s)
	return nil
}

func (f *fakeStore) ListProfiles(ctx context.Context) ([]models.UserProfile, error) {
	out := make([]models.UserProfile, 0, len(f.profiles))
	for _, p := range f.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeStore) GetProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	if p, ok := f.profiles[uid]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) GetProfileByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	for _, p := range f.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) SaveProfile(ctx context.Context, p *models.UserProfile) error {
	cp := *p
	f.profiles[p.UID] = &cp
	return nil
}

func (f *fakeStore) DeleteProfile(ctx context.Context, uid string) error {
	delete(f.profiles, uid)
	return nil
}

func seedCatalog(f *fakeStore) {
	f.games = []models.Game{
		{ID: "g1", Name: "Elden Ring", Platforms: []string{"pc", "playstation"}, ReleaseDate: time.Date(2022, 2, 25, 0, 0, 0, 0, time.UTC)},
		{ID: "g2", Name: "Stardew Valley", Platforms: []string{"pc"}, ReleaseDate: time.Date(2016, 2, 26, 0, 0, 0, 0, time.UTC)},
	}
	f.ratings = []models.UserRating{
		{GameID: "g1", UserUID: "gone", Rating: 5, Comment: "masterpiece"},
		{GameID: "g2", UserUID: "u1", Rating: 3, Comment: "cozy"},
	}
}

func setup(t *testing.T) (*gin.Engine, *fakeStore, *auth.JWTProvider) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := newFakeStore()
	provider := auth.NewJWTProvider(st, []byte("test-secret"))
	h := New(st, provider, reviews.NewService(st), nil)

	r := gin.New()
	r.POST("/login", h.Login)
	r.POST("/users", h.Register)
	r.POST("/password-reset", h.PasswordReset)
	r.GET("/games", h.GetGames)
	r.GET("/games/:id", h.GetGameByID)
	r.GET("/reviews", h.GetReviews)

	protected := r.Group("/").Use(h.AuthMiddleware())
	{
		protected.DELETE("/games/:id", h.DeleteGame)
		protected.POST("/games/:id/ratings", h.SubmitRating)
		protected.POST("/games/:id/scores", h.SubmitScore)
		protected.GET("/profile", h.GetProfile)
		protected.PUT("/profile", h.UpdateProfile)
		protected.DELETE("/account", h.DeleteAccount)
	}

	// Same handlers without the middleware, to exercise the engine's own
	// not-authenticated path.
	r.POST("/anon/games/:id/ratings", h.SubmitRating)

	return r, st, provider
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signUp(t *testing.T, provider *auth.JWTProvider, email string) *auth.Session {
	t.Helper()
	session, err := provider.SignUp(context.Background(), models.RegisterInput{
		FullName: "Ada Lovelace",
		Email:    email,
		Password: "hunter22",
	})
	require.NoError(t, err)
	return session
}

func TestGetGamesFiltersAndSorts(t *testing.T) {
	r, st, _ := setup(t)
	seedCatalog(st)

	w := doJSON(t, r, http.MethodGet, "/games?platform=pc&sort=topRated", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Games      []models.GameSummary `json:"games"`
		TotalFound int                  `json:"total_found"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.TotalFound)
	assert.Equal(t, "Elden Ring", resp.Games[0].Name)
	assert.Equal(t, float64(5), resp.Games[0].AverageRating)
	assert.Equal(t, "Stardew Valley", resp.Games[1].Name)
}

func TestGetGamesYearToggles(t *testing.T) {
	r, st, _ := setup(t)
	seedCatalog(st)

	w := doJSON(t, r, http.MethodGet, "/games?years=2016", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Games []models.GameSummary `json:"games"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Games, 1)
	assert.Equal(t, "Stardew Valley", resp.Games[0].Name)
}

func TestGetGameByIDResolvesDeletedAuthor(t *testing.T) {
	r, st, _ := setup(t)
	seedCatalog(st)

	w := doJSON(t, r, http.MethodGet, "/games/g1", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var detail reviews.GameDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, float64(5), detail.AverageRating)
	require.Len(t, detail.Reviews, 1)
	assert.Equal(t, reviews.DeletedUserName, detail.Reviews[0].Author.DisplayName)
}

func TestGetGameByIDNotFound(t *testing.T) {
	r, _, _ := setup(t)

	w := doJSON(t, r, http.MethodGet, "/games/missing", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitRatingHappyPath(t *testing.T) {
	r, st, provider := setup(t)
	seedCatalog(st)
	session := signUp(t, provider, "ada@example.com")

	w := doJSON(t, r, http.MethodPost, "/games/g1/ratings", session.Token,
		models.SubmitRatingInput{Rating: 4, Comment: "great"})

	require.Equal(t, http.StatusOK, w.Code)

	ratings, err := st.ListRatings(context.Background(), "g1")
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	appended := ratings[1]
	assert.Equal(t, session.UID, appended.UserUID)
	assert.Equal(t, 4, appended.Rating)
	assert.False(t, appended.PostedOn.IsZero())
}

func TestSubmitRatingWithoutTokenIsRejectedByMiddleware(t *testing.T) {
	r, st, _ := setup(t)
	seedCatalog(st)

	w := doJSON(t, r, http.MethodPost, "/games/g1/ratings", "",
		models.SubmitRatingInput{Rating: 4, Comment: "great"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, st.ratings[2:])
}

func TestSubmitRatingAnonymousRedirectsToLogin(t *testing.T) {
	r, st, _ := setup(t)
	seedCatalog(st)

	w := doJSON(t, r, http.MethodPost, "/anon/games/g1/ratings", "",
		models.SubmitRatingInput{Rating: 4, Comment: "great"})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/login", resp["redirect"])
}

func TestSubmitRatingMissingRating(t *testing.T) {
	r, st, provider := setup(t)
	seedCatalog(st)
	session := signUp(t, provider, "ada@example.com")
	before := len(st.ratings)

	w := doJSON(t, r, http.MethodPost, "/games/g1/ratings", session.Token,
		models.SubmitRatingInput{Comment: "forgot the stars"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, st.ratings, before)
}

func TestSubmitRatingOutOfRangeRejected(t *testing.T) {
	r, st, provider := setup(t)
	seedCatalog(st)
	session := signUp(t, provider, "ada@example.com")
	before := len(st.ratings)

	w := doJSON(t, r, http.MethodPost, "/games/g1/ratings", session.Token,
		models.SubmitRatingInput{Rating: 9, Comment: "impossible stars"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, st.ratings, before)
}

func TestSubmitRatingVisibleOnImmediateRefresh(t *testing.T) {
	r, st, provider := setup(t)
	seedCatalog(st)
	session := signUp(t, provider, "ada@example.com")

	w := doJSON(t, r, http.MethodPost, "/games/g1/ratings", session.Token,
		models.SubmitRatingInput{Rating: 4, Comment: "fresh take"})
	require.Equal(t, http.StatusOK, w.Code)

	// The append is awaited and the cache invalidated before the success
	// response, so the very next read includes the new review.
	w = doJSON(t, r, http.MethodGet, "/games/g1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail reviews.GameDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Len(t, detail.Reviews, 2)
	assert.Equal(t, "fresh take", detail.Reviews[1].Comment)
}

func TestGetReviewsForGame(t *testing.T) {
	r, st, _ := setup(t)
	seedCatalog(st)

	w := doJSON(t, r, http.MethodGet, "/reviews?gameId=g1", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Reviews       []reviews.Display `json:"reviews"`
		AverageRating float64           `json:"averageRating"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Reviews, 1)
	assert.Equal(t, float64(5), resp.AverageRating)
}

func TestGetReviewsUnknownGame(t *testing.T) {
	r, _, _ := setup(t)

	w := doJSON(t, r, http.MethodGet, "/reviews?gameId=missing", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteGame(t *testing.T) {
	r, st, provider := setup(t)
	seedCatalog(st)
	session := signUp(t, provider, "ada@example.com")

	w := doJSON(t, r, http.MethodDelete, "/games/g1", session.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, err := st.GetGame(context.Background(), "g1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	w = doJSON(t, r, http.MethodDelete, "/games/g1", session.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitScoreValidation(t *testing.T) {
	r, st, provider := setup(t)
	seedCatalog(st)
	session := signUp(t, provider, "ada@example.com")

	in := models.SubmitScoreInput{
		OrganizationName:  "Pixel Weekly",
		OrganizationEmail: "not-an-email",
		Score:             60,
		ArticleLink:       "https://pixelweekly.example/review",
		Comment:           "x",
	}
	w := doJSON(t, r, http.MethodPost, "/games/g1/scores", session.Token, in)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, st.scores)
}

func TestSubmitScoreHappyPath(t *testing.T) {
	r, st, provider := setup(t)
	seedCatalog(st)
	session := signUp(t, provider, "ada@example.com")

	in := models.SubmitScoreInput{
		OrganizationName:  "Pixel Weekly",
		OrganizationEmail: "desk@pixelweekly.example",
		Score:             47,
		ArticleLink:       "https://pixelweekly.example/review",
		Comment:           "Near perfect",
	}
	w := doJSON(t, r, http.MethodPost, "/games/g1/scores", session.Token, in)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, st.scores, 1)
	assert.Equal(t, session.UID, st.scores[0].UserUID)
}

func TestLoginWrongPasswordTranslated(t *testing.T) {
	r, _, provider := setup(t)
	signUp(t, provider, "ada@example.com")

	w := doJSON(t, r, http.MethodPost, "/login", "",
		models.LoginInput{Email: "ada@example.com", Password: "wrong-password"})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Incorrect password. Please try again.", resp["error"])
}

func TestUpdateProfile(t *testing.T) {
	r, st, provider := setup(t)
	session := signUp(t, provider, "ada@example.com")

	name := "Ada King"
	w := doJSON(t, r, http.MethodPut, "/profile", session.Token,
		models.UpdateProfileInput{FullName: &name})

	require.Equal(t, http.StatusOK, w.Code)
	profile, err := st.GetProfile(context.Background(), session.UID)
	require.NoError(t, err)
	assert.Equal(t, "Ada King", profile.FullName)
}

func TestDeleteAccountRequiresCorrectPassword(t *testing.T) {
	r, st, provider := setup(t)
	session := signUp(t, provider, "ada@example.com")

	w := doJSON(t, r, http.MethodDelete, "/account", session.Token,
		models.DeleteAccountInput{Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	_, err := st.GetProfile(context.Background(), session.UID)
	assert.NoError(t, err)

	w = doJSON(t, r, http.MethodDelete, "/account", session.Token,
		models.DeleteAccountInput{Password: "hunter22"})
	require.Equal(t, http.StatusOK, w.Code)
	_, err = st.GetProfile(context.Background(), session.UID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeletedAuthorStillRendersAfterAccountRemoval(t *testing.T) {
	r, st, provider := setup(t)
	seedCatalog(st)
	session := signUp(t, provider, "ada@example.com")

	w := doJSON(t, r, http.MethodPost, "/games/g1/ratings", session.Token,
		models.SubmitRatingInput{Rating: 5, Comment: "bye"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/account", session.Token,
		models.DeleteAccountInput{Password: "hunter22"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/games/g1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail reviews.GameDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Len(t, detail.Reviews, 2)
	for _, rev := range detail.Reviews {
		assert.Equal(t, reviews.DeletedUserName, rev.Author.DisplayName)
	}
}
