package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/internal/middleware"
	"github.com/nukuldhake/Meal-Mate/internal/service"
	"github.com/nukuldhake/Meal-Mate/pkg/logger"
	"github.com/nukuldhake/Meal-Mate/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type finderFunc func(id int64) *domain.User

func (f finderFunc) FindByID(_ context.Context, id int64) (*domain.User, error) {
	return f(id), nil
}

type checker struct{ err error }

func (c checker) HealthCheck(context.Context) error { return c.err }

type apiFixture struct {
	router *gin.Engine
	tokens service.TokenService
	users  map[int64]*domain.User

	auth     *fakeAuthService
	recipes  *fakeRecipeService
	search   *fakeSearchService
	pantry   *fakePantryService
	plans    *fakeMealPlanService
	admin    *fakeAdminService
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	f := &apiFixture{
		users: map[int64]*domain.User{
			1: {ID: 1, Email: "cook@example.com", Username: "cook", Role: domain.RoleUser, IsActive: true},
			2: {ID: 2, Email: "boss@example.com", Username: "boss", Role: domain.RoleAdmin, IsActive: true},
			3: {ID: 3, Email: "gone@example.com", Username: "gone", Role: domain.RoleUser, IsActive: false},
		},
		auth:    &fakeAuthService{},
		recipes: &fakeRecipeService{recipes: map[int64]*domain.Recipe{10: {ID: 10, Name: "dal"}}},
		search:  &fakeSearchService{},
		pantry:  &fakePantryService{items: map[int64]*domain.PantryItem{}},
		plans:   &fakeMealPlanService{plans: map[int64]*domain.MealPlan{}},
	}
	f.admin = &fakeAdminService{users: f.users}

	finder := finderFunc(func(id int64) *domain.User { return f.users[id] })
	tokens, err := service.NewTokenService(finder, &service.TokenServiceConfig{
		Secret: "handler-test-secret-0123456789abcdef",
	})
	require.NoError(t, err)
	f.tokens = tokens

	f.router = NewRouter(&RouterConfig{
		ServiceName: "meal-mate",
		Handlers: Handlers{
			Health: NewHealthHandler("meal-mate", map[string]HealthChecker{
				"database": checker{},
				"redis":    checker{},
			}),
			Auth:     NewAuthHandler(f.auth),
			User:     NewUserHandler(&fakeUserService{users: f.users}),
			Recipe:   NewRecipeHandler(f.recipes),
			Search:   NewSearchHandler(f.search),
			Pantry:   NewPantryHandler(f.pantry),
			MealPlan: NewMealPlanHandler(f.plans),
			Admin:    NewAdminHandler(f.admin),
		},
		Gate: middleware.NewAuthGate(tokens, finder),
		CORS: middleware.DefaultCORSConfig([]string{"*"}),
		Log:  logger.NewNop(),
	})
	return f
}

func (f *apiFixture) token(t *testing.T, userID int64) string {
	t.Helper()
	pair, err := f.tokens.Issue(&domain.User{ID: userID})
	require.NoError(t, err)
	return pair.AccessToken
}

func (f *apiFixture) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Error   *response.ErrorData `json:"error"`
	Meta    json.RawMessage     `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	env := decode(t, w)
	require.True(t, env.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	env := decode(t, w)
	require.NotNil(t, env.Error, w.Body.String())
	return env.Error.Code
}

var errDatabaseDown = errors.New("database down")

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}
