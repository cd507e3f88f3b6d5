package handler

import (
	"context"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
	"github.com/nukuldhake/Meal-Mate/internal/dto"
)

type fakeAuthService struct {
	register       func(*dto.RegisterRequest) (*domain.User, error)
	login          func(*dto.LoginRequest) (*domain.TokenPair, error)
	refresh        func(string) (*domain.AccessToken, error)
	forgotPassword func(string) error
	resetPassword  func(*dto.ResetPasswordRequest) error
	verifyToken    func(string) (*dto.VerifyTokenResponse, error)
}

func (f *fakeAuthService) Register(_ context.Context, req *dto.RegisterRequest) (*domain.User, error) {
	return f.register(req)
}

func (f *fakeAuthService) Login(_ context.Context, req *dto.LoginRequest) (*domain.TokenPair, error) {
	return f.login(req)
}

func (f *fakeAuthService) Refresh(_ context.Context, token string) (*domain.AccessToken, error) {
	return f.refresh(token)
}

func (f *fakeAuthService) ForgotPassword(_ context.Context, email string) error {
	return f.forgotPassword(email)
}

func (f *fakeAuthService) ResetPassword(_ context.Context, req *dto.ResetPasswordRequest) error {
	return f.resetPassword(req)
}

func (f *fakeAuthService) VerifyToken(_ context.Context, token string) (*dto.VerifyTokenResponse, error) {
	return f.verifyToken(token)
}

type fakeUserService struct {
	users map[int64]*domain.User
}

func (f *fakeUserService) GetProfile(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrIdentityNotFound
}

func (f *fakeUserService) UpdateProfile(_ context.Context, id int64, update *domain.ProfileUpdate) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	if update.FullName != nil {
		u.FullName = *update.FullName
	}
	if update.CookingSkillLevel != nil {
		u.CookingSkillLevel = *update.CookingSkillLevel
	}
	return u, nil
}

func (f *fakeUserService) GetPublicProfile(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := f.users[id]; ok && u.IsActive {
		return u, nil
	}
	return nil, domain.ErrIdentityNotFound
}

type fakeRecipeService struct {
	recipes    map[int64]*domain.Recipe
	lastFilter *domain.RecipeFilter
	lastUserID int64
}

func (f *fakeRecipeService) List(_ context.Context, filter *domain.RecipeFilter, userID int64) ([]*domain.Recipe, int, error) {
	f.lastFilter = filter
	f.lastUserID = userID
	out := make([]*domain.Recipe, 0, len(f.recipes))
	for _, r := range f.recipes {
		out = append(out, r)
	}
	return out, len(out), nil
}

func (f *fakeRecipeService) Get(_ context.Context, id, userID int64) (*domain.Recipe, error) {
	f.lastUserID = userID
	if r, ok := f.recipes[id]; ok {
		return r, nil
	}
	return nil, domain.ErrRecipeNotFound
}

func (f *fakeRecipeService) ToggleFavorite(_ context.Context, userID, recipeID int64) (*domain.FavoriteResult, error) {
	if _, ok := f.recipes[recipeID]; !ok {
		return nil, domain.ErrRecipeNotFound
	}
	return &domain.FavoriteResult{IsFavorite: true, FavoriteCount: 1}, nil
}

func (f *fakeRecipeService) Rate(_ context.Context, userID, recipeID int64, rating int, _ *string) (*domain.RatingResult, error) {
	if _, ok := f.recipes[recipeID]; !ok {
		return nil, domain.ErrRecipeNotFound
	}
	return &domain.RatingResult{Rating: rating, AverageRating: float64(rating), TotalRatings: 1}, nil
}

func (f *fakeRecipeService) Favorites(context.Context, int64) ([]*domain.Recipe, error) {
	return nil, nil
}

func (f *fakeRecipeService) Cuisines(context.Context) ([]string, error) {
	return []string{"indian", "italian"}, nil
}

type fakeSearchService struct {
	pantryCalls int
}

func (f *fakeSearchService) SearchRecipes(_ context.Context, query string, limit int) ([]*domain.Recipe, error) {
	return []*domain.Recipe{{ID: 1, Name: query}}, nil
}

func (f *fakeSearchService) RecipesByPantry(context.Context, int64) ([]*domain.PantryMatch, error) {
	f.pantryCalls++
	return []*domain.PantryMatch{{Recipe: domain.Recipe{ID: 3}, MatchedIngredients: 2}}, nil
}

func (f *fakeSearchService) SearchIngredients(_ context.Context, query string, limit int) ([]*domain.Ingredient, error) {
	return []*domain.Ingredient{{ID: 1, Name: query}}, nil
}

type fakePantryService struct {
	items  map[int64]*domain.PantryItem
	merged bool
}

func (f *fakePantryService) List(_ context.Context, userID int64) ([]*domain.PantryItem, error) {
	var out []*domain.PantryItem
	for _, item := range f.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakePantryService) Add(_ context.Context, item *domain.PantryItem) (*domain.PantryItem, bool, error) {
	item.ID = int64(len(f.items) + 1)
	f.items[item.ID] = item
	return item, f.merged, nil
}

func (f *fakePantryService) Update(_ context.Context, userID, id int64, _ *domain.PantryItemUpdate) (*domain.PantryItem, error) {
	item, ok := f.items[id]
	if !ok || item.UserID != userID {
		return nil, domain.ErrPantryItemNotFound
	}
	return item, nil
}

func (f *fakePantryService) Delete(_ context.Context, userID, id int64) error {
	item, ok := f.items[id]
	if !ok || item.UserID != userID {
		return domain.ErrPantryItemNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakePantryService) Stats(_ context.Context, userID int64) (*domain.PantryStats, error) {
	return &domain.PantryStats{ItemsByCategory: map[string]int{}}, nil
}

type fakeMealPlanService struct {
	plans map[int64]*domain.MealPlan
}

func (f *fakeMealPlanService) List(context.Context, int64) ([]*domain.MealPlan, error) {
	return nil, nil
}

func (f *fakeMealPlanService) Create(_ context.Context, plan *domain.MealPlan) error {
	plan.ID = int64(len(f.plans) + 1)
	f.plans[plan.ID] = plan
	return nil
}

func (f *fakeMealPlanService) Get(_ context.Context, userID, id int64) (*domain.MealPlan, error) {
	plan, ok := f.plans[id]
	if !ok || plan.UserID != userID {
		return nil, domain.ErrMealPlanNotFound
	}
	return plan, nil
}

func (f *fakeMealPlanService) AddItem(_ context.Context, userID int64, item *domain.MealPlanItem) error {
	plan, ok := f.plans[item.MealPlanID]
	if !ok || plan.UserID != userID {
		return domain.ErrMealPlanNotFound
	}
	if !plan.Covers(item.MealDate) {
		return domain.ErrMealDateOutOfRange
	}
	return nil
}

func (f *fakeMealPlanService) Delete(_ context.Context, userID, id int64) error {
	if _, err := f.Get(context.Background(), userID, id); err != nil {
		return err
	}
	delete(f.plans, id)
	return nil
}

type fakeAdminService struct {
	users map[int64]*domain.User
}

func (f *fakeAdminService) ListUsers(context.Context, *domain.UserFilter) ([]*domain.User, int, error) {
	out := make([]*domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (f *fakeAdminService) SetUserStatus(_ context.Context, actorID, userID int64, active bool) (*domain.User, error) {
	if actorID == userID {
		return nil, domain.ErrSelfModification
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	u.IsActive = active
	return u, nil
}

func (f *fakeAdminService) SetUserRole(_ context.Context, actorID, userID int64, role domain.Role) (*domain.User, error) {
	if actorID == userID {
		return nil, domain.ErrSelfModification
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	u.Role = role
	return u, nil
}

func (f *fakeAdminService) CreateRecipe(_ context.Context, recipe *domain.Recipe) error {
	recipe.ID = 100
	return nil
}

func (f *fakeAdminService) UpdateRecipe(_ context.Context, id int64, req *dto.UpdateRecipeRequest) (*domain.Recipe, error) {
	if id != 100 {
		return nil, domain.ErrRecipeNotFound
	}
	recipe := &domain.Recipe{ID: id, Name: "old"}
	req.Apply(recipe)
	return recipe, nil
}

func (f *fakeAdminService) DeleteRecipe(_ context.Context, id int64) error {
	if id != 100 {
		return domain.ErrRecipeNotFound
	}
	return nil
}
