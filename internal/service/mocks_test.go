package service

import (
	"context"
	"strings"
	"time"

	"github.com/nukuldhake/Meal-Mate/internal/domain"
)

// mockUserRepository is a map-backed UserRepository
type mockUserRepository struct {
	users     map[int64]*domain.User
	nextID      int64
	findError   error
	createError error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[int64]*domain.User),
		nextID: 1,
	}
}

func (r *mockUserRepository) add(user *domain.User) *domain.User {
	if user.ID == 0 {
		user.ID = r.nextID
	}
	if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	r.users[user.ID] = user
	return user
}

func (r *mockUserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	if r.findError != nil {
		return nil, r.findError
	}
	return r.users[id], nil
}

func (r *mockUserRepository) FindByEmailOrUsername(ctx context.Context, s string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, s) || strings.EqualFold(u.Username, s) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := r.FindByEmail(ctx, email)
	return u != nil, nil
}

func (r *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (r *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if r.createError != nil {
		return r.createError
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.add(user)
	return nil
}

func (r *mockUserRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	if u := r.users[id]; u != nil {
		u.LastLogin = &at
	}
	return nil
}

func (r *mockUserRepository) UpdateProfile(ctx context.Context, id int64, update *domain.ProfileUpdate) (*domain.User, error) {
	u := r.users[id]
	if u == nil {
		return nil, nil
	}
	if update.FullName != nil {
		u.FullName = *update.FullName
	}
	if update.Bio != nil {
		u.Bio = *update.Bio
	}
	if update.CookingSkillLevel != nil {
		u.CookingSkillLevel = *update.CookingSkillLevel
	}
	if update.FavoriteCuisines != nil {
		u.FavoriteCuisines = update.FavoriteCuisines
	}
	return u, nil
}

func (r *mockUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	u := r.users[id]
	if u == nil {
		return domain.ErrIdentityNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *mockUserRepository) SetActive(ctx context.Context, id int64, active bool) (*domain.User, error) {
	u := r.users[id]
	if u == nil {
		return nil, nil
	}
	u.IsActive = active
	return u, nil
}

func (r *mockUserRepository) SetRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error) {
	u := r.users[id]
	if u == nil {
		return nil, nil
	}
	u.Role = role
	return u, nil
}

func (r *mockUserRepository) List(ctx context.Context, filter *domain.UserFilter) ([]*domain.User, int, error) {
	var out []*domain.User
	for _, u := range r.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		out = append(out, u)
	}
	return out, len(out), nil
}

// mockPasswordResetRepository records consumed token ids
type mockPasswordResetRepository struct {
	users    *mockUserRepository
	consumed map[string]bool
}

func newMockPasswordResetRepository(users *mockUserRepository) *mockPasswordResetRepository {
	return &mockPasswordResetRepository{
		users:    users,
		consumed: make(map[string]bool),
	}
}

func (r *mockPasswordResetRepository) ConsumeAndSetPassword(ctx context.Context, token *domain.PasswordResetToken, passwordHash string) error {
	if r.consumed[token.TokenID] {
		return domain.NewTokenError(domain.ErrTokenAlreadyUsed)
	}
	if err := r.users.UpdatePassword(ctx, token.UserID, passwordHash); err != nil {
		return err
	}
	r.consumed[token.TokenID] = true
	return nil
}

func (r *mockPasswordResetRepository) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

// mockNotifier captures published reset events
type mockNotifier struct {
	events []*domain.PasswordResetRequested
	err    error
}

func (n *mockNotifier) NotifyPasswordReset(ctx context.Context, event *domain.PasswordResetRequested) error {
	if n.err != nil {
		return n.err
	}
	n.events = append(n.events, event)
	return nil
}

// mockRecipeRepository is a map-backed RecipeRepository
type mockRecipeRepository struct {
	recipes      map[int64]*domain.Recipe
	ingredients  map[int64][]domain.RecipeIngredient
	favorites    map[int64]map[int64]bool
	ratings      map[int64]map[int64]int
	viewError    error
	pantryResult []*domain.PantryMatch
	updated      bool
	replaced     bool
}

func newMockRecipeRepository(recipes ...*domain.Recipe) *mockRecipeRepository {
	r := &mockRecipeRepository{
		recipes:     make(map[int64]*domain.Recipe),
		ingredients: make(map[int64][]domain.RecipeIngredient),
		favorites:   make(map[int64]map[int64]bool),
		ratings:     make(map[int64]map[int64]int),
	}
	for _, rec := range recipes {
		r.recipes[rec.ID] = rec
	}
	return r
}

func (r *mockRecipeRepository) active(id int64) *domain.Recipe {
	rec := r.recipes[id]
	if rec == nil || !rec.IsActive {
		return nil
	}
	return rec
}

func (r *mockRecipeRepository) List(ctx context.Context, filter *domain.RecipeFilter) ([]*domain.Recipe, int, error) {
	var out []*domain.Recipe
	for _, rec := range r.recipes {
		if rec.IsActive {
			out = append(out, rec)
		}
	}
	return out, len(out), nil
}

func (r *mockRecipeRepository) FindByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	rec := r.active(id)
	if rec == nil {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *mockRecipeRepository) Ingredients(ctx context.Context, recipeID int64) ([]domain.RecipeIngredient, error) {
	return r.ingredients[recipeID], nil
}

func (r *mockRecipeRepository) IncrementViewCount(ctx context.Context, id int64) error {
	if r.viewError != nil {
		return r.viewError
	}
	r.recipes[id].ViewCount++
	return nil
}

func (r *mockRecipeRepository) FavoriteIDs(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	out := make(map[int64]bool)
	for _, id := range recipeIDs {
		if r.favorites[userID][id] {
			out[id] = true
		}
	}
	return out, nil
}

func (r *mockRecipeRepository) ToggleFavorite(ctx context.Context, userID, recipeID int64) (*domain.FavoriteResult, error) {
	rec := r.active(recipeID)
	if rec == nil {
		return nil, domain.ErrRecipeNotFound
	}
	if r.favorites[userID] == nil {
		r.favorites[userID] = make(map[int64]bool)
	}
	if r.favorites[userID][recipeID] {
		delete(r.favorites[userID], recipeID)
		rec.FavoriteCount--
	} else {
		r.favorites[userID][recipeID] = true
		rec.FavoriteCount++
	}
	return &domain.FavoriteResult{IsFavorite: r.favorites[userID][recipeID], FavoriteCount: rec.FavoriteCount}, nil
}

func (r *mockRecipeRepository) Rate(ctx context.Context, userID, recipeID int64, rating int, review *string) (*domain.RatingResult, error) {
	if r.active(recipeID) == nil {
		return nil, domain.ErrRecipeNotFound
	}
	if r.ratings[recipeID] == nil {
		r.ratings[recipeID] = make(map[int64]int)
	}
	r.ratings[recipeID][userID] = rating
	sum := 0
	for _, v := range r.ratings[recipeID] {
		sum += v
	}
	n := len(r.ratings[recipeID])
	return &domain.RatingResult{Rating: rating, AverageRating: float64(sum) / float64(n), TotalRatings: n}, nil
}

func (r *mockRecipeRepository) Favorites(ctx context.Context, userID int64) ([]*domain.Recipe, error) {
	var out []*domain.Recipe
	for id := range r.favorites[userID] {
		if rec := r.active(id); rec != nil {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *mockRecipeRepository) Cuisines(ctx context.Context) ([]string, error) {
	return []string{"Indian", "Italian"}, nil
}

func (r *mockRecipeRepository) Search(ctx context.Context, query string, limit int) ([]*domain.Recipe, error) {
	var out []*domain.Recipe
	for _, rec := range r.recipes {
		if rec.IsActive && strings.Contains(strings.ToLower(rec.Name), strings.ToLower(query)) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *mockRecipeRepository) ByPantry(ctx context.Context, userID int64, limit int) ([]*domain.PantryMatch, error) {
	return r.pantryResult, nil
}

func (r *mockRecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) error {
	recipe.ID = int64(len(r.recipes) + 1)
	r.recipes[recipe.ID] = recipe
	return nil
}

func (r *mockRecipeRepository) Update(ctx context.Context, recipe *domain.Recipe, replaceIngredients bool) error {
	if r.active(recipe.ID) == nil {
		return domain.ErrRecipeNotFound
	}
	r.updated = true
	r.replaced = replaceIngredients
	r.recipes[recipe.ID] = recipe
	if replaceIngredients {
		r.ingredients[recipe.ID] = recipe.Ingredients
	}
	return nil
}

func (r *mockRecipeRepository) Deactivate(ctx context.Context, id int64) (bool, error) {
	rec := r.active(id)
	if rec == nil {
		return false, nil
	}
	rec.IsActive = false
	return true, nil
}

// mockIngredientRepository is a slice-backed IngredientRepository
type mockIngredientRepository struct {
	ingredients []*domain.Ingredient
}

func (r *mockIngredientRepository) Search(ctx context.Context, query string, limit int) ([]*domain.Ingredient, error) {
	var out []*domain.Ingredient
	for _, ing := range r.ingredients {
		if strings.Contains(ing.Name, strings.ToLower(query)) {
			out = append(out, ing)
		}
	}
	return out, nil
}

func (r *mockIngredientRepository) FindOrCreate(ctx context.Context, name string) (*domain.Ingredient, error) {
	for _, ing := range r.ingredients {
		if strings.EqualFold(ing.Name, name) {
			return ing, nil
		}
	}
	ing := &domain.Ingredient{ID: int64(len(r.ingredients) + 1), Name: strings.ToLower(name)}
	r.ingredients = append(r.ingredients, ing)
	return ing, nil
}

// mockPantryRepository is a map-backed PantryRepository
type mockPantryRepository struct {
	items  map[int64]*domain.PantryItem
	nextID int64
}

func newMockPantryRepository() *mockPantryRepository {
	return &mockPantryRepository{items: make(map[int64]*domain.PantryItem), nextID: 1}
}

func (r *mockPantryRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.PantryItem, error) {
	var out []*domain.PantryItem
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *mockPantryRepository) FindByID(ctx context.Context, userID, id int64) (*domain.PantryItem, error) {
	item := r.items[id]
	if item == nil || item.UserID != userID {
		return nil, nil
	}
	return item, nil
}

func (r *mockPantryRepository) AddOrMerge(ctx context.Context, item *domain.PantryItem) (*domain.PantryItem, bool, error) {
	for _, existing := range r.items {
		if existing.UserID == item.UserID && existing.IngredientName == item.IngredientName {
			existing.Quantity = existing.Quantity.Add(item.Quantity)
			return existing, true, nil
		}
	}
	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = item
	return item, false, nil
}

func (r *mockPantryRepository) Update(ctx context.Context, userID, id int64, update *domain.PantryItemUpdate) (*domain.PantryItem, error) {
	item, _ := r.FindByID(ctx, userID, id)
	if item == nil {
		return nil, nil
	}
	if update.Quantity != nil {
		item.Quantity = *update.Quantity
	}
	if update.LowStockThreshold != nil {
		item.LowStockThreshold = update.LowStockThreshold
	}
	if update.ExpirationDate != nil {
		item.ExpirationDate = update.ExpirationDate
	}
	return item, nil
}

func (r *mockPantryRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	item, _ := r.FindByID(ctx, userID, id)
	if item == nil {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

// mockMealPlanRepository is a map-backed MealPlanRepository
type mockMealPlanRepository struct {
	plans   map[int64]*domain.MealPlan
	items   map[int64][]domain.MealPlanItem
	recipes map[int64]string
	nextID  int64
}

func newMockMealPlanRepository() *mockMealPlanRepository {
	return &mockMealPlanRepository{
		plans:   make(map[int64]*domain.MealPlan),
		items:   make(map[int64][]domain.MealPlanItem),
		recipes: make(map[int64]string),
		nextID:  1,
	}
}

func (r *mockMealPlanRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.MealPlan, error) {
	var out []*domain.MealPlan
	for _, p := range r.plans {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *mockMealPlanRepository) FindByID(ctx context.Context, userID, id int64) (*domain.MealPlan, error) {
	p := r.plans[id]
	if p == nil || p.UserID != userID {
		return nil, nil
	}
	return p, nil
}

func (r *mockMealPlanRepository) Items(ctx context.Context, planID int64) ([]domain.MealPlanItem, error) {
	return r.items[planID], nil
}

func (r *mockMealPlanRepository) Create(ctx context.Context, plan *domain.MealPlan) error {
	plan.ID = r.nextID
	r.nextID++
	r.plans[plan.ID] = plan
	return nil
}

func (r *mockMealPlanRepository) AddItem(ctx context.Context, item *domain.MealPlanItem) error {
	if item.RecipeID != nil {
		name, ok := r.recipes[*item.RecipeID]
		if !ok {
			return domain.ErrRecipeNotFound
		}
		item.RecipeName = name
	}
	item.ID = int64(len(r.items[item.MealPlanID]) + 1)
	r.items[item.MealPlanID] = append(r.items[item.MealPlanID], *item)
	return nil
}

func (r *mockMealPlanRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	p, _ := r.FindByID(ctx, userID, id)
	if p == nil {
		return false, nil
	}
	delete(r.plans, id)
	delete(r.items, id)
	return true, nil
}
