package service

import (
	"context"
	"testing"

	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/domain"
	"github.com/AlexandrePereon/ELECTIVE-WEB-RESTAURANT/internal/media"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type menuTestEnv struct {
	svc        *MenuService
	articleSvc *ArticleService
	articles   *fakeArticleRepo
	menus      *fakeMenuRepo
}

func newMenuTestEnv() *menuTestEnv {
	logger := zap.NewNop().Sugar()
	env := &menuTestEnv{
		articles: newFakeArticleRepo(),
		menus:    newFakeMenuRepo(),
	}
	env.svc = NewMenuService(env.menus, env.articles, media.NewConverter(logger), logger)
	env.articleSvc = NewArticleService(env.articles, env.menus, media.NewConverter(logger), logger)
	return env
}

func (env *menuTestEnv) seedArticles(t *testing.T, restaurantID primitive.ObjectID, prices map[string]float64) map[string]primitive.ObjectID {
	t.Helper()
	ids := make(map[string]primitive.ObjectID, len(prices))
	for name, price := range prices {
		id, err := env.articleSvc.Create(context.Background(), restaurantID, CreateArticleInput{
			Name: name, Description: "d", Price: price,
		})
		require.NoError(t, err)
		ids[name] = id
	}
	return ids
}

func TestMenuCreateDerivesPrice(t *testing.T) {
	env := newMenuTestEnv()
	ctx := context.Background()
	restaurantID := primitive.NewObjectID()
	ids := env.seedArticles(t, restaurantID, map[string]float64{"Spaghetti": 9.5, "Garlic Bread": 3.5})

	menuID, err := env.svc.Create(ctx, restaurantID, CreateMenuInput{
		Name:        "Combo",
		Description: "d",
		ArticleIDs:  []string{ids["Spaghetti"].Hex(), ids["Garlic Bread"].Hex()},
	})
	require.NoError(t, err)

	menu, err := env.svc.Get(ctx, menuID.Hex())
	require.NoError(t, err)
	require.Equal(t, 13.0, menu.Price)
	require.Len(t, menu.Articles, 2)
}

func TestMenuCreateExplicitPriceWins(t *testing.T) {
	env := newMenuTestEnv()
	ctx := context.Background()
	restaurantID := primitive.NewObjectID()
	ids := env.seedArticles(t, restaurantID, map[string]float64{"Spaghetti": 9.5, "Garlic Bread": 3.5})

	price := 11.0
	menuID, err := env.svc.Create(ctx, restaurantID, CreateMenuInput{
		Name:        "Combo",
		Description: "d",
		ArticleIDs:  []string{ids["Spaghetti"].Hex(), ids["Garlic Bread"].Hex()},
		Price:       &price,
	})
	require.NoError(t, err)

	menu, err := env.svc.Get(ctx, menuID.Hex())
	require.NoError(t, err)
	require.Equal(t, 11.0, menu.Price)
}

func TestMenuCreateSingleArticle(t *testing.T) {
	env := newMenuTestEnv()
	restaurantID := primitive.NewObjectID()
	ids := env.seedArticles(t, restaurantID, map[string]float64{"Spaghetti": 9.5})

	_, err := env.svc.Create(context.Background(), restaurantID, CreateMenuInput{
		Name: "Solo", Description: "d", ArticleIDs: []string{ids["Spaghetti"].Hex()},
	})
	require.ErrorIs(t, err, domain.ErrNotEnoughArticles)
}

func TestMenuCreateDuplicateArticleRefs(t *testing.T) {
	env := newMenuTestEnv()
	restaurantID := primitive.NewObjectID()
	ids := env.seedArticles(t, restaurantID, map[string]float64{"Spaghetti": 9.5})

	_, err := env.svc.Create(context.Background(), restaurantID, CreateMenuInput{
		Name:        "Twice",
		Description: "d",
		ArticleIDs:  []string{ids["Spaghetti"].Hex(), ids["Spaghetti"].Hex()},
	})
	require.ErrorIs(t, err, domain.ErrNotEnoughArticles)
}

func TestMenuCreateCrossRestaurant(t *testing.T) {
	env := newMenuTestEnv()
	r1 := primitive.NewObjectID()
	r2 := primitive.NewObjectID()
	own := env.seedArticles(t, r1, map[string]float64{"Spaghetti": 9.5})
	foreign := env.seedArticles(t, r2, map[string]float64{"Sushi": 15})

	_, err := env.svc.Create(context.Background(), r1, CreateMenuInput{
		Name:        "Mixed",
		Description: "d",
		ArticleIDs:  []string{own["Spaghetti"].Hex(), foreign["Sushi"].Hex()},
	})
	require.ErrorIs(t, err, domain.ErrArticleWrongRestaurant)
}

func TestMenuCreateMissingArticle(t *testing.T) {
	env := newMenuTestEnv()
	restaurantID := primitive.NewObjectID()
	ids := env.seedArticles(t, restaurantID, map[string]float64{"Spaghetti": 9.5})

	_, err := env.svc.Create(context.Background(), restaurantID, CreateMenuInput{
		Name:        "Ghost",
		Description: "d",
		ArticleIDs:  []string{ids["Spaghetti"].Hex(), primitive.NewObjectID().Hex()},
	})
	require.ErrorIs(t, err, domain.ErrArticleNotFound)
}

func TestMenuCreateDuplicateName(t *testing.T) {
	env := newMenuTestEnv()
	ctx := context.Background()
	restaurantID := primitive.NewObjectID()
	ids := env.seedArticles(t, restaurantID, map[string]float64{"Spaghetti": 9.5, "Garlic Bread": 3.5})
	articleIDs := []string{ids["Spaghetti"].Hex(), ids["Garlic Bread"].Hex()}

	_, err := env.svc.Create(ctx, restaurantID, CreateMenuInput{Name: "Combo", Description: "d", ArticleIDs: articleIDs})
	require.NoError(t, err)

	_, err = env.svc.Create(ctx, restaurantID, CreateMenuInput{Name: "Combo", Description: "d", ArticleIDs: articleIDs})
	require.ErrorIs(t, err, domain.ErrNameTaken)
}

func TestMenuUpdateCompositionReDerivesPrice(t *testing.T) {
	env := newMenuTestEnv()
	ctx := context.Background()
	restaurantID := primitive.NewObjectID()
	ids := env.seedArticles(t, restaurantID, map[string]float64{
		"Spaghetti": 9.5, "Garlic Bread": 3.5, "Tiramisu": 6,
	})

	menuID, err := env.svc.Create(ctx, restaurantID, CreateMenuInput{
		Name:        "Combo",
		Description: "d",
		ArticleIDs:  []string{ids["Spaghetti"].Hex(), ids["Garlic Bread"].Hex()},
	})
	require.NoError(t, err)

	updated, err := env.svc.Update(ctx, restaurantID, menuID.Hex(), MenuPatch{
		ArticleIDs: []string{ids["Spaghetti"].Hex(), ids["Tiramisu"].Hex()},
	})
	require.NoError(t, err)
	require.Equal(t, 15.5, updated.Price)
	require.Len(t, updated.Articles, 2)
}

func TestMenuUpdateCompositionWithExplicitPrice(t *testing.T) {
	env := newMenuTestEnv()
	ctx := context.Background()
	restaurantID := primitive.NewObjectID()
	ids := env.seedArticles(t, restaurantID, map[string]float64{
		"Spaghetti": 9.5, "Garlic Bread": 3.5, "Tiramisu": 6,
	})

	menuID, err := env.svc.Create(ctx, restaurantID, CreateMenuInput{
		Name:        "Combo",
		Description: "d",
		ArticleIDs:  []string{ids["Spaghetti"].Hex(), ids["Garlic Bread"].Hex()},
	})
	require.NoError(t, err)

	price := 12.0
	updated, err := env.svc.Update(ctx, restaurantID, menuID.Hex(), MenuPatch{
		ArticleIDs: []string{ids["Spaghetti"].Hex(), ids["Tiramisu"].Hex()},
		Price:      &price,
	})
	require.NoError(t, err)
	require.Equal(t, 12.0, updated.Price)
}

func TestMenuUpdateRejectsInvalidComposition(t *testing.T) {
	env := newMenuTestEnv()
	ctx := context.Background()
	restaurantID := primitive.NewObjectID()
	ids := env.seedArticles(t, restaurantID, map[string]float64{"Spaghetti": 9.5, "Garlic Bread": 3.5})

	menuID, err := env.svc.Create(ctx, restaurantID, CreateMenuInput{
		Name:        "Combo",
		Description: "d",
		ArticleIDs:  []string{ids["Spaghetti"].Hex(), ids["Garlic Bread"].Hex()},
	})
	require.NoError(t, err)

	_, err = env.svc.Update(ctx, restaurantID, menuID.Hex(), MenuPatch{
		ArticleIDs: []string{ids["Spaghetti"].Hex()},
	})
	require.ErrorIs(t, err, domain.ErrNotEnoughArticles)
}

func TestMenuUpdateScalarKeepsComposition(t *testing.T) {
	env := newMenuTestEnv()
	ctx := context.Background()
	restaurantID := primitive.NewObjectID()
	ids := env.seedArticles(t, restaurantID, map[string]float64{"Spaghetti": 9.5, "Garlic Bread": 3.5})

	menuID, err := env.svc.Create(ctx, restaurantID, CreateMenuInput{
		Name:        "Combo",
		Description: "old",
		ArticleIDs:  []string{ids["Spaghetti"].Hex(), ids["Garlic Bread"].Hex()},
	})
	require.NoError(t, err)

	updated, err := env.svc.Update(ctx, restaurantID, menuID.Hex(), MenuPatch{Description: "new"})
	require.NoError(t, err)
	require.Equal(t, "new", updated.Description)
	require.Equal(t, 13.0, updated.Price)
	require.Len(t, updated.Articles, 2)
}

func TestMenuUpdateWrongRestaurant(t *testing.T) {
	env := newMenuTestEnv()
	ctx := context.Background()
	restaurantID := primitive.NewObjectID()
	ids := env.seedArticles(t, restaurantID, map[string]float64{"Spaghetti": 9.5, "Garlic Bread": 3.5})

	menuID, err := env.svc.Create(ctx, restaurantID, CreateMenuInput{
		Name:        "Combo",
		Description: "d",
		ArticleIDs:  []string{ids["Spaghetti"].Hex(), ids["Garlic Bread"].Hex()},
	})
	require.NoError(t, err)

	_, err = env.svc.Update(ctx, primitive.NewObjectID(), menuID.Hex(), MenuPatch{Description: "hijack"})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMenuDelete(t *testing.T) {
	env := newMenuTestEnv()
	ctx := context.Background()
	restaurantID := primitive.NewObjectID()
	ids := env.seedArticles(t, restaurantID, map[string]float64{"Spaghetti": 9.5, "Garlic Bread": 3.5})

	menuID, err := env.svc.Create(ctx, restaurantID, CreateMenuInput{
		Name:        "Combo",
		Description: "d",
		ArticleIDs:  []string{ids["Spaghetti"].Hex(), ids["Garlic Bread"].Hex()},
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.Delete(ctx, restaurantID, menuID.Hex()))

	_, err = env.svc.Get(ctx, menuID.Hex())
	require.ErrorIs(t, err, domain.ErrNotFound)

	// member articles are untouched
	_, err = env.articleSvc.Get(ctx, ids["Spaghetti"].Hex())
	require.NoError(t, err)
}

func TestMenuDeleteNotFound(t *testing.T) {
	env := newMenuTestEnv()

	err := env.svc.Delete(context.Background(), primitive.NewObjectID(), primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMenuListByRestaurant(t *testing.T) {
	env := newMenuTestEnv()
	ctx := context.Background()
	restaurantID := primitive.NewObjectID()
	ids := env.seedArticles(t, restaurantID, map[string]float64{"Spaghetti": 9.5, "Garlic Bread": 3.5})
	articleIDs := []string{ids["Spaghetti"].Hex(), ids["Garlic Bread"].Hex()}

	for _, name := range []string{"Combo A", "Combo B", "Combo C"} {
		_, err := env.svc.Create(ctx, restaurantID, CreateMenuInput{Name: name, Description: "d", ArticleIDs: articleIDs})
		require.NoError(t, err)
	}

	list, err := env.svc.ListByRestaurant(ctx, restaurantID.Hex(), 1)
	require.NoError(t, err)
	require.Len(t, list.Items, 3)
	require.EqualValues(t, 3, list.Count)
	require.Equal(t, 1, list.MaxPage)
}

func TestMenuListEmptyIsNotFound(t *testing.T) {
	env := newMenuTestEnv()

	_, err := env.svc.ListByRestaurant(context.Background(), primitive.NewObjectID().Hex(), 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
