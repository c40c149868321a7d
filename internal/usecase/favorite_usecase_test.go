package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFavoriteAddListRemove(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.seedUser(t, "tala")
	bakery := env.seedBakery(t, "buko")
	cat := env.seedCategory(t, "bread")
	p := env.seedProduct(t, bakery.ID, cat.ID, "egg pie", 5500, 4)

	uc := NewFavoriteUsecase(env.favorites, env.products)

	require.NoError(t, uc.Add(ctx, user.ID, p.ID))

	// adding twice conflicts
	err := uc.Add(ctx, user.ID, p.ID)
	requireCode(t, err, CodeConflict)

	views, err := uc.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "egg pie", views[0].ProductName)
	require.Equal(t, "buko", views[0].BakeryName)

	require.NoError(t, uc.Remove(ctx, user.ID, p.ID))
	err = uc.Remove(ctx, user.ID, p.ID)
	requireCode(t, err, CodeNotFound)

	err = uc.Add(ctx, user.ID, 9999)
	requireCode(t, err, CodeNotFound)
}
