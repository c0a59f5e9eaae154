package repository

import (
	"context"
	"testing"

	"snippetapi/internal/domain/model"
	repo "snippetapi/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartGormRepository_CreateFindDelete(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	carts := NewCartGormRepository(gdb)
	items := NewCartItemGormRepository(gdb)

	cart, err := carts.Create(ctx)
	require.NoError(t, err)
	_, err = uuid.Parse(cart.ID)
	assert.NoError(t, err)

	owner := seedUser(t, gdb, "gina")
	s1 := seedSnippet(t, gdb, model.Snippet{Code: "1", UnitPrice: 150, OwnerID: &owner.ID})
	s2 := seedSnippet(t, gdb, model.Snippet{Code: "2", UnitPrice: 1000, OwnerID: &owner.ID})

	_, err = items.UpsertByCartAndSnippet(ctx, cart.ID, s1.ID, 2)
	require.NoError(t, err)
	_, err = items.UpsertByCartAndSnippet(ctx, cart.ID, s2.ID, 1)
	require.NoError(t, err)

	got, err := carts.FindByID(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	require.NotNil(t, got.Items[0].Snippet)
	assert.Equal(t, int64(300), got.Items[0].TotalPrice())
	assert.Equal(t, int64(1300), got.TotalPrice())

	ok, err := carts.Exists(ctx, cart.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, carts.Delete(ctx, cart.ID))
	var left int64
	gdb.Model(&model.CartItem{}).Count(&left)
	assert.Zero(t, left)

	_, err = carts.FindByID(ctx, cart.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.ErrorIs(t, carts.Delete(ctx, cart.ID), repo.ErrNotFound)
}

func TestCartItemGormRepository_UpsertMergesQuantity(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	items := NewCartItemGormRepository(gdb)

	cart, err := NewCartGormRepository(gdb).Create(ctx)
	require.NoError(t, err)
	owner := seedUser(t, gdb, "hank")
	s := seedSnippet(t, gdb, model.Snippet{Code: "1", UnitPrice: 100, OwnerID: &owner.ID})

	first, err := items.UpsertByCartAndSnippet(ctx, cart.ID, s.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), first.Quantity)

	second, err := items.UpsertByCartAndSnippet(ctx, cart.ID, s.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(5), second.Quantity)

	list, err := items.ListByCartID(ctx, cart.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = items.UpsertByCartAndSnippet(ctx, cart.ID, s.ID, 0)
	assert.Error(t, err)
}

func TestCartItemGormRepository_ScopedToCart(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	items := NewCartItemGormRepository(gdb)
	carts := NewCartGormRepository(gdb)

	c1, err := carts.Create(ctx)
	require.NoError(t, err)
	c2, err := carts.Create(ctx)
	require.NoError(t, err)
	owner := seedUser(t, gdb, "ivy")
	s := seedSnippet(t, gdb, model.Snippet{Code: "1", OwnerID: &owner.ID})

	it, err := items.UpsertByCartAndSnippet(ctx, c1.ID, s.ID, 1)
	require.NoError(t, err)

	_, err = items.FindByID(ctx, c2.ID, it.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.ErrorIs(t, items.UpdateQuantity(ctx, c2.ID, it.ID, 4), repo.ErrNotFound)
	assert.ErrorIs(t, items.Delete(ctx, c2.ID, it.ID), repo.ErrNotFound)

	require.NoError(t, items.UpdateQuantity(ctx, c1.ID, it.ID, 4))
	got, err := items.FindByID(ctx, c1.ID, it.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Quantity)

	require.NoError(t, items.Delete(ctx, c1.ID, it.ID))
}
