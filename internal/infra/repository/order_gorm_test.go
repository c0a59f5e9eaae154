package repository

import (
	"context"
	"errors"
	"testing"

	"snippetapi/internal/domain/model"
	repo "snippetapi/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrder(t *testing.T, ctx context.Context, r *OrderGormRepository, items *OrderItemGormRepository, customerID int64, lines ...model.OrderItem) model.Order {
	t.Helper()
	o := model.Order{CustomerID: customerID, PaymentStatus: model.PaymentStatusPending}
	require.NoError(t, r.Create(ctx, &o))
	require.NoError(t, items.CreateBulk(ctx, o.ID, lines))
	return o
}

func TestOrderGormRepository_Lifecycle(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	orders := NewOrderGormRepository(gdb)
	orderItems := NewOrderItemGormRepository(gdb)
	profiles := NewUserProfileGormRepository(gdb)

	u1 := seedUser(t, gdb, "jack")
	u2 := seedUser(t, gdb, "kate")
	p1, err := profiles.GetOrCreateByUserID(ctx, u1.ID)
	require.NoError(t, err)
	p2, err := profiles.GetOrCreateByUserID(ctx, u2.ID)
	require.NoError(t, err)
	s := seedSnippet(t, gdb, model.Snippet{Code: "x", UnitPrice: 100, OwnerID: &u1.ID})

	o1 := seedOrder(t, ctx, orders, orderItems, p1.ID,
		model.OrderItem{SnippetID: s.ID, Quantity: 2, UnitPrice: 100},
		model.OrderItem{SnippetID: s.ID, Quantity: 1, UnitPrice: 250},
	)
	o2 := seedOrder(t, ctx, orders, orderItems, p2.ID, model.OrderItem{SnippetID: s.ID, Quantity: 1, UnitPrice: 100})

	got, err := orders.FindByID(ctx, o1.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, int64(450), got.TotalPrice())
	assert.Equal(t, model.PaymentStatusPending, got.PaymentStatus)

	mine, total, err := orders.List(ctx, repo.OrderListFilter{CustomerID: &p1.ID, Page: repo.Page{Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, o1.ID, mine[0].ID)

	all, total, err := orders.List(ctx, repo.OrderListFilter{Page: repo.Page{Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, o2.ID, all[0].ID)

	require.NoError(t, orders.UpdatePaymentStatus(ctx, o1.ID, model.PaymentStatusComplete))
	got, err = orders.FindByID(ctx, o1.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusComplete, got.PaymentStatus)

	require.NoError(t, orders.Delete(ctx, o1.ID))
	var left int64
	require.NoError(t, gdb.Model(&model.OrderItem{}).Where("order_id = ?", o1.ID).Count(&left).Error)
	assert.Zero(t, left)

	_, err = orders.FindByID(ctx, o1.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.ErrorIs(t, orders.Delete(ctx, o1.ID), repo.ErrNotFound)
	assert.ErrorIs(t, orders.UpdatePaymentStatus(ctx, o1.ID, model.PaymentStatusFailed), repo.ErrNotFound)
}

func TestTxManagerGorm_RollsBackOnError(t *testing.T) {
	gdb := newTestDB(t)
	ctx := context.Background()
	tm := NewTxManagerGorm(gdb)

	boom := errors.New("boom")
	err := tm.WithinTx(ctx, func(r repo.TxRepos) error {
		u := model.User{Username: "leo", Email: "leo@example.com", PasswordHash: "x", Role: model.RoleUser}
		if err := r.Users().Create(ctx, &u); err != nil {
			return err
		}
		if _, err := r.Profiles().GetOrCreateByUserID(ctx, u.ID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var users, profiles int64
	gdb.Model(&model.User{}).Count(&users)
	gdb.Model(&model.UserProfile{}).Count(&profiles)
	assert.Zero(t, users)
	assert.Zero(t, profiles)
}
