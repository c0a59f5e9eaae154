//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"snippetapi/internal/config"
	"snippetapi/internal/domain/model"
	"snippetapi/internal/infra/db"
	repo "snippetapi/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// PostgreSQLコンテナを起動してマイグレーション済みの *gorm.DB を返す
func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("snippets"),
		postgres.WithUsername("snippets"),
		postgres.WithPassword("snippets"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	gdb, err := db.Connect(config.DBSettings{Driver: config.DriverPostgres, DatabaseURL: dsn})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gdb))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func TestPostgres_Repositories(t *testing.T) {
	gdb := newPostgresDB(t)
	ctx := context.Background()

	owner := seedUser(t, gdb, "erin")

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		dup := model.User{Username: "erin", Email: "other@example.com", PasswordHash: "x", Role: model.RoleUser}
		assert.ErrorIs(t, NewUserGormRepository(gdb).Create(ctx, &dup), repo.ErrConflict)
	})

	t.Run("cart items merge by snippet", func(t *testing.T) {
		s := seedSnippet(t, gdb, model.Snippet{Code: "x", UnitPrice: 250, OwnerID: &owner.ID})
		cart, err := NewCartGormRepository(gdb).Create(ctx)
		require.NoError(t, err)

		items := NewCartItemGormRepository(gdb)
		_, err = items.UpsertByCartAndSnippet(ctx, cart.ID, s.ID, 2)
		require.NoError(t, err)
		item, err := items.UpsertByCartAndSnippet(ctx, cart.ID, s.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(5), item.Quantity)

		got, err := NewCartGormRepository(gdb).FindByID(ctx, cart.ID)
		require.NoError(t, err)
		require.Len(t, got.Items, 1)
		assert.Equal(t, int64(1250), got.TotalPrice())
	})

	t.Run("ordered snippet is protected", func(t *testing.T) {
		s := seedSnippet(t, gdb, model.Snippet{Code: "y", UnitPrice: 100, OwnerID: &owner.ID})
		profile, err := NewUserProfileGormRepository(gdb).GetOrCreateByUserID(ctx, owner.ID)
		require.NoError(t, err)

		err = NewTxManagerGorm(gdb).WithinTx(ctx, func(r repo.TxRepos) error {
			order := model.Order{CustomerID: profile.ID, PaymentStatus: model.PaymentStatusPending}
			if err := r.Orders().Create(ctx, &order); err != nil {
				return err
			}
			return r.OrderItems().CreateBulk(ctx, order.ID, []model.OrderItem{{SnippetID: s.ID, Quantity: 1, UnitPrice: 100}})
		})
		require.NoError(t, err)

		assert.ErrorIs(t, NewSnippetGormRepository(gdb).Delete(ctx, s.ID), repo.ErrProtected)
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		c := seedCategory(t, gdb, "Databases")
		seedSnippet(t, gdb, model.Snippet{Title: "pg", Code: "SELECT 1", OwnerID: &owner.ID, CategoryID: &c.ID})

		items, total, err := NewSnippetGormRepository(gdb).List(ctx, repo.SnippetListQuery{
			SearchTerms: []string{"DATABASE"},
			Page:        repo.Page{Limit: 10},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, "Databases", items[0].Category.Title)
	})
}
