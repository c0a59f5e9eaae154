package repository

import (
	"context"
	"testing"

	"snippetapi/internal/config"
	"snippetapi/internal/domain/model"
	"snippetapi/internal/infra/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Connect(config.DBSettings{Driver: config.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gdb))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, username string) model.User {
	t.Helper()
	u := model.User{Username: username, Email: username + "@example.com", PasswordHash: "x", Role: model.RoleUser}
	require.NoError(t, NewUserGormRepository(gdb).Create(context.Background(), &u))
	return u
}

func seedCategory(t *testing.T, gdb *gorm.DB, title string) model.SnippetCategory {
	t.Helper()
	c := model.SnippetCategory{Title: title}
	require.NoError(t, NewSnippetCategoryGormRepository(gdb).Create(context.Background(), &c))
	return c
}

func seedSnippet(t *testing.T, gdb *gorm.DB, s model.Snippet) model.Snippet {
	t.Helper()
	if s.Language == "" {
		s.Language = model.DefaultSnippetLanguage
	}
	if s.Style == "" {
		s.Style = model.DefaultSnippetStyle
	}
	require.NoError(t, NewSnippetGormRepository(gdb).Create(context.Background(), &s))
	return s
}

func ptr[T any](v T) *T { return &v }
