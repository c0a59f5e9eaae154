package server

import (
	"snippetapi/internal/config"
	"snippetapi/internal/handler"
	"snippetapi/internal/infra/repository"
	"snippetapi/internal/logger"
	"snippetapi/internal/usecase"
	"snippetapi/internal/validator"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// RegisterRoutes wires repositories, usecases and handlers onto e.
func RegisterRoutes(e *echo.Echo, cfg config.Config, gdb *gorm.DB, publisher usecase.OrderEventPublisher, log logger.Logger) {
	//Repository（GORM実装）生成
	users := repository.NewUserGormRepository(gdb)
	refreshTokens := repository.NewRefreshTokenRepository(gdb)
	profiles := repository.NewUserProfileGormRepository(gdb)
	categories := repository.NewSnippetCategoryGormRepository(gdb)
	snippets := repository.NewSnippetGormRepository(gdb)
	tags := repository.NewSnippetTagGormRepository(gdb)
	carts := repository.NewCartGormRepository(gdb)
	cartItems := repository.NewCartItemGormRepository(gdb)
	orders := repository.NewOrderGormRepository(gdb)
	tx := repository.NewTxManagerGorm(gdb)

	pager := usecase.NewPaginator(cfg.PageSize)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, users, refreshTokens, tx, validator.NewAuthValidator(users))
	snippetUC := usecase.NewSnippetUsecase(snippets, categories, pager)
	categoryUC := usecase.NewSnippetCategoryUsecase(categories, pager)
	tagUC := usecase.NewSnippetTagUsecase(snippets, tags, pager)
	cartUC := usecase.NewCartUsecase(carts, cartItems, tx)
	orderUC := usecase.NewOrderUsecase(orders, profiles, tx, publisher, log, pager)
	profileUC := usecase.NewProfileUsecase(profiles, users, tx)
	userUC := usecase.NewUserUsecase(users, snippets, pager)
	auditUC := usecase.NewAuditLogUsecase(repository.NewAuditLogGormRepository(gdb))

	//Handler生成
	handler.RegisterRoot(e)
	handler.NewAuthHandler(authUC).RegisterRoutes(e)
	handler.NewAdminUserHandler(authUC, auditUC).RegisterRoutes(e)
	handler.NewSnippetHandler(snippetUC).RegisterRoutes(e)
	handler.NewSnippetCategoryHandler(categoryUC).RegisterRoutes(e)
	handler.NewSnippetTagHandler(tagUC).RegisterRoutes(e)
	handler.NewCartHandler(cartUC).RegisterRoutes(e)
	handler.NewOrderHandler(orderUC).RegisterRoutes(e)
	handler.NewProfileHandler(profileUC).RegisterRoutes(e)
	handler.NewUserHandler(userUC).RegisterRoutes(e)
}

// Build returns an echo instance with every route registered.
func Build(cfg config.Config, gdb *gorm.DB, publisher usecase.OrderEventPublisher, log logger.Logger) *echo.Echo {
	e := New(cfg, log, repository.NewUserGormRepository(gdb))
	RegisterRoutes(e, cfg, gdb, publisher, log)
	return e
}
