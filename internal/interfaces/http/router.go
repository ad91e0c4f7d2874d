package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/control-activos/internal/application/auth"
	"github.com/jhoicas/control-activos/internal/application/inventory"
	"github.com/jhoicas/control-activos/internal/application/usecase"
	"github.com/jhoicas/control-activos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	AssetUC    *usecase.AssetUseCase
	MovementUC *inventory.MovementUseCase
	AuditUC    *inventory.AuditUseCase
	HistoryUC  *usecase.HistoryUseCase
	VoucherUC  *usecase.VoucherUseCase
	JWTSecret  string
}

// Roles que administran usuarios y que editan el catálogo.
var (
	userManagers   = []string{entity.RoleJefe, entity.RoleSubJefe}
	catalogEditors = []string{entity.RoleJefe, entity.RoleSubJefe, entity.RoleEncargado}
)

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", RequireRole(userManagers...), userHandler.Create)
	users.Put("/:id", RequireRole(userManagers...), userHandler.Update)
	users.Delete("/:id", RequireRole(userManagers...), userHandler.Delete)

	// Assets
	assets := protected.Group("/assets")
	assetHandler := NewAssetHandler(deps.AssetUC, deps.MovementUC, deps.AuditUC)
	movementHandler := NewMovementHandler(deps.MovementUC, deps.HistoryUC, deps.VoucherUC)
	assets.Get("/", assetHandler.List)
	assets.Post("/", RequireRole(catalogEditors...), assetHandler.Create)
	assets.Get("/:id", assetHandler.GetByID)
	assets.Put("/:id", RequireRole(catalogEditors...), assetHandler.Update)
	assets.Delete("/:id", RequireRole(userManagers...), assetHandler.Delete)
	assets.Post("/:id/maintenance", RequireRole(catalogEditors...), assetHandler.SetMaintenance)
	assets.Get("/:id/movements", movementHandler.ByAsset)
	assets.Get("/:id/reconcile", assetHandler.Reconcile)

	// Movements
	movements := protected.Group("/movements")
	movements.Post("/issue", movementHandler.Issue)
	movements.Post("/return", movementHandler.Return)
	movements.Get("/history", movementHandler.History)
	movements.Get("/:id/voucher", movementHandler.Voucher)
}
