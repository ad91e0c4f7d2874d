package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/control-activos/internal/application/auth"
	"github.com/jhoicas/control-activos/internal/application/inventory"
	"github.com/jhoicas/control-activos/internal/application/usecase"
	"github.com/jhoicas/control-activos/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/control-activos/internal/infrastructure/pdf"
	"github.com/jhoicas/control-activos/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/control-activos/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/control-activos/internal/interfaces/http"
	"github.com/jhoicas/control-activos/pkg/config"
	"github.com/jhoicas/control-activos/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.Inventory.RunMigrations {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	// Lock distribuido opcional: sin REDIS_ADDR basta el bloqueo de fila de PostgreSQL.
	var locker inventory.AssetLocker
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		locker = infraredis.NewAssetLocker(rdb, cfg.Redis.LockTTL, cfg.Redis.LockWait, log.Component("redislock"))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("lock distribuido por activo habilitado")
	}

	promMetrics := metrics.New()

	assetRepo := postgres.NewAssetRepository(pool)
	detailRepo := postgres.NewMovementDetailRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool, detailRepo)
	userRepo := postgres.NewUserRepository(pool)
	historyRepo := postgres.NewHistoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	movementUC := inventory.NewMovementUseCase(txRunner, locker, promMetrics, log.Component("motor"), inventory.MovementConfig{
		MaxAttempts: cfg.Inventory.MaxRetries,
	})
	auditUC := inventory.NewAuditUseCase(assetRepo, detailRepo)
	assetUC := usecase.NewAssetUseCase(assetRepo, txRunner, log.Component("catalogo"))
	userUC := usecase.NewUserUseCase(userRepo)
	historyUC := usecase.NewHistoryUseCase(historyRepo, assetRepo)
	voucherUC := usecase.NewVoucherUseCase(movementRepo, assetRepo, userRepo, infrapdf.NewVoucherGenerator(cfg.App.Name))
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.ObserveRequests(log.Component("http"), promMetrics))

	// Swagger UI en local: http://localhost:<port>/docs (requiere docs/swagger.json generado con swag)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Control de Activos API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promMetrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     userUC,
		AssetUC:    assetUC,
		MovementUC: movementUC,
		AuditUC:    auditUC,
		HistoryUC:  historyUC,
		VoucherUC:  voucherUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
