// seed prepara una base recién migrada: crea el primer usuario Jefe y, opcionalmente,
// carga el catálogo de activos desde un CSV o con datos de demostración.
//
// Uso:
//
//	go run ./cmd/seed -nick admin -nombre "Jefe de Bodega" [-catalogo activos.csv [-latin1]] [-demo 20]
//
// La contraseña se toma de SEED_JEFE_PASSWORD. Si el nick ya existe, se reutiliza ese usuario.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/jhoicas/control-activos/internal/application/dto"
	"github.com/jhoicas/control-activos/internal/application/usecase"
	"github.com/jhoicas/control-activos/internal/domain"
	"github.com/jhoicas/control-activos/internal/domain/entity"
	"github.com/jhoicas/control-activos/internal/infrastructure/postgres"
	"github.com/jhoicas/control-activos/pkg/config"
	"github.com/jhoicas/control-activos/pkg/logger"
)

func main() {
	nick := flag.String("nick", "admin", "nick_name del primer Jefe")
	name := flag.String("nombre", "Jefe de Bodega", "nombre completo del primer Jefe")
	catalog := flag.String("catalogo", "", "CSV con columnas sku,nombre,tipo_activo,stock_total[,bodega,estante,descripcion]")
	latin1 := flag.Bool("latin1", false, "el CSV viene en ISO-8859-1")
	demo := flag.Int("demo", 0, "cantidad de activos ficticios a crear")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	userRepo := postgres.NewUserRepository(pool)
	users := usecase.NewUserUseCase(userRepo)
	assets := usecase.NewAssetUseCase(postgres.NewAssetRepository(pool), postgres.NewTxRunner(pool), log.Component("catalogo"))

	password := os.Getenv("SEED_JEFE_PASSWORD")
	if password == "" {
		log.Fatal().Msg("SEED_JEFE_PASSWORD es obligatoria")
	}
	jefe, err := users.Create(ctx, entity.RoleJefe, dto.CreateUserRequest{
		FullName: *name,
		NickName: *nick,
		Password: password,
		Role:     entity.RoleJefe,
	})
	var jefeID string
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		existing, lookupErr := userRepo.GetByNickName(ctx, *nick)
		if lookupErr != nil || existing == nil {
			log.Fatal().Err(lookupErr).Str("nick", *nick).Msg("buscar usuario existente")
		}
		jefeID = existing.ID
		log.Info().Str("nick", *nick).Msg("el usuario ya existe, se reutiliza")
	case err != nil:
		log.Fatal().Err(err).Msg("crear Jefe")
	default:
		jefeID = jefe.ID
		log.Info().Str("user_id", jefeID).Str("nick", *nick).Msg("Jefe creado")
	}

	var requests []dto.CreateAssetRequest
	if *catalog != "" {
		f, err := os.Open(*catalog)
		if err != nil {
			log.Fatal().Err(err).Str("file", *catalog).Msg("abrir catálogo")
		}
		parsed, err := parseCatalog(catalogReader(f, *latin1))
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Str("file", *catalog).Msg("leer catálogo")
		}
		requests = append(requests, parsed...)
	}
	if *demo > 0 {
		requests = append(requests, demoCatalog(gofakeit.New(0), *demo)...)
	}

	created, skipped := 0, 0
	for _, req := range requests {
		_, err := assets.Create(ctx, jefeID, req)
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			skipped++
		case err != nil:
			log.Error().Err(err).Str("sku", req.SKU).Msg("alta de activo")
			skipped++
		default:
			created++
		}
	}
	log.Info().Int("creados", created).Int("omitidos", skipped).Msg("seed terminado")
}
