package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/control-activos/internal/domain"
	"github.com/jhoicas/control-activos/internal/domain/entity"
	"github.com/jhoicas/control-activos/internal/domain/inventory"
	"github.com/jhoicas/control-activos/internal/domain/repository"
)

// Operaciones reportadas al Recorder.
const (
	OperationIssue       = "issue"
	OperationReturn      = "return"
	OperationMaintenance = "maintenance"
)

// MovementConfig parámetros del motor.
type MovementConfig struct {
	// MaxAttempts intentos de la transacción completa ante ErrConcurrencyConflict (mínimo 1).
	MaxAttempts int
}

// MovementUseCase motor de conciliación de stock: registra salidas y devoluciones de forma transaccional.
// Cada operación: lock distribuido opcional → transacción con bloqueo de fila (SELECT FOR UPDATE) →
// validación sobre el snapshot → movimiento + detalle + actualización del activo con chequeo de versión → Commit/Rollback.
type MovementUseCase struct {
	txRunner    TxRunner
	locker      AssetLocker
	recorder    Recorder
	log         zerolog.Logger
	maxAttempts int
	now         func() time.Time
}

// NewMovementUseCase construye el caso de uso. locker y recorder pueden ser nil.
func NewMovementUseCase(txRunner TxRunner, locker AssetLocker, recorder Recorder, log zerolog.Logger, cfg MovementConfig) *MovementUseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &MovementUseCase{
		txRunner:    txRunner,
		locker:      locker,
		recorder:    recorder,
		log:         log,
		maxAttempts: cfg.MaxAttempts,
		now:         time.Now,
	}
}

// IssueInput entrada de una salida. ActorID es la identidad que registra (la entrega la capa de auth).
type IssueInput struct {
	ActorID   string
	AssetID   string
	Quantity  int
	Recipient entity.Recipient
	Type      entity.MovementType // vacío = Salida Uso
	Notes     string
}

// IssueResult movimiento creado (con su detalle) y activo actualizado.
type IssueResult struct {
	Movement *entity.Movement
	Asset    *entity.Asset
}

// ReturnInput entrada de una devolución. No lleva destinatario.
type ReturnInput struct {
	ActorID   string
	AssetID   string
	Quantity  int
	Condition entity.ReturnCondition
	Notes     string
}

// ReturnResult activo actualizado y movimiento creado.
type ReturnResult struct {
	Asset    *entity.Asset
	Movement *entity.Movement
}

// Issue registra una salida: descuenta stock_disponible y deja el activo En Uso mientras haya unidades afuera.
func (uc *MovementUseCase) Issue(ctx context.Context, in IssueInput) (*IssueResult, error) {
	start := time.Now()
	var result *IssueResult
	err := uc.execute(ctx, in.ActorID, in.AssetID, func(
		assetRepo repository.AssetRepository,
		movRepo repository.MovementRepository,
		detailRepo repository.MovementDetailRepository,
	) error {
		asset, err := assetRepo.GetForUpdate(ctx, in.AssetID)
		if err != nil {
			return err
		}
		change, err := inventory.PlanIssue(asset, in.Quantity, in.Recipient, in.Type)
		if err != nil {
			return err
		}
		mov, err := uc.apply(ctx, assetRepo, movRepo, detailRepo, asset, change, in.ActorID, in.Recipient, in.Quantity, strings.TrimSpace(in.Notes))
		if err != nil {
			return err
		}
		result = &IssueResult{Movement: mov, Asset: asset}
		return nil
	})
	uc.observe(OperationIssue, err, start)
	if err != nil {
		uc.log.Warn().Err(err).
			Str("asset_id", in.AssetID).
			Str("actor_id", in.ActorID).
			Int("quantity", in.Quantity).
			Msg("salida rechazada")
		return nil, err
	}
	uc.log.Info().
		Str("asset_id", in.AssetID).
		Str("movement_id", result.Movement.ID).
		Int("quantity", in.Quantity).
		Int("stock_disponible", result.Asset.StockAvailable).
		Str("estado", string(result.Asset.Status)).
		Msg("salida registrada")
	return result, nil
}

// Return registra una devolución: suma stock_disponible y recalcula el estado según la condición reportada.
func (uc *MovementUseCase) Return(ctx context.Context, in ReturnInput) (*ReturnResult, error) {
	start := time.Now()
	var result *ReturnResult
	err := uc.execute(ctx, in.ActorID, in.AssetID, func(
		assetRepo repository.AssetRepository,
		movRepo repository.MovementRepository,
		detailRepo repository.MovementDetailRepository,
	) error {
		asset, err := assetRepo.GetForUpdate(ctx, in.AssetID)
		if err != nil {
			return err
		}
		change, err := inventory.PlanReturn(asset, in.Quantity, in.Condition, in.Notes)
		if err != nil {
			return err
		}
		mov, err := uc.apply(ctx, assetRepo, movRepo, detailRepo, asset, change, in.ActorID, entity.Recipient{}, in.Quantity, change.Notes)
		if err != nil {
			return err
		}
		result = &ReturnResult{Asset: asset, Movement: mov}
		return nil
	})
	uc.observe(OperationReturn, err, start)
	if err != nil {
		uc.log.Warn().Err(err).
			Str("asset_id", in.AssetID).
			Str("actor_id", in.ActorID).
			Int("quantity", in.Quantity).
			Str("condicion", string(in.Condition)).
			Msg("devolución rechazada")
		return nil, err
	}
	uc.log.Info().
		Str("asset_id", in.AssetID).
		Str("movement_id", result.Movement.ID).
		Int("quantity", in.Quantity).
		Int("stock_disponible", result.Asset.StockAvailable).
		Str("estado", string(result.Asset.Status)).
		Msg("devolución registrada")
	return result, nil
}

// SetMaintenance pone o quita el activo de mantenimiento de forma explícita. No escribe en el libro.
func (uc *MovementUseCase) SetMaintenance(ctx context.Context, actorID, assetID string, on bool) (*entity.Asset, error) {
	start := time.Now()
	var updated *entity.Asset
	err := uc.execute(ctx, actorID, assetID, func(
		assetRepo repository.AssetRepository,
		_ repository.MovementRepository,
		_ repository.MovementDetailRepository,
	) error {
		asset, err := assetRepo.GetForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		change, err := inventory.PlanMaintenance(asset, on)
		if err != nil {
			return err
		}
		if err := assetRepo.UpdateStock(ctx, asset.ID, change.Available, change.Status, asset.Version); err != nil {
			return err
		}
		uc.applyToSnapshot(asset, change)
		updated = asset
		return nil
	})
	uc.observe(OperationMaintenance, err, start)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("asset_id", assetID).Bool("mantenimiento", on).Str("estado", string(updated.Status)).Msg("mantenimiento actualizado")
	return updated, nil
}

// apply escribe movimiento + detalle y actualiza el activo dentro de la transacción en curso.
func (uc *MovementUseCase) apply(
	ctx context.Context,
	assetRepo repository.AssetRepository,
	movRepo repository.MovementRepository,
	detailRepo repository.MovementDetailRepository,
	asset *entity.Asset,
	change inventory.StockChange,
	actorID string,
	recipient entity.Recipient,
	quantity int,
	notes string,
) (*entity.Movement, error) {
	now := uc.now()
	mov := &entity.Movement{
		ID:        uuid.New().String(),
		Date:      now,
		IssuedBy:  actorID,
		Recipient: recipient,
		Type:      change.Type,
		Notes:     notes,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	detail := entity.MovementDetail{
		ID:         uuid.New().String(),
		MovementID: mov.ID,
		AssetID:    asset.ID,
		Quantity:   quantity,
	}
	if err := detailRepo.Create(ctx, &detail); err != nil {
		return nil, err
	}
	if err := assetRepo.UpdateStock(ctx, asset.ID, change.Available, change.Status, asset.Version); err != nil {
		return nil, err
	}
	mov.Details = []entity.MovementDetail{detail}
	uc.applyToSnapshot(asset, change)
	asset.UpdatedAt = now
	return mov, nil
}

func (uc *MovementUseCase) applyToSnapshot(asset *entity.Asset, change inventory.StockChange) {
	asset.StockAvailable = change.Available
	asset.Status = change.Status
	asset.Version++
}

// execute toma el lock del activo (si hay locker) y corre fn en una transacción,
// reintentando la transacción completa mientras la actualización encuentre una versión vieja.
func (uc *MovementUseCase) execute(ctx context.Context, actorID, assetID string, fn func(
	assetRepo repository.AssetRepository,
	movRepo repository.MovementRepository,
	detailRepo repository.MovementDetailRepository,
) error) error {
	if strings.TrimSpace(actorID) == "" {
		return fmt.Errorf("%w: identidad de quien registra requerida", domain.ErrUnauthorized)
	}
	if strings.TrimSpace(assetID) == "" {
		return domain.ErrNotFound
	}
	if uc.locker != nil {
		unlock, err := uc.locker.Lock(ctx, assetID)
		if err != nil {
			return err
		}
		defer func() {
			// El lock expira solo; un fallo al liberarlo no afecta la operación ya confirmada.
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				uc.log.Warn().Err(err).Str("asset_id", assetID).Msg("no se pudo liberar el lock del activo")
			}
		}()
	}
	var err error
	for attempt := 1; attempt <= uc.maxAttempts; attempt++ {
		err = uc.txRunner.Run(ctx, fn)
		if !errors.Is(err, domain.ErrConcurrencyConflict) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
		uc.log.Debug().Str("asset_id", assetID).Int("attempt", attempt).Msg("versión del activo desactualizada, reintentando")
	}
	return err
}

func (uc *MovementUseCase) observe(operation string, err error, start time.Time) {
	uc.recorder.ObserveMovement(operation, Outcome(err), time.Since(start))
}

// Outcome clasifica un error del motor en una etiqueta estable (métricas y logs).
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return "conflict"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	default:
		return "error"
	}
}
