package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/control-activos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de conciliación: activo, movimiento y detalle se escriben juntos o no se escriben.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		assetRepo repository.AssetRepository,
		movRepo repository.MovementRepository,
		detailRepo repository.MovementDetailRepository,
	) error) error
}

// AssetLocker exclusión mutua por activo entre instancias (opcional).
// Si no se obtiene el lock devuelve un error que envuelve domain.ErrConcurrencyConflict.
type AssetLocker interface {
	Lock(ctx context.Context, assetID string) (unlock func(context.Context) error, err error)
}

// Recorder recibe el resultado de cada operación del motor (métricas).
type Recorder interface {
	ObserveMovement(operation, outcome string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveMovement(string, string, time.Duration) {}
