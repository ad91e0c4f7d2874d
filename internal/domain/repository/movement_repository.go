package repository

import (
	"context"

	"github.com/jhoicas/control-activos/internal/domain/entity"
)

// MovementRepository puerto de escritura/lectura del libro de movimientos (append-only: sin Update ni Delete).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// GetByID devuelve el movimiento con sus detalles, o nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
}

// MovementDetailRepository puerto para las líneas de movimiento.
type MovementDetailRepository interface {
	Create(ctx context.Context, detail *entity.MovementDetail) error
	ListByMovement(ctx context.Context, movementID string) ([]entity.MovementDetail, error)
	// SumByAsset suma las cantidades de salidas y devoluciones registradas para un activo.
	SumByAsset(ctx context.Context, assetID string) (issued, returned int, err error)
}
