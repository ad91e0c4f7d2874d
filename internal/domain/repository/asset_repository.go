package repository

import (
	"context"

	"github.com/jhoicas/control-activos/internal/domain/entity"
)

// AssetFilter filtros del listado de activos. Campos vacíos no filtran.
// Search busca en el nombre y Shelf admite coincidencia parcial (ambos sin distinguir mayúsculas).
type AssetFilter struct {
	Search    string
	Status    entity.AssetStatus
	Kind      entity.AssetKind
	Warehouse string
	Shelf     string
}

// AssetRepository define el puerto de persistencia para Asset (DIP).
// Usable con pool o dentro de una transacción.
type AssetRepository interface {
	Create(ctx context.Context, asset *entity.Asset) error
	// GetByID devuelve nil, nil si el activo no existe.
	GetByID(ctx context.Context, id string) (*entity.Asset, error)
	// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Asset, error)
	List(ctx context.Context, filter AssetFilter, limit, offset int) ([]*entity.Asset, error)
	// Update guarda los datos de catálogo y los contadores; exige asset.Version vigente.
	Update(ctx context.Context, asset *entity.Asset) error
	// UpdateStock actualiza disponible y estado si la versión coincide con expectedVersion;
	// si no, devuelve domain.ErrConcurrencyConflict.
	UpdateStock(ctx context.Context, id string, available int, status entity.AssetStatus, expectedVersion int) error
	Delete(ctx context.Context, id string) error
}
