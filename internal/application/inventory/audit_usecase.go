package inventory

import (
	"context"

	"github.com/jhoicas/control-activos/internal/domain"
	"github.com/jhoicas/control-activos/internal/domain/inventory"
	"github.com/jhoicas/control-activos/internal/domain/repository"
)

// AuditUseCase verifica que los contadores de un activo coincidan con su libro de movimientos:
// stock_total - stock_disponible == Σ salidas - Σ devoluciones.
type AuditUseCase struct {
	assetRepo  repository.AssetRepository
	detailRepo repository.MovementDetailRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(assetRepo repository.AssetRepository, detailRepo repository.MovementDetailRepository) *AuditUseCase {
	return &AuditUseCase{assetRepo: assetRepo, detailRepo: detailRepo}
}

// Reconcile calcula la conciliación de un activo. Devuelve domain.ErrNotFound si no existe.
func (uc *AuditUseCase) Reconcile(ctx context.Context, assetID string) (inventory.LedgerCheck, error) {
	asset, err := uc.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		return inventory.LedgerCheck{}, err
	}
	if asset == nil {
		return inventory.LedgerCheck{}, domain.ErrNotFound
	}
	issued, returned, err := uc.detailRepo.SumByAsset(ctx, assetID)
	if err != nil {
		return inventory.LedgerCheck{}, err
	}
	return inventory.CheckLedger(asset, issued, returned), nil
}
