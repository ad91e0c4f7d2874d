package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/control-activos/internal/application/dto"
	appinventory "github.com/jhoicas/control-activos/internal/application/inventory"
	"github.com/jhoicas/control-activos/internal/domain"
	"github.com/jhoicas/control-activos/internal/domain/entity"
	"github.com/jhoicas/control-activos/internal/domain/inventory"
	"github.com/jhoicas/control-activos/internal/domain/repository"
)

// AssetUseCase catálogo de activos. stock_disponible solo lo mueve el motor de conciliación;
// aquí se fija al crear y se desplaza al editar stock_total.
type AssetUseCase struct {
	repo     repository.AssetRepository
	txRunner appinventory.TxRunner
	log      zerolog.Logger
	now      func() time.Time
}

// NewAssetUseCase construye el caso de uso.
func NewAssetUseCase(repo repository.AssetRepository, txRunner appinventory.TxRunner, log zerolog.Logger) *AssetUseCase {
	return &AssetUseCase{repo: repo, txRunner: txRunner, log: log, now: time.Now}
}

// CanonicalSKU recorta y pasa a mayúsculas el SKU.
func CanonicalSKU(sku string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(sku))
}

// Create crea el activo con disponible = total y estado Disponible.
// Si stock_total > 0 registra en la misma transacción el movimiento "Entrada Inicial".
func (uc *AssetUseCase) Create(ctx context.Context, actorID string, in dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	sku := CanonicalSKU(in.SKU)
	name := strings.TrimSpace(in.Name)
	kind := entity.AssetKind(in.Kind)
	if sku == "" || name == "" || !kind.Valid() || in.StockTotal < 0 {
		return nil, fmt.Errorf("%w: sku, nombre, tipo_activo y stock_total son obligatorios", domain.ErrInvalidInput)
	}
	now := uc.now()
	asset := &entity.Asset{
		ID:             uuid.New().String(),
		SKU:            sku,
		Name:           name,
		Kind:           kind,
		Description:    strings.TrimSpace(in.Description),
		ImageURL:       strings.TrimSpace(in.ImageURL),
		StockTotal:     in.StockTotal,
		StockAvailable: in.StockTotal,
		Status:         inventory.DeriveStatus(in.StockTotal, in.StockTotal, "", false),
		Location: entity.Location{
			Warehouse: strings.TrimSpace(in.Location.Warehouse),
			Shelf:     strings.TrimSpace(in.Location.Shelf),
		},
		Specs:     in.Specs,
		Cost:      entity.AssetCost{Purchase: in.Cost.Purchase, DailyRent: in.Cost.DailyRent},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(
		assetRepo repository.AssetRepository,
		movRepo repository.MovementRepository,
		detailRepo repository.MovementDetailRepository,
	) error {
		if err := assetRepo.Create(ctx, asset); err != nil {
			return err
		}
		if asset.StockTotal == 0 {
			return nil
		}
		mov := &entity.Movement{
			ID:       uuid.New().String(),
			Date:     now,
			IssuedBy: actorID,
			Type:     entity.MovementTypeInitialEntry,
			Notes:    "Alta del activo",
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		return detailRepo.Create(ctx, &entity.MovementDetail{
			ID:         uuid.New().String(),
			MovementID: mov.ID,
			AssetID:    asset.ID,
			Quantity:   asset.StockTotal,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("asset_id", asset.ID).Str("sku", asset.SKU).Int("stock_total", asset.StockTotal).Msg("activo creado")
	return ToAssetResponse(asset), nil
}

// GetByID obtiene un activo. Devuelve domain.ErrNotFound si no existe.
func (uc *AssetUseCase) GetByID(ctx context.Context, id string) (*dto.AssetResponse, error) {
	asset, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	return ToAssetResponse(asset), nil
}

// List lista activos con filtros y paginación.
func (uc *AssetUseCase) List(ctx context.Context, q dto.AssetListQuery) (*dto.AssetListResponse, error) {
	q.DefaultPage()
	filter := repository.AssetFilter{
		Search:    strings.TrimSpace(q.Search),
		Status:    entity.AssetStatus(q.Status),
		Kind:      entity.AssetKind(q.Kind),
		Warehouse: strings.TrimSpace(q.Warehouse),
		Shelf:     strings.TrimSpace(q.Shelf),
	}
	list, err := uc.repo.List(ctx, filter, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AssetResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *ToAssetResponse(a))
	}
	return &dto.AssetListResponse{
		Items: items,
		Page:  q.PageRequest.Result(len(items)),
	}, nil
}

// Update edita datos de catálogo. Un cambio de stock_total conserva las unidades prestadas.
func (uc *AssetUseCase) Update(ctx context.Context, id string, in dto.UpdateAssetRequest) (*dto.AssetResponse, error) {
	var updated *entity.Asset
	err := uc.txRunner.Run(ctx, func(
		assetRepo repository.AssetRepository,
		_ repository.MovementRepository,
		_ repository.MovementDetailRepository,
	) error {
		asset, err := assetRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if asset == nil {
			return domain.ErrNotFound
		}
		if err := applyAssetUpdate(asset, in); err != nil {
			return err
		}
		if in.StockTotal != nil {
			change, err := inventory.PlanResize(asset, *in.StockTotal)
			if err != nil {
				return err
			}
			asset.StockTotal = *in.StockTotal
			asset.StockAvailable = change.Available
			asset.Status = change.Status
		}
		asset.UpdatedAt = uc.now()
		if err := assetRepo.Update(ctx, asset); err != nil {
			return err
		}
		updated = asset
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToAssetResponse(updated), nil
}

func applyAssetUpdate(asset *entity.Asset, in dto.UpdateAssetRequest) error {
	if in.SKU != nil {
		sku := CanonicalSKU(*in.SKU)
		if sku == "" {
			return fmt.Errorf("%w: sku vacío", domain.ErrInvalidInput)
		}
		asset.SKU = sku
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return fmt.Errorf("%w: nombre vacío", domain.ErrInvalidInput)
		}
		asset.Name = name
	}
	if in.Kind != nil {
		kind := entity.AssetKind(*in.Kind)
		if !kind.Valid() {
			return fmt.Errorf("%w: tipo_activo %q no permitido", domain.ErrInvalidInput, *in.Kind)
		}
		asset.Kind = kind
	}
	if in.Description != nil {
		asset.Description = strings.TrimSpace(*in.Description)
	}
	if in.ImageURL != nil {
		asset.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.Location != nil {
		asset.Location = entity.Location{
			Warehouse: strings.TrimSpace(in.Location.Warehouse),
			Shelf:     strings.TrimSpace(in.Location.Shelf),
		}
	}
	if in.Specs != nil {
		asset.Specs = in.Specs
	}
	if in.Cost != nil {
		asset.Cost = entity.AssetCost{Purchase: in.Cost.Purchase, DailyRent: in.Cost.DailyRent}
	}
	return nil
}

// Delete elimina el activo solo si no tiene unidades afuera. El libro de movimientos se conserva.
func (uc *AssetUseCase) Delete(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(
		assetRepo repository.AssetRepository,
		_ repository.MovementRepository,
		_ repository.MovementDetailRepository,
	) error {
		asset, err := assetRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := inventory.CanDelete(asset); err != nil {
			return err
		}
		return assetRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("asset_id", id).Msg("activo eliminado")
	return nil
}

// ToAssetResponse mapea la entidad a su DTO de salida.
func ToAssetResponse(a *entity.Asset) *dto.AssetResponse {
	if a == nil {
		return nil
	}
	return &dto.AssetResponse{
		ID:             a.ID,
		SKU:            a.SKU,
		Name:           a.Name,
		Kind:           string(a.Kind),
		Description:    a.Description,
		ImageURL:       a.ImageURL,
		StockTotal:     a.StockTotal,
		StockAvailable: a.StockAvailable,
		Status:         string(a.Status),
		Location:       dto.LocationDTO{Warehouse: a.Location.Warehouse, Shelf: a.Location.Shelf},
		Specs:          a.Specs,
		Cost:           dto.CostDTO{Purchase: a.Cost.Purchase, DailyRent: a.Cost.DailyRent},
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
