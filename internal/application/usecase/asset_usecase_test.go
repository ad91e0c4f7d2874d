package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/control-activos/internal/application/dto"
	"github.com/jhoicas/control-activos/internal/application/inventory"
	"github.com/jhoicas/control-activos/internal/application/inventory/inventorytest"
	"github.com/jhoicas/control-activos/internal/application/usecase"
	"github.com/jhoicas/control-activos/internal/domain"
	"github.com/jhoicas/control-activos/internal/domain/entity"
)

const testActorID = "00000000-0000-0000-0000-0000000000aa"

func newAssetUseCase() (*usecase.AssetUseCase, *inventorytest.Store) {
	store := inventorytest.NewStore()
	return usecase.NewAssetUseCase(store.Assets(), store, zerolog.Nop()), store
}

func createReq(total int) dto.CreateAssetRequest {
	cost := decimal.RequireFromString("1250000.50")
	return dto.CreateAssetRequest{
		SKU:        " tal-" + gofakeit.LetterN(4) + " ",
		Name:       gofakeit.ProductName(),
		Kind:       string(entity.AssetKindTool),
		StockTotal: total,
		Location:   dto.LocationDTO{Warehouse: "Bodega Norte", Shelf: "Estante B-2"},
		Specs:      map[string]string{"voltaje": "110V"},
		Cost:       dto.CostDTO{Purchase: &cost},
	}
}

func TestCanonicalSKU(t *testing.T) {
	assert.Equal(t, "TAL-001", usecase.CanonicalSKU("  tal-001 "))
	assert.Equal(t, "LLAVE-Ñ", usecase.CanonicalSKU("llave-ñ"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestAssetCreate_EntradaInicial(t *testing.T) {
	uc, store := newAssetUseCase()

	res, err := uc.Create(context.Background(), testActorID, createReq(12))
	require.NoError(t, err)
	assert.Equal(t, 12, res.StockTotal)
	assert.Equal(t, 12, res.StockAvailable)
	assert.Equal(t, string(entity.AssetStatusAvailable), res.Status)
	assert.Regexp(t, `^TAL-[A-Z]{4}$`, res.SKU)
	require.NotNil(t, res.Cost.Purchase)
	assert.True(t, res.Cost.Purchase.Equal(decimal.RequireFromString("1250000.5")))

	movs := store.Movements()
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeInitialEntry, movs[0].Type)
	assert.Equal(t, testActorID, movs[0].IssuedBy)
	details := store.Details()
	require.Len(t, details, 1)
	assert.Equal(t, 12, details[0].Quantity)

	// la entrada inicial no cuenta en la conciliación
	audit := inventory.NewAuditUseCase(store.Assets(), store.DetailRepo())
	check, err := audit.Reconcile(context.Background(), res.ID)
	require.NoError(t, err)
	assert.True(t, check.Consistent())
}

func TestAssetCreate_StockCeroSinMovimiento(t *testing.T) {
	uc, store := newAssetUseCase()

	_, err := uc.Create(context.Background(), testActorID, createReq(0))
	require.NoError(t, err)
	assert.Empty(t, store.Movements())
}

func TestAssetCreate_SKUDuplicado(t *testing.T) {
	uc, store := newAssetUseCase()
	req := createReq(3)
	_, err := uc.Create(context.Background(), testActorID, req)
	require.NoError(t, err)

	req.SKU = " " + usecase.CanonicalSKU(req.SKU)
	_, err = uc.Create(context.Background(), testActorID, req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, store.Movements(), 1, "la creación fallida no deja entrada inicial")
}

func TestAssetCreate_Invalido(t *testing.T) {
	uc, _ := newAssetUseCase()
	req := createReq(3)
	req.Kind = "Vehículo"
	_, err := uc.Create(context.Background(), testActorID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = createReq(-1)
	_, err = uc.Create(context.Background(), testActorID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Get / List
// ──────────────────────────────────────────────────────────────────────────────

func TestAssetGetByID_NoExiste(t *testing.T) {
	uc, _ := newAssetUseCase()
	_, err := uc.GetByID(context.Background(), gofakeit.UUID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssetList_Filtros(t *testing.T) {
	uc, store := newAssetUseCase()
	now := time.Now()
	store.PutAsset(entity.Asset{ID: "1", SKU: "A", Name: "Taladro percutor", Kind: entity.AssetKindTool, Status: entity.AssetStatusAvailable,
		Location: entity.Location{Warehouse: "Norte", Shelf: "B-12"}, CreatedAt: now})
	store.PutAsset(entity.Asset{ID: "2", SKU: "B", Name: "Cable THHN", Kind: entity.AssetKindMaterial, Status: entity.AssetStatusInUse,
		Location: entity.Location{Warehouse: "Norte", Shelf: "C-1"}, CreatedAt: now.Add(time.Second)})
	store.PutAsset(entity.Asset{ID: "3", SKU: "C", Name: "Taladro inalámbrico", Kind: entity.AssetKindTool, Status: entity.AssetStatusMaintenance,
		Location: entity.Location{Warehouse: "Sur", Shelf: "b-3"}, CreatedAt: now.Add(2 * time.Second)})
	ctx := context.Background()

	res, err := uc.List(ctx, dto.AssetListQuery{Search: "TALADRO"})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "3", res.Items[0].ID, "más reciente primero")
	assert.Equal(t, 20, res.Page.Limit)
	assert.Equal(t, 2, res.Page.Count)
	assert.False(t, res.Page.HasMore)

	res, err = uc.List(ctx, dto.AssetListQuery{Kind: "Material"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "2", res.Items[0].ID)

	res, err = uc.List(ctx, dto.AssetListQuery{Shelf: "b-", Warehouse: "Norte"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "1", res.Items[0].ID)

	res, err = uc.List(ctx, dto.AssetListQuery{Status: "Mantenimiento"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "3", res.Items[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / Delete
// ──────────────────────────────────────────────────────────────────────────────

// seed guarda el SKU en su forma canónica, igual que Create.
func seed(store *inventorytest.Store, total, available int, status entity.AssetStatus) entity.Asset {
	a := entity.Asset{
		ID: gofakeit.UUID(), SKU: usecase.CanonicalSKU("sku-" + gofakeit.LetterN(5)), Name: gofakeit.ProductName(), Kind: entity.AssetKindTool,
		StockTotal: total, StockAvailable: available, Status: status, Version: 1, CreatedAt: time.Now(),
	}
	store.PutAsset(a)
	return a
}

func TestAssetUpdate_ConservaPendientes(t *testing.T) {
	uc, store := newAssetUseCase()
	a := seed(store, 10, 6, entity.AssetStatusInUse)

	total := 15
	res, err := uc.Update(context.Background(), a.ID, dto.UpdateAssetRequest{StockTotal: &total})
	require.NoError(t, err)
	assert.Equal(t, 15, res.StockTotal)
	assert.Equal(t, 11, res.StockAvailable, "las 4 unidades afuera se conservan")
	assert.Equal(t, string(entity.AssetStatusInUse), res.Status)

	total = 4
	res, err = uc.Update(context.Background(), a.ID, dto.UpdateAssetRequest{StockTotal: &total})
	require.NoError(t, err)
	assert.Equal(t, 0, res.StockAvailable)

	total = 3
	_, err = uc.Update(context.Background(), a.ID, dto.UpdateAssetRequest{StockTotal: &total})
	assert.ErrorIs(t, err, domain.ErrConflict)
	after, _ := store.Asset(a.ID)
	assert.Equal(t, 4, after.StockTotal)
}

func TestAssetUpdate_Catalogo(t *testing.T) {
	uc, store := newAssetUseCase()
	a := seed(store, 2, 2, entity.AssetStatusAvailable)
	other := seed(store, 1, 1, entity.AssetStatusAvailable)

	name := "  Esmeril angular  "
	res, err := uc.Update(context.Background(), a.ID, dto.UpdateAssetRequest{
		Name:     &name,
		Location: &dto.LocationDTO{Warehouse: "Sur", Shelf: "Z-9"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Esmeril angular", res.Name)
	assert.Equal(t, "Z-9", res.Location.Shelf)
	assert.Equal(t, 2, res.StockAvailable)

	sku := other.SKU
	_, err = uc.Update(context.Background(), a.ID, dto.UpdateAssetRequest{SKU: &sku})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// el SKU se canoniza antes de comparar: minúsculas y espacios chocan igual
	sku = "  " + strings.ToLower(other.SKU) + " "
	_, err = uc.Update(context.Background(), a.ID, dto.UpdateAssetRequest{SKU: &sku})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	unchanged, _ := store.Asset(a.ID)
	assert.NotEqual(t, other.SKU, unchanged.SKU)

	_, err = uc.Update(context.Background(), gofakeit.UUID(), dto.UpdateAssetRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssetDelete(t *testing.T) {
	uc, store := newAssetUseCase()
	busy := seed(store, 5, 4, entity.AssetStatusInUse)
	free := seed(store, 5, 5, entity.AssetStatusAvailable)

	err := uc.Delete(context.Background(), busy.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, ok := store.Asset(busy.ID)
	assert.True(t, ok)

	require.NoError(t, uc.Delete(context.Background(), free.ID))
	_, ok = store.Asset(free.ID)
	assert.False(t, ok)

	assert.ErrorIs(t, uc.Delete(context.Background(), free.ID), domain.ErrNotFound)
}
