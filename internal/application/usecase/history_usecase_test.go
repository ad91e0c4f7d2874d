package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/control-activos/internal/application/dto"
	"github.com/jhoicas/control-activos/internal/application/inventory"
	"github.com/jhoicas/control-activos/internal/application/inventory/inventorytest"
	"github.com/jhoicas/control-activos/internal/application/usecase"
	"github.com/jhoicas/control-activos/internal/domain"
	"github.com/jhoicas/control-activos/internal/domain/entity"
)

// historyFixture: un activo con una salida a usuario, una salida a visitante y una devolución.
func historyFixture(t *testing.T) (*inventorytest.Store, entity.Asset) {
	t.Helper()
	store := inventorytest.NewStore()
	store.PutUser(entity.User{ID: testActorID, FullName: "Laura Díaz", NickName: "laura", Role: entity.RoleEncargado})
	store.PutUser(entity.User{ID: "w-1", FullName: "Jorge Mora", NickName: "jorge", Role: entity.RoleTrabajador})
	asset := seed(store, 10, 10, entity.AssetStatusAvailable)

	uc := inventory.NewMovementUseCase(store, nil, nil, zerolog.Nop(), inventory.MovementConfig{MaxAttempts: 1})
	ctx := context.Background()
	_, err := uc.Issue(ctx, inventory.IssueInput{ActorID: testActorID, AssetID: asset.ID, Quantity: 2, Recipient: entity.InternalRecipient("w-1")})
	require.NoError(t, err)
	_, err = uc.Issue(ctx, inventory.IssueInput{ActorID: testActorID, AssetID: asset.ID, Quantity: 1,
		Recipient: entity.VisitorRecipient("Ana", "Ruiz"), Type: entity.MovementTypeIssueRent})
	require.NoError(t, err)
	_, err = uc.Return(ctx, inventory.ReturnInput{ActorID: testActorID, AssetID: asset.ID, Quantity: 2,
		Condition: entity.ReturnConditionFunctional, Notes: "ok"})
	require.NoError(t, err)
	return store, asset
}

func TestHistory_Filas(t *testing.T) {
	store, asset := historyFixture(t)
	uc := usecase.NewHistoryUseCase(store.History(), store.Assets())

	res, err := uc.List(context.Background(), dto.HistoryQuery{})
	require.NoError(t, err)
	require.Len(t, res.Items, 3)

	ret, rent, use := res.Items[0], res.Items[1], res.Items[2]
	assert.Equal(t, string(entity.MovementTypeReturn), ret.Type)
	assert.Equal(t, "Estado de devolución: Funcional. Observaciones: ok", ret.Notes)
	assert.Empty(t, ret.RecipientName)

	assert.Equal(t, string(entity.MovementTypeIssueRent), rent.Type)
	assert.Equal(t, "Ana Ruiz", rent.RecipientName)

	assert.Equal(t, "Jorge Mora", use.RecipientName)
	assert.Equal(t, "Laura Díaz", use.IssuerName)
	assert.Equal(t, entity.RoleEncargado, use.IssuerRole)
	assert.Equal(t, asset.Name, use.AssetName)
	assert.Equal(t, asset.SKU, use.AssetSKU)
	assert.Equal(t, 2, use.Quantity)
}

func TestHistory_Paginacion(t *testing.T) {
	store, _ := historyFixture(t)
	uc := usecase.NewHistoryUseCase(store.History(), store.Assets())

	res, err := uc.List(context.Background(), dto.HistoryQuery{PageRequest: dto.PageRequest{Limit: 2, Offset: 2}})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, string(entity.MovementTypeIssueUse), res.Items[0].Type)
}

func TestHistory_Fechas(t *testing.T) {
	store, _ := historyFixture(t)
	uc := usecase.NewHistoryUseCase(store.History(), store.Assets())
	today := time.Now().Format(time.DateOnly)
	tomorrow := time.Now().Add(24 * time.Hour).Format(time.DateOnly)

	res, err := uc.List(context.Background(), dto.HistoryQuery{From: today, To: today})
	require.NoError(t, err)
	assert.Len(t, res.Items, 3)

	res, err = uc.List(context.Background(), dto.HistoryQuery{From: tomorrow})
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	_, err = uc.List(context.Background(), dto.HistoryQuery{From: tomorrow, To: today})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.List(context.Background(), dto.HistoryQuery{From: "15/10/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistory_ActivoEliminado(t *testing.T) {
	store, asset := historyFixture(t)
	_, err := inventory.NewMovementUseCase(store, nil, nil, zerolog.Nop(), inventory.MovementConfig{MaxAttempts: 1}).
		Return(context.Background(), inventory.ReturnInput{ActorID: testActorID, AssetID: asset.ID, Quantity: 1, Condition: entity.ReturnConditionFunctional})
	require.NoError(t, err)
	assets := usecase.NewAssetUseCase(store.Assets(), store, zerolog.Nop())
	require.NoError(t, assets.Delete(context.Background(), asset.ID))

	uc := usecase.NewHistoryUseCase(store.History(), store.Assets())
	res, err := uc.List(context.Background(), dto.HistoryQuery{AssetID: asset.ID})
	require.NoError(t, err)
	require.Len(t, res.Items, 4, "el libro sobrevive a la eliminación del activo")
	assert.Equal(t, "Activo eliminado", res.Items[0].AssetName)

	_, err = uc.ByAsset(context.Background(), asset.ID, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistory_ByAsset(t *testing.T) {
	store, asset := historyFixture(t)
	seed(store, 1, 1, entity.AssetStatusAvailable)
	uc := usecase.NewHistoryUseCase(store.History(), store.Assets())

	res, err := uc.ByAsset(context.Background(), asset.ID, dto.PageRequest{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, res.Items, 3)
	for _, row := range res.Items {
		assert.Equal(t, asset.ID, row.AssetID)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Comprobante
// ──────────────────────────────────────────────────────────────────────────────

type mockVoucherGenerator struct{ mock.Mock }

func (m *mockVoucherGenerator) GenerateVoucher(ctx context.Context, data usecase.VoucherData) ([]byte, error) {
	args := m.Called(ctx, data)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func TestVoucher_Download(t *testing.T) {
	store, asset := historyFixture(t)
	mov := store.Movements()[0]
	gen := &mockVoucherGenerator{}
	gen.On("GenerateVoucher", mock.Anything, mock.MatchedBy(func(d usecase.VoucherData) bool {
		return d.Movement.ID == mov.ID &&
			len(d.Lines) == 1 && d.Lines[0].SKU == asset.SKU && d.Lines[0].Quantity == 2 &&
			d.Issuer != nil && d.Issuer.FullName == "Laura Díaz" &&
			d.RecipientUser != nil && d.RecipientUser.FullName == "Jorge Mora"
	})).Return([]byte("%PDF-1.3"), nil).Once()
	uc := usecase.NewVoucherUseCase(store.MovementRepo(), store.Assets(), store.Users(), gen)

	pdf, filename, err := uc.Download(context.Background(), mov.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), pdf)
	assert.Equal(t, "comprobante_"+mov.ID[:8]+".pdf", filename)
	gen.AssertExpectations(t)
}

func TestVoucher_Errores(t *testing.T) {
	store, _ := historyFixture(t)
	gen := &mockVoucherGenerator{}
	uc := usecase.NewVoucherUseCase(store.MovementRepo(), store.Assets(), store.Users(), gen)

	_, _, err := uc.Download(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	gen.AssertNotCalled(t, "GenerateVoucher", mock.Anything, mock.Anything)

	gen.On("GenerateVoucher", mock.Anything, mock.Anything).Return(nil, errors.New("fuente no encontrada")).Once()
	_, _, err = uc.Download(context.Background(), store.Movements()[2].ID)
	assert.ErrorContains(t, err, "fuente no encontrada")
}
