package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/control-activos/internal/application/usecase"
	"github.com/jhoicas/control-activos/internal/domain/entity"
)

func TestGenerateVoucher_Salida(t *testing.T) {
	g := NewVoucherGenerator("Bodega Central")
	data := usecase.VoucherData{
		Movement: &entity.Movement{
			ID:        "3f2b7c1e-0000-4000-8000-000000000001",
			Date:      time.Date(2024, 5, 2, 10, 30, 0, 0, time.UTC),
			IssuedBy:  "u-1",
			Recipient: entity.VisitorRecipient("Ana", "Pérez"),
			Type:      entity.MovementTypeIssueRent,
			Notes:     "Obra calle 5",
		},
		Lines:  []usecase.VoucherLine{{AssetID: "a-1", SKU: "TAL-001", Name: "Taladro", Quantity: 2}},
		Issuer: &entity.User{ID: "u-1", FullName: "Luis Gómez", Role: entity.RoleEncargado, Signature: "L.G."},
	}

	out, err := g.GenerateVoucher(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateVoucher_SinMovimiento(t *testing.T) {
	_, err := NewVoucherGenerator("").GenerateVoucher(context.Background(), usecase.VoucherData{})
	assert.Error(t, err)
}

func TestRecipientLabel(t *testing.T) {
	assert.Equal(t, "N/A", recipientLabel(entity.Recipient{}, nil))
	assert.Equal(t, "Ana Pérez (visitante)", recipientLabel(entity.VisitorRecipient("Ana", "Pérez"), nil))
	assert.Equal(t, "Usuario eliminado", recipientLabel(entity.InternalRecipient("u-9"), nil))
	assert.Equal(t, "María", recipientLabel(entity.InternalRecipient("u-2"), &entity.User{FullName: "María"}))
}

func TestMovementTitleYShortID(t *testing.T) {
	assert.Equal(t, "DEVOLUCIÓN", movementTitle(entity.MovementTypeReturn))
	assert.Equal(t, "SALIDA (USO)", movementTitle(entity.MovementTypeIssueUse))
	assert.Equal(t, "abcdef12", shortID("abcdef1234"))
	assert.Equal(t, "abc", shortID("abc"))
}
