package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/control-activos/internal/domain"
	"github.com/jhoicas/control-activos/internal/domain/entity"
	"github.com/jhoicas/control-activos/internal/domain/repository"
)

// VoucherLine línea del comprobante con los datos del activo resueltos.
type VoucherLine struct {
	AssetID  string
	SKU      string
	Name     string
	Quantity int
}

// VoucherData todo lo que necesita el generador para pintar el comprobante.
// Issuer y RecipientUser pueden ser nil (usuario eliminado o destinatario visitante).
type VoucherData struct {
	Movement      *entity.Movement
	Lines         []VoucherLine
	Issuer        *entity.User
	RecipientUser *entity.User
}

// VoucherGenerator puerto de generación del PDF del comprobante de movimiento.
type VoucherGenerator interface {
	GenerateVoucher(ctx context.Context, data VoucherData) ([]byte, error)
}

// VoucherUseCase genera el comprobante (PDF) de un movimiento del libro.
type VoucherUseCase struct {
	movRepo   repository.MovementRepository
	assetRepo repository.AssetRepository
	userRepo  repository.UserRepository
	generator VoucherGenerator
}

// NewVoucherUseCase construye el caso de uso inyectando todas sus dependencias.
func NewVoucherUseCase(
	movRepo repository.MovementRepository,
	assetRepo repository.AssetRepository,
	userRepo repository.UserRepository,
	generator VoucherGenerator,
) *VoucherUseCase {
	return &VoucherUseCase{movRepo: movRepo, assetRepo: assetRepo, userRepo: userRepo, generator: generator}
}

// Download arma los datos del movimiento y devuelve el PDF con su nombre de archivo.
// Devuelve domain.ErrNotFound si el movimiento no existe.
func (uc *VoucherUseCase) Download(ctx context.Context, movementID string) (pdfBytes []byte, filename string, err error) {
	mov, err := uc.movRepo.GetByID(ctx, movementID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener movimiento: %w", err)
	}
	if mov == nil {
		return nil, "", domain.ErrNotFound
	}

	lines := make([]VoucherLine, 0, len(mov.Details))
	for _, d := range mov.Details {
		line := VoucherLine{AssetID: d.AssetID, Name: "Activo " + d.AssetID, Quantity: d.Quantity}
		if asset, aErr := uc.assetRepo.GetByID(ctx, d.AssetID); aErr == nil && asset != nil {
			line.SKU, line.Name = asset.SKU, asset.Name
		}
		lines = append(lines, line)
	}

	data := VoucherData{Movement: mov, Lines: lines}
	if data.Issuer, err = uc.userRepo.GetByID(ctx, mov.IssuedBy); err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener usuario que registra: %w", err)
	}
	if id, ok := mov.Recipient.UserID(); ok {
		if data.RecipientUser, err = uc.userRepo.GetByID(ctx, id); err != nil {
			return nil, "", fmt.Errorf("comprobante: obtener usuario que recibe: %w", err)
		}
	}

	pdfBytes, err = uc.generator.GenerateVoucher(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	short := mov.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return pdfBytes, fmt.Sprintf("comprobante_%s.pdf", short), nil
}
