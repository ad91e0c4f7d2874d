package inventory

import (
	"fmt"
	"strings"

	"github.com/jhoicas/control-activos/internal/domain"
	"github.com/jhoicas/control-activos/internal/domain/entity"
)

// StockChange resultado de aplicar una regla sobre el snapshot de un activo.
// No modifica el activo: el caso de uso persiste Available/Status dentro de la transacción.
type StockChange struct {
	Type      entity.MovementType
	Before    int
	Available int
	Status    entity.AssetStatus
	Notes     string
}

// PlanIssue valida una salida contra el snapshot del activo y calcula los nuevos contadores.
// Las precondiciones se evalúan en orden y gana la primera que falla:
// existe → no está en mantenimiento → cantidad > 0 → destinatario bien formado → cantidad ≤ disponible.
func PlanIssue(asset *entity.Asset, quantity int, recipient entity.Recipient, kind entity.MovementType) (StockChange, error) {
	if asset == nil {
		return StockChange{}, domain.ErrNotFound
	}
	if asset.Status == entity.AssetStatusMaintenance {
		return StockChange{}, fmt.Errorf("%w: no se puede entregar un activo en mantenimiento", domain.ErrInvalidState)
	}
	if quantity <= 0 {
		return StockChange{}, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if kind == "" {
		kind = entity.MovementTypeIssueUse
	}
	if !kind.IsIssue() {
		return StockChange{}, fmt.Errorf("%w: tipo de salida %q no permitido", domain.ErrInvalidInput, kind)
	}
	if !recipient.Complete() {
		return StockChange{}, fmt.Errorf("%w: se requiere un usuario que recibe o nombre y apellidos del visitante", domain.ErrInvalidInput)
	}
	if quantity > asset.StockAvailable {
		return StockChange{}, fmt.Errorf("%w: solicitadas %d, disponibles %d", domain.ErrInsufficientStock, quantity, asset.StockAvailable)
	}
	available := asset.StockAvailable - quantity
	return StockChange{
		Type:      kind,
		Before:    asset.StockAvailable,
		Available: available,
		Status:    DeriveStatus(asset.StockTotal, available, "", false),
	}, nil
}

// PlanReturn valida una devolución y calcula los nuevos contadores y el estado.
// Precondiciones: existe → cantidad > 0 → disponible + cantidad ≤ total → condición conocida.
func PlanReturn(asset *entity.Asset, quantity int, condition entity.ReturnCondition, notes string) (StockChange, error) {
	if asset == nil {
		return StockChange{}, domain.ErrNotFound
	}
	if quantity <= 0 {
		return StockChange{}, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if asset.StockAvailable+quantity > asset.StockTotal {
		return StockChange{}, fmt.Errorf("%w: el stock no puede superar el stock total (%d + %d > %d)",
			domain.ErrInvalidInput, asset.StockAvailable, quantity, asset.StockTotal)
	}
	if !condition.Valid() {
		return StockChange{}, fmt.Errorf("%w: estado de devolución %q desconocido", domain.ErrInvalidInput, condition)
	}
	available := asset.StockAvailable + quantity
	return StockChange{
		Type:      entity.MovementTypeReturn,
		Before:    asset.StockAvailable,
		Available: available,
		Status:    DeriveStatus(asset.StockTotal, available, condition, false),
		Notes:     ReturnNotes(condition, notes),
	}, nil
}

// ReturnNotes compone las observaciones de una devolución a partir de la condición y el texto libre.
func ReturnNotes(condition entity.ReturnCondition, notes string) string {
	return fmt.Sprintf("Estado de devolución: %s. Observaciones: %s", condition, strings.TrimSpace(notes))
}

// PlanMaintenance calcula el estado al entrar o salir de mantenimiento de forma explícita.
// Al salir, el estado se recalcula desde los contadores.
func PlanMaintenance(asset *entity.Asset, on bool) (StockChange, error) {
	if asset == nil {
		return StockChange{}, domain.ErrNotFound
	}
	return StockChange{
		Before:    asset.StockAvailable,
		Available: asset.StockAvailable,
		Status:    DeriveStatus(asset.StockTotal, asset.StockAvailable, "", on),
	}, nil
}

// PlanResize ajusta el stock total por edición explícita conservando las unidades pendientes:
// el disponible se desplaza con el mismo delta. Rechaza un total menor a lo que está afuera.
func PlanResize(asset *entity.Asset, newTotal int) (StockChange, error) {
	if asset == nil {
		return StockChange{}, domain.ErrNotFound
	}
	if newTotal < 0 {
		return StockChange{}, fmt.Errorf("%w: stock_total no puede ser negativo", domain.ErrInvalidInput)
	}
	outstanding := asset.Outstanding()
	if newTotal < outstanding {
		return StockChange{}, fmt.Errorf("%w: hay %d unidades prestadas, stock_total no puede ser %d",
			domain.ErrConflict, outstanding, newTotal)
	}
	available := newTotal - outstanding
	return StockChange{
		Before:    asset.StockAvailable,
		Available: available,
		Status:    DeriveStatus(newTotal, available, "", asset.Status == entity.AssetStatusMaintenance),
	}, nil
}

// CanDelete un activo solo se elimina si no tiene unidades afuera.
func CanDelete(asset *entity.Asset) error {
	if asset == nil {
		return domain.ErrNotFound
	}
	if asset.Outstanding() != 0 {
		return fmt.Errorf("%w: hay %d piezas en uso o prestadas, recupérelas antes de borrar",
			domain.ErrConflict, asset.Outstanding())
	}
	return nil
}

// LedgerCheck compara los contadores del activo con la suma de salidas y devoluciones del libro.
type LedgerCheck struct {
	Outstanding int // stock_total - stock_disponible
	Issued      int
	Returned    int
	Drift       int // Outstanding - (Issued - Returned); 0 si es consistente
}

// Consistent indica si contadores y libro coinciden.
func (c LedgerCheck) Consistent() bool { return c.Drift == 0 }

// CheckLedger calcula la conciliación entre contadores y libro de movimientos.
func CheckLedger(asset *entity.Asset, issued, returned int) LedgerCheck {
	outstanding := asset.Outstanding()
	return LedgerCheck{
		Outstanding: outstanding,
		Issued:      issued,
		Returned:    returned,
		Drift:       outstanding - (issued - returned),
	}
}
