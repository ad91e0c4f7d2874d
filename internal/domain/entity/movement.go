package entity

import "time"

// MovementType tipo de movimiento del libro de movimientos.
type MovementType string

const (
	MovementTypeInitialEntry MovementType = "Entrada Inicial" // solo al crear el activo
	MovementTypeIssueUse     MovementType = "Salida Uso"
	MovementTypeIssueRent    MovementType = "Salida Renta"
	MovementTypeReturn       MovementType = "Devolución"
)

// IsIssue indica si el movimiento saca unidades del stock disponible.
func (t MovementType) IsIssue() bool {
	return t == MovementTypeIssueUse || t == MovementTypeIssueRent
}

// Valid indica si el tipo es uno de los permitidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeInitialEntry, MovementTypeIssueUse, MovementTypeIssueRent, MovementTypeReturn:
		return true
	}
	return false
}

// Movement encabezado inmutable del libro de movimientos (append-only).
// IssuedBy es quien registra la transacción; Recipient solo se llena en salidas.
type Movement struct {
	ID        string
	Date      time.Time
	IssuedBy  string
	Recipient Recipient
	Type      MovementType
	Notes     string
	Details   []MovementDetail
}

// MovementDetail línea que vincula un movimiento con un activo y una cantidad positiva.
type MovementDetail struct {
	ID         string
	MovementID string
	AssetID    string
	Quantity   int
}

// ReturnCondition estado reportado al devolver unidades.
type ReturnCondition string

const (
	ReturnConditionFunctional  ReturnCondition = "Funcional"
	ReturnConditionMaintenance ReturnCondition = "Mantenimiento"
	ReturnConditionWriteOff    ReturnCondition = "Baja" // dañado, posible baja
)

// Valid indica si la condición es una de las permitidas.
func (c ReturnCondition) Valid() bool {
	switch c {
	case ReturnConditionFunctional, ReturnConditionMaintenance, ReturnConditionWriteOff:
		return true
	}
	return false
}
