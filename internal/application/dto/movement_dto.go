package dto

import "time"

// IssueRequest body para POST /api/movements/issue.
// El destinatario es un usuario (id_usuario_dispone) o un visitante (nombre_visitante + apellidos_visitante), no ambos.
type IssueRequest struct {
	AssetID         string `json:"id_activo"`
	Quantity        int    `json:"cantidad"`
	RecipientUserID string `json:"id_usuario_dispone,omitempty" validate:"omitempty,max=64"`
	VisitorName     string `json:"nombre_visitante,omitempty" validate:"omitempty,max=120"`
	VisitorSurname  string `json:"apellidos_visitante,omitempty" validate:"omitempty,max=120"`
	Type            string `json:"tipo_movimiento,omitempty" validate:"omitempty,max=40"`
	Notes           string `json:"observaciones,omitempty" validate:"omitempty,max=1000"`
}

// ReturnRequest body para POST /api/movements/return.
type ReturnRequest struct {
	AssetID   string `json:"id_activo"`
	Quantity  int    `json:"cantidad"`
	Condition string `json:"estado_devolucion"`
	Notes     string `json:"observaciones,omitempty" validate:"omitempty,max=1000"`
}

// MovementDetailResponse línea de un movimiento.
type MovementDetailResponse struct {
	ID       string `json:"id"`
	AssetID  string `json:"id_activo"`
	Quantity int    `json:"cantidad"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID              string                   `json:"id"`
	Date            time.Time                `json:"fecha_movimiento"`
	IssuedBy        string                   `json:"id_usuario_adjunta"`
	RecipientUserID string                   `json:"id_usuario_dispone,omitempty"`
	VisitorName     string                   `json:"nombre_visitante,omitempty"`
	VisitorSurname  string                   `json:"apellidos_visitante,omitempty"`
	Type            string                   `json:"tipo_movimiento"`
	Notes           string                   `json:"observaciones"`
	Details         []MovementDetailResponse `json:"detalles"`
}

// IssueResponse respuesta de una salida.
type IssueResponse struct {
	Movement MovementResponse `json:"movimiento"`
	Asset    AssetResponse    `json:"activo"`
}

// ReturnResponse respuesta de una devolución.
type ReturnResponse struct {
	Asset    AssetResponse    `json:"activo"`
	Movement MovementResponse `json:"movimiento"`
}

// MaintenanceRequest body para POST /api/assets/:id/maintenance.
type MaintenanceRequest struct {
	On bool `json:"mantenimiento"`
}

// LedgerCheckResponse resultado de la auditoría del libro para un activo.
type LedgerCheckResponse struct {
	AssetID     string `json:"id_activo"`
	Outstanding int    `json:"pendientes"`
	Issued      int    `json:"total_salidas"`
	Returned    int    `json:"total_devoluciones"`
	Drift       int    `json:"diferencia"`
	Consistent  bool   `json:"consistente"`
}
