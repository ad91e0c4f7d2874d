package dto

import "time"

// HistoryQuery filtros de GET /api/movements/history.
type HistoryQuery struct {
	AssetID string `query:"id_activo"`
	From    string `query:"desde" validate:"omitempty,datetime=2006-01-02"`
	To      string `query:"hasta" validate:"omitempty,datetime=2006-01-02"`
	PageRequest
}

// HistoryRow fila del historial de movimientos.
type HistoryRow struct {
	MovementID    string    `json:"id_movimiento"`
	Date          time.Time `json:"fecha"`
	Type          string    `json:"tipo"`
	AssetID       string    `json:"id_activo"`
	AssetName     string    `json:"activo_nombre"`
	AssetSKU      string    `json:"activo_sku"`
	Quantity      int       `json:"cantidad"`
	RecipientName string    `json:"dispone_nombre_completo"`
	IssuerName    string    `json:"adjunta_nombre"`
	IssuerRole    string    `json:"adjunta_rol"`
	Notes         string    `json:"observaciones"`
}

// HistoryResponse página del historial.
type HistoryResponse struct {
	Items []HistoryRow `json:"items"`
	Page  PageResponse `json:"page"`
}
