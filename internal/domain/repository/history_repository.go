package repository

import (
	"context"
	"time"
)

// HistoryFilter filtros del historial de movimientos.
type HistoryFilter struct {
	AssetID string
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

// HistoryEntry fila desnormalizada del historial (movimiento + detalle + activo + usuarios).
type HistoryEntry struct {
	MovementID       string
	Date             time.Time
	Type             string
	AssetID          string
	AssetName        string // vacío si el activo ya fue eliminado
	AssetSKU         string
	Quantity         int
	RecipientUserID  string
	RecipientName    string // nombre del usuario que recibe
	VisitorName      string
	VisitorSurname   string
	IssuerName       string
	IssuerRole       string
	Notes            string
}

// HistoryRepository puerto de solo lectura para el historial.
type HistoryRepository interface {
	List(ctx context.Context, filter HistoryFilter) ([]HistoryEntry, error)
}
