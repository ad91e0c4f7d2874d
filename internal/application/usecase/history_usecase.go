package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/control-activos/internal/application/dto"
	"github.com/jhoicas/control-activos/internal/domain"
	"github.com/jhoicas/control-activos/internal/domain/entity"
	"github.com/jhoicas/control-activos/internal/domain/repository"
)

// HistoryUseCase proyección de solo lectura del libro de movimientos (más reciente primero).
type HistoryUseCase struct {
	history   repository.HistoryRepository
	assetRepo repository.AssetRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(history repository.HistoryRepository, assetRepo repository.AssetRepository) *HistoryUseCase {
	return &HistoryUseCase{history: history, assetRepo: assetRepo}
}

// List devuelve el historial filtrado. desde/hasta son fechas (YYYY-MM-DD) inclusivas.
func (uc *HistoryUseCase) List(ctx context.Context, q dto.HistoryQuery) (*dto.HistoryResponse, error) {
	q.DefaultPage()
	filter := repository.HistoryFilter{
		AssetID: strings.TrimSpace(q.AssetID),
		Limit:   q.Limit,
		Offset:  q.Offset,
	}
	if q.From != "" {
		from, err := time.ParseInLocation(time.DateOnly, q.From, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha desde inválida", domain.ErrInvalidInput)
		}
		filter.From = &from
	}
	if q.To != "" {
		to, err := time.ParseInLocation(time.DateOnly, q.To, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha hasta inválida", domain.ErrInvalidInput)
		}
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, fmt.Errorf("%w: el rango de fechas está invertido", domain.ErrInvalidInput)
	}
	return uc.list(ctx, filter)
}

// ByAsset historial de un activo existente.
func (uc *HistoryUseCase) ByAsset(ctx context.Context, assetID string, page dto.PageRequest) (*dto.HistoryResponse, error) {
	asset, err := uc.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	return uc.list(ctx, repository.HistoryFilter{AssetID: assetID, Limit: page.Limit, Offset: page.Offset})
}

func (uc *HistoryUseCase) list(ctx context.Context, filter repository.HistoryFilter) (*dto.HistoryResponse, error) {
	entries, err := uc.history.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.HistoryRow, 0, len(entries))
	for _, e := range entries {
		items = append(items, toHistoryRow(e))
	}
	return &dto.HistoryResponse{
		Items: items,
		Page:  dto.PageRequest{Limit: filter.Limit, Offset: filter.Offset}.Result(len(items)),
	}, nil
}

func toHistoryRow(e repository.HistoryEntry) dto.HistoryRow {
	recipient := e.RecipientName
	if recipient == "" && (e.VisitorName != "" || e.VisitorSurname != "") {
		recipient = strings.TrimSpace(e.VisitorName + " " + e.VisitorSurname)
	}
	if recipient == "" && entity.MovementType(e.Type).IsIssue() {
		recipient = "N/A"
	}
	assetName := e.AssetName
	if assetName == "" {
		assetName = "Activo eliminado"
	}
	return dto.HistoryRow{
		MovementID:    e.MovementID,
		Date:          e.Date,
		Type:          e.Type,
		AssetID:       e.AssetID,
		AssetName:     assetName,
		AssetSKU:      e.AssetSKU,
		Quantity:      e.Quantity,
		RecipientName: recipient,
		IssuerName:    e.IssuerName,
		IssuerRole:    e.IssuerRole,
		Notes:         e.Notes,
	}
}

// ToMovementResponse mapea un movimiento con sus detalles.
func ToMovementResponse(m *entity.Movement) dto.MovementResponse {
	out := dto.MovementResponse{
		ID:       m.ID,
		Date:     m.Date,
		IssuedBy: m.IssuedBy,
		Type:     string(m.Type),
		Notes:    m.Notes,
		Details:  make([]dto.MovementDetailResponse, 0, len(m.Details)),
	}
	if id, ok := m.Recipient.UserID(); ok {
		out.RecipientUserID = id
	}
	if name, surname, ok := m.Recipient.Visitor(); ok {
		out.VisitorName, out.VisitorSurname = name, surname
	}
	for _, d := range m.Details {
		out.Details = append(out.Details, dto.MovementDetailResponse{ID: d.ID, AssetID: d.AssetID, Quantity: d.Quantity})
	}
	return out
}
