package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/control-activos/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo proyección de solo lectura del libro: una fila por detalle de movimiento.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador de historial.
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// historyQuery arma el SELECT con LEFT JOIN a activos y usuarios: un activo o usuario borrado
// no oculta la fila del libro.
func historyQuery(f repository.HistoryFilter) (string, []any, error) {
	b := psql.Select(
		"m.id", "m.fecha_movimiento", "m.tipo_movimiento", "d.id_activo",
		"COALESCE(a.nombre, '')", "COALESCE(a.sku, '')", "d.cantidad",
		"COALESCE(m.id_usuario_dispone::text, '')", "COALESCE(ud.nombre_completo, '')",
		"COALESCE(m.nombre_visitante, '')", "COALESCE(m.apellidos_visitante, '')",
		"COALESCE(ua.nombre_completo, '')", "COALESCE(ua.rol, '')", "m.observaciones",
	).
		From("detalle_movimientos d").
		Join("movimientos m ON m.id = d.id_movimiento").
		LeftJoin("activos a ON a.id = d.id_activo").
		LeftJoin("usuarios ud ON ud.id = m.id_usuario_dispone").
		LeftJoin("usuarios ua ON ua.id = m.id_usuario_adjunta")
	if f.AssetID != "" {
		b = b.Where(sq.Eq{"d.id_activo": f.AssetID})
	}
	if f.From != nil {
		b = b.Where(sq.GtOrEq{"m.fecha_movimiento": *f.From})
	}
	if f.To != nil {
		b = b.Where(sq.LtOrEq{"m.fecha_movimiento": *f.To})
	}
	b = b.OrderBy("m.fecha_movimiento DESC", "d.id DESC")
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}
	return b.ToSql()
}

// List devuelve el historial filtrado, más reciente primero.
func (r *HistoryRepo) List(ctx context.Context, f repository.HistoryFilter) ([]repository.HistoryEntry, error) {
	sqlStr, args, err := historyQuery(f)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()
	var list []repository.HistoryEntry
	for rows.Next() {
		var e repository.HistoryEntry
		if err := rows.Scan(
			&e.MovementID, &e.Date, &e.Type, &e.AssetID, &e.AssetName, &e.AssetSKU, &e.Quantity,
			&e.RecipientUserID, &e.RecipientName, &e.VisitorName, &e.VisitorSurname,
			&e.IssuerName, &e.IssuerRole, &e.Notes,
		); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		if isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
