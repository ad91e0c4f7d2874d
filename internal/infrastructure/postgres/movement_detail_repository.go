package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/control-activos/internal/domain/entity"
	"github.com/jhoicas/control-activos/internal/domain/repository"
)

var _ repository.MovementDetailRepository = (*MovementDetailRepo)(nil)

// MovementDetailRepo líneas de movimiento sobre PostgreSQL.
type MovementDetailRepo struct {
	q Querier
}

// NewMovementDetailRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementDetailRepository(q Querier) *MovementDetailRepo {
	return &MovementDetailRepo{q: q}
}

// Create inserta una línea. cantidad > 0 lo garantiza también un CHECK.
func (r *MovementDetailRepo) Create(ctx context.Context, d *entity.MovementDetail) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO detalle_movimientos (id, id_movimiento, id_activo, cantidad) VALUES ($1, $2, $3, $4)`,
		d.ID, d.MovementID, d.AssetID, d.Quantity,
	)
	if err != nil {
		return fmt.Errorf("insert movement detail: %w", err)
	}
	return nil
}

// ListByMovement lista las líneas de un movimiento.
func (r *MovementDetailRepo) ListByMovement(ctx context.Context, movementID string) ([]entity.MovementDetail, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, id_movimiento, id_activo, cantidad FROM detalle_movimientos WHERE id_movimiento = $1 ORDER BY id`,
		movementID,
	)
	if err != nil {
		return nil, fmt.Errorf("list movement details: %w", err)
	}
	defer rows.Close()
	var list []entity.MovementDetail
	for rows.Next() {
		var d entity.MovementDetail
		if err := rows.Scan(&d.ID, &d.MovementID, &d.AssetID, &d.Quantity); err != nil {
			return nil, fmt.Errorf("scan movement detail: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// SumByAsset suma cantidades de salidas (Uso + Renta) y devoluciones de un activo.
// La entrada inicial no participa.
func (r *MovementDetailRepo) SumByAsset(ctx context.Context, assetID string) (issued, returned int, err error) {
	query := `
		SELECT COALESCE(SUM(d.cantidad) FILTER (WHERE m.tipo_movimiento IN ($2, $3)), 0),
		       COALESCE(SUM(d.cantidad) FILTER (WHERE m.tipo_movimiento = $4), 0)
		FROM detalle_movimientos d
		JOIN movimientos m ON m.id = d.id_movimiento
		WHERE d.id_activo = $1`
	err = r.q.QueryRow(ctx, query, assetID,
		entity.MovementTypeIssueUse, entity.MovementTypeIssueRent, entity.MovementTypeReturn,
	).Scan(&issued, &returned)
	if err != nil {
		return 0, 0, fmt.Errorf("sum movement details: %w", err)
	}
	return issued, returned, nil
}
