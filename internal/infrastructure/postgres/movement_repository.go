package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/control-activos/internal/domain"
	"github.com/jhoicas/control-activos/internal/domain/entity"
	"github.com/jhoicas/control-activos/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos sobre PostgreSQL. Solo inserta y lee.
type MovementRepo struct {
	q       Querier
	details *MovementDetailRepo
}

// NewMovementRepository construye el adaptador. details se usa para cargar las líneas en GetByID.
func NewMovementRepository(q Querier, details *MovementDetailRepo) *MovementRepo {
	return &MovementRepo{q: q, details: details}
}

// recipientColumns descompone el destinatario en las columnas nullable.
func recipientColumns(r entity.Recipient) (userID, name, surname *string) {
	if id, ok := r.UserID(); ok {
		return &id, nil, nil
	}
	if n, s, ok := r.Visitor(); ok {
		return nil, &n, &s
	}
	return nil, nil, nil
}

// recipientFromColumns reconstruye el destinatario a partir de las columnas.
func recipientFromColumns(userID, name, surname *string) entity.Recipient {
	switch {
	case userID != nil:
		return entity.InternalRecipient(*userID)
	case name != nil:
		s := ""
		if surname != nil {
			s = *surname
		}
		return entity.VisitorRecipient(*name, s)
	}
	return entity.Recipient{}
}

// Create inserta el encabezado del movimiento.
// Un id de usuario inexistente o mal formado se reporta como entrada inválida.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	userID, name, surname := recipientColumns(m.Recipient)
	sqlStr, args, err := psql.Insert("movimientos").
		Columns("id", "fecha_movimiento", "id_usuario_adjunta", "id_usuario_dispone",
			"nombre_visitante", "apellidos_visitante", "tipo_movimiento", "observaciones").
		Values(m.ID, m.Date, m.IssuedBy, userID, name, surname, m.Type, m.Notes).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, sqlStr, args...); err != nil {
		if isForeignKeyViolation(err) || isInvalidTextRepresentation(err) {
			return fmt.Errorf("%w: el usuario que registra o recibe no existe", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene el movimiento con sus detalles.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query := `
		SELECT id, fecha_movimiento, id_usuario_adjunta, id_usuario_dispone, nombre_visitante, apellidos_visitante,
		       tipo_movimiento, observaciones
		FROM movimientos WHERE id = $1`
	var (
		m                      entity.Movement
		userID, name, surname *string
	)
	err := r.q.QueryRow(ctx, query, id).Scan(&m.ID, &m.Date, &m.IssuedBy, &userID, &name, &surname, &m.Type, &m.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	m.Recipient = recipientFromColumns(userID, name, surname)
	if m.Details, err = r.details.ListByMovement(ctx, m.ID); err != nil {
		return nil, err
	}
	return &m, nil
}
