package repository

import (
	"context"

	"github.com/jhoicas/control-activos/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// GetByID y GetByNickName devuelven nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByNickName(ctx context.Context, nickName string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// Delete devuelve domain.ErrConflict si el usuario aparece en el libro de movimientos.
	Delete(ctx context.Context, id string) error
}
