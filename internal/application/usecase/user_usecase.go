package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/control-activos/internal/application/dto"
	"github.com/jhoicas/control-activos/internal/domain"
	"github.com/jhoicas/control-activos/internal/domain/entity"
	"github.com/jhoicas/control-activos/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios, incluida la jerarquía de roles:
// solo Jefe y Sub-Jefe administran usuarios y solo un Jefe crea, edita, promueve o elimina a un Jefe.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

func canManageUsers(actorRole string) bool {
	return entity.SameRole(actorRole, entity.RoleJefe) || entity.SameRole(actorRole, entity.RoleSubJefe)
}

// Create crea un usuario: valida jerarquía, hashea password con bcrypt y persiste.
func (uc *UserUseCase) Create(ctx context.Context, actorRole string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !canManageUsers(actorRole) {
		return nil, fmt.Errorf("%w: solo Jefes y Sub-Jefes pueden crear usuarios", domain.ErrForbidden)
	}
	role, ok := entity.CanonicalRole(in.Role)
	if !ok {
		return nil, fmt.Errorf("%w: rol %q no existe", domain.ErrInvalidInput, in.Role)
	}
	if role == entity.RoleJefe && !entity.SameRole(actorRole, entity.RoleJefe) {
		return nil, fmt.Errorf("%w: un Sub-Jefe no puede crear un usuario con rol de Jefe", domain.ErrForbidden)
	}
	nick := strings.TrimSpace(in.NickName)
	name := strings.TrimSpace(in.FullName)
	if nick == "" || name == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: nombre, nick_name y password son obligatorios", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByNickName(ctx, nick)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		FullName:     name,
		NickName:     nick,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
		Signature:    in.Signature,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID. Devuelve domain.ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Page: page.Result(len(items))}, nil
}

// Update edita un usuario respetando la jerarquía. La contraseña no se cambia por aquí.
func (uc *UserUseCase) Update(ctx context.Context, actorRole, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !canManageUsers(actorRole) {
		return nil, fmt.Errorf("%w: no tienes permiso para editar usuarios", domain.ErrForbidden)
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	isJefe := entity.SameRole(actorRole, entity.RoleJefe)
	if entity.SameRole(user.Role, entity.RoleJefe) && !isJefe {
		return nil, fmt.Errorf("%w: no tienes permisos para editar a un Jefe", domain.ErrForbidden)
	}
	if in.Role != nil {
		role, ok := entity.CanonicalRole(*in.Role)
		if !ok {
			return nil, fmt.Errorf("%w: rol %q no existe", domain.ErrInvalidInput, *in.Role)
		}
		if role == entity.RoleJefe && !isJefe {
			return nil, fmt.Errorf("%w: solo un Jefe puede asignar el rol de Jefe", domain.ErrForbidden)
		}
		user.Role = role
	}
	if in.FullName != nil {
		user.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.NickName != nil {
		user.NickName = strings.TrimSpace(*in.NickName)
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	if in.Signature != nil {
		user.Signature = *in.Signature
	}
	if user.FullName == "" || user.NickName == "" {
		return nil, fmt.Errorf("%w: nombre y nick_name no pueden quedar vacíos", domain.ErrInvalidInput)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Delete elimina un usuario respetando la jerarquía.
// Devuelve domain.ErrConflict si el usuario ya figura en movimientos (el libro no se reescribe).
func (uc *UserUseCase) Delete(ctx context.Context, actorRole, id string) error {
	if !canManageUsers(actorRole) {
		return fmt.Errorf("%w: no tienes permiso para eliminar usuarios", domain.ErrForbidden)
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if entity.SameRole(user.Role, entity.RoleJefe) && !entity.SameRole(actorRole, entity.RoleJefe) {
		return fmt.Errorf("%w: no tienes permisos para eliminar a un Jefe", domain.ErrForbidden)
	}
	return uc.repo.Delete(ctx, id)
}

// ToUserResponse mapea la entidad a su DTO (sin password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		NickName:  u.NickName,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
