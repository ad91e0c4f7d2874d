package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/control-activos/internal/application/dto"
	"github.com/jhoicas/control-activos/internal/application/usecase"
	"github.com/jhoicas/control-activos/internal/domain"
	"github.com/jhoicas/control-activos/internal/domain/entity"
	"github.com/jhoicas/control-activos/internal/domain/repository"
	"github.com/jhoicas/control-activos/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login con nick, password y rol seleccionado.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica nick/password, que el rol elegido coincida con el del usuario y que esté activo.
// Genera un JWT con el id y el rol del usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByNickName(ctx, strings.TrimSpace(in.NickName))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !entity.SameRole(user.Role, in.Role) {
		return nil, fmt.Errorf("%w: este usuario no tiene permisos de %s", domain.ErrForbidden, in.Role)
	}
	if !user.Active {
		return nil, fmt.Errorf("%w: usuario inactivo", domain.ErrForbidden)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.ToUserResponse(user),
	}, nil
}
