package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	FullName  string `json:"nombre_completo" validate:"required,min=1,max=200"`
	NickName  string `json:"nick_name" validate:"required,min=3,max=60"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"rol" validate:"required"`
	Signature string `json:"firma,omitempty" validate:"omitempty,max=500000"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"nombre_completo"`
	NickName  string    `json:"nick_name"`
	Role      string    `json:"rol"`
	Active    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada para login: nick, password y el rol con el que se ingresa.
type LoginRequest struct {
	NickName string `json:"nick_name" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"rol" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateUserRequest entrada para PUT /api/users/:id. La contraseña no se edita por aquí.
type UpdateUserRequest struct {
	FullName  *string `json:"nombre_completo,omitempty" validate:"omitempty,min=1,max=200"`
	NickName  *string `json:"nick_name,omitempty" validate:"omitempty,min=3,max=60"`
	Role      *string `json:"rol,omitempty"`
	Active    *bool   `json:"activo,omitempty"`
	Signature *string `json:"firma,omitempty" validate:"omitempty,max=500000"`
}

// UserListResponse página de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
