package entity

import (
	"strings"
	"time"
)

// Roles válidos para User.
// En los datos de origen conviven "Sub-Jefe" y "Sub-jefe"; las comparaciones de rol usan SameRole.
const (
	RoleJefe        = "Jefe"
	RoleSubJefe     = "Sub-Jefe"
	RoleEncargado   = "Encargado"
	RolePracticante = "Practicante"
	RoleTrabajador  = "Trabajador"
)

// ValidRole indica si el rol (sin importar mayúsculas) es uno de los conocidos.
func ValidRole(role string) bool {
	_, ok := CanonicalRole(role)
	return ok
}

// CanonicalRole devuelve la escritura canónica del rol ("sub-jefe" → "Sub-Jefe").
func CanonicalRole(role string) (string, bool) {
	for _, r := range []string{RoleJefe, RoleSubJefe, RoleEncargado, RolePracticante, RoleTrabajador} {
		if SameRole(r, role) {
			return r, true
		}
	}
	return "", false
}

// SameRole compara roles sin distinguir mayúsculas.
func SameRole(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// User representa un usuario del sistema (quien registra movimientos o los recibe).
type User struct {
	ID           string
	FullName     string
	NickName     string // único
	PasswordHash string // bcrypt
	Role         string
	Active       bool
	Signature    string // firma (opcional), se imprime en el comprobante
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
