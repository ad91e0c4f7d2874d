package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los mensajes con detalle envuelven estos valores con fmt.Errorf("%w: ...") y se comparan con errors.Is.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidState        = errors.New("operación no permitida en el estado actual del activo")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia sobre el activo, reintente")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
)
