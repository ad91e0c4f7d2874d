package postgres

import (
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
)

// psql constructor de queries con placeholders $n.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

// isForeignKeyViolation referencia a una fila inexistente o borrado de una fila referenciada (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}

// isInvalidTextRepresentation p. ej. un id que no es UUID (22P02).
func isInvalidTextRepresentation(err error) bool {
	return pgCode(err) == "22P02"
}

// isRetryable serialization_failure (40001) o deadlock_detected (40P01): la transacción se puede repetir.
func isRetryable(err error) bool {
	code := pgCode(err)
	return code == "40001" || code == "40P01"
}

// likePattern escapa comodines de LIKE para búsquedas parciales.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
