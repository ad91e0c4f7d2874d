package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/control-activos/internal/domain"
	"github.com/jhoicas/control-activos/internal/domain/entity"
	"github.com/jhoicas/control-activos/internal/domain/repository"
)

var _ repository.AssetRepository = (*AssetRepo)(nil)

var assetColumns = []string{
	"id", "sku", "nombre", "tipo_activo", "descripcion", "imagen_url",
	"stock_total", "stock_disponible", "estado_actual", "bodega", "estante",
	"especificaciones", "costo_compra", "costo_renta_dia", "version", "created_at", "updated_at",
}

// AssetRepo implementación del puerto AssetRepository sobre PostgreSQL (usable con pool o tx).
type AssetRepo struct {
	q Querier
}

// NewAssetRepository construye el adaptador de persistencia para activos. Pasar pool o tx (Querier).
func NewAssetRepository(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

func scanAsset(row pgx.Row) (*entity.Asset, error) {
	var a entity.Asset
	err := row.Scan(
		&a.ID, &a.SKU, &a.Name, &a.Kind, &a.Description, &a.ImageURL,
		&a.StockTotal, &a.StockAvailable, &a.Status, &a.Location.Warehouse, &a.Location.Shelf,
		&a.Specs, &a.Cost.Purchase, &a.Cost.DailyRent, &a.Version, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func specsOrEmpty(specs map[string]string) map[string]string {
	if specs == nil {
		return map[string]string{}
	}
	return specs
}

// Create persiste un nuevo activo.
func (r *AssetRepo) Create(ctx context.Context, a *entity.Asset) error {
	sqlStr, args, err := psql.Insert("activos").
		Columns(assetColumns...).
		Values(
			a.ID, a.SKU, a.Name, a.Kind, a.Description, a.ImageURL,
			a.StockTotal, a.StockAvailable, a.Status, a.Location.Warehouse, a.Location.Shelf,
			specsOrEmpty(a.Specs), a.Cost.Purchase, a.Cost.DailyRent, a.Version, a.CreatedAt, a.UpdatedAt,
		).ToSql()
	if err != nil {
		return err
	}
	if _, err := r.q.Exec(ctx, sqlStr, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un activo con sku %s", domain.ErrDuplicate, a.SKU)
		}
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// GetByID obtiene un activo por ID.
func (r *AssetRepo) GetByID(ctx context.Context, id string) (*entity.Asset, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene el activo bloqueando la fila hasta el fin de la transacción.
func (r *AssetRepo) GetForUpdate(ctx context.Context, id string) (*entity.Asset, error) {
	return r.get(ctx, id, true)
}

func (r *AssetRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Asset, error) {
	b := psql.Select(assetColumns...).From("activos").Where(sq.Eq{"id": id})
	if forUpdate {
		b = b.Suffix("FOR UPDATE")
	}
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	a, err := scanAsset(r.q.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return a, nil
}

// assetListQuery arma el SELECT filtrado: nombre y estante por coincidencia parcial sin mayúsculas,
// estado, tipo y bodega por igualdad. Más reciente primero.
func assetListQuery(f repository.AssetFilter, limit, offset int) (string, []any, error) {
	b := psql.Select(assetColumns...).From("activos")
	if f.Search != "" {
		b = b.Where(sq.ILike{"nombre": likePattern(f.Search)})
	}
	if f.Status != "" {
		b = b.Where(sq.Eq{"estado_actual": f.Status})
	}
	if f.Kind != "" {
		b = b.Where(sq.Eq{"tipo_activo": f.Kind})
	}
	if f.Warehouse != "" {
		b = b.Where(sq.Eq{"bodega": f.Warehouse})
	}
	if f.Shelf != "" {
		b = b.Where(sq.ILike{"estante": likePattern(f.Shelf)})
	}
	b = b.OrderBy("created_at DESC", "id")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	if offset > 0 {
		b = b.Offset(uint64(offset))
	}
	return b.ToSql()
}

// List lista activos con filtros y paginación.
func (r *AssetRepo) List(ctx context.Context, filter repository.AssetFilter, limit, offset int) ([]*entity.Asset, error) {
	sqlStr, args, err := assetListQuery(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	rows, err := r.q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Update guarda datos de catálogo y contadores si la versión no cambió; incrementa a.Version.
func (r *AssetRepo) Update(ctx context.Context, a *entity.Asset) error {
	sqlStr, args, err := psql.Update("activos").
		SetMap(map[string]any{
			"sku":              a.SKU,
			"nombre":           a.Name,
			"tipo_activo":      a.Kind,
			"descripcion":      a.Description,
			"imagen_url":       a.ImageURL,
			"stock_total":      a.StockTotal,
			"stock_disponible": a.StockAvailable,
			"estado_actual":    a.Status,
			"bodega":           a.Location.Warehouse,
			"estante":          a.Location.Shelf,
			"especificaciones": specsOrEmpty(a.Specs),
			"costo_compra":     a.Cost.Purchase,
			"costo_renta_dia":  a.Cost.DailyRent,
			"updated_at":       a.UpdatedAt,
			"version":          sq.Expr("version + 1"),
		}).
		Where(sq.Eq{"id": a.ID, "version": a.Version}).
		ToSql()
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, sqlStr, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un activo con sku %s", domain.ErrDuplicate, a.SKU)
		}
		return fmt.Errorf("update asset: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.missingOrStale(ctx, a.ID)
	}
	a.Version++
	return nil
}

// UpdateStock actualiza disponible y estado con chequeo de versión.
func (r *AssetRepo) UpdateStock(ctx context.Context, id string, available int, status entity.AssetStatus, expectedVersion int) error {
	sqlStr, args, err := psql.Update("activos").
		Set("stock_disponible", available).
		Set("estado_actual", status).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "version": expectedVersion}).
		ToSql()
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("update asset stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.missingOrStale(ctx, id)
	}
	return nil
}

func (r *AssetRepo) missingOrStale(ctx context.Context, id string) error {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM activos WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check asset: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: el activo %s cambió durante la operación", domain.ErrConcurrencyConflict, id)
}

// Delete elimina un activo por ID. Los detalles del libro no se tocan.
func (r *AssetRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM activos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
