package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/control-activos/internal/application/dto"
	"github.com/jhoicas/control-activos/internal/application/inventory"
	"github.com/jhoicas/control-activos/internal/application/usecase"
)

// AssetHandler maneja el catálogo de activos, mantenimiento y auditoría (protegido).
type AssetHandler struct {
	uc       *usecase.AssetUseCase
	movement *inventory.MovementUseCase
	audit    *inventory.AuditUseCase
}

// NewAssetHandler construye el handler.
func NewAssetHandler(uc *usecase.AssetUseCase, movement *inventory.MovementUseCase, audit *inventory.AuditUseCase) *AssetHandler {
	return &AssetHandler{uc: uc, movement: movement, audit: audit}
}

// Create godoc
// @Summary      Crear activo
// @Description  Con stock_total > 0 registra además el movimiento Entrada Inicial.
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAssetRequest  true  "Datos del activo"
// @Success      201   {object}  dto.AssetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assets [post]
func (h *AssetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAssetRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar activos
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        search       query  string  false  "Búsqueda por nombre"
// @Param        estado       query  string  false  "Disponible | En Uso | Mantenimiento"
// @Param        tipo_activo  query  string  false  "Herramienta | Material"
// @Param        bodega       query  string  false  "Bodega"
// @Param        estante      query  string  false  "Estante (coincidencia parcial)"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.AssetListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/assets [get]
func (h *AssetHandler) List(c *fiber.Ctx) error {
	var q dto.AssetListQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener activo por ID
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del activo"
// @Success      200  {object}  dto.AssetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [get]
func (h *AssetHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar activo
// @Description  stock_disponible no es editable; un nuevo stock_total conserva las unidades prestadas.
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del activo"
// @Param        body  body  dto.UpdateAssetRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.AssetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [put]
func (h *AssetHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAssetRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar activo
// @Description  Solo sin unidades en uso o prestadas. El historial se conserva.
// @Tags         assets
// @Security     Bearer
// @Param        id  path  string  true  "ID del activo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/assets/{id} [delete]
func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetMaintenance godoc
// @Summary      Enviar o sacar de mantenimiento
// @Tags         assets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del activo"
// @Param        body  body  dto.MaintenanceRequest  true  "mantenimiento: true | false"
// @Success      200   {object}  dto.AssetResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/maintenance [post]
func (h *AssetHandler) SetMaintenance(c *fiber.Ctx) error {
	var in dto.MaintenanceRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	asset, err := h.movement.SetMaintenance(c.UserContext(), GetUserID(c), c.Params("id"), in.On)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(usecase.ToAssetResponse(asset))
}

// Reconcile godoc
// @Summary      Auditar el libro de un activo
// @Description  Compara stock_total - stock_disponible contra salidas menos devoluciones.
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del activo"
// @Success      200  {object}  dto.LedgerCheckResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/reconcile [get]
func (h *AssetHandler) Reconcile(c *fiber.Ctx) error {
	id := c.Params("id")
	check, err := h.audit.Reconcile(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.LedgerCheckResponse{
		AssetID:     id,
		Outstanding: check.Outstanding,
		Issued:      check.Issued,
		Returned:    check.Returned,
		Drift:       check.Drift,
		Consistent:  check.Consistent(),
	})
}
