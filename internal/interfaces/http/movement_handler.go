package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/control-activos/internal/application/dto"
	"github.com/jhoicas/control-activos/internal/application/inventory"
	"github.com/jhoicas/control-activos/internal/application/usecase"
)

// MovementHandler maneja salidas, devoluciones, historial y comprobantes (protegido).
type MovementHandler struct {
	uc      *inventory.MovementUseCase
	history *usecase.HistoryUseCase
	voucher *usecase.VoucherUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.MovementUseCase, history *usecase.HistoryUseCase, voucher *usecase.VoucherUseCase) *MovementHandler {
	return &MovementHandler{uc: uc, history: history, voucher: voucher}
}

// Issue godoc
// @Summary      Registrar salida
// @Description  Entrega unidades a un usuario (id_usuario_dispone) o a un visitante (nombre y apellidos).
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IssueRequest  true  "id_activo, cantidad, destinatario, tipo_movimiento (Salida Uso | Salida Renta)"
// @Success      201   {object}  dto.IssueResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/issue [post]
func (h *MovementHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	res, err := h.uc.IssueFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IssueResponse{
		Movement: usecase.ToMovementResponse(res.Movement),
		Asset:    *usecase.ToAssetResponse(res.Asset),
	})
}

// Return godoc
// @Summary      Registrar devolución
// @Description  estado_devolucion: Funcional | Mantenimiento | Baja (Dañado).
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReturnRequest  true  "id_activo, cantidad, estado_devolucion, observaciones"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/return [post]
func (h *MovementHandler) Return(c *fiber.Ctx) error {
	var in dto.ReturnRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	res, err := h.uc.ReturnFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReturnResponse{
		Asset:    *usecase.ToAssetResponse(res.Asset),
		Movement: usecase.ToMovementResponse(res.Movement),
	})
}

// History godoc
// @Summary      Historial de movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id_activo  query  string  false  "Filtrar por activo"
// @Param        desde      query  string  false  "Fecha inicial (YYYY-MM-DD)"
// @Param        hasta      query  string  false  "Fecha final inclusive (YYYY-MM-DD)"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.HistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements/history [get]
func (h *MovementHandler) History(c *fiber.Ctx) error {
	var q dto.HistoryQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.history.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ByAsset godoc
// @Summary      Movimientos de un activo
// @Tags         assets
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del activo"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.HistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assets/{id}/movements [get]
func (h *MovementHandler) ByAsset(c *fiber.Ctx) error {
	var page dto.PageRequest
	if ok, err := bindQuery(c, &page); !ok {
		return err
	}
	out, err := h.history.ByAsset(c.UserContext(), c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Voucher godoc
// @Summary      Descargar comprobante PDF
// @Tags         movements
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/voucher [get]
func (h *MovementHandler) Voucher(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.voucher.Download(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
