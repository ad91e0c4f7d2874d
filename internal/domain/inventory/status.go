package inventory

import "github.com/jhoicas/control-activos/internal/domain/entity"

// DeriveStatus calcula el estado de un activo (servicio de dominio, función pura).
// Prioridad: mantenimiento explícito o devolución reportada en mantenimiento → Mantenimiento;
// unidades pendientes de regresar → En Uso; todo en bodega → Disponible.
// lastReturn vacío significa que la operación no es una devolución.
func DeriveStatus(stockTotal, stockAvailable int, lastReturn entity.ReturnCondition, explicitMaintenance bool) entity.AssetStatus {
	if explicitMaintenance || lastReturn == entity.ReturnConditionMaintenance {
		return entity.AssetStatusMaintenance
	}
	if stockAvailable < stockTotal {
		return entity.AssetStatusInUse
	}
	return entity.AssetStatusAvailable
}
