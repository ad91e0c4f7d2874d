package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetKind tipo de activo. Solo existen herramientas y materiales.
type AssetKind string

const (
	AssetKindTool     AssetKind = "Herramienta"
	AssetKindMaterial AssetKind = "Material"
)

// Valid indica si el tipo es uno de los permitidos.
func (k AssetKind) Valid() bool {
	return k == AssetKindTool || k == AssetKindMaterial
}

// AssetStatus estado actual del activo.
type AssetStatus string

const (
	AssetStatusAvailable   AssetStatus = "Disponible"
	AssetStatusInUse       AssetStatus = "En Uso"
	AssetStatusMaintenance AssetStatus = "Mantenimiento"
)

// Valid indica si el estado es uno de los permitidos.
func (s AssetStatus) Valid() bool {
	switch s {
	case AssetStatusAvailable, AssetStatusInUse, AssetStatusMaintenance:
		return true
	}
	return false
}

// Location ubicación física del activo (bodega + estante, texto libre).
type Location struct {
	Warehouse string
	Shelf     string
}

// AssetCost costos opcionales del activo.
type AssetCost struct {
	Purchase  *decimal.Decimal // costo de compra
	DailyRent *decimal.Decimal // renta por día
}

// Asset representa una herramienta o material con contadores de stock agregados.
// StockAvailable solo lo modifica el motor de conciliación (salidas y devoluciones);
// StockTotal solo cambia al crear o editar explícitamente el activo.
type Asset struct {
	ID             string
	SKU            string // único
	Name           string
	Kind           AssetKind
	Description    string
	ImageURL       string
	StockTotal     int
	StockAvailable int
	Status         AssetStatus
	Location       Location
	Specs          map[string]string
	Cost           AssetCost
	Version        int // token de concurrencia optimista, se incrementa en cada actualización de stock/estado
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Outstanding unidades entregadas que aún no regresan.
func (a *Asset) Outstanding() int {
	return a.StockTotal - a.StockAvailable
}
