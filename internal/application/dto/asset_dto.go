package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LocationDTO ubicación física.
type LocationDTO struct {
	Warehouse string `json:"bodega" validate:"omitempty,max=120"`
	Shelf     string `json:"estante" validate:"omitempty,max=120"`
}

// CostDTO costos opcionales.
type CostDTO struct {
	Purchase  *decimal.Decimal `json:"compra,omitempty"`
	DailyRent *decimal.Decimal `json:"renta_dia,omitempty"`
}

// CreateAssetRequest body para POST /api/assets.
type CreateAssetRequest struct {
	SKU         string            `json:"sku" validate:"required,max=64"`
	Name        string            `json:"nombre" validate:"required,max=200"`
	Kind        string            `json:"tipo_activo" validate:"required,oneof=Herramienta Material"`
	Description string            `json:"descripcion" validate:"omitempty,max=2000"`
	ImageURL    string            `json:"imagen_url" validate:"omitempty,url"`
	StockTotal  int               `json:"stock_total" validate:"min=0"`
	Location    LocationDTO       `json:"ubicacion"`
	Specs       map[string]string `json:"especificaciones,omitempty"`
	Cost        CostDTO           `json:"costo"`
}

// UpdateAssetRequest body para PUT /api/assets/:id. stock_disponible no es editable.
type UpdateAssetRequest struct {
	SKU         *string           `json:"sku,omitempty" validate:"omitempty,min=1,max=64"`
	Name        *string           `json:"nombre,omitempty" validate:"omitempty,min=1,max=200"`
	Kind        *string           `json:"tipo_activo,omitempty" validate:"omitempty,oneof=Herramienta Material"`
	Description *string           `json:"descripcion,omitempty" validate:"omitempty,max=2000"`
	ImageURL    *string           `json:"imagen_url,omitempty" validate:"omitempty,max=500"`
	StockTotal  *int              `json:"stock_total,omitempty" validate:"omitempty,min=0"`
	Location    *LocationDTO      `json:"ubicacion,omitempty"`
	Specs       map[string]string `json:"especificaciones,omitempty"`
	Cost        *CostDTO          `json:"costo,omitempty"`
}

// AssetListQuery filtros de GET /api/assets.
type AssetListQuery struct {
	Search    string `query:"search"`
	Status    string `query:"estado" validate:"omitempty,oneof=Disponible 'En Uso' Mantenimiento"`
	Kind      string `query:"tipo_activo" validate:"omitempty,oneof=Herramienta Material"`
	Warehouse string `query:"bodega"`
	Shelf     string `query:"estante"`
	PageRequest
}

// AssetResponse salida de un activo.
type AssetResponse struct {
	ID             string            `json:"id"`
	SKU            string            `json:"sku"`
	Name           string            `json:"nombre"`
	Kind           string            `json:"tipo_activo"`
	Description    string            `json:"descripcion,omitempty"`
	ImageURL       string            `json:"imagen_url,omitempty"`
	StockTotal     int               `json:"stock_total"`
	StockAvailable int               `json:"stock_disponible"`
	Status         string            `json:"estado_actual"`
	Location       LocationDTO       `json:"ubicacion"`
	Specs          map[string]string `json:"especificaciones,omitempty"`
	Cost           CostDTO           `json:"costo"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// AssetListResponse página de activos.
type AssetListResponse struct {
	Items []AssetResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
