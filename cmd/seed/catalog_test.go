package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/control-activos/internal/domain/entity"
)

// ─── parseCatalog ────────────────────────────────────────────────────────────

func TestParseCatalog_ComasYColumnasOpcionales(t *testing.T) {
	in := "sku,nombre,tipo_activo,stock_total,bodega\n" +
		"tal-01,Taladro percutor,herramienta,3,Central\n" +
		",fila sin sku,Material,1,\n" +
		"CAB-10,Cable 10 AWG,Material,120,Obra\n"

	got, err := parseCatalog(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "tal-01", got[0].SKU)
	assert.Equal(t, "Taladro percutor", got[0].Name)
	assert.Equal(t, string(entity.AssetKindTool), got[0].Kind)
	assert.Equal(t, 3, got[0].StockTotal)
	assert.Equal(t, "Central", got[0].Location.Warehouse)
	assert.Empty(t, got[0].Location.Shelf)

	assert.Equal(t, string(entity.AssetKindMaterial), got[1].Kind)
	assert.Equal(t, 120, got[1].StockTotal)
}

func TestParseCatalog_PuntoYComaConBOM(t *testing.T) {
	in := "\ufeffSKU;Nombre;Tipo_Activo;Stock_Total;Estante\nM-1;Martillo;Herramienta;5;E-02\n"

	got, err := parseCatalog(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "M-1", got[0].SKU)
	assert.Equal(t, "E-02", got[0].Location.Shelf)
}

func TestParseCatalog_Errores(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"falta columna", "sku,nombre,stock_total\nA,B,1\n", "tipo_activo"},
		{"stock no numérico", "sku,nombre,tipo_activo,stock_total\nA,B,Material,muchos\n", "línea 2"},
		{"stock negativo", "sku,nombre,tipo_activo,stock_total\nA,B,Material,-1\n", "stock_total inválido"},
		{"tipo desconocido", "sku,nombre,tipo_activo,stock_total\nA,B,Vehículo,1\n", "tipo_activo desconocido"},
		{"vacío", "", "cabecera"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseCatalog(strings.NewReader(tc.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestCatalogReader_Latin1(t *testing.T) {
	utf8 := "sku,nombre,tipo_activo,stock_total\nL-1,Llave de tubería,Herramienta,2\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().String(utf8)
	require.NoError(t, err)

	got, err := parseCatalog(catalogReader(strings.NewReader(encoded), true))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Llave de tubería", got[0].Name)
}

// ─── demoCatalog ─────────────────────────────────────────────────────────────

func TestDemoCatalog(t *testing.T) {
	got := demoCatalog(gofakeit.New(42), 5)
	require.Len(t, got, 5)
	for i, req := range got {
		assert.NotEmpty(t, req.Name)
		assert.True(t, entity.AssetKind(req.Kind).Valid())
		assert.GreaterOrEqual(t, req.StockTotal, 1)
		assert.Equal(t, i+1, indexFromSKU(t, req.SKU))
	}
}

func indexFromSKU(t *testing.T, sku string) int {
	t.Helper()
	var n int
	_, err := fmt.Sscanf(sku, "DEMO-%04d", &n)
	require.NoError(t, err)
	return n
}
