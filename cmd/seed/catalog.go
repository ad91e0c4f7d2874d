package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/control-activos/internal/application/dto"
	"github.com/jhoicas/control-activos/internal/domain/entity"
)

// Columnas esperadas en el CSV de catálogo (la cabecera es obligatoria, el orden no).
var catalogColumns = []string{"sku", "nombre", "tipo_activo", "stock_total", "bodega", "estante", "descripcion"}

// catalogReader envuelve r con el decodificador ISO-8859-1 cuando el archivo viene de Excel en Latin-1.
func catalogReader(r io.Reader, latin1 bool) io.Reader {
	if latin1 {
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	return r
}

// parseCatalog lee el CSV y devuelve una solicitud de alta por fila.
// Acepta ',' o ';' como separador según la cabecera.
func parseCatalog(r io.Reader) ([]dto.CreateAssetRequest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	text := strings.TrimPrefix(string(data), "\ufeff")

	cr := csv.NewReader(strings.NewReader(text))
	firstLine, _, _ := strings.Cut(text, "\n")
	if strings.Count(firstLine, ";") > strings.Count(firstLine, ",") {
		cr.Comma = ';'
	}
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range catalogColumns[:4] {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("falta la columna %q", col)
		}
	}

	field := func(rec []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []dto.CreateAssetRequest
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if field(rec, "sku") == "" {
			continue
		}
		stock, err := strconv.Atoi(field(rec, "stock_total"))
		if err != nil || stock < 0 {
			return nil, fmt.Errorf("línea %d: stock_total inválido %q", line, field(rec, "stock_total"))
		}
		kind := normalizeKind(field(rec, "tipo_activo"))
		if !kind.Valid() {
			return nil, fmt.Errorf("línea %d: tipo_activo desconocido %q", line, field(rec, "tipo_activo"))
		}
		out = append(out, dto.CreateAssetRequest{
			SKU:         field(rec, "sku"),
			Name:        field(rec, "nombre"),
			Kind:        string(kind),
			Description: field(rec, "descripcion"),
			StockTotal:  stock,
			Location: dto.LocationDTO{
				Warehouse: field(rec, "bodega"),
				Shelf:     field(rec, "estante"),
			},
		})
	}
	return out, nil
}

func normalizeKind(s string) entity.AssetKind {
	switch strings.ToLower(s) {
	case "herramienta":
		return entity.AssetKindTool
	case "material":
		return entity.AssetKindMaterial
	}
	return entity.AssetKind(s)
}

// demoCatalog genera n activos ficticios para ambientes de desarrollo.
func demoCatalog(f *gofakeit.Faker, n int) []dto.CreateAssetRequest {
	out := make([]dto.CreateAssetRequest, 0, n)
	for i := 0; i < n; i++ {
		kind := entity.AssetKindTool
		if f.Bool() {
			kind = entity.AssetKindMaterial
		}
		out = append(out, dto.CreateAssetRequest{
			SKU:         fmt.Sprintf("DEMO-%04d", i+1),
			Name:        f.ProductName(),
			Kind:        string(kind),
			Description: f.ProductDescription(),
			StockTotal:  f.IntRange(1, 25),
			Location: dto.LocationDTO{
				Warehouse: "Bodega " + f.RandomString([]string{"Central", "Norte", "Obra"}),
				Shelf:     fmt.Sprintf("E-%02d", f.IntRange(1, 30)),
			},
		})
	}
	return out
}
