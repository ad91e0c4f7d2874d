// Package pdf genera el comprobante imprimible de un movimiento del libro (salida, devolución
// o entrada inicial) para firma de quien entrega y quien recibe.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + tipo de movimiento │  N° + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  REGISTRA: nombre + rol                                      │
//	│  RECIBE: usuario interno o visitante                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | SKU | Activo                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  OBSERVACIONES                                               │
//	│  FIRMAS: entrega │ recibe          QR con el id del mov.     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/control-activos/internal/application/usecase"
	"github.com/jhoicas/control-activos/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ usecase.VoucherGenerator = (*VoucherGenerator)(nil)

// VoucherGenerator implementa usecase.VoucherGenerator usando Maroto v2.
type VoucherGenerator struct {
	org string
}

// NewVoucherGenerator construye el generador. org es el nombre que va en el encabezado.
func NewVoucherGenerator(org string) *VoucherGenerator { return &VoucherGenerator{org: org} }

// GenerateVoucher genera el PDF y devuelve sus bytes.
func (g *VoucherGenerator) GenerateVoucher(_ context.Context, data usecase.VoucherData) ([]byte, error) {
	if data.Movement == nil {
		return nil, fmt.Errorf("pdf: movimiento requerido")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de movimiento", true).
		WithAuthor(g.org, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.org, data.Movement))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(issuerRow(data.Issuer))
	m.AddRows(recipientRow(data.Movement, data.RecipientUser))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(data.Lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if data.Movement.Notes != "" {
		m.AddRows(notesRows(data.Movement.Notes)...)
	}
	m.AddRows(row.New(15))
	m.AddRows(signatureRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: organización + tipo (izq) y número corto + fecha (der).
func headerRow(org string, mov *entity.Movement) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(org, "Control de Activos"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("COMPROBANTE DE "+movementTitle(mov.Type), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("N° "+shortID(mov.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+mov.Date.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// issuerRow: quien registra el movimiento.
func issuerRow(issuer *entity.User) core.Row {
	name, role := "Usuario eliminado", "-"
	if issuer != nil {
		name, role = issuer.FullName, issuer.Role
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("REGISTRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Rol: %s", name, role), props.Text{Size: 9, Top: 6}),
		),
	)
}

// recipientRow: quien recibe; solo en salidas.
func recipientRow(mov *entity.Movement, user *entity.User) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("RECIBE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(recipientLabel(mov.Recipient, user), props.Text{Size: 9, Top: 6}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de activos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("SKU", 3, align.Left),
		h("Activo", 7, align.Left),
	)
}

// tableDetailRows: una fila por línea del movimiento.
func tableDetailRows(lines []usecase.VoucherLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(strconv.Itoa(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(nonEmpty(l.SKU, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(7).Add(text.New(nonEmpty(l.Name, "Activo eliminado"), props.Text{Size: 8, Top: 1, Left: 1})),
		))
	}
	return result
}

func notesRows(notes string) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("OBSERVACIONES", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
		row.New(10).Add(col.New(12).Add(
			text.New(notes, props.Text{Size: 8, Top: 1, Color: colorGray}),
		)),
	}
}

// signatureRow: líneas de firma y QR con el id completo del movimiento.
func signatureRow(data usecase.VoucherData) core.Row {
	sign := func(title string, u *entity.User, fallback string) core.Col {
		name := fallback
		signature := ""
		if u != nil {
			name, signature = u.FullName, u.Signature
		}
		return col.New(4).Add(
			text.New(signature, props.Text{Size: 8, Align: align.Center, Top: 4, Style: fontstyle.Italic}),
			text.New("______________________________", props.Text{Size: 8, Align: align.Center, Top: 10}),
			text.New(title+": "+name, props.Text{Size: 8, Align: align.Center, Top: 15}),
		)
	}
	recipientName := recipientLabel(data.Movement.Recipient, data.RecipientUser)
	return row.New(35).Add(
		sign("Entrega", data.Issuer, "-"),
		sign("Recibe", data.RecipientUser, recipientName),
		col.New(4).Add(code.NewQr(data.Movement.ID, props.Rect{Percent: 80, Center: true})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func movementTitle(t entity.MovementType) string {
	switch t {
	case entity.MovementTypeIssueUse:
		return "SALIDA (USO)"
	case entity.MovementTypeIssueRent:
		return "SALIDA (RENTA)"
	case entity.MovementTypeReturn:
		return "DEVOLUCIÓN"
	case entity.MovementTypeInitialEntry:
		return "ENTRADA INICIAL"
	}
	return string(t)
}

// recipientLabel nombre a imprimir para el destinatario.
func recipientLabel(r entity.Recipient, user *entity.User) string {
	switch r.Kind() {
	case entity.RecipientInternal:
		if user != nil {
			return user.FullName
		}
		return "Usuario eliminado"
	case entity.RecipientVisitor:
		return r.DisplayName() + " (visitante)"
	}
	return "N/A"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
