// Package pdf genera el reporte de inventario descargable desde el dashboard.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: The Backroom + negocio  │  Fecha de generación     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Artículo | Cantidad | Unidad | Última actualización │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de artículos                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/tu-usuario/backroom/internal/application/ports"
	"github.com/tu-usuario/backroom/internal/domain/entity"
)

var _ ports.ReportGenerator = (*InventoryReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 20, Green: 83, Blue: 45}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// InventoryReportGenerator genera el PDF del inventario usando Maroto v2.
type InventoryReportGenerator struct{}

// NewInventoryReportGenerator construye el generador.
func NewInventoryReportGenerator() *InventoryReportGenerator { return &InventoryReportGenerator{} }

// GenerateInventoryReport genera el PDF y devuelve sus bytes.
func (g *InventoryReportGenerator) GenerateInventoryReport(
	_ context.Context,
	businessName string,
	items []*entity.InventoryItem,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Inventory Report", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(businessName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(items)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: marca + negocio (izq) y fecha de generación (der).
func headerRow(businessName string) core.Row {
	if businessName == "" {
		businessName = "Inventory"
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New("The Backroom", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(businessName, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INVENTORY REPORT", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generated: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Item", 5, align.Left),
		h("Quantity", 2, align.Right),
		h("Unit", 2, align.Left),
		h("Last Updated", 3, align.Right),
	)
}

func tableItemRows(items []*entity.InventoryItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		updated := ""
		if !it.UpdatedAt.IsZero() {
			updated = it.UpdatedAt.Format("02/01/2006 15:04")
		}
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(
				it.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				it.Quantity.String(),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				it.Unit,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				updated,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorGray},
			)),
		))
	}
	return result
}

func footerRow(total int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%d items in stock", total), props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 2, Color: colorGray,
		}),
	))
}
