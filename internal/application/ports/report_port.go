package ports

import (
	"context"

	"github.com/tu-usuario/backroom/internal/domain/entity"
)

// ReportGenerator genera el reporte PDF del inventario para el dashboard.
type ReportGenerator interface {
	GenerateInventoryReport(ctx context.Context, businessName string, items []*entity.InventoryItem) ([]byte, error)
}
