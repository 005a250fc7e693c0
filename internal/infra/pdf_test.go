package infra

import (
	"os"
	"path/filepath"
	"testing"

	"routevendor/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateShiftReportPDF(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	report := &dto.ShiftReport{
		WorkDayID:            "wd-1",
		RouteName:            "Centro",
		StartDate:            "02/03/2026 08:00",
		FinishDate:           "02/03/2026 17:00",
		StartPettyCash:       decimal.NewFromInt(500),
		FinalPettyCash:       decimal.NewFromInt(900),
		TransaccionesActivas: 1,
		VentasPorMetodo:      map[string]decimal.Decimal{"cash": decimal.NewFromInt(400)},
		TotalVentas:          decimal.NewFromInt(400),
		Inventarios: []dto.ShiftReportInventory{
			{ID: "inv-1", Tipo: "start_shift_inventory", Estado: "activa", Date: "08:05", Lineas: 2},
		},
		Stock: []dto.StockResponse{{ID: "pi-1", ProductID: "p-1", Price: decimal.NewFromInt(20), Stock: 8}},
	}

	path, err := GenerateShiftReportPDF(report, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "shift_wd-1.pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
