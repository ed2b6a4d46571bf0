// Package report renders spreadsheets.
package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/homewiz/homewiz-backend/internal/usecase"
)

const (
	RentRollSheet = "Rent Roll"
	SummarySheet  = "Summary"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var RentRollHeader = []string{
	"Building ID",
	"Room ID",
	"Room Number",
	"Floor",
	"Status",
	"Monthly Rent",
	"Tenant ID",
	"Tenant Name",
	"Lease Start",
	"Lease End",
	"Payment Status",
	"Extra Active Tenants",
}

var SummaryHeader = []string{
	"Building ID",
	"Building Name",
	"Rooms",
	"Occupied",
	"Occupancy",
	"Potential Rent",
	"Occupied Rent",
}

// GenerateRentRoll renders the rent roll as an xlsx workbook with a room
// sheet and a per-building summary sheet.
func GenerateRentRoll(rr *usecase.RentRoll) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(RentRollSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	moneyFormat := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFormat})
	if err != nil {
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}
	percentStyle, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	if err != nil {
		return nil, fmt.Errorf("failed to create percent style: %w", err)
	}

	if err := writeHeader(f, RentRollSheet, RentRollHeader, headerStyle); err != nil {
		return nil, err
	}
	for i, row := range rr.Rows {
		values := []any{
			row.Room.BuildingID,
			row.Room.RoomID,
			row.Room.RoomNumber,
			row.Room.FloorNumber,
			string(row.Room.Status),
			row.Room.Rent,
			"", "", "", "", "",
			row.ExtraTenants,
		}
		if t := row.Tenant; t != nil {
			values[6] = t.TenantID
			values[7] = t.Name
			values[8] = t.LeaseStart.String()
			values[9] = t.LeaseEnd.String()
			values[10] = string(t.PaymentStatus)
		}
		if err := writeRow(f, RentRollSheet, i+2, values); err != nil {
			return nil, err
		}
	}
	if n := len(rr.Rows); n > 0 {
		if err := f.SetCellStyle(RentRollSheet, "F2", fmt.Sprintf("F%d", n+1), moneyStyle); err != nil {
			return nil, fmt.Errorf("failed to set money style: %w", err)
		}
	}

	if err := writeHeader(f, SummarySheet, SummaryHeader, headerStyle); err != nil {
		return nil, err
	}
	for i, s := range rr.Summaries {
		values := []any{s.BuildingID, s.BuildingName, s.Rooms, s.Occupied, s.OccupancyRate(), s.PotentialRent, s.OccupiedRent}
		if err := writeRow(f, SummarySheet, i+2, values); err != nil {
			return nil, err
		}
	}
	if n := len(rr.Summaries); n > 0 {
		last := n + 1
		if err := f.SetCellStyle(SummarySheet, "E2", fmt.Sprintf("E%d", last), percentStyle); err != nil {
			return nil, fmt.Errorf("failed to set percent style: %w", err)
		}
		if err := f.SetCellStyle(SummarySheet, "F2", fmt.Sprintf("G%d", last), moneyStyle); err != nil {
			return nil, fmt.Errorf("failed to set money style: %w", err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheet, name, name, float64(len(header)+6)); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}
