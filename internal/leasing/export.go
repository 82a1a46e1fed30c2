package leasing

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var (
	TenantExportHeader    = []any{"Tenant ID", "Name", "Email", "Phone"}
	ApartmentExportHeader = []any{"Apartment Number", "Type", "Rent", "Occupancy", "Check-in Date", "Check-out Date"}
	LeaseExportHeader     = []any{"Lease ID", "Tenant ID", "Apartment Number", "Check-in Date", "Check-out Date"}
)

type exportSheet struct {
	name   string
	header []any
	rows   [][]any
}

// Export writes every tenant, apartment and lease to an xlsx workbook, one
// sheet each.
func Export(ctx context.Context, store *Store) ([]byte, error) {
	tenants, err := store.ListTenants(ctx)
	if err != nil {
		return nil, err
	}
	apartments, err := store.ListApartments(ctx)
	if err != nil {
		return nil, err
	}
	leases, err := store.ListLeases(ctx)
	if err != nil {
		return nil, err
	}

	sheets := []exportSheet{
		{name: "Tenants", header: TenantExportHeader},
		{name: "Apartments", header: ApartmentExportHeader},
		{name: "Leases", header: LeaseExportHeader},
	}
	for _, t := range tenants {
		sheets[0].rows = append(sheets[0].rows, []any{t.TenantID, t.Name, t.Email, t.Phone})
	}
	for _, a := range apartments {
		sheets[1].rows = append(sheets[1].rows, []any{
			a.ApartmentNumber, a.ApartmentType, a.Rent, a.Occupancy,
			FormatDate(a.CheckInDate), FormatDate(a.CheckOutDate),
		})
	}
	for _, l := range leases {
		sheets[2].rows = append(sheets[2].rows, []any{
			l.LeaseID, l.TenantID, l.ApartmentNumber,
			FormatDate(&l.CheckInDate), FormatDate(&l.CheckOutDate),
		})
	}

	return writeWorkbook(sheets)
}

func writeWorkbook(sheets []exportSheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
		}

		if err := f.SetSheetRow(sheet.name, "A1", &sheet.header); err != nil {
			return nil, fmt.Errorf("failed to write %s header: %w", sheet.name, err)
		}
		lastHeader, err := excelize.CoordinatesToCellName(len(sheet.header), 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellStyle(sheet.name, "A1", lastHeader, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set %s header style: %w", sheet.name, err)
		}

		for r, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
				return nil, fmt.Errorf("failed to write %s row %d: %w", sheet.name, r+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
