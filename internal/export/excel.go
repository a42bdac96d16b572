// Package export renders an office's schedule and a day's slot grid to an
// xlsx workbook for the admin dashboard's download action.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"vanrent/internal/model"
	"vanrent/internal/slots"
)

// ScheduleWorkbook builds a workbook with the office's weekly hours, its
// special days and the slot grid for the requested date.
func ScheduleWorkbook(office *model.Office, date time.Time, day slots.DaySlots) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeWeeklySheet(f, office); err != nil {
		return nil, err
	}
	if err := writeSpecialDaysSheet(f, office); err != nil {
		return nil, err
	}
	if err := writeSlotsSheet(f, date, day); err != nil {
		return nil, err
	}

	return f, nil
}

func writeWeeklySheet(f *excelize.File, office *model.Office) error {
	const sheet = "Weekly hours"
	f.SetSheetName("Sheet1", sheet)

	if err := writeHeader(f, sheet, []string{"Day", "Open", "Start", "End", "Pickup extension", "Return extension"}); err != nil {
		return err
	}

	row := 2
	for _, wd := range office.WorkingDays {
		values := []any{
			string(wd.Day),
			wd.IsOpen,
			wd.StartTime,
			wd.EndTime,
			formatExtension(wd.PickupExtension),
			formatExtension(wd.ReturnExtension),
		}
		if err := writeRow(f, sheet, row, values); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writeSpecialDaysSheet(f *excelize.File, office *model.Office) error {
	const sheet = "Special days"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	if err := writeHeader(f, sheet, []string{"Month", "Day", "Open", "Start", "End", "Reason"}); err != nil {
		return err
	}

	row := 2
	for _, sp := range office.SpecialDays {
		values := []any{sp.Month, sp.Day, sp.IsOpen, sp.StartTime, sp.EndTime, sp.Reason}
		if err := writeRow(f, sheet, row, values); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writeSlotsSheet(f *excelize.File, date time.Time, day slots.DaySlots) error {
	sheet := "Slots " + date.Format("2006-01-02")
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	if err := writeHeader(f, sheet, []string{"Time", "Status"}); err != nil {
		return err
	}

	if !day.HasSlots() {
		return writeRow(f, sheet, 2, []any{"", day.Window.Info})
	}

	row := 2
	for _, s := range day.Slots {
		status := "available"
		if s.Reserved {
			status = "reserved"
		}
		if err := writeRow(f, sheet, row, []any{s.Time, status}); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, columns []string) error {
	if err := writeRow(f, sheet, 1, toAny(columns)); err != nil {
		return err
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, 1)
		endCell, _ := excelize.CoordinatesToCellName(len(columns), 1)
		_ = f.SetCellStyle(sheet, startCell, endCell, style)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, val := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, val); err != nil {
			return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func formatExtension(ext *model.Extension) string {
	if ext.IsZero() {
		return ""
	}
	return fmt.Sprintf("-%dh/+%dh @ %.2f", ext.HoursBefore, ext.HoursAfter, ext.FlatPrice)
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
