package xlsx

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"lynx/internal/domain/booking"
	"lynx/internal/domain/shared/money"
	"lynx/internal/domain/workbook"
)

// writeTracker builds a small tracker file the way a spreadsheet program
// stores it: dates as date cells, numbers as numbers, plus an unrelated sheet.
func writeTracker(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Notes"))
	require.NoError(t, f.SetCellValue("Notes", "A1", "keep me"))

	_, err := f.NewSheet(workbook.SheetBookings)
	require.NoError(t, err)
	rows := [][]any{
		{"Check-in date", "Check-out date", "Booker name", "Country", "Platform", "Adults", "Children", "Revenue for stay (€)", "Laundry (€)"},
		{time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), "Marko", "Serbia", "Booking.com", 2, 0, 176, 5},
		{},
		{"2024-01-05", "2024-01-09", "Ana", "Germany", "Airbnb", 2, 1, 400.5, 5},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(workbook.SheetBookings, cell, &r))
	}

	_, err = f.NewSheet(workbook.SheetMonthlyCosts)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(workbook.SheetMonthlyCosts, "A1", &[]any{"Year", "Month", "Electricity (den)", "Internet (€)"}))
	require.NoError(t, f.SetSheetRow(workbook.SheetMonthlyCosts, "A2", &[]any{2024, 1, 6151, 20}))

	_, err = f.NewSheet(workbook.SheetConsumablesAlt)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(workbook.SheetConsumablesAlt, "A1", &[]any{"Item", "Unit Price (MKD)", "Units per Stay"}))
	require.NoError(t, f.SetSheetRow(workbook.SheetConsumablesAlt, "A2", &[]any{"Soap", 50, 2}))

	path := filepath.Join(t.TempDir(), "tracker.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadConvertsDateSerialsAndPadsRows(t *testing.T) {
	path := writeTracker(t)

	raw, err := Read(path)
	require.NoError(t, err)
	require.NotNil(t, raw.Bookings)
	require.NotNil(t, raw.MonthlyCosts)
	require.NotNil(t, raw.Consumables)
	assert.Equal(t, workbook.SheetConsumablesAlt, raw.Consumables.Name)

	require.Len(t, raw.Bookings.Rows, 3)
	first := raw.Bookings.Rows[0]
	assert.Len(t, first, len(raw.Bookings.Header))
	assert.Equal(t, "2024-03-10", first[0])
	assert.Equal(t, "2024-03-12", first[1])
	assert.Equal(t, make([]string, len(raw.Bookings.Header)), raw.Bookings.Rows[1])
	assert.Equal(t, "2024-01-05", raw.Bookings.Rows[2][0], "text dates pass through")
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorIs(t, err, ErrWorkbookNotFound)
}

func TestSerialToDate(t *testing.T) {
	assert.Equal(t, "2024-03-10", serialToDate("45361"))
	assert.Equal(t, "10/03/2024", serialToDate("10/03/2024"))
	assert.Equal(t, "", serialToDate(""))
}

func TestRepositoryRoundTripKeepsOtherSheets(t *testing.T) {
	path := writeTracker(t)
	repo := NewRepository(path, money.DefaultRate, NewCache(), nil)
	ctx := context.Background()

	snap, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Workbook.Bookings, 2)
	assert.Equal(t, "Ana", snap.Workbook.Bookings[0].GuestName)
	assert.Equal(t, booking.PlatformBookingCom, snap.Workbook.Bookings[1].Platform)
	assert.Equal(t, 1, snap.Report.EmptyRows)

	wb := snap.Workbook
	wb.AppendBooking(booking.Booking{
		CheckIn:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:  time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC),
		GuestName: "Lena",
		Country:   "Austria",
		Platform:  booking.PlatformAirbnb,
		Revenue:   210,
		Nights:    2,
		Month:     4,
		Year:      2024,
	}, time.Now())
	require.NoError(t, repo.Save(ctx, wb))

	reloaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, reloaded.Workbook.Bookings, 3)
	assert.Equal(t, "Lena", reloaded.Workbook.Bookings[2].GuestName)
	assert.Equal(t, "2024-04-01", reloaded.Workbook.Bookings[2].CheckIn.Format(time.DateOnly))
	assert.InDelta(t, 400.5, reloaded.Workbook.Bookings[0].Revenue, 1e-9)
	require.Len(t, reloaded.Workbook.Consumables.Items, 1)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	note, err := f.GetCellValue("Notes", "A1")
	require.NoError(t, err)
	assert.Equal(t, "keep me", note)
	idx, err := f.GetSheetIndex(workbook.SheetConsumablesAlt)
	require.NoError(t, err)
	assert.Equal(t, -1, idx, "legacy consumables sheet replaced by the canonical one")
}

func TestWriteCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.xlsx")
	raw := workbook.RawWorkbook{Bookings: &workbook.RawTable{
		Name:   workbook.SheetBookings,
		Header: []string{workbook.ColCheckIn, workbook.ColGuestName},
		Rows:   [][]string{{"2024-05-01", "Iva"}},
	}}
	require.NoError(t, Write(path, raw))

	got, err := Read(path)
	require.NoError(t, err)
	require.NotNil(t, got.Bookings)
	assert.Equal(t, [][]string{{"2024-05-01", "Iva"}}, got.Bookings.Rows)
	assert.Nil(t, got.MonthlyCosts)
}

func TestCacheReusesUntilInvalidated(t *testing.T) {
	path := writeTracker(t)
	cache := NewCache()
	loads := 0
	load := func() (workbook.Snapshot, error) {
		loads++
		return workbook.Snapshot{}, nil
	}

	_, hit, err := cache.Get(path, load)
	require.NoError(t, err)
	assert.False(t, hit)
	_, hit, err = cache.Get(path, load)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, loads)

	cache.Invalidate(path)
	assert.Zero(t, cache.Len())
	_, _, err = cache.Get(path, load)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}
