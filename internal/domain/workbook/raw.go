package workbook

import "strings"

// RawTable is a sheet as stored: a header row and string cells. Short rows are
// padded with blanks on read.
type RawTable struct {
	Name   string
	Header []string
	Rows   [][]string
}

// RawWorkbook is the set of sheets the persistence adapter hands to Normalize.
// Missing sheets are nil.
type RawWorkbook struct {
	Bookings     *RawTable
	MonthlyCosts *RawTable
	Consumables  *RawTable
}

type row struct {
	cells []string
	index map[string]int
}

func (r row) get(column string) string {
	i, ok := r.index[column]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

func (r row) has(column string) bool {
	_, ok := r.index[column]
	return ok
}

func columnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		if h == "" {
			continue
		}
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	return index
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
