package workbook

import (
	"math"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02.01.2006",
	"02-01-2006",
	"02/01/2006",
	"01-02-06",
	"1/2/06",
	"1/2/2006",
}

// parseDate accepts ISO dates (what the xlsx adapter emits) and the day-first
// layouts operators type by hand.
func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

type cellState int

const (
	cellEmpty cellState = iota
	cellOK
	cellBad
)

func parseNumber(raw string) (float64, cellState) {
	if raw == "" {
		return 0, cellEmpty
	}
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSuffix(raw, "€"), "€"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		v, err = strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	}
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, cellBad
	}
	return v, cellOK
}

func parseInt(raw string) (int, cellState) {
	v, st := parseNumber(raw)
	if st != cellOK {
		return 0, st
	}
	return int(math.Round(v)), cellOK
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
