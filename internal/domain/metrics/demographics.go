package metrics

import (
	"sort"

	"lynx/internal/domain/workbook"
)

type countryStats struct {
	name     string
	bookings int
	revenue  float64
	nights   int
}

// countries groups the view slice by country, alphabetically. Rows without a
// country are left out.
func (c *calc) countries() []countryStats {
	idx := make(map[string]int)
	var out []countryStats
	for _, b := range c.view {
		if b.Country == "" {
			continue
		}
		i, ok := idx[b.Country]
		if !ok {
			i = len(out)
			idx[b.Country] = i
			out = append(out, countryStats{name: b.Country})
		}
		out[i].bookings++
		out[i].revenue += b.Revenue
		out[i].nights += b.Nights
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func (c *calc) demographics() {
	if len(c.view) == 0 || !c.cols.HasBookingColumn(workbook.ColCountry) {
		return
	}
	stats := c.countries()
	if len(stats) == 0 {
		return
	}

	byBookings := top(stats, 5, func(s countryStats) float64 { return float64(s.bookings) })
	byRevenue := top(stats, 5, func(s countryStats) float64 { return s.revenue })
	c.set.add(KeyTopCountriesBookings, Ranking("%s (%.0f)", byBookings))
	c.set.add(KeyTopCountriesRevenue, Ranking("%s (€%.0f)", byRevenue))

	avgRevenue := make([]RankEntry, len(stats))
	avgStay := make([]RankEntry, len(stats))
	for i, s := range stats {
		avgRevenue[i] = RankEntry{Name: s.name, Value: s.revenue / float64(s.bookings)}
		avgStay[i] = RankEntry{Name: s.name, Value: float64(s.nights) / float64(s.bookings)}
	}
	c.set.add(KeyAvgRevenueByCountry, Ranking("%s (€%.2f)", avgRevenue))
	c.set.add(KeyAvgStayByCountry, Ranking("%s (%.2f)", avgStay))
}

// top returns the n largest rows by score; ties keep the alphabetical order.
func top(stats []countryStats, n int, score func(countryStats) float64) []RankEntry {
	sorted := append([]countryStats(nil), stats...)
	sort.SliceStable(sorted, func(i, j int) bool { return score(sorted[i]) > score(sorted[j]) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	out := make([]RankEntry, len(sorted))
	for i, s := range sorted {
		out[i] = RankEntry{Name: s.name, Value: score(s)}
	}
	return out
}
