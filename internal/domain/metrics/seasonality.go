package metrics

import (
	"fmt"
	"sort"
	"time"
)

// monthTotal is one (year, month) bucket of the view slice.
type monthTotal struct {
	year    int
	month   int
	revenue float64
	profit  float64
}

func (m monthTotal) label() string {
	return fmt.Sprintf("%s %d", time.Month(m.month).String()[:3], m.year)
}

// monthly groups the view slice by check-in year and month, oldest first.
func (c *calc) monthly() []monthTotal {
	idx := make(map[int]int)
	var out []monthTotal
	for _, b := range c.view {
		if b.Month < 1 || b.Month > 12 {
			continue
		}
		k := b.YearMonth()
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, monthTotal{year: b.Year, month: b.Month})
		}
		out[i].revenue += b.Revenue
		out[i].profit += b.NetBeforeFixed
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].year != out[j].year {
			return out[i].year < out[j].year
		}
		return out[i].month < out[j].month
	})
	return out
}

func meanRevenue(months []monthTotal) float64 {
	if len(months) == 0 {
		return 0
	}
	var s float64
	for _, m := range months {
		s += m.revenue
	}
	return s / float64(len(months))
}

func (c *calc) seasonality() {
	months := c.monthly()
	n := len(months)

	best, worst := "N/A", "N/A"
	if n > 0 {
		hi, lo := 0, 0
		for i, m := range months {
			if m.revenue > months[hi].revenue {
				hi = i
			}
			if m.revenue < months[lo].revenue {
				lo = i
			}
		}
		best, worst = months[hi].label(), months[lo].label()
	}
	c.set.add(KeyBestMonthRevenue, Text(best))
	if n > 0 {
		top := 0
		for i, m := range months {
			if m.profit > months[top].profit {
				top = i
			}
		}
		c.set.add(KeyBestMonthProfit, Text(months[top].label()))
	}
	c.set.add(KeyWorstMonthRevenue, Text(worst))

	mean := meanRevenue(months)
	simple := mean * 12
	c.set.add(KeyForecastRevenue, Scalar(simple))

	weighted := simple
	if n >= 6 {
		recent := meanRevenue(months[n-6:])
		older := recent
		if n > 6 {
			older = meanRevenue(months[:n-6])
		}
		weighted = (recent*0.6 + older*0.4) * 12
	}
	if weighted > 0 {
		c.set.add(KeyForecastWeighted, Scalar(weighted))
		if c.fixedKnown && c.t.revenue > 0 {
			margin := c.netProfit() / c.t.revenue * 100
			c.set.add(KeyForecastProfit, Scalar(weighted*margin/100))
		}
	}

	if n >= 2 {
		// A month with no revenue before it reports 0 here, which means
		// "no base to compare", not an unchanged month.
		cur, prev := months[n-1].revenue, months[n-2].revenue
		c.set.add(KeyMoMChange, Scalar(ratio(cur-prev, prev)*100))
	}
	if n > 0 {
		c.set.add(KeyYoYChange, Scalar(c.yearOverYear(months)))
	}
	if n >= 3 {
		c.set.add(KeyMovingAvg3M, Scalar(meanRevenue(months[n-3:])))
	}
	if n > 0 && mean > 0 {
		c.set.add(KeySeasonalIndex, Scalar(seasonalIndex(months, mean)))
	}
}

func (c *calc) yearOverYear(months []monthTotal) float64 {
	hint := c.in.YearHint
	if hint == 0 {
		return 0
	}
	var cur, prev float64
	for _, m := range months {
		switch m.year {
		case hint:
			cur += m.revenue
		case hint - 1:
			prev += m.revenue
		}
	}
	if prev <= 0 {
		return 0
	}
	return (cur - prev) / prev * 100
}

// seasonalIndex averages, over the calendar months present, each month's mean
// revenue relative to the overall monthly mean (100 = average).
func seasonalIndex(months []monthTotal, mean float64) float64 {
	var sums [13]float64
	var counts [13]int
	for _, m := range months {
		sums[m.month] += m.revenue / mean * 100
		counts[m.month]++
	}
	var total float64
	present := 0
	for mo := 1; mo <= 12; mo++ {
		if counts[mo] == 0 {
			continue
		}
		total += sums[mo] / float64(counts[mo])
		present++
	}
	return ratio(total, float64(present))
}
