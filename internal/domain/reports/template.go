package reports

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"lynx/internal/domain/metrics"
)

var (
	ErrInvalidTemplate  = errors.New("reports: invalid template")
	ErrBuiltInProtected = errors.New("reports: built-in templates cannot be changed")
	ErrTemplateNotFound = errors.New("reports: template not found")
)

// ChartKind names a chart a template can request.
type ChartKind string

const (
	ChartMonthlyRevenueLine      ChartKind = "monthly_revenue_line"
	ChartPlatformComparisonBar   ChartKind = "platform_comparison_bar"
	ChartPlatformComparisonTable ChartKind = "platform_comparison_table"
	ChartCostBreakdownPie        ChartKind = "cost_breakdown_pie"
	ChartRevenueHeatmap          ChartKind = "revenue_heatmap"
)

var ChartKinds = []ChartKind{
	ChartMonthlyRevenueLine,
	ChartPlatformComparisonBar,
	ChartPlatformComparisonTable,
	ChartCostBreakdownPie,
	ChartRevenueHeatmap,
}

// Filters are the defaults a template suggests to the period picker.
type Filters struct {
	PeriodType string `json:"period_type,omitempty" bson:"period_type,omitempty"`
	Platform   string `json:"platform,omitempty" bson:"platform,omitempty"`
}

type Template struct {
	Name        string   `json:"name" bson:"name" validate:"required"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Metrics     []string `json:"metrics" bson:"metrics" validate:"required"`
	Filters     Filters  `json:"filters" bson:"filters"`
	Charts      []string `json:"charts" bson:"charts"`
	BuiltIn     bool     `json:"is_builtin" bson:"is_builtin"`
}

// Validate checks a user template before it is saved.
func (t Template) Validate() error {
	var problems []string
	if strings.TrimSpace(t.Name) == "" {
		problems = append(problems, "name is required")
	}
	if t.Metrics == nil {
		problems = append(problems, "metrics are required")
	}
	if t.Filters.Platform != "" {
		if _, err := metrics.ParseView(t.Filters.Platform); err != nil {
			problems = append(problems, fmt.Sprintf("unknown platform %q", t.Filters.Platform))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTemplate, strings.Join(problems, "; "))
	}
	return nil
}

var builtIns = []Template{
	{
		Name:        "Monthly Performance Summary",
		Description: "Core KPIs for a selected month or date range",
		Metrics: []string{
			metrics.KeyReservations,
			metrics.KeyTotalNights,
			metrics.KeyTotalRevenue,
			metrics.KeyNetProfit,
			metrics.KeyOccupancy,
			metrics.KeyAvgPricePerNight,
			metrics.KeyRevPAR,
			metrics.KeyADR,
			metrics.KeyProfitMargin,
		},
		Filters: Filters{PeriodType: "month_year", Platform: string(metrics.ViewOverall)},
		Charts:  []string{string(ChartMonthlyRevenueLine)},
	},
	{
		Name:        "Platform Comparison",
		Description: "Compare Airbnb vs Booking.com performance",
		Metrics: []string{
			metrics.KeyAirbnbRevenue,
			metrics.KeyBookingRevenue,
			metrics.KeyAirbnbNights,
			metrics.KeyBookingNights,
			metrics.KeyAirbnbADR,
			metrics.KeyBookingADR,
			metrics.KeyAirbnbRevPAR,
			metrics.KeyBookingRevPAR,
			metrics.KeyPlatformProfitDiff,
			metrics.KeyAirbnbShare,
			metrics.KeyBookingShare,
		},
		Filters: Filters{PeriodType: "date_range", Platform: string(metrics.ViewOverall)},
		Charts:  []string{string(ChartPlatformComparisonBar), string(ChartPlatformComparisonTable)},
	},
	{
		Name:        "Profitability & Cost Breakdown",
		Description: "Detailed profitability analysis with cost breakdown",
		Metrics: []string{
			metrics.KeyProfitMargin,
			metrics.KeyProfitPerNight,
			metrics.KeyProfitPerStay,
			metrics.KeyCostPerReservation,
			metrics.KeyAvgCostPerNight,
			metrics.KeyVariableFixedRatio,
			metrics.KeyTotalFixedCosts,
			metrics.KeyTotalPerStay,
			metrics.KeyTransportPerStay,
			metrics.KeyLaundryPerStay,
			metrics.KeyConsumablePerStay,
			metrics.KeyBankFeesPerStay,
		},
		Filters: Filters{PeriodType: "date_range", Platform: string(metrics.ViewOverall)},
		Charts:  []string{string(ChartCostBreakdownPie)},
	},
	{
		Name:        "Seasonality & Trends",
		Description: "Revenue trends and seasonality analysis",
		Metrics: []string{
			metrics.KeyBestMonthRevenue,
			metrics.KeyWorstMonthRevenue,
			metrics.KeyMoMChange,
			metrics.KeyYoYChange,
			metrics.KeyMovingAvg3M,
			metrics.KeySeasonalIndex,
			metrics.KeyForecastRevenue,
			metrics.KeyForecastWeighted,
		},
		Filters: Filters{PeriodType: "date_range", Platform: string(metrics.ViewOverall)},
		Charts:  []string{string(ChartMonthlyRevenueLine), string(ChartRevenueHeatmap)},
	},
	{
		Name:        "Guest Profile Snapshot",
		Description: "Guest demographics and behavior insights",
		Metrics: []string{
			metrics.KeyAvgGroupSize,
			metrics.KeyBabyCribUsage,
			metrics.KeySofaBedUsage,
			metrics.KeyParkingUsage,
			metrics.KeyTopCountriesBookings,
			metrics.KeyTopCountriesRevenue,
			metrics.KeyAvgRevenuePerStay,
			metrics.KeyRevenuePerGuest,
		},
		Filters: Filters{PeriodType: "date_range", Platform: string(metrics.ViewOverall)},
		Charts:  []string{},
	},
}

// BuiltIns returns copies of the shipped templates in presentation order.
func BuiltIns() []Template {
	out := make([]Template, len(builtIns))
	for i, t := range builtIns {
		t.Metrics = append([]string(nil), t.Metrics...)
		t.Charts = append([]string(nil), t.Charts...)
		t.BuiltIn = true
		out[i] = t
	}
	return out
}

func IsBuiltIn(name string) bool {
	for _, t := range builtIns {
		if t.Name == name {
			return true
		}
	}
	return false
}

// Merge lists built-ins first, then user templates by name. A user template
// named like a built-in is ignored.
func Merge(user map[string]Template) []Template {
	out := BuiltIns()
	names := make([]string, 0, len(user))
	for name := range user {
		if !IsBuiltIn(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		t := user[name]
		t.BuiltIn = false
		out = append(out, t)
	}
	return out
}

// Find resolves name among the merged templates.
func Find(user map[string]Template, name string) (Template, error) {
	for _, t := range Merge(user) {
		if t.Name == name {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
}
