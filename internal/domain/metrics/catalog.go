package metrics

// Sections in presentation order.
const (
	SectionCore          = "Core Financial & Occupancy"
	SectionProfitability = "Profitability"
	SectionPlatform      = "Platform Performance"
	SectionGuestBehavior = "Guest Behavior"
	SectionOperational   = "Operational Efficiency"
	SectionSeasonality   = "Seasonality & Trends"
	SectionCostBreakdown = "Cost Breakdown"
	SectionDemographics  = "Guest Demographics"
)

var Sections = []string{
	SectionCore,
	SectionProfitability,
	SectionPlatform,
	SectionGuestBehavior,
	SectionOperational,
	SectionSeasonality,
	SectionCostBreakdown,
	SectionDemographics,
}

// Metric keys. They are the stable identifiers favorites and templates refer to.
const (
	KeyReservations     = "Reservations"
	KeyTotalNights      = "Total nights"
	KeyOccupancy        = "Occupancy (%)"
	KeyTotalRevenue     = "Total revenue (€)"
	KeyNetProfit        = "Net Profit (€)"
	KeyAvgPricePerNight = "Average price per night (€)"
	KeyAvgStay          = "Average stay (nights)"
	KeyAvgMonthlyGross  = "Average Monthly Gross Income (€)"
	KeyAvgMonthlyNet    = "Average Monthly Net Income (€)"

	KeyProfitMargin           = "Profit Margin (%)"
	KeyCostPerReservation     = "Cost per Reservation (€)"
	KeyProfitPerNight         = "Profit per Night (€)"
	KeyProfitPerStay          = "Profit per Stay (€)"
	KeyNetPerNightBeforeFixed = "Net Income per Night Before Fixed (€)"
	KeyNetPerStayBeforeFixed  = "Net Income per Stay Before Fixed (€)"
	KeyCostPctRevenue         = "Cost Percentage of Revenue (%)"
	KeyFixedCostPctRevenue    = "Fixed Cost Percentage of Revenue (%)"

	KeyAirbnbRevenue         = "Airbnb revenue (€)"
	KeyBookingRevenue        = "Booking.com revenue (€)"
	KeyAirbnbShare           = "Airbnb share of revenue (%)"
	KeyBookingShare          = "Booking.com share of revenue (%)"
	KeyAirbnbNights          = "Airbnb nights"
	KeyBookingNights         = "Booking.com nights"
	KeyAirbnbADR             = "Airbnb ADR (€)"
	KeyBookingADR            = "Booking.com ADR (€)"
	KeyAirbnbOccupancy       = "Airbnb Occupancy (%)"
	KeyBookingOccupancy      = "Booking.com Occupancy (%)"
	KeyAirbnbRevPAR          = "Airbnb RevPAR (€)"
	KeyBookingRevPAR         = "Booking.com RevPAR (€)"
	KeyPlatformProfitDiff    = "Platform Profitability Difference (€)"
	KeyPlatformAvgStay       = "Average Stay Length by Platform (nights)"
	KeyPlatformRevenuePerRes = "Platform Revenue per Reservation (€)"
	KeyPlatformCostPerRes    = "Platform Cost per Reservation (€)"
	KeyPlatformMix           = "Platform Mix (%)"
	KeyConcentrationRisk     = "Revenue Concentration Risk (%)"

	KeyAvgGroupSize      = "Average group size"
	KeyAvgRevenuePerStay = "Average Revenue per Stay (€)"
	KeyAvgCostPerStay    = "Average Cost per Stay (€)"
	KeyPlatformAvgGuests = "Average Guests per Booking by Platform"
	KeyParkingUsage      = "Parking Usage (%)"
	KeyRevenuePerGuest   = "Revenue per Guest (€)"
	KeyBabyCribUsage     = "Baby Crib usage (%)"
	KeySofaBedUsage      = "Sofa Bed usage (%)"

	KeyTotalPerStay       = "Total Per-Stay Expenses (€)"
	KeyTotalFixedCosts    = "Total Fixed Costs (€)"
	KeyAvgCostPerNight    = "Average Cost per Night (€)"
	KeyFixedCostPerNight  = "Fixed Cost per Night (€)"
	KeyFixedCostPerRes    = "Fixed Cost per Reservation (€)"
	KeyVariableFixedRatio = "Variable vs Fixed Cost Ratio"
	KeyBreakEvenOccupancy = "Break-even Occupancy (%)"
	KeyBreakEvenNights    = "Break-even Nights"
	KeyRevPAR             = "Revenue per Available Night (€)"
	KeyADR                = "Average Daily Rate (€)"

	KeyBestMonthRevenue  = "Best month by revenue"
	KeyBestMonthProfit   = "Best Month by Profit (€)"
	KeyWorstMonthRevenue = "Worst Month by Revenue (€)"
	KeyForecastRevenue   = "Projected next-year revenue"
	KeyForecastWeighted  = "Projected Next-Year Revenue (Weighted)"
	KeyForecastProfit    = "Projected Next-Year Profit (€)"
	KeyMoMChange         = "Month-over-Month Revenue Change (%)"
	KeyYoYChange         = "Year-over-Year Revenue Change (%)"
	KeyMovingAvg3M       = "3-Month Moving Average Revenue (€)"
	KeySeasonalIndex     = "Seasonal Index"

	KeyTransportPerStay  = "Transportation Cost per Stay (€)"
	KeyLaundryPerStay    = "Laundry Cost per Stay (€)"
	KeyConsumablePerStay = "Consumable Cost per Stay (€)"
	KeyBankFeesPerStay   = "Bank Fees per Stay (€)"

	KeyTopCountriesBookings = "Top Countries by Bookings"
	KeyTopCountriesRevenue  = "Top Countries by Revenue"
	KeyAvgRevenueByCountry  = "Average Revenue by Country (€)"
	KeyAvgStayByCountry     = "Average Stay Length by Country (nights)"
)

// Definition describes one catalog metric.
type Definition struct {
	Key         string `json:"key"`
	Section     string `json:"section"`
	Label       string `json:"label"`
	Prefix      string `json:"unit_prefix"`
	Explanation string `json:"explanation"`
	Formula     string `json:"formula,omitempty"`
	Insight     string `json:"insight,omitempty"`
}

// Catalog lists every metric the engine can emit, grouped and ordered by section.
var Catalog = []Definition{
	// Core Financial & Occupancy
	{Key: KeyReservations, Section: SectionCore, Label: "Reservations", Prefix: "",
		Explanation: "Number of completed bookings in the selected period.",
		Formula:     "Count of all bookings",
		Insight:     "Shows booking volume. Higher numbers indicate more activity and potential revenue."},
	{Key: KeyTotalNights, Section: SectionCore, Label: "Total nights", Prefix: "",
		Explanation: "Sum of all booked nights in the selected period.",
		Formula:     "Sum of Nights column for all bookings",
		Insight:     "Total occupancy nights. Compare with available nights to understand utilization."},
	{Key: KeyOccupancy, Section: SectionCore, Label: "Occupancy (%)", Prefix: "",
		Explanation: "Share of available nights that were actually booked.",
		Formula:     "(Total Nights ÷ Nights Available) × 100",
		Insight:     "Key efficiency metric. Higher occupancy means better utilization of your property. Industry standard is typically 60-80%."},
	{Key: KeyTotalRevenue, Section: SectionCore, Label: "Total revenue (€)", Prefix: "€ ",
		Explanation: "Total revenue from all stays in the selected period.",
		Formula:     "Sum of Revenue for stay (€) for all bookings",
		Insight:     "Primary income metric. Track trends over time to identify growth patterns."},
	{Key: KeyNetProfit, Section: SectionCore, Label: "Net Profit (€)", Prefix: "€ ",
		Explanation: "Net profit after per-stay expenses and fixed monthly costs for the selected period.",
		Formula:     "Total Revenue - Per-Stay Expenses - Fixed Costs",
		Insight:     "True profitability indicator. Positive values mean the property is generating profit after all costs."},
	{Key: KeyAvgPricePerNight, Section: SectionCore, Label: "Average price per night (€) (ADR)", Prefix: "€ ",
		Explanation: "Average revenue per booked night (Total Revenue ÷ Booked Nights - only occupied nights). Same as ADR.",
		Formula:     "Total Revenue ÷ Booked Nights",
		Insight:     "Pricing efficiency metric. Compare with market rates to optimize pricing strategy."},
	{Key: KeyAvgStay, Section: SectionCore, Label: "Average stay (nights)", Prefix: "",
		Explanation: "Average length of stay per reservation (total nights ÷ reservations).",
		Formula:     "Total Nights ÷ Reservations",
		Insight:     "Guest behavior indicator. Longer stays reduce turnover costs and increase revenue per booking."},
	{Key: KeyAvgMonthlyGross, Section: SectionCore, Label: "Average Monthly Gross Income (€)", Prefix: "€ ",
		Explanation: "Calculates the average gross income per month for the selected period. Gross income is based on the RevenueForStay of each booking.",
		Formula:     "(Sum of RevenueForStay for all bookings in selected period) ÷ (Number of unique months within selected period)",
		Insight:     "Monthly gross income average. Helps understand revenue consistency and seasonal patterns. Higher values indicate better monthly performance."},
	{Key: KeyAvgMonthlyNet, Section: SectionCore, Label: "Average Monthly Net Income (€)", Prefix: "€ ",
		Explanation: "Calculates the average net income per month for the selected period. Net income accounts for per-stay expenses and fixed monthly costs.",
		Formula:     "(Sum of NetProfit for all bookings in selected period) ÷ (Number of unique months within selected period)",
		Insight:     "Monthly net income average. Shows true profitability per month after all costs. Essential for cash flow planning and financial forecasting."},
	// Profitability
	{Key: KeyProfitMargin, Section: SectionProfitability, Label: "Profit Margin (%)", Prefix: "",
		Explanation: "Percentage of revenue that becomes profit after all costs.",
		Formula:     "(Net Profit ÷ Total Revenue) × 100",
		Insight:     "Profitability efficiency. Higher margins mean better cost control and pricing power."},
	{Key: KeyCostPerReservation, Section: SectionProfitability, Label: "Cost per Reservation (€)", Prefix: "€ ",
		Explanation: "Average variable cost per booking.",
		Formula:     "Total Per-Stay Expenses ÷ Reservations",
		Insight:     "Cost efficiency per booking. Lower values indicate better operational efficiency."},
	{Key: KeyProfitPerNight, Section: SectionProfitability, Label: "Profit per Night (€)", Prefix: "€ ",
		Explanation: "Profitability per booked night.",
		Formula:     "Net Profit ÷ Total Nights",
		Insight:     "Nightly profitability. Compare across periods to track efficiency improvements."},
	{Key: KeyProfitPerStay, Section: SectionProfitability, Label: "Profit per Stay (€)", Prefix: "€ ",
		Explanation: "Average profit per booking.",
		Formula:     "Net Profit ÷ Reservations",
		Insight:     "Booking-level profitability. Useful for understanding the value of each reservation."},
	{Key: KeyNetPerNightBeforeFixed, Section: SectionProfitability, Label: "Net Income per Night Before Fixed (€)", Prefix: "€ ",
		Explanation: "Variable profit per night (before fixed costs).",
		Formula:     "Net Income Before Fixed Costs ÷ Total Nights",
		Insight:     "Shows nightly profitability excluding fixed costs. Useful for scaling decisions."},
	{Key: KeyNetPerStayBeforeFixed, Section: SectionProfitability, Label: "Net Income per Stay Before Fixed (€)", Prefix: "€ ",
		Explanation: "Variable profit per booking (before fixed costs).",
		Formula:     "Net Income Before Fixed Costs ÷ Reservations",
		Insight:     "Booking-level profitability excluding fixed costs. Compare platforms on this metric."},
	{Key: KeyCostPctRevenue, Section: SectionProfitability, Label: "Cost Percentage of Revenue (%)", Prefix: "",
		Explanation: "What portion of revenue goes to variable costs.",
		Formula:     "(Total Per-Stay Expenses ÷ Total Revenue) × 100",
		Insight:     "Cost structure indicator. Lower percentages mean more revenue retained after variable costs."},
	{Key: KeyFixedCostPctRevenue, Section: SectionProfitability, Label: "Fixed Cost Percentage of Revenue (%)", Prefix: "",
		Explanation: "What portion of revenue covers fixed costs.",
		Formula:     "(Total Fixed Costs ÷ Total Revenue) × 100",
		Insight:     "Fixed cost burden. Lower percentages indicate better revenue relative to fixed expenses."},
	// Platform Performance
	{Key: KeyAirbnbRevenue, Section: SectionPlatform, Label: "Airbnb revenue (€)", Prefix: "€ ",
		Explanation: "Total revenue coming from Airbnb bookings in the selected period.",
		Formula:     "Sum of Revenue for stay (€) where Platform = Airbnb",
		Insight:     "Platform-specific revenue. Track to understand which platform generates more income."},
	{Key: KeyBookingRevenue, Section: SectionPlatform, Label: "Booking.com revenue (€)", Prefix: "€ ",
		Explanation: "Total revenue coming from Booking.com bookings in the selected period.",
		Formula:     "Sum of Revenue for stay (€) where Platform = Booking.com",
		Insight:     "Platform-specific revenue. Compare with Airbnb to optimize channel mix."},
	{Key: KeyAirbnbShare, Section: SectionPlatform, Label: "Airbnb share of revenue (%)", Prefix: "",
		Explanation: "Percentage of total revenue generated via Airbnb.",
		Formula:     "(Airbnb Revenue ÷ Total Revenue) × 100",
		Insight:     "Channel diversification indicator. Over-reliance on one platform increases risk."},
	{Key: KeyBookingShare, Section: SectionPlatform, Label: "Booking.com share of revenue (%)", Prefix: "",
		Explanation: "Percentage of total revenue generated via Booking.com.",
		Formula:     "(Booking.com Revenue ÷ Total Revenue) × 100",
		Insight:     "Channel diversification indicator. Balanced distribution reduces platform dependency risk."},
	{Key: KeyAirbnbNights, Section: SectionPlatform, Label: "Airbnb nights", Prefix: "",
		Explanation: "Total booked nights that came from Airbnb.",
		Formula:     "Sum of Nights where Platform = Airbnb",
		Insight:     "Platform occupancy volume. Compare with Booking.com to understand channel performance."},
	{Key: KeyBookingNights, Section: SectionPlatform, Label: "Booking.com nights", Prefix: "",
		Explanation: "Total booked nights that came from Booking.com.",
		Formula:     "Sum of Nights where Platform = Booking.com",
		Insight:     "Platform occupancy volume. Compare with Airbnb to optimize channel strategy."},
	{Key: KeyAirbnbADR, Section: SectionPlatform, Label: "Airbnb ADR (€)", Prefix: "€ ",
		Explanation: "Average daily rate from Airbnb (Airbnb Revenue ÷ Airbnb Booked Nights - only occupied nights).",
		Formula:     "Airbnb Revenue ÷ Airbnb Booked Nights (only occupied nights)",
		Insight:     "Platform pricing power. Compare with Booking.com ADR to understand pricing differences."},
	{Key: KeyBookingADR, Section: SectionPlatform, Label: "Booking.com ADR (€)", Prefix: "€ ",
		Explanation: "Average daily rate from Booking.com (Booking.com Revenue ÷ Booking.com Booked Nights - only occupied nights).",
		Formula:     "Booking.com Revenue ÷ Booking.com Booked Nights (only occupied nights)",
		Insight:     "Platform pricing power. Compare with Airbnb ADR to optimize pricing strategy."},
	{Key: KeyAirbnbOccupancy, Section: SectionPlatform, Label: "Airbnb Occupancy (%)", Prefix: "",
		Explanation: "Occupancy rate specifically from Airbnb.",
		Formula:     "(Airbnb Nights ÷ Nights Available) × 100",
		Insight:     "Platform-specific efficiency. Compare with Booking.com occupancy to identify stronger channel."},
	{Key: KeyBookingOccupancy, Section: SectionPlatform, Label: "Booking.com Occupancy (%)", Prefix: "",
		Explanation: "Occupancy rate specifically from Booking.com.",
		Formula:     "(Booking.com Nights ÷ Nights Available) × 100",
		Insight:     "Platform-specific efficiency. Compare with Airbnb occupancy to optimize channel mix."},
	{Key: KeyAirbnbRevPAR, Section: SectionPlatform, Label: "Airbnb RevPAR (€)", Prefix: "€ ",
		Explanation: "Revenue per available night from Airbnb (Airbnb Revenue ÷ Nights Available - all days in period).",
		Formula:     "Airbnb Revenue ÷ Nights Available (all days in period)",
		Insight:     "Platform efficiency metric. Higher values indicate better Airbnb performance relative to capacity."},
	{Key: KeyBookingRevPAR, Section: SectionPlatform, Label: "Booking.com RevPAR (€)", Prefix: "€ ",
		Explanation: "Revenue per available night from Booking.com (Booking.com Revenue ÷ Nights Available - all days in period).",
		Formula:     "Booking.com Revenue ÷ Nights Available (all days in period)",
		Insight:     "Platform efficiency metric. Compare with Airbnb RevPAR to optimize channel strategy."},
	{Key: KeyPlatformProfitDiff, Section: SectionPlatform, Label: "Platform Profitability Difference (€)", Prefix: "€ ",
		Explanation: "Difference in profit per booking between Airbnb and Booking.com (positive = Airbnb more profitable).",
		Formula:     "Airbnb Profit per Reservation - Booking.com Profit per Reservation",
		Insight:     "Platform comparison metric. Positive values mean Airbnb is more profitable per booking."},
	{Key: KeyPlatformAvgStay, Section: SectionPlatform, Label: "Average Stay Length by Platform (nights)", Prefix: "",
		Explanation: "Average booking duration by platform.",
		Formula:     "Platform Nights ÷ Platform Reservations",
		Insight:     "Guest behavior by channel. Longer stays reduce turnover costs and increase revenue per booking."},
	{Key: KeyPlatformRevenuePerRes, Section: SectionPlatform, Label: "Platform Revenue per Reservation (€)", Prefix: "",
		Explanation: "Average booking value by platform.",
		Formula:     "Platform Revenue ÷ Platform Reservations",
		Insight:     "Channel value comparison. Higher values indicate more valuable bookings from that platform."},
	{Key: KeyPlatformCostPerRes, Section: SectionPlatform, Label: "Platform Cost per Reservation (€)", Prefix: "",
		Explanation: "Average variable cost per booking by platform.",
		Formula:     "Platform Per-Stay Expenses ÷ Platform Reservations",
		Insight:     "Cost efficiency by channel. Lower costs per booking mean better profitability from that platform."},
	{Key: KeyPlatformMix, Section: SectionPlatform, Label: "Platform Mix (%)", Prefix: "",
		Explanation: "Share of bookings by platform.",
		Formula:     "(Platform Reservations ÷ Total Reservations) × 100",
		Insight:     "Channel diversification. Balanced mix reduces dependency risk on a single platform."},
	{Key: KeyConcentrationRisk, Section: SectionPlatform, Label: "Revenue Concentration Risk (%)", Prefix: "",
		Explanation: "How dependent you are on one platform (higher = riskier).",
		Formula:     "Max(Airbnb Revenue Share, Booking.com Revenue Share)",
		Insight:     "Risk indicator. Values above 80% indicate high dependency on one channel. Diversify to reduce risk."},
	// Guest Behavior
	{Key: KeyAvgGroupSize, Section: SectionGuestBehavior, Label: "Average group size", Prefix: "",
		Explanation: "Average number of guests per stay (adults + children).",
		Formula:     "Total Guests ÷ Reservations",
		Insight:     "Guest behavior indicator. Larger groups may require more amenities but also generate more revenue."},
	{Key: KeyAvgRevenuePerStay, Section: SectionGuestBehavior, Label: "Average Revenue per Stay (€)", Prefix: "€ ",
		Explanation: "Average booking value.",
		Formula:     "Total Revenue ÷ Reservations",
		Insight:     "Booking value metric. Track trends to understand if average booking value is increasing."},
	{Key: KeyAvgCostPerStay, Section: SectionGuestBehavior, Label: "Average Cost per Stay (€)", Prefix: "€ ",
		Explanation: "Average variable cost per booking.",
		Formula:     "Total Per-Stay Expenses ÷ Reservations",
		Insight:     "Cost efficiency per booking. Lower values indicate better operational efficiency."},
	{Key: KeyPlatformAvgGuests, Section: SectionGuestBehavior, Label: "Average Guests per Booking by Platform", Prefix: "",
		Explanation: "Average group size by platform.",
		Formula:     "Platform Total Guests ÷ Platform Reservations",
		Insight:     "Guest behavior by channel. Different platforms may attract different group sizes."},
	{Key: KeyParkingUsage, Section: SectionGuestBehavior, Label: "Parking Usage (%)", Prefix: "",
		Explanation: "Percentage of bookings where parking was used.",
		Formula:     "(Bookings with Parking = Yes ÷ Total Reservations) × 100",
		Insight:     "Amenity utilization. High usage may indicate need for parking availability or pricing."},
	{Key: KeyRevenuePerGuest, Section: SectionGuestBehavior, Label: "Revenue per Guest (€)", Prefix: "€ ",
		Explanation: "Average revenue per person.",
		Formula:     "Total Revenue ÷ Total Guests",
		Insight:     "Per-guest value metric. Higher values indicate better revenue extraction per person."},
	{Key: KeyBabyCribUsage, Section: SectionGuestBehavior, Label: "Baby Crib usage (%)", Prefix: "",
		Explanation: "Percentage of bookings where the baby crib was used.",
		Formula:     "(Bookings with Baby Crib = Yes ÷ Total Reservations) × 100",
		Insight:     "Amenity utilization. Track to understand guest needs and optimize amenity offerings."},
	{Key: KeySofaBedUsage, Section: SectionGuestBehavior, Label: "Sofa Bed usage (%)", Prefix: "",
		Explanation: "Percentage of bookings where the sofa bed was used.",
		Formula:     "(Bookings with Sofa Bed = Yes ÷ Total Reservations) × 100",
		Insight:     "Amenity utilization. High usage indicates capacity flexibility is valued by guests."},
	// Operational Efficiency
	{Key: KeyTotalPerStay, Section: SectionOperational, Label: "Total Per-Stay Expenses (€)", Prefix: "€ ",
		Explanation: "Sum of all variable per-stay costs (transportation, laundry, consumables, bank fees, etc.).",
		Formula:     "Sum of Transportation + Laundry + Consumables + Bank Fees",
		Insight:     "Total variable costs. Track trends to identify cost reduction opportunities."},
	{Key: KeyTotalFixedCosts, Section: SectionOperational, Label: "Total Fixed Costs (€)", Prefix: "€ ",
		Explanation: "Sum of all fixed monthly costs (electricity, water, property management fee, etc.) for the selected period.",
		Formula:     "Sum of Monthly Fixed Costs for selected period",
		Insight:     "Fixed cost burden. These costs must be covered regardless of occupancy."},
	{Key: KeyAvgCostPerNight, Section: SectionOperational, Label: "Average Cost per Night (€)", Prefix: "€ ",
		Explanation: "Variable cost per booked night.",
		Formula:     "Total Per-Stay Expenses ÷ Total Nights",
		Insight:     "Nightly cost efficiency. Lower values mean better cost control per night."},
	{Key: KeyFixedCostPerNight, Section: SectionOperational, Label: "Fixed Cost per Night (€)", Prefix: "€ ",
		Explanation: "Fixed cost allocation per booked night.",
		Formula:     "Total Fixed Costs ÷ Total Nights",
		Insight:     "Fixed cost burden per night. Higher occupancy spreads fixed costs across more nights."},
	{Key: KeyFixedCostPerRes, Section: SectionOperational, Label: "Fixed Cost per Reservation (€)", Prefix: "€ ",
		Explanation: "Fixed cost allocation per booking.",
		Formula:     "Total Fixed Costs ÷ Reservations",
		Insight:     "Fixed cost burden per booking. More bookings spread fixed costs across more reservations."},
	{Key: KeyVariableFixedRatio, Section: SectionOperational, Label: "Variable vs Fixed Cost Ratio", Prefix: "",
		Explanation: "Ratio of variable to fixed costs (higher = more scalable).",
		Formula:     "Total Per-Stay Expenses ÷ Total Fixed Costs",
		Insight:     "Cost structure indicator. Higher ratios mean more scalable cost structure (more variable, less fixed)."},
	{Key: KeyBreakEvenOccupancy, Section: SectionOperational, Label: "Break-even Occupancy (%)", Prefix: "",
		Explanation: "Minimum occupancy needed to cover fixed costs.",
		Formula:     "(Total Fixed Costs ÷ (ADR × Nights Available)) × 100",
		Insight:     "Critical threshold. Below this occupancy, you're losing money on fixed costs."},
	{Key: KeyBreakEvenNights, Section: SectionOperational, Label: "Break-even Nights", Prefix: "",
		Explanation: "Minimum nights needed to cover fixed costs.",
		Formula:     "Total Fixed Costs ÷ ADR",
		Insight:     "Critical threshold. Below this number of nights, fixed costs aren't covered."},
	{Key: KeyRevPAR, Section: SectionOperational, Label: "Revenue per Available Night (€) (RevPAR)", Prefix: "€ ",
		Explanation: "Revenue per available night (Total Revenue ÷ Nights Available - all days in period). Standard hotel metric showing revenue efficiency.",
		Formula:     "Total Revenue ÷ Nights Available (all days in period)",
		Insight:     "Industry-standard efficiency metric. Combines occupancy and pricing. Higher RevPAR means better overall performance."},
	{Key: KeyADR, Section: SectionOperational, Label: "Average Daily Rate (€) (ADR)", Prefix: "€ ",
		Explanation: "Average revenue per booked night (Total Revenue ÷ Booked Nights - only occupied nights). Standard hotel metric showing average price per night.",
		Formula:     "Total Revenue ÷ Booked Nights (only occupied nights)",
		Insight:     "Pricing power indicator. Compare with market rates. Higher ADR with good occupancy means strong pricing strategy."},
	// Seasonality & Trends
	{Key: KeyBestMonthRevenue, Section: SectionSeasonality, Label: "Best month by revenue", Prefix: "",
		Explanation: "Month and year with the highest total revenue in the selected data.",
		Formula:     "Month with maximum Total Revenue",
		Insight:     "Peak performance indicator. Identify seasonal patterns and replicate successful strategies."},
	{Key: KeyBestMonthProfit, Section: SectionSeasonality, Label: "Best Month by Profit (€)", Prefix: "",
		Explanation: "Month and year with the highest profit in the selected data.",
		Formula:     "Month with maximum Net Profit",
		Insight:     "Peak profitability indicator. Analyze what made this month successful."},
	{Key: KeyWorstMonthRevenue, Section: SectionSeasonality, Label: "Worst Month by Revenue (€)", Prefix: "",
		Explanation: "Month and year with the lowest revenue in the selected data.",
		Formula:     "Month with minimum Total Revenue",
		Insight:     "Low performance indicator. Identify causes and develop strategies to improve."},
	{Key: KeyForecastRevenue, Section: SectionSeasonality, Label: "Projected next-year revenue", Prefix: "€ ",
		Explanation: "Simple projection: average monthly revenue × 12.",
		Formula:     "Average Monthly Revenue × 12",
		Insight:     "Basic revenue forecast. Use for planning and goal setting."},
	{Key: KeyForecastWeighted, Section: SectionSeasonality, Label: "Projected Next-Year Revenue (Weighted)", Prefix: "€ ",
		Explanation: "Weighted projection: recent 6 months × 0.6 + older months × 0.4, then × 12.",
		Formula:     "(Recent 6 Months Avg × 0.6 + Older Months Avg × 0.4) × 12",
		Insight:     "More accurate forecast. Recent trends weighted more heavily for better prediction."},
	{Key: KeyForecastProfit, Section: SectionSeasonality, Label: "Projected Next-Year Profit (€)", Prefix: "€ ",
		Explanation: "Forecast profit based on weighted revenue projection and average profit margin.",
		Formula:     "Projected Weighted Revenue × (Average Profit Margin ÷ 100)",
		Insight:     "Profit forecast. Use for financial planning and investment decisions."},
	{Key: KeyMoMChange, Section: SectionSeasonality, Label: "Month-over-Month Revenue Change (%)", Prefix: "",
		Explanation: "Percentage change in revenue from previous month.",
		Formula:     "((Current Month Revenue - Previous Month Revenue) ÷ Previous Month Revenue) × 100",
		Insight:     "Short-term trend indicator. Positive values show growth momentum."},
	{Key: KeyYoYChange, Section: SectionSeasonality, Label: "Year-over-Year Revenue Change (%)", Prefix: "",
		Explanation: "Percentage change in revenue compared to same period last year.",
		Formula:     "((Current Year Revenue - Previous Year Revenue) ÷ Previous Year Revenue) × 100",
		Insight:     "Long-term growth indicator. Accounts for seasonality by comparing same periods."},
	{Key: KeyMovingAvg3M, Section: SectionSeasonality, Label: "3-Month Moving Average Revenue (€)", Prefix: "€ ",
		Explanation: "Average revenue over the last 3 months (smoothed trend).",
		Formula:     "Sum of Last 3 Months Revenue ÷ 3",
		Insight:     "Smoothed trend indicator. Reduces month-to-month volatility to show underlying trends."},
	{Key: KeySeasonalIndex, Section: SectionSeasonality, Label: "Seasonal Index", Prefix: "",
		Explanation: "Average seasonal index across all months (100 = average, >100 = above average, <100 = below average).",
		Formula:     "Average of (Monthly Revenue ÷ Annual Average Revenue) × 100",
		Insight:     "Seasonality indicator. Values above 100 indicate above-average months, below 100 indicate below-average."},
	// Cost Breakdown
	{Key: KeyTransportPerStay, Section: SectionCostBreakdown, Label: "Transportation Cost per Stay (€)", Prefix: "€ ",
		Explanation: "Average transportation cost per booking.",
		Formula:     "Total Transportation Cost ÷ Reservations",
		Insight:     "Transportation efficiency. Track to identify cost reduction opportunities."},
	{Key: KeyLaundryPerStay, Section: SectionCostBreakdown, Label: "Laundry Cost per Stay (€)", Prefix: "€ ",
		Explanation: "Average laundry cost per booking.",
		Formula:     "Total Laundry Cost ÷ Reservations",
		Insight:     "Laundry efficiency. Monitor for cost control and optimization opportunities."},
	{Key: KeyConsumablePerStay, Section: SectionCostBreakdown, Label: "Consumable Cost per Stay (€)", Prefix: "€ ",
		Explanation: "Average consumable cost per booking.",
		Formula:     "Total Consumable Cost ÷ Reservations",
		Insight:     "Consumable efficiency. Track to optimize supply costs and guest experience balance."},
	{Key: KeyBankFeesPerStay, Section: SectionCostBreakdown, Label: "Bank Fees per Stay (€)", Prefix: "€ ",
		Explanation: "Average bank fees per booking.",
		Formula:     "Total Bank Fees ÷ Reservations",
		Insight:     "Payment processing efficiency. Consider alternative payment methods if fees are high."},
	// Guest Demographics
	{Key: KeyTopCountriesBookings, Section: SectionDemographics, Label: "Top Countries by Bookings", Prefix: "",
		Explanation: "Top 5 countries by number of bookings.",
		Formula:     "Top 5 countries sorted by reservation count",
		Insight:     "Guest origin analysis. Understand your market and tailor marketing to top countries."},
	{Key: KeyTopCountriesRevenue, Section: SectionDemographics, Label: "Top Countries by Revenue", Prefix: "",
		Explanation: "Top 5 countries by total revenue.",
		Formula:     "Top 5 countries sorted by total revenue",
		Insight:     "Revenue source analysis. Focus marketing efforts on high-value country markets."},
	{Key: KeyAvgRevenueByCountry, Section: SectionDemographics, Label: "Average Revenue by Country (€)", Prefix: "",
		Explanation: "Average booking value per guest country.",
		Formula:     "Country Revenue ÷ Country Reservations",
		Insight:     "Highlights which markets book the most valuable stays."},
	{Key: KeyAvgStayByCountry, Section: SectionDemographics, Label: "Average Stay Length by Country (nights)", Prefix: "",
		Explanation: "Average nights per booking per guest country.",
		Formula:     "Country Nights ÷ Country Reservations",
		Insight:     "Shows which markets stay longest."},
}

var definitions = func() map[string]Definition {
	m := make(map[string]Definition, len(Catalog))
	for _, d := range Catalog {
		m[d.Key] = d
	}
	return m
}()

var catalogOrder = func() map[string]int {
	m := make(map[string]int, len(Catalog))
	for i, d := range Catalog {
		m[d.Key] = i
	}
	return m
}()

// Lookup returns the catalog definition of key.
func Lookup(key string) (Definition, bool) {
	d, ok := definitions[key]
	return d, ok
}

// Known reports whether key names a catalog metric.
func Known(key string) bool {
	_, ok := definitions[key]
	return ok
}
