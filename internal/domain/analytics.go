package domain

// TopCustomer é um cliente no ranking de receita de uma região ou país
type TopCustomer struct {
	CustomerID string  `json:"customer_id"`
	Name       string  `json:"name"`
	Revenue    float64 `json:"revenue"`
}

type RegionalSummary struct {
	Region       Region        `json:"region"`
	TotalRevenue float64       `json:"total_revenue"`
	TotalOrders  int           `json:"total_orders"`
	AvgDealSize  float64       `json:"avg_deal_size"`
	RiskExposure float64       `json:"risk_exposure"` // Receita de clientes classificados como High
	TopCustomers []TopCustomer `json:"top_customers"`
	Countries    []string      `json:"countries"`
}

type CountryPerformance struct {
	Country           string  `json:"country"`
	Region            Region  `json:"region"`
	Revenue           float64 `json:"revenue"`
	Orders            int     `json:"orders"`
	Customers         int     `json:"customers"`
	AvgDealSize       float64 `json:"avg_deal_size"`
	HighRiskCustomers int     `json:"high_risk_customers"`
}

type RegionRevenue struct {
	Region  Region  `json:"region"`
	Revenue float64 `json:"revenue"`
}

// KPIMetrics compara a janela dos últimos 30 dias com os 30 dias anteriores
type KPIMetrics struct {
	TotalRevenue      float64         `json:"total_revenue"`
	TotalOrders       int             `json:"total_orders"`
	AvgDealSize       float64         `json:"avg_deal_size"`
	RevenueGrowth     float64         `json:"revenue_growth"`
	HighRiskCustomers int             `json:"high_risk_customers"`
	OverduePayments   float64         `json:"overdue_payments"`
	TopRegions        []RegionRevenue `json:"top_regions"`
}

type SalesTrend struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ForecastPoint tem no máximo um entre ActualRevenue e ForecastedRevenue preenchido
type ForecastPoint struct {
	Period             string              `json:"period"`
	ActualRevenue      *float64            `json:"actual_revenue"`
	ForecastedRevenue  *float64            `json:"forecasted_revenue"`
	ConfidenceInterval *ConfidenceInterval `json:"confidence_interval"`
}

type GenerationResult struct {
	Message          string `json:"message"`
	SalesRecords     int    `json:"sales_records"`
	CustomerProfiles int    `json:"customer_profiles"`
}
