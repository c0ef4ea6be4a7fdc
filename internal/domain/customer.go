package domain

import "time"

type RiskCategory string

const (
	RiskLow    RiskCategory = "Low"
	RiskMedium RiskCategory = "Medium"
	RiskHigh   RiskCategory = "High"
)

// CustomerProfile é derivado exclusivamente das vendas do cliente e recalculado
// sempre que esse conjunto muda
type CustomerProfile struct {
	ID                  string       `json:"id" bson:"id"`
	CustomerID          string       `json:"customer_id" bson:"customer_id"`
	CustomerName        string       `json:"customer_name" bson:"customer_name"`
	Region              Region       `json:"region" bson:"region"`
	Country             string       `json:"country" bson:"country"`
	Industry            string       `json:"industry" bson:"industry"`
	CompanySize         string       `json:"company_size" bson:"company_size"`
	TotalRevenue        float64      `json:"total_revenue" bson:"total_revenue"`
	AvgDealSize         float64      `json:"avg_deal_size" bson:"avg_deal_size"`
	PaymentHistoryScore float64      `json:"payment_history_score" bson:"payment_history_score"` // 0-100
	RiskScore           float64      `json:"risk_score" bson:"risk_score"`                       // 0-100
	RiskCategory        RiskCategory `json:"risk_category" bson:"risk_category"`
	LastOrderDate       *time.Time   `json:"last_order_date" bson:"last_order_date"`
	DaysSinceLastOrder  int          `json:"days_since_last_order" bson:"days_since_last_order"`
}

func (c *CustomerProfile) IsHighRisk() bool {
	return c.RiskCategory == RiskHigh
}
