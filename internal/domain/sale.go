package domain

import "time"

type Region string

const (
	RegionAPAC     Region = "APAC"
	RegionEMEA     Region = "EMEA"
	RegionAmericas Region = "Americas"
)

// Regions é a lista fixa de regiões atendidas, na ordem em que aparecem nos relatórios
var Regions = []Region{RegionAPAC, RegionEMEA, RegionAmericas}

type PaymentStatus string

const (
	PaymentStatusPaid          PaymentStatus = "Paid"
	PaymentStatusPending       PaymentStatus = "Pending"
	PaymentStatusOverdue       PaymentStatus = "Overdue"
	PaymentStatusPartiallyPaid PaymentStatus = "Partially Paid"
)

// SalesRecord representa uma venda do ledger. Não é alterada depois de criada.
type SalesRecord struct {
	ID              string        `json:"id" bson:"id"`
	Region          Region        `json:"region" bson:"region"`
	Country         string        `json:"country" bson:"country"`
	CustomerID      string        `json:"customer_id" bson:"customer_id"`
	CustomerName    string        `json:"customer_name" bson:"customer_name"`
	ProductCategory string        `json:"product_category" bson:"product_category"`
	ProductName     string        `json:"product_name" bson:"product_name"`
	SalesRep        string        `json:"sales_rep" bson:"sales_rep"`
	OrderDate       time.Time     `json:"order_date" bson:"order_date"`
	Revenue         float64       `json:"revenue" bson:"revenue"`
	Quantity        int           `json:"quantity" bson:"quantity"`
	DealSize        float64       `json:"deal_size" bson:"deal_size"` // revenue / quantity
	Currency        string        `json:"currency" bson:"currency"`
	PaymentStatus   PaymentStatus `json:"payment_status" bson:"payment_status"`
	PaymentDueDate  time.Time     `json:"payment_due_date" bson:"payment_due_date"`
	DaysOverdue     int           `json:"days_overdue" bson:"days_overdue"`
}

func (s *SalesRecord) IsOverdue() bool {
	return s.PaymentStatus == PaymentStatusOverdue
}
