package analytics

import "github.com/vfg2006/sales-risk-analytics/internal/domain"

// regionMarkets mantém países e moedas alinhados por índice
type regionMarkets struct {
	Countries  []string
	Currencies []string
	Multiplier float64
}

var markets = map[domain.Region]regionMarkets{
	domain.RegionAPAC: {
		Countries:  []string{"China", "Japan", "India", "Australia", "Singapore", "South Korea"},
		Currencies: []string{"CNY", "JPY", "INR", "AUD", "SGD", "KRW"},
		Multiplier: 0.8,
	},
	domain.RegionEMEA: {
		Countries:  []string{"Germany", "UK", "France", "Italy", "Spain", "Netherlands"},
		Currencies: []string{"EUR", "GBP", "EUR", "EUR", "EUR", "EUR"},
		Multiplier: 1.2,
	},
	domain.RegionAmericas: {
		Countries:  []string{"USA", "Canada", "Brazil", "Mexico", "Argentina", "Chile"},
		Currencies: []string{"USD", "CAD", "BRL", "MXN", "ARS", "CLP"},
		Multiplier: 1.0,
	},
}

type productCategory struct {
	Name       string
	Products   []string
	MinRevenue float64
	MaxRevenue float64
}

var productCatalog = []productCategory{
	{Name: "Software", Products: []string{"CRM Suite", "Analytics Platform", "Security Solution", "ERP System"}, MinRevenue: 50000, MaxRevenue: 500000},
	{Name: "Cloud Services", Products: []string{"Infrastructure", "Database", "AI/ML Platform", "CDN"}, MinRevenue: 10000, MaxRevenue: 200000},
	{Name: "Consulting", Products: []string{"Digital Transformation", "Data Strategy", "Security Audit", "Training"}, MinRevenue: 25000, MaxRevenue: 300000},
	{Name: "Hardware", Products: []string{"Servers", "Networking", "Storage", "IoT Devices"}, MinRevenue: 30000, MaxRevenue: 400000},
}

// paymentWeights soma 100: 70% Paid, 15% Pending, 10% Overdue, 5% Partially Paid
var paymentWeights = []struct {
	Status domain.PaymentStatus
	Weight int
}{
	{domain.PaymentStatusPaid, 70},
	{domain.PaymentStatusPending, 15},
	{domain.PaymentStatusOverdue, 10},
	{domain.PaymentStatusPartiallyPaid, 5},
}

var (
	industries       = []string{"Technology", "Finance", "Healthcare", "Manufacturing", "Retail", "Government", "Education"}
	companySizes     = []string{"Startup", "SMB", "Mid-Market", "Enterprise"}
	namePrefixes     = []string{"Global", "Digital", "Smart", "Tech", "Future", "Prime"}
	nameSuffixes     = []string{"Solutions", "Systems", "Corp", "Industries", "Enterprises", "Group"}
	repFirstNames    = []string{"John", "Sarah", "Mike", "Lisa", "David", "Emma"}
	repLastNames     = []string{"Smith", "Johnson", "Brown", "Davis", "Wilson", "Taylor"}
	customerIDLowest = 1000
	customerIDRange  = 9000
)

// CountriesOf retorna os países atendidos por uma região
func CountriesOf(region domain.Region) []string {
	return markets[region].Countries
}
