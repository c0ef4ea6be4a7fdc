package analytics

import (
	"sort"

	"github.com/vfg2006/sales-risk-analytics/internal/domain"
)

const TopCustomersLimit = 5

// Rollup consolida um conjunto filtrado de vendas (uma região ou um país)
type Rollup struct {
	TotalRevenue float64
	TotalOrders  int
	AvgDealSize  float64
	RiskExposure float64
	TopCustomers []domain.TopCustomer
	Countries    []string
	Regions      []domain.Region
	Customers    int
}

// Summarize calcula os totais do conjunto e a exposição a clientes de alto risco,
// cruzando as vendas com os perfis pelo customer_id
func Summarize(records []*domain.SalesRecord, profiles []*domain.CustomerProfile) Rollup {
	rollup := Rollup{
		TopCustomers: TopCustomers(records, TopCustomersLimit),
		RiskExposure: RiskExposure(records, HighRiskCustomerIDs(profiles)),
	}

	countries := make(map[string]struct{})
	regions := make(map[domain.Region]struct{})
	customers := make(map[string]struct{})
	for _, record := range records {
		rollup.TotalRevenue += record.Revenue
		rollup.TotalOrders++
		countries[record.Country] = struct{}{}
		regions[record.Region] = struct{}{}
		customers[record.CustomerID] = struct{}{}
	}

	if rollup.TotalOrders > 0 {
		rollup.AvgDealSize = rollup.TotalRevenue / float64(rollup.TotalOrders)
	}

	rollup.Countries = sortedKeys(countries)
	rollup.Regions = make([]domain.Region, 0, len(regions))
	for region := range regions {
		rollup.Regions = append(rollup.Regions, region)
	}
	sort.Slice(rollup.Regions, func(i, j int) bool { return rollup.Regions[i] < rollup.Regions[j] })
	rollup.Customers = len(customers)

	return rollup
}

// HighRiskCustomerIDs retorna o conjunto de clientes classificados como High
func HighRiskCustomerIDs(profiles []*domain.CustomerProfile) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, profile := range profiles {
		if profile.IsHighRisk() {
			ids[profile.CustomerID] = struct{}{}
		}
	}
	return ids
}

// RiskExposure soma a receita das vendas de clientes de alto risco.
// Vendas sem perfil correspondente não contribuem.
func RiskExposure(records []*domain.SalesRecord, highRisk map[string]struct{}) float64 {
	exposure := 0.0
	for _, record := range records {
		if _, ok := highRisk[record.CustomerID]; ok {
			exposure += record.Revenue
		}
	}
	return exposure
}

// TopCustomers ordena os clientes por receita decrescente e devolve no máximo limit.
// Empates mantêm a ordem da primeira aparição.
func TopCustomers(records []*domain.SalesRecord, limit int) []domain.TopCustomer {
	index := make(map[string]int)
	customers := make([]domain.TopCustomer, 0)
	for _, record := range records {
		i, exists := index[record.CustomerID]
		if !exists {
			i = len(customers)
			index[record.CustomerID] = i
			customers = append(customers, domain.TopCustomer{
				CustomerID: record.CustomerID,
				Name:       record.CustomerName,
			})
		}
		customers[i].Revenue += record.Revenue
	}

	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].Revenue > customers[j].Revenue
	})

	if limit >= 0 && len(customers) > limit {
		customers = customers[:limit]
	}

	return customers
}

// RegionalSummaries consolida cada região da lista. Regiões sem vendas são omitidas.
func RegionalSummaries(records []*domain.SalesRecord, profiles []*domain.CustomerProfile, regions []domain.Region) []domain.RegionalSummary {
	byRegion := make(map[domain.Region][]*domain.SalesRecord)
	for _, record := range records {
		byRegion[record.Region] = append(byRegion[record.Region], record)
	}

	summaries := make([]domain.RegionalSummary, 0, len(regions))
	for _, region := range regions {
		regionRecords := byRegion[region]
		if len(regionRecords) == 0 {
			continue
		}

		rollup := Summarize(regionRecords, profiles)
		summaries = append(summaries, domain.RegionalSummary{
			Region:       region,
			TotalRevenue: rollup.TotalRevenue,
			TotalOrders:  rollup.TotalOrders,
			AvgDealSize:  rollup.AvgDealSize,
			RiskExposure: rollup.RiskExposure,
			TopCustomers: rollup.TopCustomers,
			Countries:    rollup.Countries,
		})
	}

	return summaries
}

// CountryPerformance consolida as vendas por país, ordenando por receita decrescente.
// HighRiskCustomers conta os perfis High localizados no país.
func CountryPerformance(records []*domain.SalesRecord, profiles []*domain.CustomerProfile) []domain.CountryPerformance {
	byCountry := make(map[string][]*domain.SalesRecord)
	order := make([]string, 0)
	for _, record := range records {
		if _, exists := byCountry[record.Country]; !exists {
			order = append(order, record.Country)
		}
		byCountry[record.Country] = append(byCountry[record.Country], record)
	}

	highRiskByCountry := make(map[string]int)
	for _, profile := range profiles {
		if profile.IsHighRisk() {
			highRiskByCountry[profile.Country]++
		}
	}

	result := make([]domain.CountryPerformance, 0, len(order))
	for _, country := range order {
		countryRecords := byCountry[country]

		revenue := 0.0
		customers := make(map[string]struct{})
		for _, record := range countryRecords {
			revenue += record.Revenue
			customers[record.CustomerID] = struct{}{}
		}

		result = append(result, domain.CountryPerformance{
			Country:           country,
			Region:            countryRecords[0].Region,
			Revenue:           revenue,
			Orders:            len(countryRecords),
			Customers:         len(customers),
			AvgDealSize:       revenue / float64(len(countryRecords)),
			HighRiskCustomers: highRiskByCountry[country],
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Revenue > result[j].Revenue
	})

	return result
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
