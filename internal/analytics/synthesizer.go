package analytics

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vfg2006/sales-risk-analytics/internal/domain"
	"github.com/vfg2006/sales-risk-analytics/pkg/utils"
)

const (
	DefaultRecordCount     = 5000
	DefaultHistoryDays     = 730
	DefaultMeanRecencyDays = 180.0

	minQuantity    = 1
	maxQuantity    = 50
	minPaymentDays = 30
	maxPaymentDays = 90
	revenueJitter  = 0.3
)

type SynthesisConfig struct {
	RecordCount     int
	HistoryDays     int
	MeanRecencyDays float64
}

func DefaultSynthesisConfig() SynthesisConfig {
	return SynthesisConfig{
		RecordCount:     DefaultRecordCount,
		HistoryDays:     DefaultHistoryDays,
		MeanRecencyDays: DefaultMeanRecencyDays,
	}
}

// Ledger é o conjunto completo produzido por uma geração
type Ledger struct {
	Sales     []*domain.SalesRecord
	Customers []*domain.CustomerProfile
}

// Synthesizer gera um ledger sintético. Não é seguro para uso concorrente:
// o *rand.Rand é compartilhado com o RiskScorer.
type Synthesizer struct {
	cfg          SynthesisConfig
	rng          *rand.Rand
	scorer       *RiskScorer
	newRecordID  func() string
	newProfileID func() (string, error)
}

func NewSynthesizer(cfg SynthesisConfig, rng *rand.Rand) *Synthesizer {
	if cfg.RecordCount < 0 {
		cfg.RecordCount = 0
	}
	if cfg.HistoryDays <= 0 {
		cfg.HistoryDays = DefaultHistoryDays
	}
	if cfg.MeanRecencyDays <= 0 {
		cfg.MeanRecencyDays = DefaultMeanRecencyDays
	}

	return &Synthesizer{
		cfg:          cfg,
		rng:          rng,
		scorer:       NewRiskScorer(rng),
		newRecordID:  utils.NewUUID,
		newProfileID: utils.GenerateID,
	}
}

// Generate produz exatamente cfg.RecordCount vendas e um perfil por customer_id distinto
func (s *Synthesizer) Generate(now time.Time) (*Ledger, error) {
	sales := make([]*domain.SalesRecord, 0, s.cfg.RecordCount)
	for i := 0; i < s.cfg.RecordCount; i++ {
		sales = append(sales, s.newSalesRecord(now))
	}

	customers, err := s.BuildProfiles(sales, now)
	if err != nil {
		return nil, err
	}

	return &Ledger{Sales: sales, Customers: customers}, nil
}

func (s *Synthesizer) newSalesRecord(now time.Time) *domain.SalesRecord {
	region := domain.Regions[s.rng.Intn(len(domain.Regions))]
	market := markets[region]
	countryIdx := s.rng.Intn(len(market.Countries))

	category := productCatalog[s.rng.Intn(len(productCatalog))]

	orderDate := now.AddDate(0, 0, -s.daysAgo())

	baseRevenue := s.uniform(category.MinRevenue, category.MaxRevenue)
	revenue := baseRevenue * market.Multiplier * s.uniform(1-revenueJitter, 1+revenueJitter)
	quantity := minQuantity + s.rng.Intn(maxQuantity-minQuantity+1)

	status := s.paymentStatus()
	dueDate := orderDate.AddDate(0, 0, minPaymentDays+s.rng.Intn(maxPaymentDays-minPaymentDays+1))
	daysOverdue := 0
	if status == domain.PaymentStatusOverdue {
		daysOverdue = DaysBetween(dueDate, now)
	}

	return &domain.SalesRecord{
		ID:              s.newRecordID(),
		Region:          region,
		Country:         market.Countries[countryIdx],
		CustomerID:      fmt.Sprintf("CUST_%s_%d", region, customerIDLowest+s.rng.Intn(customerIDRange)),
		CustomerName:    fmt.Sprintf("%s %s", pick(s.rng, namePrefixes), pick(s.rng, nameSuffixes)),
		ProductCategory: category.Name,
		ProductName:     pick(s.rng, category.Products),
		SalesRep:        fmt.Sprintf("%s %s", pick(s.rng, repFirstNames), pick(s.rng, repLastNames)),
		OrderDate:       orderDate,
		Revenue:         utils.RoundWithTwoDecimalPlace(revenue),
		Quantity:        quantity,
		DealSize:        utils.RoundWithTwoDecimalPlace(revenue / float64(quantity)),
		Currency:        market.Currencies[countryIdx],
		PaymentStatus:   status,
		PaymentDueDate:  dueDate,
		DaysOverdue:     daysOverdue,
	}
}

// daysAgo segue uma exponencial com média MeanRecencyDays, limitada à janela histórica
func (s *Synthesizer) daysAgo() int {
	days := int(s.rng.ExpFloat64() * s.cfg.MeanRecencyDays)
	return min(days, s.cfg.HistoryDays-1)
}

func (s *Synthesizer) paymentStatus() domain.PaymentStatus {
	draw := s.rng.Intn(100)
	for _, w := range paymentWeights {
		if draw < w.Weight {
			return w.Status
		}
		draw -= w.Weight
	}
	return domain.PaymentStatusPaid
}

func (s *Synthesizer) uniform(lower, upper float64) float64 {
	return lower + s.rng.Float64()*(upper-lower)
}

// BuildProfiles agrupa as vendas por customer_id, na ordem da primeira aparição, e pontua o risco de cada cliente
func (s *Synthesizer) BuildProfiles(sales []*domain.SalesRecord, now time.Time) ([]*domain.CustomerProfile, error) {
	grouped := make(map[string][]*domain.SalesRecord)
	order := make([]string, 0)
	for _, record := range sales {
		if _, exists := grouped[record.CustomerID]; !exists {
			order = append(order, record.CustomerID)
		}
		grouped[record.CustomerID] = append(grouped[record.CustomerID], record)
	}

	profiles := make([]*domain.CustomerProfile, 0, len(order))
	for _, customerID := range order {
		orders := grouped[customerID]
		first := orders[0]

		id, err := s.newProfileID()
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar id do perfil %s: %w", customerID, err)
		}

		totalRevenue := 0.0
		for _, order := range orders {
			totalRevenue += order.Revenue
		}

		// A categoria vem do score bruto; só o valor gravado é arredondado
		assessment := s.scorer.Score(orders, now)

		profiles = append(profiles, &domain.CustomerProfile{
			ID:                  id,
			CustomerID:          customerID,
			CustomerName:        first.CustomerName,
			Region:              first.Region,
			Country:             first.Country,
			Industry:            pick(s.rng, industries),
			CompanySize:         pick(s.rng, companySizes),
			TotalRevenue:        utils.RoundWithTwoDecimalPlace(totalRevenue),
			AvgDealSize:         utils.RoundWithTwoDecimalPlace(totalRevenue / float64(len(orders))),
			PaymentHistoryScore: utils.RoundWithOneDecimalPlace(assessment.PaymentHistoryScore),
			RiskScore:           utils.RoundWithOneDecimalPlace(assessment.RiskScore),
			RiskCategory:        assessment.RiskCategory,
			LastOrderDate:       assessment.LastOrderDate,
			DaysSinceLastOrder:  assessment.DaysSinceLastOrder,
		})
	}

	return profiles, nil
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}
