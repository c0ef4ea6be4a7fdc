package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Granularity define o tamanho do bucket usado na agregação por período
type Granularity string

const (
	Monthly   Granularity = "monthly"
	Quarterly Granularity = "quarterly"
	Yearly    Granularity = "yearly"
)

var ErrInvalidGranularity = errors.New("período inválido, valores aceitos: monthly, quarterly, yearly")

// ParseGranularity converte o parâmetro recebido na API. Vazio equivale a mensal.
func ParseGranularity(value string) (Granularity, error) {
	switch Granularity(strings.ToLower(strings.TrimSpace(value))) {
	case "", Monthly:
		return Monthly, nil
	case Quarterly:
		return Quarterly, nil
	case Yearly:
		return Yearly, nil
	default:
		return "", ErrInvalidGranularity
	}
}

// PeriodKey identifica um bucket de período.
// Index é o mês (1-12) para mensal, o trimestre (1-4) para trimestral e 0 para anual.
type PeriodKey struct {
	Year        int
	Granularity Granularity
	Index       int
}

// PeriodKeyOf retorna o bucket ao qual a data pertence
func PeriodKeyOf(t time.Time, g Granularity) PeriodKey {
	switch g {
	case Monthly:
		return PeriodKey{Year: t.Year(), Granularity: Monthly, Index: int(t.Month())}
	case Quarterly:
		return PeriodKey{Year: t.Year(), Granularity: Quarterly, Index: (int(t.Month())-1)/3 + 1}
	default:
		return PeriodKey{Year: t.Year(), Granularity: Yearly}
	}
}

// Less ordena cronologicamente chaves da mesma granularidade
func (k PeriodKey) Less(other PeriodKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Index < other.Index
}

// String formata a chave como YYYY-MM, YYYY-Qn ou YYYY
func (k PeriodKey) String() string {
	switch k.Granularity {
	case Monthly:
		return fmt.Sprintf("%04d-%02d", k.Year, k.Index)
	case Quarterly:
		return fmt.Sprintf("%04d-Q%d", k.Year, k.Index)
	default:
		return fmt.Sprintf("%04d", k.Year)
	}
}
