package utils

import "github.com/shopspring/decimal"

func RoundWithTwoDecimalPlace(f float64) float64 {
	return round(f, 2)
}

func RoundWithOneDecimalPlace(f float64) float64 {
	return round(f, 1)
}

// round arredonda meio para longe do zero, sem o erro de representação de math.Round(f*100)/100
func round(f float64, places int32) float64 {
	if f == 0 {
		return 0
	}

	return decimal.NewFromFloat(f).Round(places).InexactFloat64()
}
