package utils

import (
	"fmt"
	"math"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// FormatPercent formata uma fração (0.42) como "42.0%"
func FormatPercent(fraction float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, fraction*100)
}
