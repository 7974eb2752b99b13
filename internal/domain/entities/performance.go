package entities

import "math"

// PerformanceBand is one of the six ordered status bands of the performance ratio.
type PerformanceBand string

const (
	BandPerfect        PerformanceBand = "PERFECT"
	BandExcellent      PerformanceBand = "EXCELLENT"
	BandAdequate       PerformanceBand = "ADEQUATE"
	BandNeedsAttention PerformanceBand = "NEEDS_ATTENTION"
	BandPoor           PerformanceBand = "POOR"
	BandCritical       PerformanceBand = "CRITICAL"
)

// ProgressMax is the upper bound of the performance progress bar.
const ProgressMax = 200.0

// Classification is the presentation derived from a performance ratio.
type Classification struct {
	Band  PerformanceBand
	Label string
	Icon  string
	Class string
}

// performanceBands is evaluated top-down; first match wins.
var performanceBands = []struct {
	min float64
	Classification
}{
	{200, Classification{Band: BandPerfect, Label: "SEMPURNA: Semua pelanggan lunas", Icon: "🎉", Class: "text-green-600"}},
	{150, Classification{Band: BandExcellent, Label: "Sangat baik", Icon: "🟢", Class: "text-green-500"}},
	{120, Classification{Band: BandAdequate, Label: "Cukup", Icon: "🟡", Class: "text-yellow-500"}},
	{100, Classification{Band: BandNeedsAttention, Label: "Perlu perhatian", Icon: "🟠", Class: "text-orange-500"}},
	{0, Classification{Band: BandPoor, Label: "Buruk", Icon: "🔴", Class: "text-red-500"}},
}

var criticalClassification = Classification{
	Band:  BandCritical,
	Label: "KRITIS: Outstanding jauh di atas target",
	Icon:  "⛔",
	Class: "text-red-800",
}

// Classify maps a performance ratio (percent) to its band. Total over float64:
// NaN matches no threshold and lands in CRITICAL.
func Classify(p float64) Classification {
	for _, b := range performanceBands {
		if p >= b.min {
			return b.Classification
		}
	}
	return criticalClassification
}

// ProgressValue clamps p to [0, ProgressMax] for the progress bar only.
func ProgressValue(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return math.Max(0, math.Min(p, ProgressMax))
}
