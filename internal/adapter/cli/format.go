package cli

import (
	"strconv"
	"strings"

	"monitoring_tunggakan/internal/domain/entities"
)

const barWidth = 40

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// progressBar draws the clamped performance value on a 0..200 scale.
func progressBar(v float64) string {
	filled := int(v / entities.ProgressMax * barWidth)
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}
