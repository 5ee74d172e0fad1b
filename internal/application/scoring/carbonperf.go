package scoring

import (
	"math"

	"github.com/Jeffy123-zhu/ai-green/internal/domain/entitydata"
)

// CarbonPerformance scores a carbon record on its own 0-100 scale for the
// rating engine. This is not the inverted risk sub-score inside Assess; the
// two formulas differ and feed different consumers, so they stay separate.
func CarbonPerformance(c entitydata.CarbonRecord) float64 {
	base := math.Max(0, 100-c.TotalCO2Tons/1000)
	trendBonus := clamp(-c.Trend*10, -20, 20) // reward shrinking emissions
	renewableBonus := c.RenewablePct * 0.3

	return round2(clamp(base+trendBonus+renewableBonus, 0, 100))
}
