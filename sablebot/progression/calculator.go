package progression

import (
	"math"

	"github.com/marchanddesable/sablebot/sablebot/catalog"
)

// Level curve constants. The curve is logarithmic: every level costs
// roughly 26% more puissance than the one before, with no upper bound.
const (
	levelBasePower = 50
	levelLogFactor = 10
	levelLogBase   = 10
)

// Calculator holds the pure progression math: puissance from equipment,
// niveau from puissance, and the display threshold for the next niveau.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Power sums the equipped weapon's puissance and the equipped armor's
// defense. A nil item contributes 0.
func (c *Calculator) Power(arme, armure *catalog.Item) int64 {
	var power int64
	if arme != nil {
		power += arme.Power
	}
	if armure != nil {
		power += armure.Power
	}
	return power
}

// Level maps puissance to niveau: 1 below 50, then
// floor(1 + 10*log10(puissance/50)), never below 1.
func (c *Calculator) Level(power int64) int {
	if power < levelBasePower {
		return 1
	}
	level := int(1 + math.Log10(float64(power)/levelBasePower)*levelLogFactor)
	if level < 1 {
		return 1
	}
	return level
}

// NextLevelThreshold is the approximate inverse of Level, used only for
// display. Boundary rounding can be off by one; that is accepted.
func (c *Calculator) NextLevelThreshold(level int) int64 {
	return int64(levelBasePower * math.Pow(levelLogBase, float64(level)/levelLogFactor))
}
