package matching

import "strings"

const (
	// LocationBonus is added when query and item locations are equal.
	LocationBonus = 0.10
	// TypeBonus is added when the preferred and offered internship types are equal.
	TypeBonus = 0.10
	// HybridBonus is added when types differ but one side is hybrid.
	HybridBonus = 0.05

	hybridType = "hybrid"
)

// Attributes are the structured fields the bonus rules compare.
type Attributes struct {
	Location string
	Type     string
}

// Bonus returns the additive adjustment for a query/item pair. Comparison is
// case-insensitive and the result is never clamped.
func Bonus(query, item Attributes) float64 {
	var bonus float64

	if strings.EqualFold(query.Location, item.Location) {
		bonus += LocationBonus
	}

	switch {
	case strings.EqualFold(query.Type, item.Type):
		bonus += TypeBonus
	case strings.EqualFold(query.Type, hybridType), strings.EqualFold(item.Type, hybridType):
		bonus += HybridBonus
	}

	return bonus
}
