package advice

import (
	"errors"

	"github.com/phrazzld/karuta-api/internal/domain"
)

// ErrInvalidParams is returned when heuristic parameters are out of range.
var ErrInvalidParams = errors.New("invalid advice parameters")

// Ratio is a non-negative fraction compared without floating point error.
type Ratio struct {
	Num int
	Den int
}

// atMost reports whether part/whole <= r. whole must be positive.
func (r Ratio) atMost(part, whole int) bool {
	return part*r.Den <= r.Num*whole
}

// Params holds the heuristic thresholds of the advice rules. They are rules
// of thumb and kept configurable.
type Params struct {
	// TwoCharMidLowRatio: the two-character rule fires when the share of
	// two-character cards in the middle or bottom tiers is at most this ratio.
	TwoCharMidLowRatio Ratio

	// SideClusterMin is the number of siblings on one side that triggers the
	// side-clustering rule.
	SideClusterMin int

	// LargeClassMin is the lowest decisiveness class counted as a large card.
	LargeClassMin domain.DecisivenessClass
}

// NewDefaultParams returns the standard thresholds.
func NewDefaultParams() Params {
	return Params{
		TwoCharMidLowRatio: Ratio{Num: 2, Den: 3},
		SideClusterMin:     3,
		LargeClassMin:      domain.ClassLarge,
	}
}

// Validate checks the parameters for usable values.
func (p Params) Validate() error {
	if p.TwoCharMidLowRatio.Den <= 0 || p.TwoCharMidLowRatio.Num < 0 {
		return errors.Join(ErrInvalidParams, errors.New("two-char ratio must have a positive denominator"))
	}
	if p.SideClusterMin < 2 {
		return errors.Join(ErrInvalidParams, errors.New("side cluster minimum must be at least 2"))
	}
	if p.LargeClassMin < domain.ClassSingle {
		return errors.Join(ErrInvalidParams, errors.New("large class minimum must be at least 1"))
	}
	return nil
}
