package domain

import "fmt"

// Zone is one of the six regions of a player's own territory.
type Zone int

// The six zones, in canonical order.
const (
	LeftTop Zone = iota
	LeftMid
	LeftLow
	RightTop
	RightMid
	RightLow
)

// ZoneCount is the number of zones on a board.
const ZoneCount = 6

// AllZones lists every zone in canonical order.
var AllZones = [ZoneCount]Zone{LeftTop, LeftMid, LeftLow, RightTop, RightMid, RightLow}

// Side is the left or right half of the territory.
type Side int

// Sides.
const (
	SideLeft Side = iota
	SideRight
)

// String returns "left" or "right".
func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// Tier is the row of a zone, counted from the middle line of the field.
type Tier int

// Tiers, from the row farthest from the player to the nearest.
const (
	TierTop Tier = iota
	TierMid
	TierLow
)

// String returns "top", "mid" or "low".
func (t Tier) String() string {
	switch t {
	case TierMid:
		return "mid"
	case TierLow:
		return "low"
	default:
		return "top"
	}
}

var zoneNames = [ZoneCount]string{
	"left-top", "left-mid", "left-low",
	"right-top", "right-mid", "right-low",
}

// String returns the zone's wire name, for example "left-low".
func (z Zone) String() string {
	if !z.Valid() {
		return fmt.Sprintf("zone(%d)", int(z))
	}
	return zoneNames[z]
}

// Valid reports whether z is one of the six zones.
func (z Zone) Valid() bool {
	return z >= LeftTop && z <= RightLow
}

// Side returns the half of the territory the zone belongs to.
func (z Zone) Side() Side {
	if z >= RightTop {
		return SideRight
	}
	return SideLeft
}

// Tier returns the row of the zone.
func (z Zone) Tier() Tier {
	return Tier(int(z) % 3)
}

// IsLow reports whether the zone is one of the two bottom zones.
func (z Zone) IsLow() bool {
	return z.Tier() == TierLow
}

// ParseZone parses a zone wire name such as "right-mid".
func ParseZone(s string) (Zone, error) {
	for i, name := range zoneNames {
		if name == s {
			return Zone(i), nil
		}
	}
	return 0, NewValidationError("zone", fmt.Sprintf("has unknown value %q", s), ErrValidation)
}

// MarshalText implements encoding.TextMarshaler so zones can key JSON maps.
func (z Zone) MarshalText() ([]byte, error) {
	if !z.Valid() {
		return nil, fmt.Errorf("%w: zone %d", ErrValidation, int(z))
	}
	return []byte(zoneNames[z]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (z *Zone) UnmarshalText(text []byte) error {
	parsed, err := ParseZone(string(text))
	if err != nil {
		return err
	}
	*z = parsed
	return nil
}
