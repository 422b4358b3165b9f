package model

import (
	"fmt"
	"time"
)

// Multiplier is the scoring tier of a throw
type Multiplier string

const (
	MultiplierSingle Multiplier = "single"
	MultiplierDouble Multiplier = "double"
	MultiplierTriple Multiplier = "triple"
)

// Board constants
const (
	MissSector      = 0
	BullSector      = 25
	OuterBullPoints = 25
	InnerBullPoints = 50
	MaxDartsPerTurn = 3
)

// Factor returns the points multiplier for the tier, or 0 if unknown
func (m Multiplier) Factor() int {
	switch m {
	case MultiplierSingle:
		return 1
	case MultiplierDouble:
		return 2
	case MultiplierTriple:
		return 3
	default:
		return 0
	}
}

// IsValid returns true for the three known tiers
func (m Multiplier) IsValid() bool {
	return m.Factor() > 0
}

// Hit is a scoreable dartboard result
type Hit struct {
	Sector     int // 1-20, 25 for bull, 0 for a miss
	Multiplier Multiplier
	Points     int
}

// NewHit validates a sector/multiplier pair and derives its points.
// Bull only has single (25) and double (50) tiers.
func NewHit(sector int, multiplier Multiplier) (Hit, error) {
	if !multiplier.IsValid() {
		return Hit{}, fmt.Errorf("%w: unknown multiplier %q", ErrInvalidThrow, multiplier)
	}
	switch {
	case sector == MissSector:
		return Hit{Sector: MissSector, Multiplier: MultiplierSingle, Points: 0}, nil
	case sector >= 1 && sector <= 20:
		return Hit{Sector: sector, Multiplier: multiplier, Points: sector * multiplier.Factor()}, nil
	case sector == BullSector:
		switch multiplier {
		case MultiplierSingle:
			return Hit{Sector: BullSector, Multiplier: multiplier, Points: OuterBullPoints}, nil
		case MultiplierDouble:
			return Hit{Sector: BullSector, Multiplier: multiplier, Points: InnerBullPoints}, nil
		}
		return Hit{}, fmt.Errorf("%w: bull has no triple", ErrInvalidThrow)
	default:
		return Hit{}, fmt.Errorf("%w: sector %d", ErrInvalidThrow, sector)
	}
}

// Label returns the conventional short notation (T20, D16, 25, BULL, MISS)
func (h Hit) Label() string {
	switch {
	case h.Sector == MissSector:
		return "MISS"
	case h.Sector == BullSector && h.Multiplier == MultiplierDouble:
		return "BULL"
	case h.Sector == BullSector:
		return "25"
	case h.Multiplier == MultiplierDouble:
		return fmt.Sprintf("D%d", h.Sector)
	case h.Multiplier == MultiplierTriple:
		return fmt.Sprintf("T%d", h.Sector)
	default:
		return fmt.Sprintf("%d", h.Sector)
	}
}

// ThrowID uniquely identifies a recorded dart
type ThrowID string

// Throw is an immutable record of a single dart
type Throw struct {
	ID         ThrowID
	PlayerID   PlayerID
	Sector     int
	Multiplier Multiplier
	Points     int
	// Applied is false when the finish rules rejected the dart ("bust");
	// the dart still counts against the turn but the score was not reduced.
	Applied   bool
	Timestamp time.Time
}

// Hit returns the scoring triple of the throw
func (t Throw) Hit() Hit {
	return Hit{Sector: t.Sector, Multiplier: t.Multiplier, Points: t.Points}
}

// Turn closes out a player's sequence of darts
type Turn struct {
	ID          string
	PlayerID    PlayerID
	PlayerName  string
	Throws      []Throw
	TotalPoints int // Sum of applied points
	TurnNumber  int // 1-based, monotonic
	Timestamp   time.Time
}
