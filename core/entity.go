package core

// Entity is an opaque handle into the component stores
// Zero is never issued and doubles as the "no entity" sentinel
type Entity uint64

// Faction groups units by allegiance; units only attack the opposing faction
type Faction uint8

const (
	FactionNone Faction = iota
	FactionColony
	FactionHostile
)

// Opponent returns the faction this faction fights
func (f Faction) Opponent() Faction {
	switch f {
	case FactionColony:
		return FactionHostile
	case FactionHostile:
		return FactionColony
	default:
		return FactionNone
	}
}

func (f Faction) String() string {
	switch f {
	case FactionColony:
		return "colony"
	case FactionHostile:
		return "hostile"
	default:
		return "none"
	}
}

// ParseFaction maps a config string to a Faction, FactionNone if unknown
func ParseFaction(s string) Faction {
	switch s {
	case "colony":
		return FactionColony
	case "hostile":
		return FactionHostile
	default:
		return FactionNone
	}
}
