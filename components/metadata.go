package components

import "github.com/pthm-cable/gravwell/config"

// String returns the config name for a Kind.
func (k Kind) String() string {
	names := KindNames()
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// KindNames returns the config names for all kinds.
// The order matches the Kind constants.
func KindNames() []string {
	return []string{
		config.KindPlanet,
		config.KindAsteroid,
		config.KindBlackHole,
		config.KindTurret,
		config.KindProjectile,
	}
}

// KindCount returns the number of kinds.
func KindCount() int {
	return len(KindNames())
}

// KindFromName looks up a Kind by its config name.
func KindFromName(name string) (Kind, bool) {
	for i, n := range KindNames() {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// Label returns a display label for toolbars and tooltips.
func (k Kind) Label() string {
	switch k {
	case KindPlanet:
		return "Planet"
	case KindAsteroid:
		return "Asteroid"
	case KindBlackHole:
		return "Black Hole"
	case KindTurret:
		return "Turret"
	case KindProjectile:
		return "Launcher"
	}
	return "Unknown"
}
