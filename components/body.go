package components

import "github.com/pthm-cable/gravwell/config"

// Kind is the closed set of entity kinds.
type Kind uint8

const (
	KindPlanet Kind = iota
	KindAsteroid
	KindBlackHole
	KindTurret
	KindProjectile
)

// Body holds the fixed physical properties of an entity.
// RadiusTiles and Immutable never change after construction.
type Body struct {
	Kind        Kind
	RadiusTiles int
	Immutable   bool
	Launchable  bool
}

// Invulnerable reports whether damage is skipped for this kind.
func (k Kind) Invulnerable() bool {
	return k == KindBlackHole
}

// BodyFromConfig returns the body for the given kind.
func BodyFromConfig(kind Kind, cfg *config.Config) (Body, bool) {
	kc, ok := cfg.Kind(kind.String())
	if !ok {
		return Body{}, false
	}
	return Body{
		Kind:        kind,
		RadiusTiles: kc.RadiusTiles,
		Immutable:   kc.Immutable,
		Launchable:  kc.Launchable,
	}, true
}
