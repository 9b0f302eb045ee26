package components

import (
	"math"
	"testing"

	"github.com/pthm-cable/gravwell/config"
)

func TestIntegrateSemiImplicit(t *testing.T) {
	pos := Position{X: 10, Y: 10}
	vel := Velocity{X: 1, Y: 0}
	rot := Rotation{}

	Integrate(&pos, &vel, &rot, true, 2, 0.5, 0.25, 0)

	// Velocity takes the acceleration before the position advances
	if vel.X != 2 || vel.Y != 0.5 {
		t.Errorf("velocity = (%v, %v), want (2, 0.5)", vel.X, vel.Y)
	}
	if pos.X != 14 || pos.Y != 11 {
		t.Errorf("position = (%v, %v), want (14, 11)", pos.X, pos.Y)
	}
	want := math.Atan2(0.5, 2)
	if math.Abs(rot.Angle-want) > 1e-9 {
		t.Errorf("heading = %v, want %v", rot.Angle, want)
	}
}

func TestIntegrateImmovableIgnoresAcceleration(t *testing.T) {
	pos := Position{X: 5, Y: 5}
	vel := Velocity{}
	rot := Rotation{Spin: 0.1}

	Integrate(&pos, &vel, &rot, false, 1, 3, 3, 0)

	if vel.Moving() {
		t.Errorf("immovable body gained velocity (%v, %v)", vel.X, vel.Y)
	}
	if pos.X != 5 || pos.Y != 5 {
		t.Errorf("immovable body moved to (%v, %v)", pos.X, pos.Y)
	}
	if math.Abs(rot.Angle-0.1) > 1e-9 {
		t.Errorf("spin angle = %v, want 0.1", rot.Angle)
	}
}

func TestIntegrateSpeedClamp(t *testing.T) {
	pos := Position{}
	vel := Velocity{X: 6, Y: 8}

	Integrate(&pos, &vel, nil, true, 1, 0, 0, 5)

	if math.Abs(vel.Speed()-5) > 1e-9 {
		t.Errorf("speed = %v, want 5", vel.Speed())
	}
	if math.Abs(pos.X-3) > 1e-9 || math.Abs(pos.Y-4) > 1e-9 {
		t.Errorf("position = (%v, %v), want (3, 4)", pos.X, pos.Y)
	}
}

func TestTakeDamage(t *testing.T) {
	tests := []struct {
		name      string
		health    int
		damage    int
		destroyed bool
		remaining int
	}{
		{"survives", 300, 100, false, 200},
		{"exactly zero", 100, 100, true, 0},
		{"overkill", 50, 100, true, -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Health{Value: tt.health, Max: tt.health}
			if got := h.TakeDamage(tt.damage); got != tt.destroyed {
				t.Errorf("TakeDamage(%d) = %v, want %v", tt.damage, got, tt.destroyed)
			}
			if h.Value != tt.remaining {
				t.Errorf("health = %d, want %d", h.Value, tt.remaining)
			}
		})
	}
}

func TestKindNamesRoundTrip(t *testing.T) {
	for i := 0; i < KindCount(); i++ {
		k := Kind(i)
		got, ok := KindFromName(k.String())
		if !ok || got != k {
			t.Errorf("KindFromName(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := KindFromName("comet"); ok {
		t.Error("unknown kind name resolved")
	}
	if !KindBlackHole.Invulnerable() || KindPlanet.Invulnerable() {
		t.Error("only black holes are invulnerable")
	}
}

func TestBodyFromConfig(t *testing.T) {
	cfg := config.MustLoad("")

	planet, ok := BodyFromConfig(KindPlanet, cfg)
	if !ok {
		t.Fatal("no planet body")
	}
	if !planet.Immutable || planet.RadiusTiles != 2 {
		t.Errorf("planet body = %+v", planet)
	}

	proj, ok := BodyFromConfig(KindProjectile, cfg)
	if !ok {
		t.Fatal("no projectile body")
	}
	if proj.Immutable || !proj.Launchable {
		t.Errorf("projectile body = %+v", proj)
	}
}
