package components

// Health tracks remaining hit points.
type Health struct {
	Value int
	Max   int
}

// TakeDamage reduces health and reports whether the entity is destroyed.
// Invulnerable kinds are filtered by the caller, not here.
func (h *Health) TakeDamage(amount int) bool {
	h.Value -= amount
	return h.Value <= 0
}

// Ratio returns Value/Max clamped to [0, 1].
func (h Health) Ratio() float64 {
	if h.Max <= 0 {
		return 1
	}
	r := float64(h.Value) / float64(h.Max)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
