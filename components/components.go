// Package components defines the ECS components used to draw particles.
package components

// Position represents a particle's position in viewport pixels.
type Position struct {
	X, Y float32 `inspect:"label,fmt:%.1f"`
}

// Body holds physical properties of a drawn particle.
type Body struct {
	Radius float32 `inspect:"label,fmt:%.0f"`
}

// Reaction marks whether the particle has reacted.
type Reaction struct {
	Reacted bool
}

// Velocity is the per-tick displacement, in pixels.
type Velocity struct {
	X, Y float32 `inspect:"label,fmt:%+.2f"`
}
