package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayProducts OverlayID = "products"
	OverlayHint     OverlayID = "reaction_hint"
	OverlayPerf     OverlayID = "perf"
	OverlayBounds   OverlayID = "bounds"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID       OverlayID
	Name     string
	Key      int32  // keyboard toggle, 0 = none
	KeyLabel string // e.g. "P"
	Default  bool   // enabled at startup
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the standard overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.Register(OverlayDescriptor{ID: OverlayProducts, Name: "Products", Key: rl.KeyP, KeyLabel: "P", Default: true})
	reg.Register(OverlayDescriptor{ID: OverlayHint, Name: "Reaction Hint", Key: rl.KeyH, KeyLabel: "H", Default: true})
	reg.Register(OverlayDescriptor{ID: OverlayBounds, Name: "Bounds", Key: rl.KeyB, KeyLabel: "B", Default: true})
	reg.Register(OverlayDescriptor{ID: OverlayPerf, Name: "Perf", Key: rl.KeyF, KeyLabel: "F"})
	return reg
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if _, ok := r.byID[desc.ID]; !ok {
		r.descriptors = append(r.descriptors, desc)
	}
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on or off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeyPress toggles the overlay bound to key.
// Returns the overlay ID, its new state, and whether a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	if key == 0 {
		return "", false, false
	}
	for _, desc := range r.descriptors {
		if desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}

// PollKeys toggles overlays for keys pressed this frame.
func (r *OverlayRegistry) PollKeys() {
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		r.HandleKeyPress(key)
	}
}
