package kinetics

// ReactionThreshold is the temperature a collision must exceed to react.
const ReactionThreshold = 60

// CanReact reports whether collisions at temperature produce a reaction.
func CanReact(temperature int) bool {
	return temperature > ReactionThreshold
}

// Classify marks both particles reacted when temperature is above the
// threshold and at least one of them has not reacted yet. There is no
// reverse reaction.
func Classify(a, b *Particle, temperature int) {
	if CanReact(temperature) && (!a.Reacted || !b.Reacted) {
		a.Reacted = true
		b.Reacted = true
	}
}
