// Package scene mirrors the latest population snapshot into an ECS world
// that the renderer queries. The simulation never reads from it.
package scene

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/kinetics/components"
	"github.com/pthm-cable/kinetics/kinetics"
)

// Status is the HUD summary of the last synced result.
type Status struct {
	Tick          uint64
	Reacted       int
	Concentration int
	Temperature   int
}

// Scene holds one entity per particle of the latest snapshot.
type Scene struct {
	world  *ecs.World
	mapper *ecs.Map4[components.Position, components.Velocity, components.Body, components.Reaction]
	filter *ecs.Filter3[components.Position, components.Body, components.Reaction]

	// entities[i] mirrors particle i
	entities   []ecs.Entity
	generation uint64
	status     Status
}

// New creates an empty scene.
func New() *Scene {
	world := ecs.NewWorld()
	return &Scene{
		world:  world,
		mapper: ecs.NewMap4[components.Position, components.Velocity, components.Body, components.Reaction](world),
		filter: ecs.NewFilter3[components.Position, components.Body, components.Reaction](world),
	}
}

// Sync updates the scene from a tick result. Entities are reused while the
// population generation is unchanged and rebuilt after a re-initialization.
func (s *Scene) Sync(r kinetics.TickResult) {
	if r.Generation != s.generation || len(r.Population) != len(s.entities) {
		s.rebuild(r)
	} else {
		for i := range r.Population {
			pos, vel, body, re := s.mapper.Get(s.entities[i])
			copyParticle(&r.Population[i], pos, vel, body, re)
		}
	}

	s.status = Status{
		Tick:          r.Tick,
		Reacted:       r.ReactedCount,
		Concentration: r.Concentration,
		Temperature:   r.Temperature,
	}
}

func (s *Scene) rebuild(r kinetics.TickResult) {
	for _, e := range s.entities {
		s.world.RemoveEntity(e)
	}
	s.entities = s.entities[:0]

	for i := range r.Population {
		var (
			pos  components.Position
			vel  components.Velocity
			body components.Body
			re   components.Reaction
		)
		copyParticle(&r.Population[i], &pos, &vel, &body, &re)
		s.entities = append(s.entities, s.mapper.NewEntity(&pos, &vel, &body, &re))
	}
	s.generation = r.Generation
}

func copyParticle(p *kinetics.Particle, pos *components.Position, vel *components.Velocity, body *components.Body, re *components.Reaction) {
	pos.X = float32(p.Pos.X)
	pos.Y = float32(p.Pos.Y)
	vel.X = float32(p.Vel.X)
	vel.Y = float32(p.Vel.Y)
	body.Radius = float32(p.Radius)
	re.Reacted = p.Reacted
}

// Each calls fn for every particle entity. fn must not modify the scene.
func (s *Scene) Each(fn func(pos *components.Position, body *components.Body, re *components.Reaction)) {
	query := s.filter.Query()
	for query.Next() {
		fn(query.Get())
	}
}

// Pick returns the index of the particle whose body contains the world
// point (x, y), preferring the closest centre.
func (s *Scene) Pick(x, y float32) (int, bool) {
	best, bestDist := -1, float32(0)
	for i, e := range s.entities {
		pos, _, body, _ := s.mapper.Get(e)
		dx, dy := pos.X-x, pos.Y-y
		d := dx*dx + dy*dy
		if d <= body.Radius*body.Radius && (best < 0 || d < bestDist) {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

// Particle returns the components of particle i.
func (s *Scene) Particle(i int) (*components.Position, *components.Velocity, *components.Body, *components.Reaction) {
	return s.mapper.Get(s.entities[i])
}

// Generation returns the population generation the entities mirror.
func (s *Scene) Generation() uint64 {
	return s.generation
}

// Len returns the number of particle entities.
func (s *Scene) Len() int {
	return len(s.entities)
}

// Status returns the summary of the last synced result.
func (s *Scene) Status() Status {
	return s.status
}
