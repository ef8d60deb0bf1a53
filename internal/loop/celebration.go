package loop

import (
	"math/rand"
	"time"

	"github.com/tomz197/valentine-dash/internal/object"
)

// Celebration is the falling-petal effect shown after a level is cleared.
// It ends on its own timer whether or not petals remain.
type Celebration struct {
	Petals    []*object.Petal
	Remaining float64 // Seconds until the effect ends

	arena object.Arena
	rng   *rand.Rand
}

// NewCelebration scatters count petals above the arena.
func NewCelebration(rng *rand.Rand, arena object.Arena, count int, d time.Duration) *Celebration {
	c := &Celebration{
		Petals:    make([]*object.Petal, 0, count),
		Remaining: d.Seconds(),
		arena:     arena,
		rng:       rng,
	}
	for i := 0; i < count; i++ {
		c.Petals = append(c.Petals, object.NewPetal(rng, arena))
	}
	return c
}

// Update advances every petal and drops the expired ones. Returns true when
// the effect's timer has run out.
func (c *Celebration) Update(dt float64) (done bool) {
	c.Remaining -= dt

	ctx := object.UpdateContext{Delta: dt, Arena: c.arena, Rand: c.rng}
	kept := c.Petals[:0]
	for _, p := range c.Petals {
		if p.Update(ctx) {
			object.ReleaseObject(p)
			continue
		}
		kept = append(kept, p)
	}
	clear(c.Petals[len(kept):])
	c.Petals = kept

	return c.Remaining <= 0
}

// Release returns the remaining petals to their pool.
func (c *Celebration) Release() {
	for _, p := range c.Petals {
		p.Release()
	}
	c.Petals = nil
}

// Draw renders the petals.
func (c *Celebration) Draw(ctx object.DrawContext) {
	for _, p := range c.Petals {
		p.Draw(ctx)
	}
}
