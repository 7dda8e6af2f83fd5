package eid

import (
	"fmt"
	"math/rand/v2"
)

// pcgStream decorrelates the PCG increment from the seed.
const pcgStream uint64 = 0x9E3779B97F4A7C15

type rng struct {
	pcg *rand.PCG
	r   *rand.Rand
}

func newRNG(seed uint64) rng {
	pcg := rand.NewPCG(seed, seed^pcgStream)
	return rng{pcg: pcg, r: rand.New(pcg)}
}

// float returns a uniform value in [0, 1).
func (g rng) float() float64 { return g.r.Float64() }

func (g rng) snapshot() []byte {
	b, err := g.pcg.MarshalBinary()
	if err != nil {
		// PCG marshalling cannot fail.
		panic(err)
	}
	return b
}

func (g rng) restore(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if err := g.pcg.UnmarshalBinary(b); err != nil {
		return fmt.Errorf("%w: rng: %v", ErrInvalidState, err)
	}
	return nil
}
