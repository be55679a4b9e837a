package search

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// cloneEpsilon guards the clone-probability denominator. Virtual rewards are
// strictly positive by construction but may be arbitrarily small.
const cloneEpsilon = 1e-8

// decideClones assigns every walker a random partner and decides which
// walkers clone onto theirs this iteration. A walker clones when its
// partner's virtual reward sufficiently exceeds its own.
func (f *FMC) decideClones(r *run) {
	// Uniform with replacement; a walker may draw itself.
	for i := range r.partners {
		r.partners[i] = f.rng.Intn(f.numWalkers)
	}

	for i, partner := range r.partners {
		r.distances[i] = floats.Distance(f.state.RawRowView(i), f.state.RawRowView(partner), 2)
	}

	relValues := relativize(r.values)
	relDistances := relativize(r.distances)
	for i := range r.virtualRewards {
		r.virtualRewards[i] = math.Pow(relValues[i], f.balance) * relDistances[i]
	}

	// One threshold draw for the whole population, not a coin flip per walker.
	// Cloning then arrives in correlated population-wide waves, which is a
	// load-bearing property of the search dynamics.
	threshold := f.rng.Float64()
	for i, partner := range r.partners {
		vr := r.virtualRewards[i]
		r.probabilities[i] = (r.virtualRewards[partner] - vr) / math.Max(vr, cloneEpsilon)
		r.mask[i] = r.probabilities[i] >= threshold
	}
}
