package search

// backpropagate flushes discounted returns into the per-walker statistics,
// the population analogue of a tree-search backup. Mid-run, only walkers
// about to be cloned away are flushed: their reward history is about to be
// overwritten, so it must be accounted for now. The final iteration flushes
// every walker. Runs strictly before executeClones so it reads pre-clone
// masks and reward history.
func (f *FMC) backpropagate(r *run) {
	flushAll := r.iteration == r.k-1

	for i := 0; i < f.numWalkers; i++ {
		if !flushAll && !r.mask[i] {
			continue
		}
		// Walk the history chronologically; each pass attenuates what came
		// before, so the oldest rewards carry the most discount.
		ret := 0.0
		for step := 0; step <= r.iteration; step++ {
			ret = r.rewardBuffer.At(i, step) + f.gamma*ret
		}
		r.valueSums[i] += ret
		r.visitCounts[i]++
		r.rootValueSum += ret
		r.rootVisits++
	}
}
