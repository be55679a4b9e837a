package search

import "gonum.org/v1/gonum/mat"

// Clone returns a copy of v in which every masked index is overwritten by its
// partner's value. All reads see the original v: a walker cloning from a
// partner that is itself cloning away this iteration receives the partner's
// pre-clone value. v is never mutated.
func Clone[T any](v []T, partners []int, mask []bool) []T {
	out := make([]T, len(v))
	copy(out, v)
	for i, cloned := range mask {
		if cloned {
			out[i] = v[partners[i]]
		}
	}
	return out
}

// CloneInPlace overwrites v with Clone(v, partners, mask). The gather runs on
// an internal snapshot, so the in-place form keeps the same read-before-write
// semantics as the out-of-place one.
func CloneInPlace[T any](v []T, partners []int, mask []bool) {
	snapshot := make([]T, len(v))
	copy(snapshot, v)
	for i, cloned := range mask {
		if cloned {
			v[i] = snapshot[partners[i]]
		}
	}
}

// cloneRows applies the cloning primitive to whole rows of m, snapshotting
// the matrix before any row is written.
func cloneRows(m *mat.Dense, partners []int, mask []bool) {
	snapshot := mat.DenseCopyOf(m)
	for i, cloned := range mask {
		if cloned {
			m.SetRow(i, snapshot.RawRowView(partners[i]))
		}
	}
}

// executeClones rewrites every vector that constitutes walker identity using
// this iteration's mask and partners, as if simultaneously. Receive counts
// are bumped before anything moves, then travel with their walkers like every
// other buffer.
func (f *FMC) executeClones(r *run) {
	for i, cloned := range r.mask {
		if cloned {
			r.cloneReceives[r.partners[i]]++
		}
	}

	cloneRows(f.state, r.partners, r.mask)
	cloneRows(r.rewardBuffer, r.partners, r.mask)
	CloneInPlace(r.actions, r.partners, r.mask)
	CloneInPlace(r.rootActions, r.partners, r.mask)
	CloneInPlace(r.valueSums, r.partners, r.mask)
	CloneInPlace(r.visitCounts, r.partners, r.mask)
	CloneInPlace(r.cloneReceives, r.partners, r.mask)
}
