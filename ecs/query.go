package ecs

import (
	"cmp"
	"slices"
)

// Query returns the live entities that have every component kind given.
// Results are ordered by entity id so callers iterate deterministically.
func (w *World) Query(kinds ...componentKind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		set := w.store(k.ID(), false)
		if set == nil {
			return nil
		}
		sets = append(sets, set)
	}

	ids := append([]int(nil), sets[0].Entities()...)
	for _, set := range sets[1:] {
		kept := ids[:0]
		for _, id := range ids {
			if set.Has(id) {
				kept = append(kept, id)
			}
		}
		ids = kept
	}

	out := make([]Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := w.entityFor(id); ok {
			out = append(out, e)
		}
	}
	sortEntities(out)
	return out
}

// First returns the lowest-id live entity that has the component kind.
func (w *World) First(kind componentKind) (Entity, bool) {
	ents := w.Query(kind)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

func sortEntities(ents []Entity) {
	slices.SortFunc(ents, func(a, b Entity) int {
		return cmp.Compare(a.id(), b.id())
	})
}
